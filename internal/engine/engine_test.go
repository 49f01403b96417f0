package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/z0m0dan/taskr/internal/storage"
	"github.com/z0m0dan/taskr/internal/timeutil"
)

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time {
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestService(t *testing.T) (*Service, *testClock) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	db, err := storage.Open(ctx, filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	clk := &testClock{t: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)}
	repo := storage.NewListRepo(db, storage.WithClock(clk.Now))
	svc := NewService(repo, WithNow(clk.Now))
	return svc, clk
}

func TestAddTaskCreatesOngoing(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	tasks, err := svc.AddTask(ctx, "write report", "30m")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("len(tasks)=%d, want 1", len(tasks))
	}
	task := tasks[0]
	if task.Status != storage.StatusOngoing {
		t.Fatalf("status=%q, want ongoing", task.Status)
	}
	if want := clk.Now().Add(30 * time.Minute); !task.DueTime.Equal(want) {
		t.Fatalf("dueTime=%v, want %v", task.DueTime, want)
	}
	if task.Interval != "30m" {
		t.Fatalf("interval=%q, want 30m", task.Interval)
	}
	if task.ID == "" {
		t.Fatalf("expected a generated id")
	}
}

func TestAddTaskValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		title    string
		interval string
	}{
		{"empty title", "", "30m"},
		{"empty interval", "task", ""},
		{"bad unit", "task", "30x"},
		{"no unit", "task", "30"},
		{"negative", "task", "-5m"},
		{"hours over cap", "task", "25h"},
		{"zero count", "task", "0m"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddTask(ctx, tc.title, tc.interval)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("AddTask(%q, %q) err=%v, want ValidationError", tc.title, tc.interval, err)
			}
		})
	}
}

func TestMinuteStepPolicy(t *testing.T) {
	svc, _ := newTestService(t)
	svc.minuteStep = 10
	ctx := context.Background()

	if _, err := svc.AddTask(ctx, "off step", "15m"); err == nil {
		t.Fatalf("expected step validation error for 15m with step 10")
	}
	if _, err := svc.AddTask(ctx, "on step", "20m"); err != nil {
		t.Fatalf("AddTask 20m: %v", err)
	}
}

func TestScheduleRequiresExistingPredecessor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ScheduleTask(ctx, "followup", "10m", "nope")
	var derr DependencyNotFoundError
	if !errors.As(err, &derr) {
		t.Fatalf("err=%v, want DependencyNotFoundError on empty day", err)
	}

	base, err := svc.AddTask(ctx, "base", "30m")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	if _, err := svc.ScheduleTask(ctx, "followup", "10m", "missing-id"); !errors.As(err, &derr) {
		t.Fatalf("err=%v, want DependencyNotFoundError for unknown id", err)
	}

	tasks, err := svc.ScheduleTask(ctx, "followup", "10m", base[0].ID)
	if err != nil {
		t.Fatalf("ScheduleTask: %v", err)
	}
	var dep *storage.Task
	for i := range tasks {
		if tasks[i].Name == "followup" {
			dep = &tasks[i]
		}
	}
	if dep == nil {
		t.Fatalf("dependent not in list")
	}
	if dep.Status != storage.StatusScheduled {
		t.Fatalf("status=%q, want scheduled", dep.Status)
	}
	if !dep.DueTime.IsZero() {
		t.Fatalf("dueTime=%v, want unset until activation", dep.DueTime)
	}
	if dep.DependsOn == nil || dep.DependsOn.ID != base[0].ID || dep.DependsOn.Name != "base" {
		t.Fatalf("dependsOn=%+v, want ref to base", dep.DependsOn)
	}
}

func TestCompleteTask(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tasks, err := svc.AddTask(ctx, "base", "30m")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	updated, err := svc.CompleteTask(ctx, tasks[0].ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if updated[0].Status != storage.StatusDone {
		t.Fatalf("status=%q, want done", updated[0].Status)
	}

	var nerr NotFoundError
	if _, err := svc.CompleteTask(ctx, "missing"); !errors.As(err, &nerr) {
		t.Fatalf("err=%v, want NotFoundError", err)
	}
}

func TestSweepEndToEnd(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	base, err := svc.AddTask(ctx, "base", "30m")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if _, err := svc.ScheduleTask(ctx, "followup", "10m", base[0].ID); err != nil {
		t.Fatalf("ScheduleTask: %v", err)
	}

	clk.Advance(31 * time.Minute)
	res, err := svc.SweepOverdue(ctx)
	if err != nil {
		t.Fatalf("SweepOverdue: %v", err)
	}
	if res.MarkedOverdue != 1 || res.Activated != 1 {
		t.Fatalf("overdue=%d activated=%d, want 1/1", res.MarkedOverdue, res.Activated)
	}

	byName := map[string]storage.Task{}
	for _, task := range res.Tasks {
		byName[task.Name] = task
	}
	if got := byName["base"].Status; got != storage.StatusOverdue {
		t.Fatalf("base status=%q, want overdue", got)
	}
	dep := byName["followup"]
	if dep.Status != storage.StatusOngoing {
		t.Fatalf("followup status=%q, want ongoing", dep.Status)
	}
	if want := clk.Now().Add(10 * time.Minute); !dep.DueTime.Equal(want) {
		t.Fatalf("followup dueTime=%v, want sweep time + 10m (%v)", dep.DueTime, want)
	}
	for _, task := range res.Tasks {
		if task.DisplayTime == "" {
			t.Fatalf("task %q has no display time after sweep", task.Name)
		}
	}
}

func TestSweepIdempotent(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	base, err := svc.AddTask(ctx, "base", "30m")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if _, err := svc.ScheduleTask(ctx, "followup", "10m", base[0].ID); err != nil {
		t.Fatalf("ScheduleTask: %v", err)
	}

	clk.Advance(31 * time.Minute)
	if _, err := svc.SweepOverdue(ctx); err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	res, err := svc.SweepOverdue(ctx)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if res.MarkedOverdue != 0 || res.Activated != 0 {
		t.Fatalf("second sweep changed state: overdue=%d activated=%d", res.MarkedOverdue, res.Activated)
	}
}

func TestSweepActivatesSingleWinner(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	base, err := svc.AddTask(ctx, "base", "5m")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	names := []string{"d1", "d2", "d3"}
	for _, name := range names {
		if _, err := svc.ScheduleTask(ctx, name, "10m", base[0].ID); err != nil {
			t.Fatalf("ScheduleTask %s: %v", name, err)
		}
		clk.Advance(time.Second)
	}

	clk.Advance(10 * time.Minute)
	res, err := svc.SweepOverdue(ctx)
	if err != nil {
		t.Fatalf("SweepOverdue: %v", err)
	}
	if res.Activated != 1 {
		t.Fatalf("activated=%d, want exactly 1", res.Activated)
	}

	byName := map[string]storage.Status{}
	for _, task := range res.Tasks {
		byName[task.Name] = task.Status
	}
	if byName["d1"] != storage.StatusOngoing {
		t.Fatalf("d1 status=%q, want ongoing (earliest created wins)", byName["d1"])
	}
	if byName["d2"] != storage.StatusScheduled || byName["d3"] != storage.StatusScheduled {
		t.Fatalf("d2=%q d3=%q, want both still scheduled", byName["d2"], byName["d3"])
	}
}

func TestCompletionDoesNotActivateDependents(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	base, err := svc.AddTask(ctx, "base", "30m")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if _, err := svc.ScheduleTask(ctx, "followup", "10m", base[0].ID); err != nil {
		t.Fatalf("ScheduleTask: %v", err)
	}
	if _, err := svc.CompleteTask(ctx, base[0].ID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}

	clk.Advance(31 * time.Minute)
	res, err := svc.SweepOverdue(ctx)
	if err != nil {
		t.Fatalf("SweepOverdue: %v", err)
	}
	for _, task := range res.Tasks {
		if task.Name == "followup" && task.Status != storage.StatusScheduled {
			t.Fatalf("followup status=%q, want scheduled (done never activates)", task.Status)
		}
	}
}

func TestDanglingDependencyIsIgnored(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	base, err := svc.AddTask(ctx, "base", "5m")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if _, err := svc.ScheduleTask(ctx, "orphan", "10m", base[0].ID); err != nil {
		t.Fatalf("ScheduleTask: %v", err)
	}
	if _, err := svc.RemoveTask(ctx, base[0].ID); err != nil {
		t.Fatalf("RemoveTask: %v", err)
	}

	clk.Advance(time.Hour)
	res, err := svc.SweepOverdue(ctx)
	if err != nil {
		t.Fatalf("SweepOverdue: %v", err)
	}
	if len(res.Tasks) != 1 {
		t.Fatalf("len(tasks)=%d, want 1", len(res.Tasks))
	}
	if res.Tasks[0].Status != storage.StatusScheduled {
		t.Fatalf("orphan status=%q, want scheduled (dangling ref treated as no dependency)", res.Tasks[0].Status)
	}
}

func TestRemoveAllLeavesEmptyList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddTask(ctx, "base", "5m"); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if err := svc.RemoveAllTasks(ctx); err != nil {
		t.Fatalf("RemoveAllTasks: %v", err)
	}

	tasks, ok, err := svc.store.GetList(ctx)
	if err != nil {
		t.Fatalf("GetList: %v", err)
	}
	if !ok {
		t.Fatalf("list should exist (empty), not be absent")
	}
	if len(tasks) != 0 {
		t.Fatalf("len(tasks)=%d, want 0", len(tasks))
	}
}

func TestRolloverAcceptAndDecline(t *testing.T) {
	ctx := context.Background()

	setupYesterday := func(t *testing.T) (*Service, *testClock, string, storage.Task) {
		t.Helper()
		svc, clk := newTestService(t)
		yesterdayKey := timeutil.DayKey(clk.Now().AddDate(0, 0, -1))
		stale := storage.Task{
			ID:        "stale-1",
			Name:      "unfinished",
			Status:    storage.StatusOngoing,
			DueTime:   clk.Now().Add(-20 * time.Hour),
			CreatedAt: clk.Now().Add(-22 * time.Hour),
			Interval:  "2h",
		}
		finished := storage.Task{
			ID:        "done-1",
			Name:      "wrapped up",
			Status:    storage.StatusDone,
			DueTime:   clk.Now().Add(-21 * time.Hour),
			CreatedAt: clk.Now().Add(-23 * time.Hour),
			Interval:  "1h",
		}
		if err := svc.store.SaveDay(ctx, yesterdayKey, []storage.Task{stale, finished}); err != nil {
			t.Fatalf("seed yesterday: %v", err)
		}
		return svc, clk, yesterdayKey, stale
	}

	t.Run("accept", func(t *testing.T) {
		svc, _, yesterdayKey, stale := setupYesterday(t)

		candidates, err := svc.RolloverCandidates(ctx)
		if err != nil {
			t.Fatalf("RolloverCandidates: %v", err)
		}
		if len(candidates) != 1 || candidates[0].ID != stale.ID {
			t.Fatalf("candidates=%+v, want only the ongoing task", candidates)
		}

		n, err := svc.AcceptRollover(ctx)
		if err != nil {
			t.Fatalf("AcceptRollover: %v", err)
		}
		if n != 1 {
			t.Fatalf("moved=%d, want 1", n)
		}

		today, err := svc.TaskList(ctx)
		if err != nil {
			t.Fatalf("TaskList: %v", err)
		}
		if len(today) != 1 {
			t.Fatalf("len(today)=%d, want 1", len(today))
		}
		if want := stale.DueTime.Add(24 * time.Hour); !today[0].DueTime.Equal(want) {
			t.Fatalf("dueTime=%v, want exactly 24h later (%v)", today[0].DueTime, want)
		}

		yesterday, ok, err := svc.store.LoadDay(ctx, yesterdayKey)
		if err != nil || !ok {
			t.Fatalf("load yesterday: ok=%v err=%v", ok, err)
		}
		if len(yesterday) != 2 {
			t.Fatalf("yesterday mutated on accept: len=%d, want 2", len(yesterday))
		}
	})

	t.Run("decline", func(t *testing.T) {
		svc, _, yesterdayKey, _ := setupYesterday(t)

		if err := svc.DeclineRollover(ctx); err != nil {
			t.Fatalf("DeclineRollover: %v", err)
		}
		yesterday, ok, err := svc.store.LoadDay(ctx, yesterdayKey)
		if err != nil || !ok {
			t.Fatalf("load yesterday: ok=%v err=%v", ok, err)
		}
		if len(yesterday) != 0 {
			t.Fatalf("yesterday len=%d after decline, want 0", len(yesterday))
		}
	})
}

func TestNotifierReceivesEveryMutation(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	db, err := storage.Open(ctx, filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	clk := &testClock{t: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)}
	var pushes int
	svc := NewService(
		storage.NewListRepo(db, storage.WithClock(clk.Now)),
		WithNow(clk.Now),
		WithNotifier(NotifierFunc(func([]storage.Task) { pushes++ })),
	)

	tasks, err := svc.AddTask(ctx, "base", "5m")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if _, err := svc.CompleteTask(ctx, tasks[0].ID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	clk.Advance(time.Hour)
	if _, err := svc.SweepOverdue(ctx); err != nil {
		t.Fatalf("SweepOverdue: %v", err)
	}
	if err := svc.RemoveAllTasks(ctx); err != nil {
		t.Fatalf("RemoveAllTasks: %v", err)
	}

	if pushes != 4 {
		t.Fatalf("notifier pushes=%d, want 4 (add, complete, sweep, clear)", pushes)
	}
}
