package engine

import (
	"context"
	"sort"
	"time"

	"github.com/z0m0dan/taskr/internal/storage"
	"github.com/z0m0dan/taskr/internal/timeutil"
)

// SweepResult summarizes one overdue sweep pass.
type SweepResult struct {
	Tasks         []storage.Task
	MarkedOverdue int
	Activated     int
}

// SweepOverdue runs one synchronous pass over today's list: every ongoing
// task whose due time has elapsed flips to overdue, and for each such task
// exactly one of its dependents activates. Display times are refreshed for
// the whole list and the list is persisted once.
//
// Running the sweep twice without elapsed time changes nothing the second
// time: freshly activated dependents get a due time strictly in the future.
func (s *Service) SweepOverdue(ctx context.Context) (*SweepResult, error) {
	now := s.now()
	key := timeutil.DayKey(now)

	tasks, ok, err := s.store.LoadDay(ctx, key)
	if err != nil {
		return nil, PersistenceError{Op: "load task list", Err: err}
	}
	if !ok {
		return &SweepResult{Tasks: []storage.Task{}}, nil
	}

	res := &SweepResult{}
	for i := range tasks {
		if tasks[i].Status != storage.StatusOngoing {
			continue
		}
		if tasks[i].DueTime.After(now) {
			continue
		}
		tasks[i].Status = storage.StatusOverdue
		res.MarkedOverdue++
		if activateDependent(tasks, tasks[i].ID, now) {
			res.Activated++
		}
	}

	for i := range tasks {
		tasks[i].DisplayTime = displayTime(tasks[i], now)
	}

	if err := s.store.SaveDay(ctx, key, tasks); err != nil {
		return nil, PersistenceError{Op: "save task list", Err: err}
	}

	res.Tasks = tasks
	s.notify(tasks)
	return res, nil
}

// activateDependent resolves the dependency chain for a predecessor that
// just overdued. Among the predecessor's dependents still waiting (scheduled,
// or overdue for the re-activation edge), only the earliest-created one
// activates, so chains drain FIFO instead of fanning out. A dependent whose
// due time was never resolved gets it computed now, relative to sweep time.
func activateDependent(tasks []storage.Task, predecessorID string, now time.Time) bool {
	winner := -1
	for i := range tasks {
		t := &tasks[i]
		if t.DependsOn == nil || t.DependsOn.ID != predecessorID {
			continue
		}
		if t.Status != storage.StatusScheduled && t.Status != storage.StatusOverdue {
			continue
		}
		if winner == -1 || t.CreatedAt.Before(tasks[winner].CreatedAt) {
			winner = i
		}
	}
	if winner == -1 {
		return false
	}

	t := &tasks[winner]
	t.Status = storage.StatusOngoing
	if t.DueTime.IsZero() {
		if d, err := timeutil.ParseInterval(t.Interval); err == nil {
			t.DueTime = now.Add(d)
		}
	}
	return true
}

// SortByCreation orders tasks oldest first, the canonical presentation
// order. CreatedAt ties break on id for stability.
func SortByCreation(tasks []storage.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})
}
