package engine

import (
	"context"
	"time"

	"github.com/z0m0dan/taskr/internal/storage"
	"github.com/z0m0dan/taskr/internal/timeutil"
)

// RolloverCandidates returns yesterday's tasks still ongoing. Run once at
// startup so the caller can offer to carry them into today.
func (s *Service) RolloverCandidates(ctx context.Context) ([]storage.Task, error) {
	key := timeutil.DayKey(s.now().AddDate(0, 0, -1))
	tasks, ok, err := s.store.LoadDay(ctx, key)
	if err != nil {
		return nil, PersistenceError{Op: "load yesterday's tasks", Err: err}
	}
	if !ok {
		return nil, nil
	}
	var out []storage.Task
	for _, t := range tasks {
		if t.Status == storage.StatusOngoing {
			out = append(out, t)
		}
	}
	return out, nil
}

// AcceptRollover appends copies of yesterday's ongoing tasks to today's
// list, each due exactly 24 hours after its stored due time. Yesterday's
// entry is left untouched; only copies move forward. Returns the number of
// tasks carried over.
func (s *Service) AcceptRollover(ctx context.Context) (int, error) {
	candidates, err := s.RolloverCandidates(ctx)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	now := s.now()
	todayKey := timeutil.DayKey(now)
	today, _, err := s.store.LoadDay(ctx, todayKey)
	if err != nil {
		return 0, PersistenceError{Op: "load task list", Err: err}
	}

	for _, t := range candidates {
		t.DueTime = t.DueTime.Add(24 * time.Hour)
		t.DisplayTime = displayTime(t, now)
		today = append(today, t)
	}
	if err := s.store.SaveDay(ctx, todayKey, today); err != nil {
		return 0, PersistenceError{Op: "save task list", Err: err}
	}
	s.notify(today)
	return len(candidates), nil
}

// DeclineRollover clears yesterday's list. This is the only path that
// mutates a previous day's entry.
func (s *Service) DeclineRollover(ctx context.Context) error {
	key := timeutil.DayKey(s.now().AddDate(0, 0, -1))
	if err := s.store.SaveDay(ctx, key, []storage.Task{}); err != nil {
		return PersistenceError{Op: "clear yesterday's tasks", Err: err}
	}
	return nil
}
