package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/z0m0dan/taskr/internal/storage"
	"github.com/z0m0dan/taskr/internal/timeutil"
)

// AddTask validates the input, creates an ongoing task due after the given
// interval and persists it. Returns the updated list.
func (s *Service) AddTask(ctx context.Context, title, interval string) ([]storage.Task, error) {
	if err := s.validateInput(title, interval); err != nil {
		return nil, err
	}
	d, err := timeutil.ParseInterval(interval)
	if err != nil {
		return nil, ValidationError{Reason: err.Error()}
	}

	now := s.now()
	task := storage.Task{
		ID:          uuid.NewString(),
		Name:        title,
		Status:      storage.StatusOngoing,
		DueTime:     now.Add(d),
		CreatedAt:   now,
		Interval:    interval,
		DisplayTime: timeutil.Countdown(now.Add(d), now),
	}

	if err := s.store.Add(ctx, task); err != nil {
		return nil, PersistenceError{Op: "add task", Err: err}
	}
	return s.changedList(ctx)
}

// ScheduleTask creates a task gated on an existing predecessor. The new
// task starts scheduled with its due time unresolved; the due time is
// derived from the interval when the predecessor overdues and the dependent
// activates, since the interval is relative to activation, not creation.
func (s *Service) ScheduleTask(ctx context.Context, title, interval, dependsOnID string) ([]storage.Task, error) {
	if err := s.validateInput(title, interval); err != nil {
		return nil, err
	}

	tasks, ok, err := s.store.GetList(ctx)
	if err != nil {
		return nil, PersistenceError{Op: "load task list", Err: err}
	}
	if !ok {
		return nil, DependencyNotFoundError{}
	}

	var target *storage.Task
	for i := range tasks {
		if tasks[i].ID == dependsOnID {
			target = &tasks[i]
			break
		}
	}
	if target == nil {
		return nil, DependencyNotFoundError{ID: dependsOnID}
	}

	task := storage.Task{
		ID:          uuid.NewString(),
		Name:        title,
		Status:      storage.StatusScheduled,
		CreatedAt:   s.now(),
		Interval:    interval,
		DisplayTime: timeutil.Readable(interval),
		DependsOn:   &storage.TaskRef{ID: target.ID, Name: target.Name},
	}

	if err := s.store.Add(ctx, task); err != nil {
		return nil, PersistenceError{Op: "schedule task", Err: err}
	}
	return s.changedList(ctx)
}

// changedList reloads today's list after a mutation and pushes it to the
// notifier.
func (s *Service) changedList(ctx context.Context) ([]storage.Task, error) {
	tasks, err := s.TaskList(ctx)
	if err != nil {
		return nil, err
	}
	s.notify(tasks)
	return tasks, nil
}
