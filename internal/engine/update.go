package engine

import (
	"context"

	"github.com/z0m0dan/taskr/internal/storage"
)

// CompleteTask marks the task done. Completion does not activate dependents;
// dependents activate only when their predecessor overdues.
func (s *Service) CompleteTask(ctx context.Context, id string) ([]storage.Task, error) {
	return s.setStatus(ctx, id, storage.StatusDone)
}

func (s *Service) setStatus(ctx context.Context, id string, status storage.Status) ([]storage.Task, error) {
	ok, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, PersistenceError{Op: "update task", Err: err}
	}
	if !ok {
		return nil, NotFoundError{ID: id}
	}
	return s.changedList(ctx)
}

// RemoveTask deletes the task by id. dependsOn references held by other
// tasks are left dangling on purpose; every consumer treats a reference to
// a missing id as "no dependency".
func (s *Service) RemoveTask(ctx context.Context, id string) ([]storage.Task, error) {
	ok, err := s.store.Remove(ctx, id)
	if err != nil {
		return nil, PersistenceError{Op: "remove task", Err: err}
	}
	if !ok {
		return nil, NotFoundError{ID: id}
	}
	return s.changedList(ctx)
}

// RemoveAllTasks empties today's list.
func (s *Service) RemoveAllTasks(ctx context.Context) error {
	if err := s.store.RemoveAll(ctx); err != nil {
		return PersistenceError{Op: "clear tasks", Err: err}
	}
	s.notify([]storage.Task{})
	return nil
}
