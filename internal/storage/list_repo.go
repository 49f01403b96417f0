package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/z0m0dan/taskr/internal/timeutil"
)

// ListRepo persists one task list per calendar day. Task-level operations
// implicitly target today's list, with "today" resolved from the clock at
// call time; every mutation is a whole-list read-mutate-write.
type ListRepo struct {
	db  *sql.DB
	now func() time.Time
}

type ListRepoOption func(*ListRepo)

// WithClock overrides the clock used to resolve today's day key. Tests use
// this to pin or advance the current day.
func WithClock(now func() time.Time) ListRepoOption {
	return func(r *ListRepo) { r.now = now }
}

func NewListRepo(db *sql.DB, opts ...ListRepoOption) *ListRepo {
	r := &ListRepo{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ListRepo) todayKey() string {
	return timeutil.DayKey(r.now())
}

// LoadDay reads the full list stored under key. ok is false when no entry
// exists for the key.
func (r *ListRepo) LoadDay(ctx context.Context, key string) (tasks []Task, ok bool, err error) {
	row := r.db.QueryRowContext(ctx, `SELECT tasks FROM task_lists WHERE day_key = ?`, key)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("task list scan: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, false, fmt.Errorf("task list decode: %w", err)
	}
	return tasks, true, nil
}

// SaveDay overwrites the full list stored under key. An empty (non-nil)
// list is a valid value distinct from an absent entry.
func (r *ListRepo) SaveDay(ctx context.Context, key string, tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("task list encode: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO task_lists (day_key, tasks, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(day_key) DO UPDATE SET tasks = excluded.tasks, updated_at = excluded.updated_at
	`, key, string(raw))
	if err != nil {
		return fmt.Errorf("task list save: %w", err)
	}
	return nil
}

// GetList returns today's tasks, optionally filtered by status. The filter
// is read-only; stored state is never touched. ok is false when no list
// exists for today.
func (r *ListRepo) GetList(ctx context.Context, filter ...Status) ([]Task, bool, error) {
	tasks, ok, err := r.LoadDay(ctx, r.todayKey())
	if err != nil || !ok {
		return nil, ok, err
	}
	if len(filter) == 0 {
		return tasks, true, nil
	}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		for _, st := range filter {
			if t.Status == st {
				out = append(out, t)
				break
			}
		}
	}
	return out, true, nil
}

// Add appends a task to today's list, creating the list if absent.
func (r *ListRepo) Add(ctx context.Context, task Task) error {
	key := r.todayKey()
	tasks, _, err := r.LoadDay(ctx, key)
	if err != nil {
		return err
	}
	return r.SaveDay(ctx, key, append(tasks, task))
}

// Remove filters the task with the given id out of today's list. Returns
// false only when no list exists for today; removing an id that is not
// present is a no-op, not an error.
func (r *ListRepo) Remove(ctx context.Context, id string) (bool, error) {
	key := r.todayKey()
	tasks, ok, err := r.LoadDay(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if err := r.SaveDay(ctx, key, kept); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateStatus mutates the status of the task with the given id in place.
// Returns false when the list or the id is missing.
func (r *ListRepo) UpdateStatus(ctx context.Context, id string, status Status) (bool, error) {
	key := r.todayKey()
	tasks, ok, err := r.LoadDay(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	found := false
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}
	if err := r.SaveDay(ctx, key, tasks); err != nil {
		return false, err
	}
	return true, nil
}

// Replace overwrites today's list wholesale.
func (r *ListRepo) Replace(ctx context.Context, tasks []Task) error {
	return r.SaveDay(ctx, r.todayKey(), tasks)
}

// RemoveAll resets today's list to empty. A later GetList returns an empty
// list, not an absent one.
func (r *ListRepo) RemoveAll(ctx context.Context) error {
	return r.SaveDay(ctx, r.todayKey(), []Task{})
}
