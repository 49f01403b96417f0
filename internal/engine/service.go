// Package engine implements the task lifecycle state machine:
// scheduled → ongoing → {done | overdue}, with overdue → ongoing as the
// re-activation edge driven by dependency resolution. done is terminal.
package engine

import (
	"context"
	"time"

	"github.com/z0m0dan/taskr/internal/storage"
	"github.com/z0m0dan/taskr/internal/timeutil"
)

// Store is the persistence collaborator. All task-level operations target
// today's list, resolved at call time; LoadDay/SaveDay address explicit keys
// for the sweep and rollover paths.
type Store interface {
	GetList(ctx context.Context, filter ...storage.Status) ([]storage.Task, bool, error)
	Add(ctx context.Context, task storage.Task) error
	Remove(ctx context.Context, id string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status storage.Status) (bool, error)
	Replace(ctx context.Context, tasks []storage.Task) error
	RemoveAll(ctx context.Context) error
	LoadDay(ctx context.Context, key string) ([]storage.Task, bool, error)
	SaveDay(ctx context.Context, key string, tasks []storage.Task) error
}

// Notifier receives the fresh list after every mutating operation and after
// every sweep. The presentation layer re-renders from it.
type Notifier interface {
	TaskListChanged(tasks []storage.Task)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(tasks []storage.Task)

func (f NotifierFunc) TaskListChanged(tasks []storage.Task) { f(tasks) }

type Service struct {
	store      Store
	notifier   Notifier
	now        func() time.Time
	maxHours   int
	minuteStep int
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithNow overrides the engine clock.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMaxHours caps the hour count accepted in due-time input.
func WithMaxHours(h int) Option {
	return func(s *Service) {
		if h > 0 {
			s.maxHours = h
		}
	}
}

// WithMinuteStep requires minute counts to be multiples of step. Step 1
// disables the check.
func WithMinuteStep(step int) Option {
	return func(s *Service) {
		if step > 0 {
			s.minuteStep = step
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:      store,
		now:        time.Now,
		maxHours:   24,
		minuteStep: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) notify(tasks []storage.Task) {
	if s.notifier != nil {
		s.notifier.TaskListChanged(tasks)
	}
}

// TaskList returns today's tasks, optionally filtered by status, with
// display times recomputed against the current clock. Reads never persist.
func (s *Service) TaskList(ctx context.Context, filter ...storage.Status) ([]storage.Task, error) {
	tasks, ok, err := s.store.GetList(ctx, filter...)
	if err != nil {
		return nil, PersistenceError{Op: "load task list", Err: err}
	}
	if !ok {
		return []storage.Task{}, nil
	}
	now := s.now()
	for i := range tasks {
		tasks[i].DisplayTime = displayTime(tasks[i], now)
	}
	return tasks, nil
}

// displayTime derives the human countdown string for a task. A task whose
// due time is still unresolved (scheduled, waiting on its predecessor) shows
// its interval in words instead of a countdown against the zero time.
func displayTime(t storage.Task, now time.Time) string {
	if t.DueTime.IsZero() {
		return timeutil.Readable(t.Interval)
	}
	return timeutil.Countdown(t.DueTime, now)
}
