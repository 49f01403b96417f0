package storage

import "time"

// Status is the lifecycle state of a task.
// done is terminal; overdue can re-enter ongoing through dependency
// activation; scheduled becomes ongoing when its predecessor resolves.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusDone      Status = "done"
	StatusOverdue   Status = "overdue"
	StatusScheduled Status = "scheduled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusDone, StatusOverdue, StatusScheduled:
		return true
	default:
		return false
	}
}

// TaskRef is a weak reference to another task. The referenced task may be
// deleted at any time; consumers must treat a dangling id as "no dependency".
type TaskRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task is one reminder. A day's tasks are persisted together as a single
// list keyed by the day; ids are unique within a list.
type Task struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	DueTime   time.Time `json:"due_time"` // zero until the task is ongoing
	CreatedAt time.Time `json:"created_at"`
	Interval  string    `json:"interval"` // original relative string, e.g. "15m"
	// DisplayTime is a derived countdown/elapsed string, refreshed on every
	// sweep and read. Never authoritative.
	DisplayTime string   `json:"display_time,omitempty"`
	DependsOn   *TaskRef `json:"depends_on,omitempty"`
}
