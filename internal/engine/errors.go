package engine

import "fmt"

// ValidationError indicates bad task input (empty fields, malformed or
// out-of-range due time). The message is suitable for direct display.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

// DependencyNotFoundError is returned when scheduling against a predecessor
// id that does not exist in today's list.
type DependencyNotFoundError struct {
	ID string
}

func (e DependencyNotFoundError) Error() string {
	if e.ID == "" {
		return "cannot schedule a task before any task is added"
	}
	return fmt.Sprintf("no task found to depend on: %s", e.ID)
}

// NotFoundError is returned by update/delete of an unknown task id.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string { return fmt.Sprintf("task not found: %s", e.ID) }

// PersistenceError wraps a store read/write failure. The operation it
// aborted left no partial writes behind.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e PersistenceError) Unwrap() error { return e.Err }
