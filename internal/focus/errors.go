package focus

import (
	"errors"
	"fmt"
)

var (
	ErrNoCurrentTask = errors.New("no current task")
	ErrTaskMismatch  = errors.New("task mismatch")
	ErrEmptyTask     = errors.New("task description is empty")

	// ErrStaleTask is returned by Store.SetSuggestion when the current task
	// changed after the suggestion was requested.
	ErrStaleTask = errors.New("current task changed")
)

// PreconditionError wraps ErrNoCurrentTask or ErrTaskMismatch.
type PreconditionError struct {
	UserID int
	Err    error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("first step for user %d: %v", e.UserID, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// ModelInvocationError wraps a failed model call.
type ModelInvocationError struct {
	Err error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation failed: %v", e.Err)
}

func (e *ModelInvocationError) Unwrap() error { return e.Err }

// TimeoutError is a model call that ran out of time.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("model invocation timed out: %v", e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }
