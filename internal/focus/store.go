package focus

import "context"

// Store keeps the per-user current task and first-step suggestion.
//
// SetCurrentTask and ClearCurrentTask drop any stored suggestion in the same
// atomic step. SetSuggestion only succeeds while s.ForTask is still the
// user's current task, and returns ErrStaleTask otherwise.
type Store interface {
	CurrentTask(ctx context.Context, userID int) (Task, bool, error)
	SetCurrentTask(ctx context.Context, userID int, task Task) error
	ClearCurrentTask(ctx context.Context, userID int) error
	Suggestion(ctx context.Context, userID int) (Suggestion, bool, error)
	SetSuggestion(ctx context.Context, userID int, s Suggestion) error
}
