// Package focus tracks each user's current task and the AI first step
// suggested for it.
package focus

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"reup-focus-backend/internal/ai"
	"reup-focus-backend/internal/logger"
	"reup-focus-backend/internal/suggestion"
)

// Model is the text-generation boundary.
type Model interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	store    Store
	model    Model
	pipeline *suggestion.Pipeline

	// ModelTimeout bounds the model call when > 0.
	ModelTimeout time.Duration

	now   func() time.Time
	newID func() string
}

func NewService(store Store, model Model, pipeline *suggestion.Pipeline) *Service {
	if pipeline == nil {
		pipeline = suggestion.Default()
	}
	return &Service{
		store:    store,
		model:    model,
		pipeline: pipeline,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// SetCurrentTask makes description the user's current task and drops any
// suggestion made for the previous one.
func (s *Service) SetCurrentTask(ctx context.Context, userID int, description string) (Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, ErrEmptyTask
	}
	task := Task{
		ID:          s.newID(),
		Description: description,
		SetAt:       s.now(),
	}
	if err := s.store.SetCurrentTask(ctx, userID, task); err != nil {
		return Task{}, err
	}
	logger.FromContext(ctx).Debug("focus task set", "user_id", userID, "task_id", task.ID)
	return task, nil
}

func (s *Service) ClearCurrentTask(ctx context.Context, userID int) error {
	return s.store.ClearCurrentTask(ctx, userID)
}

func (s *Service) CurrentTask(ctx context.Context, userID int) (Task, bool, error) {
	return s.store.CurrentTask(ctx, userID)
}

func (s *Service) Suggestion(ctx context.Context, userID int) (Suggestion, bool, error) {
	return s.store.Suggestion(ctx, userID)
}

// GenerateFirstStep asks the model for a first step for task, which must be
// the user's current task. Nothing is stored unless extraction and every
// validator succeed. Concurrent calls for one user are last-write-wins; a
// result for a task that stopped being current is dropped with ErrStaleTask.
func (s *Service) GenerateFirstStep(ctx context.Context, userID int, task Task) (Suggestion, error) {
	log := logger.FromContext(ctx).With("user_id", userID)

	current, ok, err := s.store.CurrentTask(ctx, userID)
	if err != nil {
		return Suggestion{}, err
	}
	if !ok {
		return Suggestion{}, &PreconditionError{UserID: userID, Err: ErrNoCurrentTask}
	}
	if !current.Same(task) {
		return Suggestion{}, &PreconditionError{UserID: userID, Err: ErrTaskMismatch}
	}

	raw, err := s.invoke(ctx, ai.BuildFirstStepPrompt(current.Description))
	if err != nil {
		log.Warn("first step model call failed", "task_id", current.ID, "error", err)
		return Suggestion{}, err
	}

	text, err := s.pipeline.Accept(raw)
	if err != nil {
		var vErr *suggestion.ValidationError
		var eErr *suggestion.ExtractionError
		switch {
		case errors.As(err, &vErr):
			log.Warn("first step rejected", "task_id", current.ID, "validator", vErr.Validator, "text", vErr.Text)
		case errors.As(err, &eErr):
			log.Warn("first step unparseable", "task_id", current.ID, "reason", eErr.Reason, "raw", eErr.Raw)
		}
		return Suggestion{}, err
	}

	sug := Suggestion{ForTask: current, Text: text, CreatedAt: s.now()}
	if err := s.store.SetSuggestion(ctx, userID, sug); err != nil {
		return Suggestion{}, err
	}
	log.Info("first step accepted", "task_id", current.ID)
	return sug, nil
}

func (s *Service) invoke(ctx context.Context, prompt string) (string, error) {
	if s.ModelTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.ModelTimeout)
		defer cancel()
	}

	raw, err := s.model.Invoke(ctx, prompt)
	if err == nil {
		return raw, nil
	}
	if isTimeout(err) {
		return "", &TimeoutError{Err: err}
	}
	return "", &ModelInvocationError{Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
