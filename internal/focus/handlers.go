package focus

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"reup-focus-backend/internal/analytics"
	"reup-focus-backend/internal/auth"
	"reup-focus-backend/internal/logger"
	"reup-focus-backend/internal/suggestion"
)

// Error kinds reported in JSON error bodies.
const (
	KindPrecondition    = "precondition"
	KindModelInvocation = "model_invocation"
	KindTimeout         = "timeout"
	KindExtraction      = "extraction"
	KindValidation      = "validation"
	KindStaleTask       = "stale_task"
	KindInternal        = "internal"
)

type errorBody struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Validator string `json:"validator,omitempty"`
	Text      string `json:"text,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Raw       string `json:"raw,omitempty"`
}

// classify maps a service error to its HTTP status and body.
func classify(err error) (int, errorBody) {
	body := errorBody{Message: err.Error()}

	var (
		pre     *PreconditionError
		timeout *TimeoutError
		model   *ModelInvocationError
		extract *suggestion.ExtractionError
		valid   *suggestion.ValidationError
	)
	switch {
	case errors.As(err, &pre):
		body.Kind = KindPrecondition
		body.Reason = pre.Err.Error()
		return http.StatusConflict, body
	case errors.As(err, &timeout):
		body.Kind = KindTimeout
		return http.StatusGatewayTimeout, body
	case errors.As(err, &model):
		body.Kind = KindModelInvocation
		return http.StatusBadGateway, body
	case errors.As(err, &extract):
		body.Kind = KindExtraction
		body.Reason = extract.Reason
		body.Raw = extract.Raw
		return http.StatusUnprocessableEntity, body
	case errors.As(err, &valid):
		body.Kind = KindValidation
		body.Validator = valid.Validator
		body.Text = valid.Text
		return http.StatusUnprocessableEntity, body
	case errors.Is(err, ErrStaleTask):
		body.Kind = KindStaleTask
		return http.StatusConflict, body
	default:
		body.Kind = KindInternal
		body.Message = "internal error"
		return http.StatusInternalServerError, body
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("focus request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func GetTaskHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		task, found, err := svc.CurrentTask(r.Context(), uid)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if !found {
			http.Error(w, "no current task", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, task)
	}
}

func SetTaskHandler(svc *Service, rec *analytics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		task, err := svc.SetCurrentTask(r.Context(), uid, body.Description)
		if errors.Is(err, ErrEmptyTask) {
			http.Error(w, "description is required", http.StatusBadRequest)
			return
		}
		if err != nil {
			writeError(w, r, err)
			return
		}

		// analytics: focus_task_set (no raw text)
		{
			env := analytics.FromRequest(r)
			env.UserID = uid
			props := map[string]any{
				"task_id":  task.ID,
				"text_len": len(task.Description),
			}
			rec.Log(r.Context(), env, analytics.EventFocusTaskSet, props, analytics.SourceEventKeyFromRequest(r))
		}

		writeJSON(w, http.StatusOK, task)
	}
}

func ClearTaskHandler(svc *Service, rec *analytics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.ClearCurrentTask(r.Context(), uid); err != nil {
			writeError(w, r, err)
			return
		}

		env := analytics.FromRequest(r)
		env.UserID = uid
		rec.Log(r.Context(), env, analytics.EventFocusTaskCleared, map[string]any{}, analytics.SourceEventKeyFromRequest(r))

		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

func GenerateFirstStepHandler(svc *Service, rec *analytics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			TaskID      string `json:"task_id"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		task := Task{
			ID:          strings.TrimSpace(body.TaskID),
			Description: strings.TrimSpace(body.Description),
		}
		if task.ID == "" && task.Description == "" {
			http.Error(w, "task_id or description required", http.StatusBadRequest)
			return
		}

		env := analytics.FromRequest(r)
		env.UserID = uid

		sug, err := svc.GenerateFirstStep(r.Context(), uid, task)
		if err != nil {
			status, eb := classify(err)
			// analytics: first_step_rejected (kind + validator only)
			rec.Log(r.Context(), env, analytics.EventFirstStepRejected, map[string]any{
				"task_id":   task.ID,
				"kind":      eb.Kind,
				"validator": eb.Validator,
				"reason":    eb.Reason,
			}, analytics.SourceEventKeyFromRequest(r))

			if status == http.StatusInternalServerError {
				writeError(w, r, err)
				return
			}
			writeJSON(w, status, eb)
			return
		}

		rec.Log(r.Context(), env, analytics.EventFirstStepGenerated, map[string]any{
			"task_id":  sug.ForTask.ID,
			"text_len": len(sug.Text),
		}, analytics.SourceEventKeyFromRequest(r))

		writeJSON(w, http.StatusOK, sug)
	}
}

func GetFirstStepHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sug, found, err := svc.Suggestion(r.Context(), uid)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if !found {
			http.Error(w, "no first step", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, sug)
	}
}
