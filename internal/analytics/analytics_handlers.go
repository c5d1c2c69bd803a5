package analytics

import (
	"encoding/json"
	"net/http"
)

// FocusTaskShownHandler records that the focus screen displayed the current task
func FocusTaskShownHandler(rec *Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			TaskID string `json:"task_id"`
			Source string `json:"source"` // initial/refresh/return/unknown
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		env := FromRequest(r)
		env.UserID = uid

		props := map[string]any{
			"task_id": body.TaskID,
			"source":  sourceOrUnknown(body.Source),
		}
		rec.Log(r.Context(), env, EventFocusTaskShown, props, SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

// FirstStepShownHandler records that the client rendered the suggested first step
func FirstStepShownHandler(rec *Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			TaskID   string `json:"task_id"`
			Accepted *bool  `json:"accepted"` // user tapped "start" on it
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		env := FromRequest(r)
		env.UserID = uid

		props := map[string]any{
			"task_id":  body.TaskID,
			"accepted": body.Accepted,
		}
		rec.Log(r.Context(), env, EventFirstStepShown, props, SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func sourceOrUnknown(s string) string {
	switch s {
	case "initial", "refresh", "return":
		return s
	default:
		return "unknown"
	}
}
