package focus

import (
	"net/http"

	"reup-focus-backend/internal/analytics"
	"reup-focus-backend/internal/auth"
)

// Register mounts the focus API on mux behind the auth middleware.
func Register(mux *http.ServeMux, mw auth.Middleware, svc *Service, rec *analytics.Recorder) {
	getTask := GetTaskHandler(svc)
	setTask := SetTaskHandler(svc, rec)
	clearTask := ClearTaskHandler(svc, rec)
	mux.HandleFunc("/focus/task", mw.Wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			getTask(w, r)
		case http.MethodPut, http.MethodPost:
			setTask(w, r)
		case http.MethodDelete:
			clearTask(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	getStep := GetFirstStepHandler(svc)
	generateStep := GenerateFirstStepHandler(svc, rec)
	mux.HandleFunc("/focus/first-step", mw.Wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			getStep(w, r)
		case http.MethodPost:
			generateStep(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))
}
