package auth

import (
	"database/sql"
	"encoding/json"
	"net/http"
)

func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// tokens are stateless; the client drops its copy
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
		})
	}
}

func DeleteAccountHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		tx, err := dbx.BeginTx(r.Context(), nil)
		if err != nil {
			http.Error(w, "db begin failed", http.StatusInternalServerError)
			return
		}
		defer func() { _ = tx.Rollback() }()

		for _, stmt := range []string{
			`DELETE FROM focus_suggestions WHERE user_id = $1`,
			`DELETE FROM focus_tasks WHERE user_id = $1`,
			`DELETE FROM analytics_events WHERE user_id = $1`,
		} {
			if _, err := tx.ExecContext(r.Context(), stmt, uid); err != nil {
				http.Error(w, "delete account data failed", http.StatusInternalServerError)
				return
			}
		}

		if _, err := tx.ExecContext(r.Context(), `DELETE FROM users WHERE id = $1`, uid); err != nil {
			http.Error(w, "delete user failed", http.StatusInternalServerError)
			return
		}

		if err := tx.Commit(); err != nil {
			http.Error(w, "db commit failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
		})
	}
}
