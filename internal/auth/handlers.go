package auth

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"reup-focus-backend/internal/logger"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func decodeCredentials(r *http.Request) (credentials, bool) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return credentials{}, false
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	return body, body.Email != "" && body.Password != ""
}

func RegisterHandler(dbx *sql.DB, secret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := decodeCredentials(r)
		if !ok {
			http.Error(w, "email & password required", http.StatusBadRequest)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "password rejected", http.StatusBadRequest)
			return
		}

		var id int
		err = dbx.QueryRowContext(r.Context(), `
			INSERT INTO users (email, password)
			VALUES ($1, $2)
			ON CONFLICT (email) DO NOTHING
			RETURNING id
		`, body.Email, string(hash)).Scan(&id)
		if err == sql.ErrNoRows {
			http.Error(w, "email already exists", http.StatusConflict)
			return
		}
		if err != nil {
			logger.FromContext(r.Context()).Error("register failed", "error", err)
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}

		writeToken(w, r, secret, id)
	}
}

func LoginHandler(dbx *sql.DB, secret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := decodeCredentials(r)
		if !ok {
			http.Error(w, "invalid login", http.StatusUnauthorized)
			return
		}

		var (
			id   int
			hash string
		)
		err := dbx.QueryRowContext(r.Context(), `
			SELECT id, password FROM users WHERE email=$1
		`, body.Email).Scan(&id, &hash)
		if err != nil {
			http.Error(w, "invalid login", http.StatusUnauthorized)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(body.Password)) != nil {
			http.Error(w, "invalid login", http.StatusUnauthorized)
			return
		}

		writeToken(w, r, secret, id)
	}
}

func MeHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var email string
		if err := dbx.QueryRowContext(r.Context(), "SELECT email FROM users WHERE id=$1", uid).Scan(&email); err != nil {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user_id": uid,
			"email":   email,
		})
	}
}

func writeToken(w http.ResponseWriter, r *http.Request, secret []byte, userID int) {
	token, err := GenerateToken(secret, userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("sign token failed", "error", err)
		http.Error(w, "token error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"user_id": userID,
		"token":   token,
	})
}
