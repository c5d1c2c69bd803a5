package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"reup-focus-backend/internal/logger"
)

// Event names.
const (
	EventFocusTaskSet       = "focus_task_set"
	EventFocusTaskCleared   = "focus_task_cleared"
	EventFocusTaskShown     = "focus_task_shown"
	EventFirstStepGenerated = "first_step_generated"
	EventFirstStepRejected  = "first_step_rejected"
	EventFirstStepShown     = "first_step_shown"
)

type ctxKey string

const ctxUserIDKey ctxKey = "analytics_user_id"

// Envelope is what we store with every event.
type Envelope struct {
	UserID       int
	SessionID    string
	Platform     string
	AppVersion   string
	DeviceLocale string
}

// FromRequest extracts event envelope fields from request.
// Backend-trustable fields only.
func FromRequest(r *http.Request) Envelope {
	platform := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Platform")))
	switch platform {
	case "ios", "android", "web":
	default:
		platform = "unknown"
	}

	locale := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if locale == "" {
		locale = strings.TrimSpace(r.Header.Get("X-Device-Locale"))
	}

	return Envelope{
		SessionID:    strings.TrimSpace(r.Header.Get("X-Session-Id")),
		Platform:     platform,
		AppVersion:   strings.TrimSpace(r.Header.Get("X-App-Version")),
		DeviceLocale: locale,
	}
}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, ctxUserIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	uid, ok := ctx.Value(ctxUserIDKey).(int)
	return uid, ok
}

// SourceEventKeyFromRequest returns the client idempotency key, if any.
// Duplicate keys are ignored on insert.
func SourceEventKeyFromRequest(r *http.Request) string {
	if k := strings.TrimSpace(r.Header.Get("Idempotency-Key")); k != "" {
		return k
	}
	return strings.TrimSpace(r.Header.Get("X-Source-Event-Key"))
}

// Recorder writes events to analytics_events, or to the log when there is
// no database.
type Recorder struct {
	DB  *sql.DB
	now func() time.Time
}

func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{DB: db, now: func() time.Time { return time.Now().UTC() }}
}

// Log records one event. It never fails the caller's flow: storage errors
// are logged and swallowed. Callers pass sanitized props, never raw text.
func (rec *Recorder) Log(ctx context.Context, env Envelope, eventName string, props any, sourceEventKey string) {
	if rec == nil || eventName == "" {
		return
	}
	if env.UserID == 0 {
		uid, ok := UserIDFromContext(ctx)
		if !ok {
			return
		}
		env.UserID = uid
	}
	log := logger.FromContext(ctx)

	b, err := json.Marshal(props)
	if err != nil {
		log.Warn("analytics props not serializable", "event", eventName, "error", err)
		return
	}

	if rec.DB == nil {
		log.Debug("analytics event", "event", eventName, "user_id", env.UserID, "props", string(b))
		return
	}

	_, err = rec.DB.ExecContext(ctx, `
		INSERT INTO analytics_events (
			event_name, event_time,
			user_id, session_id,
			platform, app_version, device_locale,
			source_event_key,
			properties
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb)
		ON CONFLICT (source_event_key) DO NOTHING
	`, eventName, rec.now(),
		env.UserID, nullIfEmpty(env.SessionID),
		env.Platform, env.AppVersion, nullIfEmpty(env.DeviceLocale),
		nullIfEmpty(sourceEventKey),
		string(b),
	)
	if err != nil {
		log.Warn("analytics insert failed", "event", eventName, "error", err)
	}
}

func nullIfEmpty(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
