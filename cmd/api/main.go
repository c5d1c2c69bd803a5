package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"reup-focus-backend/internal/ai"
	"reup-focus-backend/internal/analytics"
	"reup-focus-backend/internal/auth"
	"reup-focus-backend/internal/config"
	"reup-focus-backend/internal/db"
	"reup-focus-backend/internal/focus"
	"reup-focus-backend/internal/logger"
)

func main() {
	cfg := config.Load()

	logger.Init(&logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		Output:     os.Stderr,
		JSON:       cfg.LogJSON,
		TimeFormat: "15:04:05",
	})
	log := logger.GetDefault()

	if err := cfg.Validate(); err != nil {
		log.Error("config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, database, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer cleanup()
	log.Info("store ready", "backend", cfg.StoreBackend)

	model := ai.New(cfg.OpenAIKey, cfg.OpenAIModel,
		ai.WithBaseURL(cfg.OpenAIBaseURL),
		ai.WithTimeout(cfg.OpenAITimeout),
	)
	svc := focus.NewService(store, model, nil)
	svc.ModelTimeout = cfg.OpenAITimeout

	secret := []byte(cfg.JWTSecret)
	mw := auth.New(secret)
	rec := analytics.NewRecorder(database)

	mux := http.NewServeMux()

	// Health endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// ----- AUTH API (needs users table) -----
	if database != nil {
		mux.HandleFunc("/auth/register", methodOnly(http.MethodPost, auth.RegisterHandler(database, secret)))
		mux.HandleFunc("/auth/login", methodOnly(http.MethodPost, auth.LoginHandler(database, secret)))
		mux.HandleFunc("/auth/me", methodOnly(http.MethodGet, mw.Wrap(auth.MeHandler(database))))
		mux.HandleFunc("/auth/logout", methodOnly(http.MethodPost, mw.Wrap(auth.LogoutHandler())))
		mux.HandleFunc("/auth/account", methodOnly(http.MethodDelete, mw.Wrap(auth.DeleteAccountHandler(database))))
	}

	// ----- FOCUS API -----
	focus.Register(mux, mw, svc, rec)

	// ----- ANALYTICS -----
	mux.HandleFunc("/analytics/focus-task-shown", methodOnly(http.MethodPost, mw.Wrap(analytics.FocusTaskShownHandler(rec))))
	mux.HandleFunc("/analytics/first-step-shown", methodOnly(http.MethodPost, mw.Wrap(analytics.FirstStepShownHandler(rec))))

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type", "Authorization",
			"X-Platform", "X-App-Version", "X-Session-Id", "X-Device-Locale",
			"Idempotency-Key", "X-Source-Event-Key",
		},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           c.Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown", "error", err)
		}
	}()

	log.Info("API server is running", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// openStore builds the configured focus store. The returned *sql.DB is nil
// unless the backend is postgres.
func openStore(ctx context.Context, cfg *config.Config) (focus.Store, *sql.DB, func(), error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		database, err := db.Connect(ctx, cfg.ConnString())
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.Migrate(ctx, database); err != nil {
			_ = database.Close()
			return nil, nil, nil, err
		}
		return focus.NewPostgresStore(database), database, func() { _ = database.Close() }, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, nil, err
		}
		return focus.NewRedisStore(client), nil, func() { _ = client.Close() }, nil

	default:
		return focus.NewMemoryStore(), nil, func() {}, nil
	}
}

func methodOnly(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
