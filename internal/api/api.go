package api

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sunbonsys/backend/internal/auth"
	"github.com/sunbonsys/backend/internal/config"
	"github.com/sunbonsys/backend/internal/database"
	"github.com/sunbonsys/backend/internal/storage"
	"github.com/sunbonsys/backend/internal/store"
)

type Api struct {
	Config config.Config
	Router *chi.Mux

	db       *sql.DB
	store    *store.Store
	tokens   *auth.TokenManager
	throttle *auth.Throttle
	archive  *storage.ArchiveClient
}

func NewApi(cfg config.Config) (*Api, error) {
	db, err := database.Open(&cfg)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenLifetime)
	if err != nil {
		db.Close()
		return nil, err
	}

	api := &Api{
		Config:   cfg,
		Router:   chi.NewRouter(),
		db:       db,
		store:    store.New(db, cfg.Database.Type),
		tokens:   tokens,
		throttle: auth.NewThrottle(cfg.Auth.LoginWindow, cfg.Auth.LoginMaxAttempts),
	}

	if cfg.Archive.Enabled {
		archive, err := storage.NewArchiveClient(
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.Bucket,
			cfg.Archive.AccessKeyID,
			cfg.Archive.SecretAccessKey,
		)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure export archive: %w", err)
		}
		api.archive = archive
	}

	api.setupRoutes()
	return api, nil
}

func (api *Api) setupRoutes() {
	r := api.Router

	// The marketing site posts the contact form and visit pings cross-origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   api.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Get("/", api.Root)
	r.Get("/heartbeat", api.Heartbeat)

	// Public routes
	r.Post("/auth/login", api.LoginHandler)
	r.Post("/submit", api.SubmitContactHandler)
	r.Post("/visit", api.RecordVisitHandler)
	r.Get("/visits", api.ListVisitsHandler)

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(api.RequireAdmin)
		r.Get("/contacts", api.ListContactsHandler)
		r.Get("/export", api.ExportContactsHandler)
	})
}

// Serve starts the HTTP server. It blocks until the listener fails.
func (api *Api) Serve() error {
	// Drop elapsed throttle windows so the attempt map does not grow
	// unbounded with client addresses.
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			api.throttle.Prune()
		}
	}()

	log.Printf("Starting API server on 0.0.0.0:%d", api.Config.APIPort)
	return http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", api.Config.APIPort), api.Router)
}

// Close releases the database handle. Call at shutdown.
func (api *Api) Close() error {
	return api.db.Close()
}

func (api *Api) Root(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Sunbonsys backend API is running"))
}

func (api *Api) Heartbeat(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
