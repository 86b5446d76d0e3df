package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/paulr25/bp-tracker/internal/config"
	"github.com/paulr25/bp-tracker/internal/handlers"
	"github.com/paulr25/bp-tracker/internal/middleware"
	"github.com/paulr25/bp-tracker/internal/repo"
	"github.com/paulr25/bp-tracker/internal/trend"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter builds the full HTTP surface: public auth routes, JWT-protected
// reading and graph routes, and operational endpoints.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(db)
	readingRepo := repo.NewReadingRepo(db)

	useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	authHandler := &handlers.AuthHandler{
		UserRepo:  userRepo,
		Secret:    []byte(cfg.JWTSecret),
		TokenTTL:  time.Duration(cfg.JWTExpireHours) * time.Hour,
		SecureTLS: useTLS,
	}
	readingHandler := &handlers.ReadingHandler{Repo: readingRepo}
	graphHandler := &handlers.GraphHandler{Builder: trend.NewBuilder(readingRepo)}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(useTLS))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	// Operational endpoints
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			handlers.JSONError(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public auth routes, rate-limited per IP
	authLimiter := middleware.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTMiddleware([]byte(cfg.JWTSecret)))
		r.Get("/logout", authHandler.Logout)
		r.Get("/api/readings", readingHandler.ListReadings)
		r.Post("/api/readings", readingHandler.CreateReading)
		r.Delete("/api/readings/{id}", readingHandler.DeleteReading)
		r.Get("/api/graph", graphHandler.GetGraph)
	})

	return r
}
