// Package httpapi is the HTTP adapter over the hunt engine. It owns
// routing, request decoding and status mapping; every game decision is
// delegated to the engine so nothing answer-bearing ever passes through
// a handler.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Kavithma17/Treasure-Hunt/internal/game"
	"github.com/Kavithma17/Treasure-Hunt/internal/logging"
	"github.com/Kavithma17/Treasure-Hunt/pkg/ports"
)

// Config wires the server's dependencies.
type Config struct {
	Engine      *game.Engine
	Catalog     ports.Catalog
	Players     ports.PlayerStore
	Leaderboard ports.Leaderboard
	Sessions    ports.SessionStore

	// AdminToken guards the admin routes. When empty every admin request
	// is refused, never silently allowed.
	AdminToken string

	// AllowedOrigins is the CORS allow-list. Empty means same-origin
	// clients only.
	AllowedOrigins []string

	Logger   *slog.Logger
	Registry *prometheus.Registry
	Clock    ports.Clock
}

// Server carries the handler state; see NewHandler.
type Server struct {
	engine      *game.Engine
	catalog     ports.Catalog
	players     ports.PlayerStore
	leaderboard ports.Leaderboard
	sessions    ports.SessionStore
	adminToken  string
	logger      *slog.Logger
	metrics     *Metrics
	clock       ports.Clock
}

// NewHandler builds the route tree.
func NewHandler(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &Server{
		engine:      cfg.Engine,
		catalog:     cfg.Catalog,
		players:     cfg.Players,
		leaderboard: cfg.Leaderboard,
		sessions:    cfg.Sessions,
		adminToken:  cfg.AdminToken,
		logger:      logger,
		metrics:     NewMetrics(registry),
		clock:       clock,
	}

	r := chi.NewRouter()
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Route("/game", func(r chi.Router) {
			r.Post("/start", s.handleStart)
			r.Post("/question/{index}", s.handleQuestion)
			r.Post("/verify", s.handleVerify)
			r.Post("/alternate/{challengeID}", s.handleAlternate)
			r.Post("/resume", s.handleResume)
			r.Post("/answer", s.handleLegacyAnswer)
		})

		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		r.Route("/leaderboard", func(r chi.Router) {
			r.Post("/submit", s.handleSubmitScore)
			r.Get("/", s.handleLeaderboard)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/stages", s.handleListStages)
			r.Post("/stages", s.handleSaveStage)
			r.Delete("/stages/{code}", s.handleDeleteStage)
			r.Get("/challenges", s.handleListChallenges)
			r.Post("/challenges", s.handleSaveChallenge)
			r.Delete("/challenges/{code}", s.handleDeleteChallenge)
		})

		r.Get("/health", s.handleHealth)
	})

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})

	return r
}

// requireAdmin gates the catalog CRUD behind a shared token. An
// unconfigured token refuses everything rather than opening up.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken == "" {
			writeError(w, http.StatusInternalServerError, "Admin token not configured on server")
			return
		}
		if r.Header.Get("X-Admin-Token") != s.adminToken {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(allowed []string) func(http.Handler) http.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		allowedSet[origin] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				if _, ok := allowedSet[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Admin-Token")
				}
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	active, err := s.sessions.Count(r.Context())
	if err != nil {
		s.logger.Error("health: session count failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":             true,
		"time":           s.clock.Now(),
		"activeSessions": active,
	})
}
