package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/starkrivals/starkrivals/internal/api/handler"
	"github.com/starkrivals/starkrivals/internal/api/middleware"
	"github.com/starkrivals/starkrivals/internal/api/sse"
	"github.com/starkrivals/starkrivals/internal/services/dealer"
	"github.com/starkrivals/starkrivals/internal/services/engine"
	"github.com/starkrivals/starkrivals/internal/services/identity"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	IdentityService  *identity.Service
	DealerService    *dealer.Service
	EngineController engine.ControllerInterface
	HubManager       *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.IdentityService)
	handHandler := handler.NewHandHandler(cfg.DealerService)
	sessionHandler := handler.NewSessionHandler(cfg.EngineController, cfg.HubManager)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.IdentityService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Hand routes (all require auth)
	hand := api.PathPrefix("/hand").Subrouter()
	hand.Use(authMiddleware)
	hand.HandleFunc("", handHandler.Deal).Methods(http.MethodPost)
	hand.HandleFunc("", handHandler.Get).Methods(http.MethodGet)

	// Session routes (all require auth)
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.Use(authMiddleware)
	sessions.HandleFunc("", sessionHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/join", sessionHandler.Join).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/attacks", sessionHandler.Attack).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/events", sessionHandler.Events).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/stream", sessionHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
