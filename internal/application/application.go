package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/coffishop-settings/internal/api"
	"github.com/eugenenazirov/coffishop-settings/internal/config"
	"github.com/eugenenazirov/coffishop-settings/internal/identity"
	"github.com/eugenenazirov/coffishop-settings/internal/settings"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	settings settings.Settings
	logger   *zap.Logger
	server   *http.Server
}

// New loads the settings for cfg.Environment and wires the HTTP server around
// them. Settings errors are wrapped and still match settings.ErrConfiguration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	s, err := settings.Load(cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	metrics := api.NewMetrics()
	apiRouter := api.NewRouter(api.NewHandler(s, identity.New(s)), logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithMetrics(metrics),
	)

	logger.Info("settings loaded",
		zap.String("environment", s.Environment().String()),
		zap.Bool("production", s.IsProduction()),
		zap.String("api_base_url", s.APIBaseURL()),
		zap.String("auth_domain", s.AuthDomain()),
	)

	return &App{
		settings: s,
		logger:   logger,
		server:   NewServer(cfg, BuildRootHandler(apiRouter, metrics.Handler())),
	}, nil
}

// BuildRootHandler mounts the API under /api/ and the Prometheus exposition at /metrics.
func BuildRootHandler(apiHandler, metricsHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("GET /metrics", metricsHandler)
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Settings returns the settings the application was started with.
func (a *App) Settings() settings.Settings {
	return a.settings
}
