package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/arcdefender/arc-defender/internal/logging"
	"github.com/arcdefender/arc-defender/internal/middleware"
	"github.com/arcdefender/arc-defender/internal/service"
	"github.com/arcdefender/arc-defender/internal/telemetry"
)

// RouterConfig carries the services and options the API is built from.
type RouterConfig struct {
	Auth      *service.AuthService
	Dashboard *service.DashboardService
	Threats   *service.ThreatService
	Analytics *service.AnalyticsService
	Store     Pinger

	CORSOrigins    []string
	MaxBodyBytes   int64
	MetricsEnabled bool
	Logger         *zap.Logger
}

// NewRouter wires the middleware stack and mounts every route group.
func NewRouter(cfg RouterConfig) chi.Router {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	// --- Infrastructure middleware ---
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	if cfg.MetricsEnabled {
		r.Use(telemetry.Middleware)
	}

	// --- Security middleware ---
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig()))
	if cfg.MaxBodyBytes > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxBodyBytes))
	}
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	healthH := NewHealthHandler(cfg.Store)
	r.Get("/", healthH.Root)
	r.Get("/health", healthH.Check)
	if cfg.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", telemetry.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", NewAuthHandler(cfg.Auth, logger).Routes())
		r.Mount("/dashboard", NewDashboardHandler(cfg.Dashboard, logger).Routes())
		r.Mount("/threats", NewThreatHandler(cfg.Threats, logger).Routes())
		r.Mount("/analytics", NewAnalyticsHandler(cfg.Analytics, logger).Routes())
	})

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)
	return r
}
