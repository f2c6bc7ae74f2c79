// AngelaMos | 2026
// serve.go

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/carterperez-dev/asset-management/internal/asset"
	"github.com/carterperez-dev/asset-management/internal/auth"
	"github.com/carterperez-dev/asset-management/internal/core"
	"github.com/carterperez-dev/asset-management/internal/employee"
	"github.com/carterperez-dev/asset-management/internal/events"
	"github.com/carterperez-dev/asset-management/internal/health"
	"github.com/carterperez-dev/asset-management/internal/metrics"
	"github.com/carterperez-dev/asset-management/internal/middleware"
	"github.com/carterperez-dev/asset-management/internal/migrations"
	"github.com/carterperez-dev/asset-management/internal/payment"
	"github.com/carterperez-dev/asset-management/internal/request"
	"github.com/carterperez-dev/asset-management/internal/server"
	"github.com/carterperez-dev/asset-management/internal/team"
)

const (
	drainDelay        = 5 * time.Second
	sessionPruneEvery = 6 * time.Hour
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

//nolint:funlen // bootstrap code is inherently verbose
func serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	in, err := openInfra(ctx)
	if err != nil {
		return err
	}
	defer in.Close()

	cfg, logger := in.cfg, in.logger

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	if cfg.Migrations.AutoMigrate {
		if err := migrations.Up(in.db.DB.DB, cfg.Migrations.Path); err != nil {
			return err
		}
		logger.Info("migrations applied", "path", cfg.Migrations.Path)
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.KeyID(),
	)

	identity, err := auth.NewOIDCVerifier(ctx, cfg.Identity)
	if err != nil {
		return err
	}
	logger.Info("identity provider keys registered",
		"jwks_url", cfg.Identity.JWKSURL,
		"issuer", cfg.Identity.Issuer,
	)

	m := metrics.New()
	m.RegisterPools(in.db.Stats, in.redis.PoolStats)

	publisher := events.WithObserver(in.publisher, m.Event)
	svc := newServices(in, publisher)

	authSvc := auth.NewService(
		auth.NewRepository(in.db.DB),
		jwtManager,
		identity,
		in.redis.Client,
		svc.employees,
		logger,
	)

	deps := []health.Dependency{
		{Name: "postgres", Checker: in.db},
		{Name: "redis", Checker: in.redis},
	}
	if checker, ok := in.publisher.(health.Checker); ok && cfg.Broker.Enabled {
		deps = append(deps, health.Dependency{Name: "broker", Checker: checker, Optional: true})
	}
	healthHandler := health.NewHandler(deps...)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(m.Middleware)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(in.redis.Client, middleware.Policy{
			Name: "global",
			Limit: middleware.Window(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
			Skip:     isProbe,
			Observe:  m.RateLimited,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	router.Handle("/metrics", m.Handler())
	router.Get("/.well-known/jwks.json", jwtManager.JWKSHandler())

	authenticator := middleware.Authenticator(authSvc)
	hrOnly := middleware.RequireRole(svc.employees, employee.RoleHR)
	employeeOnly := middleware.RequireRole(svc.employees, employee.RoleEmployee)
	tokenLimiter := middleware.NewRateLimiter(in.redis.Client, middleware.Policy{
		Name:     "jwt",
		Limit:    middleware.PerMinute(10, 5),
		FailOpen: true,
		Observe:  m.RateLimited,
	}).Handler

	router.Route("/v1", func(r chi.Router) {
		auth.NewHandler(authSvc).RegisterRoutes(r, authenticator, tokenLimiter)
		employee.NewHandler(svc.employees).RegisterRoutes(r, authenticator, hrOnly)
		team.NewHandler(svc.teams).RegisterRoutes(r, authenticator, hrOnly)
		asset.NewHandler(svc.assets).RegisterRoutes(r, authenticator, hrOnly)
		request.NewHandler(svc.requests).RegisterRoutes(r, authenticator, hrOnly, employeeOnly)
		payment.NewHandler(svc.payments).RegisterRoutes(r, authenticator, hrOnly)
	})

	go pruneSessions(ctx, authSvc, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()
	healthHandler.SetReady(true)

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := identity.Shutdown(shutdownCtx); err != nil {
		logger.Error("jwks cache shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	logger.Info("application stopped")
	return nil
}

type sessionPruner interface {
	PruneSessions(ctx context.Context) (int64, error)
}

func pruneSessions(ctx context.Context, p sessionPruner, logger *slog.Logger) {
	ticker := time.NewTicker(sessionPruneEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PruneSessions(ctx)
			if err != nil {
				logger.Warn("session prune failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("expired sessions pruned", "count", n)
			}
		}
	}
}

func isProbe(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/livez", "/readyz", "/metrics":
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/.well-known/")
}
