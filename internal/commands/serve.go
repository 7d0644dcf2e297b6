package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/core/services"
	"github.com/SscSPs/coop_savings_app/internal/handlers"
	"github.com/SscSPs/coop_savings_app/internal/middleware"
	"github.com/SscSPs/coop_savings_app/internal/platform/config"
	"github.com/SscSPs/coop_savings_app/internal/platform/metrics"
	"github.com/SscSPs/coop_savings_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/coop_savings_app/internal/utils"
	"github.com/SscSPs/coop_savings_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 20 * time.Second

func newServeCommand() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, migrateFirst)
		},
	}

	cmd.Flags().BoolVar(&migrateFirst, "migrate", true, "apply pending migrations before serving")

	return cmd
}

func runServe(ctx context.Context, migrateFirst bool) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}

	if migrateFirst {
		if err := database.MigrateUp(cfg.DatabaseURL, logger); err != nil {
			return fmt.Errorf("applying migrations: %w", err)
		}
	}

	dbPool, err := openPool(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool, logger)

	m := metrics.New()
	dispatcher := services.NewSideEffectDispatcher(cfg.SideEffectConcurrency, cfg.SideEffectTimeout, m)
	repos := pgsql.NewRepositoryProvider(dbPool, m, cfg.TxMaxRetries)
	container := services.NewServiceContainer(repos,
		services.WithMetrics(m),
		services.WithSideEffects(dispatcher),
	)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	router, err := newRouter(cfg, logger, m)
	if err != nil {
		return err
	}
	handlers.RegisterRoutes(router, cfg, container, m, posthogClient, rateLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("cooperative_id", cfg.CooperativeID))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	// Receipts and notifications dispatched by in-flight requests.
	dispatcher.Wait()
	logger.Info("Server stopped")
	return nil
}

func newRouter(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.MetricsMiddleware(m),
		cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendBaseURL},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-api-key"},
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("setting trusted proxies: %w", err)
	}
	r.NoRoute(handlers.NoRoute)
	return r, nil
}
