package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/postika/console/config"
	httpx "github.com/postika/console/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Auth:            cfg.Services.Auth,
		Tenants:         cfg.Services.Tenants,
		Invitations:     cfg.Services.Invitations,
		CookieDomain:    appCfg.HTTP.CookieDomain,
		PendingEmailTTL: appCfg.Session.PendingEmailTTL,
		RateLimit: httpx.RateLimitOptions{
			Enabled:  appCfg.RateLimit.Enabled,
			Requests: appCfg.RateLimit.Requests,
			Window:   appCfg.RateLimit.Window,
			Logger:   logger,
		},
		Metrics:    cfg.Services.Metrics,
		ReadyCheck: redisReadyCheck(cfg.Services),
		IsDev:      appCfg.IsDev,
		Logger:     logger,
	})

	return startServer(logger, handler, appCfg.HTTP.Addr)
}

// redisReadyCheck pings the session store's Redis so /readyz fails before
// requests start hitting an unreachable store.
func redisReadyCheck(services *ServiceContainer) httpx.ReadyCheck {
	if services == nil || services.Redis == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return services.Redis.Ping(ctx).Err()
	}
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// WaitForShutdown blocks until SIGINT/SIGTERM, then drains the HTTP server.
func WaitForShutdown(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		if logger != nil {
			logger.Info("shutdown signal received", "signal", sig.String())
		}
	case <-ctx.Done():
	}

	return ShutdownHTTPServer(ctx, server, logger)
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}

	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}

	return nil
}
