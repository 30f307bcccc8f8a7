package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"restaurant-directory/core/config"
	"restaurant-directory/core/logger"
	"restaurant-directory/core/metrics"
	"restaurant-directory/core/middleware"
	"restaurant-directory/modules/auth"
	"restaurant-directory/modules/restaurant"
	"syscall"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Run starts the HTTP API and blocks until SIGINT or SIGTERM.
func Run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	infra, err := Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer infra.Close()

	if err := infra.DB.Migrate(ctx); err != nil {
		return err
	}

	e := NewEcho(cfg, infra)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server:Start", "address", cfg.ServerAddress(), "env", cfg.App.Env)
		if err := e.Start(cfg.ServerAddress()); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Server:Shutdown", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// NewEcho builds the router with the global middleware stack and every
// module mounted.
func NewEcho(cfg *config.Config, infra *Infra) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	metrics.Register()

	e.Use(middleware.RequestID())
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(metrics.Middleware())

	e.GET("/health", HealthHandler(map[string]Pinger{
		"database": &infra.DB,
		"redis":    infra.Redis,
	}))
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	limiter := middleware.RateLimiter(cfg.RateLimit.AuthPerSecond, cfg.RateLimit.AuthBurst)
	mw := auth.Init(e, &infra.DB, infra.Redis, limiter)
	restaurant.Init(e, infra.RestaurantDependencies(), mw)

	return e
}
