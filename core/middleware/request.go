package middleware

import (
	"net/http"
	"restaurant-directory/core/constants"
	"restaurant-directory/core/controller"
	"restaurant-directory/core/errors"
	"restaurant-directory/core/logger"
	"restaurant-directory/core/utils"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RequestID propagates X-Request-ID or generates a nanoid.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(constants.HeaderRequestID)
			if id == "" {
				id = utils.GenerateRequestID()
			}
			c.Set(constants.ContextRequestID, id)
			c.Response().Header().Set(constants.HeaderRequestID, id)
			return next(c)
		}
	}
}

func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			args := []any{
				"request_id", c.Get(constants.ContextRequestID),
				"method", req.Method,
				"uri", req.RequestURI,
				"status", status,
				"latency_ms", time.Since(start).Milliseconds(),
				"remote_ip", c.RealIP(),
			}
			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("HTTP:Request", args...)
			case status >= http.StatusBadRequest:
				logger.Warn("HTTP:Request", args...)
			default:
				logger.Info("HTTP:Request", args...)
			}
			return nil
		}
	}
}

// RateLimiter limits requests per client IP with an in-memory token bucket.
func RateLimiter(perSecond float64, burst int) echo.MiddlewareFunc {
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return controller.NewErrorResponse(http.StatusForbidden, errors.ErrForbidden, "cannot identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return controller.NewErrorResponse(http.StatusTooManyRequests, errors.ErrTooManyRequests, "too many requests")
		},
	})
}
