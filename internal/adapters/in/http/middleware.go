package http

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// RequestID stamps every request with an identifier. A client-supplied
// X-Request-ID is kept so callers can correlate across services, otherwise a
// fresh UUID is generated. The identifier is echoed on the response and
// attached to the request-scoped logger.
func RequestID(logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			requestID := ctx.Request().Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			ctx.Response().Header().Set(requestIDHeader, requestID)

			requestLogger := logger.With("request_id", requestID)
			start := time.Now()

			err := next(ctx)

			requestLogger.Info("request handled",
				"method", ctx.Request().Method,
				"path", ctx.Request().URL.Path,
				"status", ctx.Response().Status,
				"duration", time.Since(start))

			return err
		}
	}
}
