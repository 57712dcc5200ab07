package middleware

import (
	"log/slog"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/logging"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestLogger writes one access log line per request. Server errors log
// at error level and client errors at warn.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logging.WithComponent(logger, logging.ComponentHTTP)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler write the response so the status is final
				c.Error(err)
			}

			status := c.Response().Status
			attrs := []any{
				logging.FieldTraceID, GetTraceID(c),
				logging.FieldMethod, c.Request().Method,
				logging.FieldPath, c.Request().URL.Path,
				logging.FieldStatus, status,
				logging.FieldDuration, time.Since(start).Milliseconds(),
				logging.FieldClientIP, c.RealIP(),
			}
			if userID, ok := c.Get(ContextUserID).(uuid.UUID); ok {
				attrs = append(attrs, logging.FieldUserID, userID.String())
			}

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}
			logger.Log(c.Request().Context(), level, "request", attrs...)

			return nil
		}
	}
}
