package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/11Jagan/Expense-Tracker/internal/errors"
	"github.com/11Jagan/Expense-Tracker/internal/logging"

	"github.com/labstack/echo/v4"
)

// PanicRecovery turns a panicking handler into a SYSTEM_001 response
func PanicRecovery(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logging.WithComponent(logger, logging.ComponentHTTP)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				traceID := GetTraceID(c)
				if traceID == "" {
					traceID = "unknown"
				}

				logger.Error("panic recovered",
					logging.FieldTraceID, traceID,
					"panic", fmt.Sprintf("%v", r),
					"stack_trace", string(debug.Stack()),
					logging.FieldMethod, c.Request().Method,
					logging.FieldPath, c.Request().URL.Path,
				)

				if c.Response().Committed {
					return
				}
				if sendErr := c.JSON(http.StatusInternalServerError, errors.NewErrorResponse(errors.SystemInternalError, traceID)); sendErr != nil {
					logger.Error("failed to send panic response",
						logging.FieldTraceID, traceID,
						logging.FieldError, sendErr)
				}
				err = nil
			}()

			return next(c)
		}
	}
}
