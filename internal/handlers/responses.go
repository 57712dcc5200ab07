package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/11Jagan/Expense-Tracker/internal/errors"
	"github.com/11Jagan/Expense-Tracker/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handlers answer client errors with SendError and internal failures with
// SendSystemError, which hides the cause from the caller.

const (
	// TraceIDContextKey matches the key the request id middleware sets
	TraceIDContextKey = "trace_id"
)

// SuccessResponse wraps every successful payload
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	errorResponse := errors.NewErrorResponse(code, getTraceID(c), opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError answers with a generic SYSTEM_001
func SendSystemError(c echo.Context, err error) error {
	errorResponse, _ := errors.WrapSystemError(err, getTraceID(c))
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// sendValidationError lists every failed field when err comes from the
// validator
func sendValidationError(c echo.Context, err error) error {
	var validationErrs validator.ValidationErrors
	if stderrors.As(err, &validationErrs) {
		return c.JSON(http.StatusBadRequest, errors.NewValidationError(validation.FieldErrors(validationErrs), getTraceID(c)))
	}
	return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
}

// sendQueryError answers a failed query validation with the code mapped to
// the first offending parameter, falling back to a plain validation error
func sendQueryError(c echo.Context, err error, codes map[string]errors.ErrorCode) error {
	var validationErrs validator.ValidationErrors
	if stderrors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			if code, ok := codes[fe.Field()]; ok {
				return SendError(c, code, errors.WithDetails(fe.Field()+": "+validation.FormatFieldError(fe)))
			}
		}
	}
	return sendValidationError(c, err)
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, SuccessResponse{Data: data})
}
