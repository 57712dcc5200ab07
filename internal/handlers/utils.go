package handlers

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getUserIDFromContext reads the caller set by the auth middleware
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return uuid.UUID{}, ErrUnauthorized
	}
	return userID, nil
}

// parseID parses the :id path parameter
func parseID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// bindQuery binds query parameters whatever the request method
func bindQuery(c echo.Context, dst interface{}) error {
	return (&echo.DefaultBinder{}).BindQueryParams(c, dst)
}

// getIntParam reads an integer query parameter. ok is false when the value
// is present but not a number.
func getIntParam(c echo.Context, name string, defaultValue int) (value int, ok bool) {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue, true
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return 0, false
	}
	return value, true
}
