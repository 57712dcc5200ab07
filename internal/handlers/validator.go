package handlers

import (
	"github.com/11Jagan/Expense-Tracker/internal/validation"

	"github.com/labstack/echo/v4"
)

// CustomValidator adapts the shared validator to echo.Validator
type CustomValidator struct {
	validator *validation.Validator
}

// NewValidator returns the echo validator with the expense, income and
// budget rules registered
func NewValidator() echo.Validator {
	return &CustomValidator{validator: validation.GetValidator()}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
