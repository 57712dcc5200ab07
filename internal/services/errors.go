package services

import (
	"errors"

	"github.com/11Jagan/Expense-Tracker/internal/aggregation"
)

// Errors shared by the record, budget and report services. Handlers map
// them to API error codes with errors.Is.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrForbidden     = errors.New("resource belongs to another user")
	ErrInvalidAmount = errors.New("amount must be zero or positive")
	ErrInvalidPeriod = errors.New("year and month are required")
	ErrInvalidDate   = errors.New("dates must use the YYYY-MM-DD format")
	ErrInvalidSort   = errors.New("unsupported sort field")
	ErrInvalidMonths = errors.New("months must be between 1 and 24")
	ErrInvalidRange  = aggregation.ErrInvalidRange
	ErrNotAvailable  = errors.New("operation is only available in development")
)
