package handlers

import (
	stderrors "errors"

	"github.com/11Jagan/Expense-Tracker/internal/errors"
	"github.com/11Jagan/Expense-Tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// resourceCodes names the error codes a resource answers with
type resourceCodes struct {
	notFound      errors.ErrorCode
	forbidden     errors.ErrorCode
	invalidAmount errors.ErrorCode
	invalidPeriod errors.ErrorCode
}

var (
	expenseCodes = resourceCodes{
		notFound:      errors.ExpenseNotFound,
		forbidden:     errors.ExpenseAccessDenied,
		invalidAmount: errors.ExpenseInvalidAmount,
		invalidPeriod: errors.ReportInvalidPeriod,
	}
	incomeCodes = resourceCodes{
		notFound:      errors.IncomeNotFound,
		forbidden:     errors.IncomeAccessDenied,
		invalidAmount: errors.IncomeInvalidAmount,
		invalidPeriod: errors.ReportInvalidPeriod,
	}
	budgetCodes = resourceCodes{
		notFound:      errors.BudgetNotFound,
		forbidden:     errors.BudgetAccessDenied,
		invalidAmount: errors.BudgetInvalidAmount,
		invalidPeriod: errors.BudgetInvalidPeriod,
	}
	reportCodes = resourceCodes{
		notFound:      errors.SystemNotFound,
		forbidden:     errors.AuthInsufficientPermission,
		invalidAmount: errors.ValidationOutOfRange,
		invalidPeriod: errors.ReportInvalidPeriod,
	}
)

// sendServiceError maps a service error to its API error. Unknown errors
// become SYSTEM_001.
func sendServiceError(c echo.Context, err error, codes resourceCodes) error {
	switch {
	case stderrors.Is(err, services.ErrNotFound):
		return SendError(c, codes.notFound)
	case stderrors.Is(err, services.ErrForbidden):
		return SendError(c, codes.forbidden)
	case stderrors.Is(err, services.ErrInvalidAmount):
		return SendError(c, codes.invalidAmount, errors.WithDetails(err.Error()))
	case stderrors.Is(err, services.ErrInvalidPeriod):
		return SendError(c, codes.invalidPeriod, errors.WithDetails(err.Error()))
	case stderrors.Is(err, services.ErrInvalidDate):
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails(err.Error()))
	case stderrors.Is(err, services.ErrInvalidSort):
		return SendError(c, errors.ValidationInvalidSort, errors.WithDetails(err.Error()))
	case stderrors.Is(err, services.ErrInvalidRange):
		return SendError(c, errors.ReportInvalidRange, errors.WithDetails(err.Error()))
	case stderrors.Is(err, services.ErrInvalidMonths):
		return SendError(c, errors.ReportInvalidMonths, errors.WithDetails(err.Error()))
	case stderrors.Is(err, services.ErrInvalidDemoParameters):
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
	case stderrors.Is(err, services.ErrNotAvailable):
		return SendError(c, errors.SystemDevelopmentOnly)
	default:
		return SendSystemError(c, err)
	}
}
