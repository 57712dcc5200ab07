package errors

import "net/http"

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials     ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
	AuthAccountLocked          ErrorCode = "AUTH_006"
	AuthEmailAlreadyRegistered ErrorCode = "AUTH_007"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidEmail  ErrorCode = "VALIDATION_005"
	ValidationInvalidDate   ErrorCode = "VALIDATION_006"
	ValidationInvalidID     ErrorCode = "VALIDATION_007"
	ValidationInvalidSort   ErrorCode = "VALIDATION_008"
)

// Expense error codes (EXPENSE_*)
const (
	ExpenseNotFound      ErrorCode = "EXPENSE_001"
	ExpenseAccessDenied  ErrorCode = "EXPENSE_002"
	ExpenseInvalidAmount ErrorCode = "EXPENSE_003"
	ExpenseInvalidData   ErrorCode = "EXPENSE_004"
)

// Income error codes (INCOME_*)
const (
	IncomeNotFound      ErrorCode = "INCOME_001"
	IncomeAccessDenied  ErrorCode = "INCOME_002"
	IncomeInvalidAmount ErrorCode = "INCOME_003"
	IncomeInvalidData   ErrorCode = "INCOME_004"
)

// Budget error codes (BUDGET_*)
const (
	BudgetNotFound      ErrorCode = "BUDGET_001"
	BudgetAccessDenied  ErrorCode = "BUDGET_002"
	BudgetInvalidPeriod ErrorCode = "BUDGET_003"
	BudgetInvalidAmount ErrorCode = "BUDGET_004"
)

// Report error codes (REPORT_*)
const (
	ReportInvalidPeriod ErrorCode = "REPORT_001"
	ReportInvalidRange  ErrorCode = "REPORT_002"
	ReportInvalidMonths ErrorCode = "REPORT_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
	SystemNotFound           ErrorCode = "SYSTEM_007"
	SystemDevelopmentOnly    ErrorCode = "SYSTEM_008"
)

type codeInfo struct {
	status  int
	message string
}

// catalogue holds the HTTP status and default message of every code
var catalogue = map[ErrorCode]codeInfo{
	AuthInvalidCredentials:     {http.StatusUnauthorized, "Invalid email or password"},
	AuthMissingToken:           {http.StatusUnauthorized, "Authorization token is required"},
	AuthExpiredToken:           {http.StatusUnauthorized, "Authorization token has expired"},
	AuthInvalidTokenFormat:     {http.StatusUnauthorized, "Invalid authorization token format"},
	AuthInsufficientPermission: {http.StatusForbidden, "Insufficient permissions to access this resource"},
	AuthAccountLocked:          {http.StatusForbidden, "Account is locked after too many failed login attempts"},
	AuthEmailAlreadyRegistered: {http.StatusConflict, "An account with this email already exists"},

	ValidationGeneral:       {http.StatusBadRequest, "Validation failed"},
	ValidationRequiredField: {http.StatusBadRequest, "Required field is missing"},
	ValidationInvalidFormat: {http.StatusBadRequest, "Invalid field format"},
	ValidationOutOfRange:    {http.StatusBadRequest, "Field value is out of allowed range"},
	ValidationInvalidEmail:  {http.StatusBadRequest, "Invalid email address format"},
	ValidationInvalidDate:   {http.StatusBadRequest, "Invalid date format or range"},
	ValidationInvalidID:     {http.StatusBadRequest, "Invalid identifier format"},
	ValidationInvalidSort:   {http.StatusBadRequest, "Invalid sort field"},

	ExpenseNotFound:      {http.StatusNotFound, "Expense not found"},
	ExpenseAccessDenied:  {http.StatusForbidden, "You do not have access to this expense"},
	ExpenseInvalidAmount: {http.StatusBadRequest, "Expense amount must be zero or greater"},
	ExpenseInvalidData:   {http.StatusBadRequest, "Invalid expense data"},

	IncomeNotFound:      {http.StatusNotFound, "Income not found"},
	IncomeAccessDenied:  {http.StatusForbidden, "You do not have access to this income"},
	IncomeInvalidAmount: {http.StatusBadRequest, "Income amount must be zero or greater"},
	IncomeInvalidData:   {http.StatusBadRequest, "Invalid income data"},

	BudgetNotFound:      {http.StatusNotFound, "Budget not found"},
	BudgetAccessDenied:  {http.StatusForbidden, "You do not have access to this budget"},
	BudgetInvalidPeriod: {http.StatusBadRequest, "Budget month must be between 1 and 12"},
	BudgetInvalidAmount: {http.StatusBadRequest, "Budget amount must be zero or greater"},

	ReportInvalidPeriod: {http.StatusBadRequest, "Period must be weekly, monthly or yearly"},
	ReportInvalidRange:  {http.StatusBadRequest, "Start date must not be after end date"},
	ReportInvalidMonths: {http.StatusBadRequest, "Months must be between 1 and 24"},

	SystemInternalError:      {http.StatusInternalServerError, "An unexpected error occurred. Please contact support with trace ID"},
	SystemDatabaseError:      {http.StatusInternalServerError, "Database connection error"},
	SystemServiceUnavailable: {http.StatusServiceUnavailable, "Service temporarily unavailable"},
	SystemConfigurationError: {http.StatusInternalServerError, "System configuration error"},
	SystemUnexpectedError:    {http.StatusInternalServerError, "An unexpected error occurred"},
	SystemRateLimitExceeded:  {http.StatusTooManyRequests, "Rate limit exceeded. Please try again later"},
	SystemNotFound:           {http.StatusNotFound, "Resource not found"},
	SystemDevelopmentOnly:    {http.StatusForbidden, "This endpoint is only available in development"},
}

// GetErrorMessage returns the default message for a code
func GetErrorMessage(code ErrorCode) string {
	if info, ok := catalogue[code]; ok {
		return info.message
	}
	return "An error occurred"
}

// GetHTTPStatus returns the status a code is answered with. Unknown codes
// are server errors.
func GetHTTPStatus(code ErrorCode) int {
	if info, ok := catalogue[code]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

func IsValidErrorCode(code ErrorCode) bool {
	_, ok := catalogue[code]
	return ok
}
