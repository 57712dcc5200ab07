package handlers

import (
	"net/http"

	"github.com/11Jagan/Expense-Tracker/internal/dto"
	"github.com/11Jagan/Expense-Tracker/internal/errors"
	"github.com/11Jagan/Expense-Tracker/internal/models"
	"github.com/11Jagan/Expense-Tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// ExpenseHandler serves /api/v1/expenses
type ExpenseHandler struct {
	expenseService services.ExpenseServiceInterface
	summaryService services.SummaryServiceInterface
}

func NewExpenseHandler(expenseService services.ExpenseServiceInterface, summaryService services.SummaryServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		summaryService: summaryService,
	}
}

// Create handles POST /expenses
func (h *ExpenseHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ExpenseInvalidData, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return sendValidationError(c, err)
	}

	expense, err := h.expenseService.Create(c.Request().Context(), userID, &req)
	if err != nil {
		return sendServiceError(c, err, expenseCodes)
	}

	return respond(c, http.StatusCreated, dto.NewExpenseResponse(expense))
}

// List handles GET /expenses with year/month or startDate/endDate, category,
// sort, page and limit
func (h *ExpenseHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.RecordQuery
	if err := bindQuery(c, &query); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid query parameters"))
	}
	query.Key = c.QueryParam("category")
	if query.Key != "" && !models.IsValidExpenseCategory(query.Key) {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("category: unknown category"))
	}
	if err := c.Validate(&query); err != nil {
		return sendValidationError(c, err)
	}

	page, err := h.expenseService.List(c.Request().Context(), userID, &query)
	if err != nil {
		return sendServiceError(c, err, expenseCodes)
	}

	return respond(c, http.StatusOK, page)
}

// Get handles GET /expenses/:id
func (h *ExpenseHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}
	expenseID, err := parseID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID)
	}

	expense, err := h.expenseService.Get(c.Request().Context(), userID, expenseID)
	if err != nil {
		return sendServiceError(c, err, expenseCodes)
	}

	return respond(c, http.StatusOK, dto.NewExpenseResponse(expense))
}

// Update handles PUT /expenses/:id
func (h *ExpenseHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}
	expenseID, err := parseID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID)
	}

	var req dto.ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ExpenseInvalidData, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return sendValidationError(c, err)
	}

	expense, err := h.expenseService.Update(c.Request().Context(), userID, expenseID, &req)
	if err != nil {
		return sendServiceError(c, err, expenseCodes)
	}

	return respond(c, http.StatusOK, dto.NewExpenseResponse(expense))
}

// Delete handles DELETE /expenses/:id
func (h *ExpenseHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}
	expenseID, err := parseID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID)
	}

	if err := h.expenseService.Delete(c.Request().Context(), userID, expenseID); err != nil {
		return sendServiceError(c, err, expenseCodes)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Expense deleted"})
}

// MonthlySummary handles GET /expenses/summary/monthly?year&month
func (h *ExpenseHandler) MonthlySummary(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.PeriodQuery
	if err := bindQuery(c, &query); err != nil {
		return SendError(c, errors.ReportInvalidPeriod, errors.WithDetails(services.ErrInvalidPeriod.Error()))
	}

	summary, err := h.summaryService.MonthlyExpenses(c.Request().Context(), userID, query.Year, query.Month)
	if err != nil {
		return sendServiceError(c, err, expenseCodes)
	}

	return respond(c, http.StatusOK, summary)
}
