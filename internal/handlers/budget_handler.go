package handlers

import (
	"net/http"

	"github.com/11Jagan/Expense-Tracker/internal/dto"
	"github.com/11Jagan/Expense-Tracker/internal/errors"
	"github.com/11Jagan/Expense-Tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// BudgetHandler serves /api/v1/budgets
type BudgetHandler struct {
	budgetService services.BudgetServiceInterface
}

func NewBudgetHandler(budgetService services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// Upsert handles PUT /budgets. A second call for the same category and
// month replaces the amount.
func (h *BudgetHandler) Upsert(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.BudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return sendValidationError(c, err)
	}

	budget, err := h.budgetService.Upsert(c.Request().Context(), userID, &req)
	if err != nil {
		return sendServiceError(c, err, budgetCodes)
	}

	return respond(c, http.StatusOK, dto.NewBudgetResponse(budget))
}

func (h *BudgetHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.PeriodQuery
	if err := bindQuery(c, &query); err != nil {
		return SendError(c, errors.BudgetInvalidPeriod, errors.WithDetails(services.ErrInvalidPeriod.Error()))
	}

	budgets, err := h.budgetService.List(c.Request().Context(), userID, query.Year, query.Month)
	if err != nil {
		return sendServiceError(c, err, budgetCodes)
	}

	items := make([]dto.BudgetResponse, 0, len(budgets))
	for i := range budgets {
		items = append(items, dto.NewBudgetResponse(&budgets[i]))
	}
	return respond(c, http.StatusOK, items)
}

func (h *BudgetHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}
	budgetID, err := parseID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID)
	}

	if err := h.budgetService.Delete(c.Request().Context(), userID, budgetID); err != nil {
		return sendServiceError(c, err, budgetCodes)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Budget deleted"})
}

// Status handles GET /budgets/status?year&month
func (h *BudgetHandler) Status(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.PeriodQuery
	if err := bindQuery(c, &query); err != nil {
		return SendError(c, errors.BudgetInvalidPeriod, errors.WithDetails(services.ErrInvalidPeriod.Error()))
	}

	status, err := h.budgetService.Status(c.Request().Context(), userID, query.Year, query.Month)
	if err != nil {
		return sendServiceError(c, err, budgetCodes)
	}

	return respond(c, http.StatusOK, status)
}

