package handlers

import (
	"net/http"

	"github.com/11Jagan/Expense-Tracker/internal/dto"
	"github.com/11Jagan/Expense-Tracker/internal/errors"
	"github.com/11Jagan/Expense-Tracker/internal/models"
	"github.com/11Jagan/Expense-Tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// IncomeHandler serves /api/v1/income. Lists filter by source instead of
// category.
type IncomeHandler struct {
	incomeService  services.IncomeServiceInterface
	summaryService services.SummaryServiceInterface
}

func NewIncomeHandler(incomeService services.IncomeServiceInterface, summaryService services.SummaryServiceInterface) *IncomeHandler {
	return &IncomeHandler{
		incomeService:  incomeService,
		summaryService: summaryService,
	}
}

// Create handles POST /income
func (h *IncomeHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.IncomeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.IncomeInvalidData, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return sendValidationError(c, err)
	}

	income, err := h.incomeService.Create(c.Request().Context(), userID, &req)
	if err != nil {
		return sendServiceError(c, err, incomeCodes)
	}

	return respond(c, http.StatusCreated, dto.NewIncomeResponse(income))
}

// List handles GET /income with year/month or startDate/endDate, source,
// sort, page and limit
func (h *IncomeHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.RecordQuery
	if err := bindQuery(c, &query); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid query parameters"))
	}
	query.Key = c.QueryParam("source")
	if query.Key != "" && !models.IsValidIncomeSource(query.Key) {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("source: unknown source"))
	}
	if err := c.Validate(&query); err != nil {
		return sendValidationError(c, err)
	}

	page, err := h.incomeService.List(c.Request().Context(), userID, &query)
	if err != nil {
		return sendServiceError(c, err, incomeCodes)
	}

	return respond(c, http.StatusOK, page)
}

func (h *IncomeHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}
	incomeID, err := parseID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID)
	}

	income, err := h.incomeService.Get(c.Request().Context(), userID, incomeID)
	if err != nil {
		return sendServiceError(c, err, incomeCodes)
	}

	return respond(c, http.StatusOK, dto.NewIncomeResponse(income))
}

func (h *IncomeHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}
	incomeID, err := parseID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID)
	}

	var req dto.IncomeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.IncomeInvalidData, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return sendValidationError(c, err)
	}

	income, err := h.incomeService.Update(c.Request().Context(), userID, incomeID, &req)
	if err != nil {
		return sendServiceError(c, err, incomeCodes)
	}

	return respond(c, http.StatusOK, dto.NewIncomeResponse(income))
}

func (h *IncomeHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}
	incomeID, err := parseID(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidID)
	}

	if err := h.incomeService.Delete(c.Request().Context(), userID, incomeID); err != nil {
		return sendServiceError(c, err, incomeCodes)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Income deleted"})
}

// MonthlySummary handles GET /income/summary/monthly?year&month
func (h *IncomeHandler) MonthlySummary(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.PeriodQuery
	if err := bindQuery(c, &query); err != nil {
		return SendError(c, errors.ReportInvalidPeriod, errors.WithDetails(services.ErrInvalidPeriod.Error()))
	}

	summary, err := h.summaryService.MonthlyIncome(c.Request().Context(), userID, query.Year, query.Month)
	if err != nil {
		return sendServiceError(c, err, incomeCodes)
	}

	return respond(c, http.StatusOK, summary)
}
