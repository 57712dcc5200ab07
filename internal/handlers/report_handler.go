package handlers

import (
	"net/http"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/aggregation"
	"github.com/11Jagan/Expense-Tracker/internal/dto"
	"github.com/11Jagan/Expense-Tracker/internal/errors"
	"github.com/11Jagan/Expense-Tracker/internal/services"

	"github.com/labstack/echo/v4"
)

const queryDateLayout = "2006-01-02"

var (
	dashboardQueryCodes = map[string]errors.ErrorCode{
		"period":    errors.ReportInvalidPeriod,
		"startDate": errors.ValidationInvalidDate,
		"endDate":   errors.ValidationInvalidDate,
	}
	trendQueryCodes = map[string]errors.ErrorCode{
		"months": errors.ReportInvalidMonths,
	}
)

// ReportHandler serves the dashboard and trend reports
type ReportHandler struct {
	reportService services.ReportServiceInterface
}

func NewReportHandler(reportService services.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard handles GET /reports/dashboard. The window is either
// ?period=weekly|monthly|yearly or ?startDate&endDate; neither means all
// time.
func (h *ReportHandler) Dashboard(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.DashboardQuery
	if err := bindQuery(c, &query); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid query parameters"))
	}
	if err := c.Validate(&query); err != nil {
		return sendQueryError(c, err, dashboardQueryCodes)
	}

	period, code, detail := parseDashboardPeriod(&query)
	if code != "" {
		return SendError(c, code, errors.WithDetails(detail))
	}

	dashboard, err := h.reportService.Dashboard(c.Request().Context(), userID, period)
	if err != nil {
		return sendServiceError(c, err, reportCodes)
	}

	return respond(c, http.StatusOK, dashboard)
}

// Trend handles GET /reports/trend?months=N. Leaving months out asks for
// the default span.
func (h *ReportHandler) Trend(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.TrendQuery
	if err := bindQuery(c, &query); err != nil {
		return SendError(c, errors.ReportInvalidMonths, errors.WithDetails(services.ErrInvalidMonths.Error()))
	}
	if err := c.Validate(&query); err != nil {
		return sendQueryError(c, err, trendQueryCodes)
	}

	trend, err := h.reportService.Trend(c.Request().Context(), userID, query.Months)
	if err != nil {
		return sendServiceError(c, err, reportCodes)
	}

	return respond(c, http.StatusOK, trend)
}

// parseDashboardPeriod returns a non-empty code when the query is unusable.
// Dates win over a named period.
func parseDashboardPeriod(q *dto.DashboardQuery) (*aggregation.Period, errors.ErrorCode, string) {
	if q.StartDate != "" || q.EndDate != "" {
		if q.StartDate == "" || q.EndDate == "" {
			return nil, errors.ReportInvalidRange, "startDate and endDate must be given together"
		}
		start, err := time.Parse(queryDateLayout, q.StartDate)
		if err != nil {
			return nil, errors.ValidationInvalidDate, "startDate must use the YYYY-MM-DD format"
		}
		end, err := time.Parse(queryDateLayout, q.EndDate)
		if err != nil {
			return nil, errors.ValidationInvalidDate, "endDate must use the YYYY-MM-DD format"
		}
		if start.After(end) {
			return nil, errors.ReportInvalidRange, "startDate must not be after endDate"
		}
		return aggregation.Range(start, aggregation.EndOfDay(end)), "", ""
	}

	if q.Period == "" {
		return nil, "", ""
	}
	period := aggregation.ParseRelativePeriod(q.Period)
	if period == nil {
		return nil, errors.ReportInvalidPeriod, "period must be weekly, monthly or yearly"
	}
	return period, "", ""
}
