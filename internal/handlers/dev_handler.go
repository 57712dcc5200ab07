package handlers

import (
	"net/http"

	"github.com/11Jagan/Expense-Tracker/internal/errors"
	"github.com/11Jagan/Expense-Tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler serves development-only endpoints. The demo data service
// refuses to run outside development, so the routes answer 403 there.
type DevHandler struct {
	demoDataService services.DemoDataServiceInterface
}

func NewDevHandler(demoDataService services.DemoDataServiceInterface) *DevHandler {
	return &DevHandler{demoDataService: demoDataService}
}

// GenerateDemoData handles POST /dev/generate-demo-data?days&count
//
// days defaults to 30 and may be at most 365; count defaults to 50 and may
// be at most 500.
func (h *DevHandler) GenerateDemoData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	days, validDays := getIntParam(c, "days", 0)
	count, validCount := getIntParam(c, "count", 0)
	if !validDays || !validCount {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("days and count must be numbers"))
	}

	result, err := h.demoDataService.Generate(c.Request().Context(), userID, days, count)
	if err != nil {
		return sendServiceError(c, err, reportCodes)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    result,
		Message: "Demo data generated",
	})
}
