package dto

import (
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetRequest struct {
	Category string           `json:"category" validate:"required,expense_category"`
	Amount   *decimal.Decimal `json:"amount" validate:"required,non_negative_amount,money"`
	Month    int              `json:"month" validate:"required,gte=1,lte=12"`
	Year     int              `json:"year" validate:"required,gte=1900,lte=9999"`
}

// PeriodQuery selects a calendar month
type PeriodQuery struct {
	Year  int `query:"year"`
	Month int `query:"month"`
}

type BudgetResponse struct {
	ID        uuid.UUID       `json:"id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewBudgetResponse(b *models.Budget) BudgetResponse {
	return BudgetResponse{
		ID:        b.ID,
		Category:  b.Category,
		Amount:    b.Amount,
		Month:     b.Month,
		Year:      b.Year,
		UpdatedAt: b.UpdatedAt,
	}
}
