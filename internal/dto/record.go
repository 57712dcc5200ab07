package dto

import (
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseRequest is the body of expense create and update calls. Omitted
// category, date and frequency fall back to model defaults.
type ExpenseRequest struct {
	Title              string           `json:"title" validate:"required,max=100"`
	Amount             *decimal.Decimal `json:"amount" validate:"required,non_negative_amount,money"`
	Category           string           `json:"category" validate:"omitempty,expense_category"`
	Date               *time.Time       `json:"date"`
	Description        string           `json:"description" validate:"max=500"`
	IsRecurring        bool             `json:"isRecurring"`
	RecurringFrequency string           `json:"recurringFrequency" validate:"omitempty,recurring_frequency"`
}

// IncomeRequest is the body of income create and update calls. IsRecurring
// is a pointer because income defaults to recurring.
type IncomeRequest struct {
	Title              string           `json:"title" validate:"required,max=100"`
	Amount             *decimal.Decimal `json:"amount" validate:"required,non_negative_amount,money"`
	Source             string           `json:"source" validate:"omitempty,income_source"`
	Date               *time.Time       `json:"date"`
	Description        string           `json:"description" validate:"max=500"`
	IsRecurring        *bool            `json:"isRecurring"`
	RecurringFrequency string           `json:"recurringFrequency" validate:"omitempty,recurring_frequency"`
}

// RecordQuery holds the list filters of the expense and income endpoints
type RecordQuery struct {
	Year      int    `query:"year" validate:"omitempty,gte=1900,lte=9999"`
	Month     int    `query:"month" validate:"required_with=Year,omitempty,gte=1,lte=12"`
	StartDate string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Key       string `query:"-"`
	Sort      string `query:"sort"`
	Page      int    `query:"page" validate:"omitempty,gte=1"`
	Limit     int    `query:"limit" validate:"omitempty,gte=1,lte=100"`
}

type ExpenseResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Title              string          `json:"title"`
	Amount             decimal.Decimal `json:"amount"`
	Category           string          `json:"category"`
	Date               time.Time       `json:"date"`
	Description        string          `json:"description,omitempty"`
	IsRecurring        bool            `json:"isRecurring"`
	RecurringFrequency string          `json:"recurringFrequency"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

func NewExpenseResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:                 e.ID,
		Title:              e.Title,
		Amount:             e.Amount,
		Category:           e.Category,
		Date:               e.Date,
		Description:        e.Description,
		IsRecurring:        e.IsRecurring,
		RecurringFrequency: e.RecurringFrequency,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

type IncomeResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Title              string          `json:"title"`
	Amount             decimal.Decimal `json:"amount"`
	Source             string          `json:"source"`
	Date               time.Time       `json:"date"`
	Description        string          `json:"description,omitempty"`
	IsRecurring        bool            `json:"isRecurring"`
	RecurringFrequency string          `json:"recurringFrequency"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

func NewIncomeResponse(i *models.Income) IncomeResponse {
	return IncomeResponse{
		ID:                 i.ID,
		Title:              i.Title,
		Amount:             i.Amount,
		Source:             i.Source,
		Date:               i.Date,
		Description:        i.Description,
		IsRecurring:        i.IsRecurring,
		RecurringFrequency: i.RecurringFrequency,
		CreatedAt:          i.CreatedAt,
		UpdatedAt:          i.UpdatedAt,
	}
}

// Page is one page of a listing
type Page[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Total int64 `json:"total"`
}
