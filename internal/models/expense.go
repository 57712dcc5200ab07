package models

import (
	"errors"
	"strings"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/aggregation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

var (
	ErrNegativeAmount     = errors.New("amount cannot be negative")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title must be at most 100 characters")
	ErrDescriptionTooLong = errors.New("description must be at most 500 characters")
	ErrInvalidCategory    = errors.New("invalid expense category")
	ErrInvalidSource      = errors.New("invalid income source")
	ErrInvalidFrequency   = errors.New("invalid recurring frequency")
)

// Expense is money spent by a user, tagged with a category
type Expense struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index:idx_expenses_user_date,priority:1" json:"user_id"`
	Title              string          `gorm:"type:varchar(100);not null" json:"title"`
	Amount             decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Category           string          `gorm:"type:varchar(50);not null;default:'Other';index" json:"category"`
	Date               time.Time       `gorm:"not null;index:idx_expenses_user_date,priority:2,sort:desc" json:"date"`
	Description        string          `gorm:"type:varchar(500)" json:"description,omitempty"`
	IsRecurring        bool            `gorm:"not null;default:false" json:"is_recurring"`
	RecurringFrequency string          `gorm:"type:varchar(20);not null;default:'None'" json:"recurring_frequency"`
	CreatedAt          time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"not null" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate fills defaults and validates
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	now := time.Now()
	if e.Date.IsZero() {
		e.Date = now
	}
	if e.Category == "" {
		e.Category = DefaultExpenseCategory
	}
	if e.RecurringFrequency == "" {
		e.RecurringFrequency = FrequencyNone
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	return e.Validate()
}

// BeforeUpdate refreshes the timestamp and validates
func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	e.UpdatedAt = time.Now()
	return e.Validate()
}

// Validate checks field constraints
func (e *Expense) Validate() error {
	if e.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if err := validateTitleAndDescription(e.Title, e.Description); err != nil {
		return err
	}
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if e.Category != "" && !IsValidExpenseCategory(e.Category) {
		return ErrInvalidCategory
	}
	if e.RecurringFrequency != "" && !IsValidFrequency(e.RecurringFrequency) {
		return ErrInvalidFrequency
	}
	return nil
}

// IsOwnedBy reports whether the expense belongs to the user
func (e *Expense) IsOwnedBy(userID uuid.UUID) bool {
	return e.UserID == userID
}

// ToRecord converts the expense into an aggregation record grouped by category
func (e *Expense) ToRecord() aggregation.Record {
	return aggregation.Record{
		ID:         e.ID,
		OwnerID:    e.UserID,
		Amount:     e.Amount,
		GroupKey:   e.Category,
		OccurredAt: e.Date,
		Note:       e.Title,
	}
}

func (e *Expense) TableName() string {
	return "expenses"
}

// ExpensesToRecords converts a slice of expenses, keeping order
func ExpensesToRecords(expenses []Expense) []aggregation.Record {
	records := make([]aggregation.Record, 0, len(expenses))
	for i := range expenses {
		records = append(records, expenses[i].ToRecord())
	}
	return records
}

func validateTitleAndDescription(title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleRequired
	}
	if len([]rune(title)) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if len([]rune(description)) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}
