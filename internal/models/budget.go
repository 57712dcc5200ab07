package models

import (
	"errors"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/aggregation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidBudgetMonth = errors.New("budget month must be between 1 and 12")
	ErrInvalidBudgetYear  = errors.New("budget year must be between 1900 and 9999")
)

// Budget is a spending limit for one category in one calendar month
type Budget struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category_period,priority:1" json:"user_id"`
	Category  string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_budgets_user_category_period,priority:2" json:"category"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Month     int             `gorm:"not null;uniqueIndex:idx_budgets_user_category_period,priority:3" json:"month"`
	Year      int             `gorm:"not null;uniqueIndex:idx_budgets_user_category_period,priority:4" json:"year"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now()
	return b.Validate()
}

func (b *Budget) Validate() error {
	if b.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if !IsValidExpenseCategory(b.Category) {
		return ErrInvalidCategory
	}
	if b.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if b.Month < 1 || b.Month > 12 {
		return ErrInvalidBudgetMonth
	}
	if b.Year < 1900 || b.Year > 9999 {
		return ErrInvalidBudgetYear
	}
	return nil
}

// IsOwnedBy reports whether the budget belongs to the user
func (b *Budget) IsOwnedBy(userID uuid.UUID) bool {
	return b.UserID == userID
}

// Line returns the budget as a comparison input
func (b *Budget) Line() aggregation.BudgetLine {
	return aggregation.BudgetLine{Category: b.Category, Amount: b.Amount}
}

func (b *Budget) TableName() string {
	return "budgets"
}

// BudgetLines converts budgets into comparison inputs, keeping order
func BudgetLines(budgets []Budget) []aggregation.BudgetLine {
	lines := make([]aggregation.BudgetLine, 0, len(budgets))
	for i := range budgets {
		lines = append(lines, budgets[i].Line())
	}
	return lines
}
