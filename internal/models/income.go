package models

import (
	"errors"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/aggregation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income is money received by a user, tagged with a source
type Income struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index:idx_incomes_user_date,priority:1" json:"user_id"`
	Title              string          `gorm:"type:varchar(100);not null" json:"title"`
	Amount             decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Source             string          `gorm:"type:varchar(50);not null;default:'Salary';index" json:"source"`
	Date               time.Time       `gorm:"not null;index:idx_incomes_user_date,priority:2,sort:desc" json:"date"`
	Description        string          `gorm:"type:varchar(500)" json:"description,omitempty"`
	IsRecurring        bool            `gorm:"not null;default:true" json:"is_recurring"`
	RecurringFrequency string          `gorm:"type:varchar(20);not null;default:'Monthly'" json:"recurring_frequency"`
	CreatedAt          time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"not null" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// NewIncome returns an income with the recurring defaults applied. Use it
// instead of a literal when the caller has no explicit recurring setting.
func NewIncome(userID uuid.UUID, title string, amount decimal.Decimal) *Income {
	return &Income{
		UserID:             userID,
		Title:              title,
		Amount:             amount,
		Source:             DefaultIncomeSource,
		IsRecurring:        true,
		RecurringFrequency: FrequencyMonthly,
	}
}

// BeforeCreate fills defaults and validates
func (i *Income) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}

	now := time.Now()
	if i.Date.IsZero() {
		i.Date = now
	}
	if i.Source == "" {
		i.Source = DefaultIncomeSource
	}
	if i.RecurringFrequency == "" {
		i.RecurringFrequency = FrequencyMonthly
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	if i.UpdatedAt.IsZero() {
		i.UpdatedAt = now
	}

	return i.Validate()
}

// BeforeUpdate refreshes the timestamp and validates
func (i *Income) BeforeUpdate(tx *gorm.DB) error {
	i.UpdatedAt = time.Now()
	return i.Validate()
}

// Validate checks field constraints
func (i *Income) Validate() error {
	if i.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if err := validateTitleAndDescription(i.Title, i.Description); err != nil {
		return err
	}
	if i.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if i.Source != "" && !IsValidIncomeSource(i.Source) {
		return ErrInvalidSource
	}
	if i.RecurringFrequency != "" && !IsValidFrequency(i.RecurringFrequency) {
		return ErrInvalidFrequency
	}
	return nil
}

// IsOwnedBy reports whether the income belongs to the user
func (i *Income) IsOwnedBy(userID uuid.UUID) bool {
	return i.UserID == userID
}

// ToRecord converts the income into an aggregation record grouped by source
func (i *Income) ToRecord() aggregation.Record {
	return aggregation.Record{
		ID:         i.ID,
		OwnerID:    i.UserID,
		Amount:     i.Amount,
		GroupKey:   i.Source,
		OccurredAt: i.Date,
		Note:       i.Title,
	}
}

func (i *Income) TableName() string {
	return "incomes"
}

// IncomesToRecords converts a slice of incomes, keeping order
func IncomesToRecords(incomes []Income) []aggregation.Record {
	records := make([]aggregation.Record, 0, len(incomes))
	for i := range incomes {
		records = append(records, incomes[i].ToRecord())
	}
	return records
}
