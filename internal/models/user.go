package models

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	MaxFailedLoginAttempts = 3
)

var (
	ErrEmailRequired = errors.New("email is required")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrNameRequired  = errors.New("first and last name are required")
	ErrInvalidRole   = errors.New("invalid role")
)

// User owns records and budgets. MonthlyIncome is the declared income used by
// the monthly summary when a month has no recorded income.
type User struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Email               string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash        string          `gorm:"type:varchar(255);not null" json:"-"`
	FirstName           string          `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName            string          `gorm:"type:varchar(100);not null" json:"last_name"`
	Role                string          `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	MonthlyIncome       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"monthly_income"`
	FailedLoginAttempts int             `gorm:"default:0" json:"-"`
	LockedAt            *time.Time      `gorm:"index" json:"locked_at,omitempty"`
	LastLoginAt         *time.Time      `json:"last_login_at,omitempty"`
	CreatedAt           time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"not null" json:"updated_at"`
	DeletedAt           gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`

	RefreshTokens     []RefreshToken     `gorm:"foreignKey:UserID" json:"-"`
	BlacklistedTokens []BlacklistedToken `gorm:"foreignKey:UserID" json:"-"`
	Expenses          []Expense          `gorm:"foreignKey:UserID" json:"-"`
	Incomes           []Income           `gorm:"foreignKey:UserID" json:"-"`
	Budgets           []Budget           `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	u.Email = strings.TrimSpace(u.Email)

	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	return u.Validate()
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	// column updates through a map have no full struct to validate
	if tx != nil && tx.Statement != nil {
		if _, partial := tx.Statement.Dest.(map[string]interface{}); partial {
			return nil
		}
	}
	return u.Validate()
}

func (u *User) Validate() error {
	switch {
	case u.Email == "":
		return ErrEmailRequired
	case !validEmail(u.Email):
		return ErrInvalidEmail
	case u.FirstName == "" || u.LastName == "":
		return ErrNameRequired
	case u.Role != RoleUser && u.Role != RoleAdmin:
		return ErrInvalidRole
	case u.MonthlyIncome.IsNegative():
		return ErrNegativeAmount
	}
	return nil
}

// validEmail accepts a bare address with a dotted domain
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	_, domain, _ := strings.Cut(email, "@")
	return strings.Contains(strings.Trim(domain, "."), ".")
}

func (u *User) IsLocked() bool {
	return u.LockedAt != nil
}

// RegisterFailedLogin counts a rejected password and reports whether this
// attempt locked the account
func (u *User) RegisterFailedLogin(at time.Time) bool {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts < MaxFailedLoginAttempts || u.IsLocked() {
		return false
	}
	u.LockedAt = &at
	return true
}

// RegisterLogin clears the lockout counters and stamps the login time
func (u *User) RegisterLogin(at time.Time) {
	u.FailedLoginAttempts = 0
	u.LockedAt = nil
	u.LastLoginAt = &at
}

func (u *User) TableName() string {
	return "users"
}
