package repositories

import (
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateMonthlyIncome(userID uuid.UUID, amount decimal.Decimal) error
	SaveLoginState(user *models.User) error
	Delete(userID uuid.UUID) error
}

// ExpenseRepositoryInterface defines the contract for expense storage. It is
// the record store behind every expense report.
type ExpenseRepositoryInterface interface {
	Create(expense *models.Expense) error
	CreateBatch(expenses []models.Expense) error
	GetByID(id uuid.UUID) (*models.Expense, error)
	Update(expense *models.Expense) error
	Delete(id uuid.UUID) error
	List(filters models.RecordFilters) ([]models.Expense, int64, error)
	GetByUserID(userID uuid.UUID) ([]models.Expense, error)
	GetByDateRange(userID uuid.UUID, startDate, endDate time.Time) ([]models.Expense, error)
}

// IncomeRepositoryInterface defines the contract for income storage
type IncomeRepositoryInterface interface {
	Create(income *models.Income) error
	CreateBatch(incomes []models.Income) error
	GetByID(id uuid.UUID) (*models.Income, error)
	Update(income *models.Income) error
	Delete(id uuid.UUID) error
	List(filters models.RecordFilters) ([]models.Income, int64, error)
	GetByUserID(userID uuid.UUID) ([]models.Income, error)
	GetByDateRange(userID uuid.UUID, startDate, endDate time.Time) ([]models.Income, error)
}

// BudgetRepositoryInterface defines the contract for budget storage
type BudgetRepositoryInterface interface {
	Upsert(budget *models.Budget) error
	GetByID(id uuid.UUID) (*models.Budget, error)
	GetByUserAndPeriod(userID uuid.UUID, year, month int) ([]models.Budget, error)
	Delete(id uuid.UUID) error
}

type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	GetByTokenHash(tokenHash string) (*models.RefreshToken, error)
	Revoke(tokenID uuid.UUID) error
	RevokeAllForUser(userID uuid.UUID) error
	DeleteExpired() (int64, error)
}

// BlacklistedTokenRepositoryInterface defines the contract for blacklisted token repository operations
type BlacklistedTokenRepositoryInterface interface {
	Create(token *models.BlacklistedToken) error
	IsBlacklisted(jti string) (bool, error)
	DeleteExpired() (int64, error)
}
