package services

import (
	"context"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/aggregation"
	"github.com/11Jagan/Expense-Tracker/internal/dto"
	"github.com/11Jagan/Expense-Tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuthServiceInterface defines authentication and profile operations
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*models.User, error)
	Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error)
	RefreshTokens(refreshToken, ipAddress, userAgent string) (*dto.TokenResponse, error)
	Logout(accessToken, ipAddress, userAgent string) error
	GetProfile(userID uuid.UUID) (*models.User, error)
	UpdateMonthlyIncome(userID uuid.UUID, amount decimal.Decimal) (*models.User, error)
}

// TokenServiceInterface defines JWT issuing and validation
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.Claims, error)
	ValidateRefreshToken(tokenString string) (*models.Claims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetJTI(tokenString string) (string, error)
	GetTokenExpiry(tokenString string) (time.Time, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
	PasswordStrength(password string) int
}

// ExpenseServiceInterface defines expense CRUD. Every operation on a single
// expense checks that it belongs to userID.
type ExpenseServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.ExpenseRequest) (*models.Expense, error)
	Get(ctx context.Context, userID, expenseID uuid.UUID) (*models.Expense, error)
	Update(ctx context.Context, userID, expenseID uuid.UUID, req *dto.ExpenseRequest) (*models.Expense, error)
	Delete(ctx context.Context, userID, expenseID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, query *dto.RecordQuery) (*dto.Page[dto.ExpenseResponse], error)
}

// IncomeServiceInterface defines income CRUD
type IncomeServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.IncomeRequest) (*models.Income, error)
	Get(ctx context.Context, userID, incomeID uuid.UUID) (*models.Income, error)
	Update(ctx context.Context, userID, incomeID uuid.UUID, req *dto.IncomeRequest) (*models.Income, error)
	Delete(ctx context.Context, userID, incomeID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, query *dto.RecordQuery) (*dto.Page[dto.IncomeResponse], error)
}

// SummaryServiceInterface builds the monthly category and source summaries
type SummaryServiceInterface interface {
	MonthlyExpenses(ctx context.Context, userID uuid.UUID, year, month int) (*dto.ExpenseSummaryResponse, error)
	MonthlyIncome(ctx context.Context, userID uuid.UUID, year, month int) (*dto.IncomeSummaryResponse, error)
}

type BudgetServiceInterface interface {
	Upsert(ctx context.Context, userID uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error)
	List(ctx context.Context, userID uuid.UUID, year, month int) ([]models.Budget, error)
	Delete(ctx context.Context, userID, budgetID uuid.UUID) error
	Status(ctx context.Context, userID uuid.UUID, year, month int) (*dto.BudgetStatusResponse, error)
}

// ReportServiceInterface builds dashboards and month-over-month trends
type ReportServiceInterface interface {
	Dashboard(ctx context.Context, userID uuid.UUID, period *aggregation.Period) (*dto.DashboardResponse, error)
	Trend(ctx context.Context, userID uuid.UUID, months int) (*dto.TrendResponse, error)
}

type DemoDataServiceInterface interface {
	Generate(ctx context.Context, userID uuid.UUID, days, count int) (*dto.DemoDataResponse, error)
}

// MetricsRecorderInterface records business metrics
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
}
