package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/aggregation"
	"github.com/11Jagan/Expense-Tracker/internal/dto"
	"github.com/11Jagan/Expense-Tracker/internal/models"
	"github.com/11Jagan/Expense-Tracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type summaryService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	incomeRepo  repositories.IncomeRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
	now         func() time.Time
}

// NewSummaryService creates the monthly summary service
func NewSummaryService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	incomeRepo repositories.IncomeRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
	now func() time.Time,
) SummaryServiceInterface {
	return &summaryService{
		expenseRepo: expenseRepo,
		incomeRepo:  incomeRepo,
		userRepo:    userRepo,
		metrics:     metrics,
		logger:      logger,
		now:         clockOrDefault(now),
	}
}

// MonthlyExpenses groups the month's expenses by category. The remaining
// budget is the month's income minus its spending and may be negative.
func (s *summaryService) MonthlyExpenses(ctx context.Context, userID uuid.UUID, year, month int) (*dto.ExpenseSummaryResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	defer s.observe("monthly_expense_summary", time.Now())

	period := aggregation.CalendarMonth(year, time.Month(month))
	window := aggregation.MonthWindow(year, time.Month(month))

	expenses, err := s.expenseRepo.GetByDateRange(userID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	result, err := aggregation.Aggregate(models.ExpensesToRecords(expenses), period, s.now())
	if err != nil {
		return nil, err
	}

	monthlyIncome, err := s.monthlyIncome(userID, window, period)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("monthly expense summary built",
		"user_id", userID,
		"year", year,
		"month", month,
		"records", result.Count)

	return &dto.ExpenseSummaryResponse{
		Summary:         result.Summary,
		TotalAmount:     result.TotalAmount,
		Count:           result.Count,
		MonthlyIncome:   monthlyIncome,
		RemainingBudget: monthlyIncome.Sub(result.TotalAmount),
		Year:            year,
		Month:           month,
	}, nil
}

// MonthlyIncome groups the month's income by source
func (s *summaryService) MonthlyIncome(ctx context.Context, userID uuid.UUID, year, month int) (*dto.IncomeSummaryResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	defer s.observe("monthly_income_summary", time.Now())

	result, err := s.incomeResult(userID, aggregation.MonthWindow(year, time.Month(month)), aggregation.CalendarMonth(year, time.Month(month)))
	if err != nil {
		return nil, err
	}

	return &dto.IncomeSummaryResponse{
		Summary:     result.Summary,
		TotalAmount: result.TotalAmount,
		Count:       result.Count,
		Year:        year,
		Month:       month,
	}, nil
}

// monthlyIncome is the recorded income of the window, falling back to the
// user's declared monthly income when the month has no income records
func (s *summaryService) monthlyIncome(userID uuid.UUID, window aggregation.PeriodWindow, period *aggregation.Period) (decimal.Decimal, error) {
	result, err := s.incomeResult(userID, window, period)
	if err != nil {
		return decimal.Zero, err
	}
	if result.Count > 0 {
		return result.TotalAmount, nil
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return decimal.Zero, ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to load user: %w", err)
	}
	return user.MonthlyIncome, nil
}

func (s *summaryService) incomeResult(userID uuid.UUID, window aggregation.PeriodWindow, period *aggregation.Period) (aggregation.Result, error) {
	incomes, err := s.incomeRepo.GetByDateRange(userID, window.Start, window.End)
	if err != nil {
		return aggregation.Result{}, fmt.Errorf("failed to load income: %w", err)
	}
	return aggregation.Aggregate(models.IncomesToRecords(incomes), period, s.now())
}

func (s *summaryService) observe(report string, started time.Time) {
	s.metrics.RecordProcessingTime(MetricReportDuration+"."+report, time.Since(started))
}

func validatePeriod(year, month int) error {
	if year < 1900 || year > 9999 || month < 1 || month > 12 {
		return ErrInvalidPeriod
	}
	return nil
}
