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

type budgetService struct {
	budgetRepo  repositories.BudgetRepositoryInterface
	expenseRepo repositories.ExpenseRepositoryInterface
	thresholds  aggregation.Thresholds
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
	now         func() time.Time
}

// NewBudgetService creates the budget service. thresholds decide the status
// reported for each budget.
func NewBudgetService(
	budgetRepo repositories.BudgetRepositoryInterface,
	expenseRepo repositories.ExpenseRepositoryInterface,
	thresholds aggregation.Thresholds,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
	now func() time.Time,
) BudgetServiceInterface {
	return &budgetService{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		thresholds:  thresholds,
		metrics:     metrics,
		logger:      logger,
		now:         clockOrDefault(now),
	}
}

// Upsert sets the budget of a category for a month, replacing any amount
// stored before
func (s *budgetService) Upsert(ctx context.Context, userID uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error) {
	if req.Amount == nil || req.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if err := validatePeriod(req.Year, req.Month); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:   userID,
		Category: req.Category,
		Amount:   *req.Amount,
		Month:    req.Month,
		Year:     req.Year,
	}
	if err := s.budgetRepo.Upsert(budget); err != nil {
		return nil, err
	}

	s.logger.Info("budget saved",
		"user_id", userID,
		"budget_id", budget.ID,
		"category", budget.Category,
		"year", budget.Year,
		"month", budget.Month)
	return budget, nil
}

func (s *budgetService) List(ctx context.Context, userID uuid.UUID, year, month int) ([]models.Budget, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	return s.budgetRepo.GetByUserAndPeriod(userID, year, month)
}

func (s *budgetService) Delete(ctx context.Context, userID, budgetID uuid.UUID) error {
	budget, err := s.budgetRepo.GetByID(budgetID)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get budget: %w", err)
	}
	if !budget.IsOwnedBy(userID) {
		return ErrForbidden
	}

	if err := s.budgetRepo.Delete(budget.ID); err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("budget deleted", "user_id", userID, "budget_id", budgetID)
	return nil
}

// Status compares each budget of the month with the month's spending in its
// category. Total spent covers every expense of the month, budgeted or not.
func (s *budgetService) Status(ctx context.Context, userID uuid.UUID, year, month int) (*dto.BudgetStatusResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	started := time.Now()
	defer func() {
		s.metrics.RecordProcessingTime(MetricReportDuration+".budget_status", time.Since(started))
	}()

	budgets, err := s.budgetRepo.GetByUserAndPeriod(userID, year, month)
	if err != nil {
		return nil, err
	}

	window := aggregation.MonthWindow(year, time.Month(month))
	expenses, err := s.expenseRepo.GetByDateRange(userID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	spending, err := aggregation.Aggregate(models.ExpensesToRecords(expenses), aggregation.CalendarMonth(year, time.Month(month)), s.now())
	if err != nil {
		return nil, err
	}

	progress := aggregation.CompareBudgets(models.BudgetLines(budgets), spending, s.thresholds)

	totalBudget := decimal.Zero
	for _, b := range budgets {
		totalBudget = totalBudget.Add(b.Amount)
	}

	return &dto.BudgetStatusResponse{
		Year:           year,
		Month:          month,
		Budgets:        progress,
		TotalBudget:    totalBudget,
		TotalSpent:     spending.TotalAmount,
		TotalRemaining: totalBudget.Sub(spending.TotalAmount),
	}, nil
}
