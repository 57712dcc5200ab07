package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/dto"
	"github.com/11Jagan/Expense-Tracker/internal/events"
	"github.com/11Jagan/Expense-Tracker/internal/models"
	"github.com/11Jagan/Expense-Tracker/internal/repositories"

	"github.com/google/uuid"
)

type expenseService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	notifier    *recordNotifier
	logger      *slog.Logger
	now         func() time.Time
}

// NewExpenseService creates the expense service. now defaults to time.Now.
func NewExpenseService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	publisher events.Publisher,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
	now func() time.Time,
) ExpenseServiceInterface {
	now = clockOrDefault(now)
	return &expenseService{
		expenseRepo: expenseRepo,
		notifier: &recordNotifier{
			publisher: publisher,
			metrics:   metrics,
			logger:    logger,
			now:       now,
		},
		logger: logger,
		now:    now,
	}
}

func (s *expenseService) Create(ctx context.Context, userID uuid.UUID, req *dto.ExpenseRequest) (*models.Expense, error) {
	if req.Amount == nil || req.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	expense := &models.Expense{
		UserID:             userID,
		Title:              strings.TrimSpace(req.Title),
		Amount:             *req.Amount,
		Category:           req.Category,
		Date:               s.now().UTC(),
		Description:        strings.TrimSpace(req.Description),
		IsRecurring:        req.IsRecurring,
		RecurringFrequency: req.RecurringFrequency,
	}
	if req.Date != nil {
		expense.Date = req.Date.UTC()
	}
	if expense.Category == "" {
		expense.Category = models.CategoryOther
	}
	if expense.RecurringFrequency == "" {
		expense.RecurringFrequency = models.FrequencyNone
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}

	s.logger.Info("expense created",
		"user_id", userID,
		"expense_id", expense.ID,
		"category", expense.Category,
		"amount", expense.Amount.StringFixed(2))
	s.notifier.notify(ctx, events.KindExpense, events.ActionCreated, expense.ToRecord())

	return expense, nil
}

func (s *expenseService) Get(ctx context.Context, userID, expenseID uuid.UUID) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByID(expenseID)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if !expense.IsOwnedBy(userID) {
		s.logger.Warn("expense access denied", "user_id", userID, "expense_id", expenseID)
		return nil, ErrForbidden
	}
	return expense, nil
}

// Update replaces the expense's fields. An omitted category or frequency
// keeps the stored value, as does an omitted date.
func (s *expenseService) Update(ctx context.Context, userID, expenseID uuid.UUID, req *dto.ExpenseRequest) (*models.Expense, error) {
	if req.Amount == nil || req.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	expense, err := s.Get(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}

	expense.Title = strings.TrimSpace(req.Title)
	expense.Amount = *req.Amount
	expense.Description = strings.TrimSpace(req.Description)
	expense.IsRecurring = req.IsRecurring
	if req.Category != "" {
		expense.Category = req.Category
	}
	if req.Date != nil {
		expense.Date = req.Date.UTC()
	}
	if req.RecurringFrequency != "" {
		expense.RecurringFrequency = req.RecurringFrequency
	}

	if err := s.expenseRepo.Update(expense); err != nil {
		return nil, err
	}

	s.logger.Info("expense updated", "user_id", userID, "expense_id", expense.ID)
	s.notifier.notify(ctx, events.KindExpense, events.ActionUpdated, expense.ToRecord())

	return expense, nil
}

func (s *expenseService) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	expense, err := s.Get(ctx, userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.expenseRepo.Delete(expense.ID); err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("expense deleted", "user_id", userID, "expense_id", expense.ID)
	s.notifier.notify(ctx, events.KindExpense, events.ActionDeleted, expense.ToRecord())

	return nil
}

func (s *expenseService) List(ctx context.Context, userID uuid.UUID, query *dto.RecordQuery) (*dto.Page[dto.ExpenseResponse], error) {
	filters, err := buildRecordFilters(userID, query, "category")
	if err != nil {
		return nil, err
	}

	expenses, total, err := s.expenseRepo.List(filters)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		items = append(items, dto.NewExpenseResponse(&expenses[i]))
	}

	return &dto.Page[dto.ExpenseResponse]{
		Items: items,
		Page:  filters.Page(),
		Pages: filters.PageCount(total),
		Total: total,
	}, nil
}
