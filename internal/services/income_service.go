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

type incomeService struct {
	incomeRepo repositories.IncomeRepositoryInterface
	notifier    *recordNotifier
	logger      *slog.Logger
	now         func() time.Time
}

// NewIncomeService creates the income service. now defaults to time.Now.
func NewIncomeService(
	incomeRepo repositories.IncomeRepositoryInterface,
	publisher events.Publisher,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
	now func() time.Time,
) IncomeServiceInterface {
	now = clockOrDefault(now)
	return &incomeService{
		incomeRepo: incomeRepo,
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

func (s *incomeService) Create(ctx context.Context, userID uuid.UUID, req *dto.IncomeRequest) (*models.Income, error) {
	if req.Amount == nil || req.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	income := models.NewIncome(userID, strings.TrimSpace(req.Title), *req.Amount)
	income.Date = s.now().UTC()
	income.Description = strings.TrimSpace(req.Description)
	if req.Source != "" {
		income.Source = req.Source
	}
	if req.Date != nil {
		income.Date = req.Date.UTC()
	}
	if req.IsRecurring != nil {
		income.IsRecurring = *req.IsRecurring
	}
	if req.RecurringFrequency != "" {
		income.RecurringFrequency = req.RecurringFrequency
	} else if !income.IsRecurring {
		income.RecurringFrequency = models.FrequencyNone
	}

	if err := s.incomeRepo.Create(income); err != nil {
		return nil, err
	}

	s.logger.Info("income created",
		"user_id", userID,
		"income_id", income.ID,
		"source", income.Source,
		"amount", income.Amount.StringFixed(2))
	s.notifier.notify(ctx, events.KindIncome, events.ActionCreated, income.ToRecord())

	return income, nil
}

func (s *incomeService) Get(ctx context.Context, userID, incomeID uuid.UUID) (*models.Income, error) {
	income, err := s.incomeRepo.GetByID(incomeID)
	if err != nil {
		if errors.Is(err, repositories.ErrIncomeNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get income: %w", err)
	}

	if !income.IsOwnedBy(userID) {
		s.logger.Warn("income access denied", "user_id", userID, "income_id", incomeID)
		return nil, ErrForbidden
	}
	return income, nil
}

// Update replaces the income's fields. An omitted source, date, recurring
// flag or frequency keeps the stored value.
func (s *incomeService) Update(ctx context.Context, userID, incomeID uuid.UUID, req *dto.IncomeRequest) (*models.Income, error) {
	if req.Amount == nil || req.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	income, err := s.Get(ctx, userID, incomeID)
	if err != nil {
		return nil, err
	}

	income.Title = strings.TrimSpace(req.Title)
	income.Amount = *req.Amount
	income.Description = strings.TrimSpace(req.Description)
	if req.IsRecurring != nil {
		income.IsRecurring = *req.IsRecurring
	}
	if req.Source != "" {
		income.Source = req.Source
	}
	if req.Date != nil {
		income.Date = req.Date.UTC()
	}
	if req.RecurringFrequency != "" {
		income.RecurringFrequency = req.RecurringFrequency
	}

	if err := s.incomeRepo.Update(income); err != nil {
		return nil, err
	}

	s.logger.Info("income updated", "user_id", userID, "income_id", income.ID)
	s.notifier.notify(ctx, events.KindIncome, events.ActionUpdated, income.ToRecord())

	return income, nil
}

func (s *incomeService) Delete(ctx context.Context, userID, incomeID uuid.UUID) error {
	income, err := s.Get(ctx, userID, incomeID)
	if err != nil {
		return err
	}

	if err := s.incomeRepo.Delete(income.ID); err != nil {
		if errors.Is(err, repositories.ErrIncomeNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("income deleted", "user_id", userID, "income_id", income.ID)
	s.notifier.notify(ctx, events.KindIncome, events.ActionDeleted, income.ToRecord())

	return nil
}

func (s *incomeService) List(ctx context.Context, userID uuid.UUID, query *dto.RecordQuery) (*dto.Page[dto.IncomeResponse], error) {
	filters, err := buildRecordFilters(userID, query, "source")
	if err != nil {
		return nil, err
	}

	incomes, total, err := s.incomeRepo.List(filters)
	if err != nil {
		return nil, err
	}

	items := make([]dto.IncomeResponse, 0, len(incomes))
	for i := range incomes {
		items = append(items, dto.NewIncomeResponse(&incomes[i]))
	}

	return &dto.Page[dto.IncomeResponse]{
		Items: items,
		Page:  filters.Page(),
		Pages: filters.PageCount(total),
		Total: total,
	}, nil
}
