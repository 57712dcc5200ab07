package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/aggregation"
	"github.com/11Jagan/Expense-Tracker/internal/dto"
	"github.com/11Jagan/Expense-Tracker/internal/models"
	"github.com/11Jagan/Expense-Tracker/internal/repositories"

	"github.com/google/uuid"
)

const (
	DefaultTrendMonths = 6
	MaxTrendMonths     = 24

	periodAllTime = "all"
)

type reportService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	incomeRepo  repositories.IncomeRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
	now         func() time.Time
}

// NewReportService creates the dashboard and trend service. Relative
// periods resolve against now, which defaults to time.Now.
func NewReportService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	incomeRepo repositories.IncomeRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
	now func() time.Time,
) ReportServiceInterface {
	return &reportService{
		expenseRepo: expenseRepo,
		incomeRepo:  incomeRepo,
		metrics:     metrics,
		logger:      logger,
		now:         clockOrDefault(now),
	}
}

// Dashboard aggregates every expense and income of the user inside period.
// A nil period covers all time and has nothing to compare against.
func (s *reportService) Dashboard(ctx context.Context, userID uuid.UUID, period *aggregation.Period) (*dto.DashboardResponse, error) {
	started := time.Now()
	defer func() {
		s.metrics.RecordProcessingTime(MetricReportDuration+".dashboard", time.Since(started))
	}()

	expenses, incomes, err := s.loadAll(userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expenseResult, err := aggregation.Aggregate(expenses, period, now)
	if err != nil {
		return nil, err
	}
	incomeResult, err := aggregation.Aggregate(incomes, period, now)
	if err != nil {
		return nil, err
	}

	net := incomeResult.TotalAmount.Sub(expenseResult.TotalAmount)
	resp := &dto.DashboardResponse{
		Period:           periodLabel(period),
		TotalExpenses:    expenseResult.TotalAmount,
		TotalIncome:      incomeResult.TotalAmount,
		NetBalance:       net,
		SavingsRate:      aggregation.PercentageOf(net, incomeResult.TotalAmount).Round(2),
		ExpenseCount:     expenseResult.Count,
		IncomeCount:      incomeResult.Count,
		ExpenseBreakdown: aggregation.Breakdown(expenseResult),
		IncomeBreakdown:  aggregation.Breakdown(incomeResult),
	}

	if previous := period.Previous(now); previous != nil {
		prevExpenses, err := aggregation.Aggregate(expenses, previous, now)
		if err != nil {
			return nil, err
		}
		prevIncome, err := aggregation.Aggregate(incomes, previous, now)
		if err != nil {
			return nil, err
		}
		resp.Previous = &dto.PeriodTotals{
			TotalExpenses: prevExpenses.TotalAmount,
			TotalIncome:   prevIncome.TotalAmount,
			ExpenseChange: roundChange(aggregation.PercentageChange(expenseResult.TotalAmount, prevExpenses.TotalAmount)),
			IncomeChange:  roundChange(aggregation.PercentageChange(incomeResult.TotalAmount, prevIncome.TotalAmount)),
		}
	}

	s.logger.Debug("dashboard built",
		"user_id", userID,
		"period", resp.Period,
		"expense_count", resp.ExpenseCount,
		"income_count", resp.IncomeCount)

	return resp, nil
}

// Trend returns expense and income totals for the last months calendar
// months, oldest first, ending with the current month. Zero months means
// the default of six.
func (s *reportService) Trend(ctx context.Context, userID uuid.UUID, months int) (*dto.TrendResponse, error) {
	if months == 0 {
		months = DefaultTrendMonths
	}
	if months < 1 || months > MaxTrendMonths {
		return nil, ErrInvalidMonths
	}

	started := time.Now()
	defer func() {
		s.metrics.RecordProcessingTime(MetricReportDuration+".trend", time.Since(started))
	}()

	now := s.now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	start := aggregation.MonthWindow(first.Year(), first.Month()).Start
	end := aggregation.MonthWindow(now.Year(), now.Month()).End

	expenseModels, err := s.expenseRepo.GetByDateRange(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	incomeModels, err := s.incomeRepo.GetByDateRange(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load income: %w", err)
	}
	expenses := models.ExpensesToRecords(expenseModels)
	incomes := models.IncomesToRecords(incomeModels)

	points := make([]dto.TrendPoint, 0, months)
	for i := 0; i < months; i++ {
		month := first.AddDate(0, i, 0)
		period := aggregation.CalendarMonth(month.Year(), month.Month())

		spent, err := aggregation.Aggregate(expenses, period, now)
		if err != nil {
			return nil, err
		}
		earned, err := aggregation.Aggregate(incomes, period, now)
		if err != nil {
			return nil, err
		}

		points = append(points, dto.TrendPoint{
			Year:       month.Year(),
			Month:      int(month.Month()),
			Label:      month.Format("2006-01"),
			Expenses:   spent.TotalAmount,
			Income:     earned.TotalAmount,
			NetBalance: earned.TotalAmount.Sub(spent.TotalAmount),
		})
	}

	return &dto.TrendResponse{Months: months, Points: points}, nil
}

func (s *reportService) loadAll(userID uuid.UUID) ([]aggregation.Record, []aggregation.Record, error) {
	expenses, err := s.expenseRepo.GetByUserID(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	incomes, err := s.incomeRepo.GetByUserID(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load income: %w", err)
	}
	return models.ExpensesToRecords(expenses), models.IncomesToRecords(incomes), nil
}

func periodLabel(p *aggregation.Period) string {
	if p == nil || p.Kind == aggregation.PeriodNone {
		return periodAllTime
	}
	return string(p.Kind)
}

func roundChange(c aggregation.Change) aggregation.Change {
	c.Percentage = c.Percentage.Round(2)
	return c
}
