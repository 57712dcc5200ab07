package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/aggregation"
	"github.com/11Jagan/Expense-Tracker/internal/models"
	"github.com/11Jagan/Expense-Tracker/internal/repositories"
	"github.com/11Jagan/Expense-Tracker/internal/repositories/repository_mocks"
	"github.com/11Jagan/Expense-Tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SummaryServiceTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	expenseRepo *repository_mocks.MockExpenseRepositoryInterface
	incomeRepo  *repository_mocks.MockIncomeRepositoryInterface
	userRepo    *repository_mocks.MockUserRepositoryInterface
	service     SummaryServiceInterface
	ctx         context.Context
	userID      uuid.UUID
	start       time.Time
	end         time.Time
}

func (s *SummaryServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.expenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.incomeRepo = repository_mocks.NewMockIncomeRepositoryInterface(s.ctrl)
	s.userRepo = repository_mocks.NewMockUserRepositoryInterface(s.ctrl)
	s.ctx = context.Background()
	s.userID = uuid.New()
	february := aggregation.MonthWindow(2024, time.February)
	s.start, s.end = february.Start, february.End

	metrics := service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	metrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any()).AnyTimes()

	now := func() time.Time { return time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC) }
	s.service = NewSummaryService(s.expenseRepo, s.incomeRepo, s.userRepo, metrics, slog.Default(), now)
}

func (s *SummaryServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSummaryServiceSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceTestSuite))
}

func (s *SummaryServiceTestSuite) expense(category, amount string, day int) models.Expense {
	return models.Expense{
		ID:       uuid.New(),
		UserID:   s.userID,
		Title:    category,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     time.Date(2024, time.February, day, 12, 0, 0, 0, time.UTC),
	}
}

func (s *SummaryServiceTestSuite) income(source, amount string, day int) models.Income {
	income := models.NewIncome(s.userID, source, decimal.RequireFromString(amount))
	income.ID = uuid.New()
	income.Source = source
	income.Date = time.Date(2024, time.February, day, 9, 0, 0, 0, time.UTC)
	return *income
}

func (s *SummaryServiceTestSuite) TestMonthlyExpenses_UsesRecordedIncome() {
	s.expenseRepo.EXPECT().GetByDateRange(s.userID, s.start, s.end).Return([]models.Expense{
		s.expense(models.CategoryFood, "40.00", 3),
		s.expense(models.CategoryHousing, "1200.00", 1),
		s.expense(models.CategoryFood, "25.50", 29),
	}, nil)
	s.incomeRepo.EXPECT().GetByDateRange(s.userID, s.start, s.end).Return([]models.Income{
		s.income(models.SourceSalary, "3000.00", 1),
		s.income(models.SourceFreelance, "500.00", 15),
	}, nil)

	resp, err := s.service.MonthlyExpenses(s.ctx, s.userID, 2024, 2)

	s.Require().NoError(err)
	s.Equal(2024, resp.Year)
	s.Equal(2, resp.Month)
	s.Equal(3, resp.Count)
	s.Equal("1265.5", resp.TotalAmount.String())
	s.Require().Len(resp.Summary, 2)
	s.Equal(models.CategoryHousing, resp.Summary[0].Key)
	s.Equal(models.CategoryFood, resp.Summary[1].Key)
	s.Equal(2, resp.Summary[1].Count)
	s.Equal("65.5", resp.Summary[1].TotalAmount.String())
	s.Equal("3500", resp.MonthlyIncome.String())
	s.Equal("2234.5", resp.RemainingBudget.String())
}

func (s *SummaryServiceTestSuite) TestMonthlyExpenses_FallsBackToDeclaredIncome() {
	s.expenseRepo.EXPECT().GetByDateRange(s.userID, s.start, s.end).Return([]models.Expense{
		s.expense(models.CategoryShopping, "900", 10),
	}, nil)
	s.incomeRepo.EXPECT().GetByDateRange(s.userID, s.start, s.end).Return(nil, nil)
	s.userRepo.EXPECT().GetByID(s.userID).Return(&models.User{ID: s.userID, MonthlyIncome: decimal.NewFromInt(800)}, nil)

	resp, err := s.service.MonthlyExpenses(s.ctx, s.userID, 2024, 2)

	s.Require().NoError(err)
	s.Equal("800", resp.MonthlyIncome.String())
	s.Equal("-100", resp.RemainingBudget.String())
}

func (s *SummaryServiceTestSuite) TestMonthlyExpenses_EmptyMonth() {
	s.expenseRepo.EXPECT().GetByDateRange(s.userID, s.start, s.end).Return(nil, nil)
	s.incomeRepo.EXPECT().GetByDateRange(s.userID, s.start, s.end).Return(nil, nil)
	s.userRepo.EXPECT().GetByID(s.userID).Return(&models.User{ID: s.userID, MonthlyIncome: decimal.Zero}, nil)

	resp, err := s.service.MonthlyExpenses(s.ctx, s.userID, 2024, 2)

	s.Require().NoError(err)
	s.Empty(resp.Summary)
	s.NotNil(resp.Summary)
	s.True(resp.TotalAmount.IsZero())
	s.True(resp.RemainingBudget.IsZero())
}

func (s *SummaryServiceTestSuite) TestMonthlyExpenses_InvalidPeriod() {
	_, err := s.service.MonthlyExpenses(s.ctx, s.userID, 2024, 13)
	s.ErrorIs(err, ErrInvalidPeriod)

	_, err = s.service.MonthlyExpenses(s.ctx, s.userID, 0, 5)
	s.ErrorIs(err, ErrInvalidPeriod)
}

func (s *SummaryServiceTestSuite) TestMonthlyExpenses_UnknownUser() {
	s.expenseRepo.EXPECT().GetByDateRange(s.userID, s.start, s.end).Return(nil, nil)
	s.incomeRepo.EXPECT().GetByDateRange(s.userID, s.start, s.end).Return(nil, nil)
	s.userRepo.EXPECT().GetByID(s.userID).Return(nil, repositories.ErrUserNotFound)

	_, err := s.service.MonthlyExpenses(s.ctx, s.userID, 2024, 2)
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *SummaryServiceTestSuite) TestMonthlyExpenses_RepositoryError() {
	s.expenseRepo.EXPECT().GetByDateRange(s.userID, s.start, s.end).Return(nil, errors.New("connection reset"))

	_, err := s.service.MonthlyExpenses(s.ctx, s.userID, 2024, 2)
	s.Error(err)
}

func (s *SummaryServiceTestSuite) TestMonthlyIncome() {
	s.incomeRepo.EXPECT().GetByDateRange(s.userID, s.start, s.end).Return([]models.Income{
		s.income(models.SourceSalary, "3000", 1),
		s.income(models.SourceGift, "50", 14),
		s.income(models.SourceSalary, "200", 20),
	}, nil)

	resp, err := s.service.MonthlyIncome(s.ctx, s.userID, 2024, 2)

	s.Require().NoError(err)
	s.Equal(3, resp.Count)
	s.Equal("3250", resp.TotalAmount.String())
	s.Require().Len(resp.Summary, 2)
	s.Equal(models.SourceSalary, resp.Summary[0].Key)
	s.Equal("3200", resp.Summary[0].TotalAmount.String())
}
