package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/aggregation"
	"github.com/11Jagan/Expense-Tracker/internal/models"
	"github.com/11Jagan/Expense-Tracker/internal/repositories/repository_mocks"
	"github.com/11Jagan/Expense-Tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportServiceTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	expenseRepo *repository_mocks.MockExpenseRepositoryInterface
	incomeRepo  *repository_mocks.MockIncomeRepositoryInterface
	service     ReportServiceInterface
	ctx         context.Context
	userID      uuid.UUID
	now         time.Time
	expenses    []models.Expense
	incomes     []models.Income
}

func (s *ReportServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.expenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.incomeRepo = repository_mocks.NewMockIncomeRepositoryInterface(s.ctrl)
	s.ctx = context.Background()
	s.userID = uuid.New()
	s.now = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	metrics := service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	metrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any()).AnyTimes()

	s.service = NewReportService(s.expenseRepo, s.incomeRepo, metrics, slog.Default(), func() time.Time { return s.now })

	s.expenses = []models.Expense{
		s.expense(models.CategoryHousing, "900", time.June, 1),
		s.expense(models.CategoryFood, "100", time.June, 10),
		s.expense(models.CategoryFood, "500", time.May, 5),
	}
	s.incomes = []models.Income{
		s.income("2000", time.June, 1),
		s.income("2000", time.May, 1),
	}
}

func (s *ReportServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReportServiceSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}

func (s *ReportServiceTestSuite) expense(category, amount string, month time.Month, day int) models.Expense {
	return models.Expense{
		ID:       uuid.New(),
		UserID:   s.userID,
		Title:    category,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     time.Date(2024, month, day, 10, 0, 0, 0, time.UTC),
	}
}

func (s *ReportServiceTestSuite) income(amount string, month time.Month, day int) models.Income {
	income := models.NewIncome(s.userID, "Salary", decimal.RequireFromString(amount))
	income.ID = uuid.New()
	income.Date = time.Date(2024, month, day, 9, 0, 0, 0, time.UTC)
	return *income
}

func (s *ReportServiceTestSuite) expectLoadAll() {
	s.expenseRepo.EXPECT().GetByUserID(s.userID).Return(s.expenses, nil)
	s.incomeRepo.EXPECT().GetByUserID(s.userID).Return(s.incomes, nil)
}

func (s *ReportServiceTestSuite) TestDashboard_Monthly() {
	s.expectLoadAll()

	resp, err := s.service.Dashboard(s.ctx, s.userID, aggregation.Monthly())

	s.Require().NoError(err)
	s.Equal("monthly", resp.Period)
	s.Equal("1000", resp.TotalExpenses.String())
	s.Equal("2000", resp.TotalIncome.String())
	s.Equal("1000", resp.NetBalance.String())
	s.Equal("50", resp.SavingsRate.String())
	s.Equal(2, resp.ExpenseCount)
	s.Equal(1, resp.IncomeCount)

	s.Require().Len(resp.ExpenseBreakdown, 2)
	s.Equal(models.CategoryHousing, resp.ExpenseBreakdown[0].Key)
	s.Equal("90", resp.ExpenseBreakdown[0].Percentage.String())
	s.Equal("0.9", resp.ExpenseBreakdown[0].PerUnit.String())
	s.Equal(models.CategoryFood, resp.ExpenseBreakdown[1].Key)

	s.Require().NotNil(resp.Previous)
	s.Equal("500", resp.Previous.TotalExpenses.String())
	s.Equal("2000", resp.Previous.TotalIncome.String())
	s.True(resp.Previous.ExpenseChange.HasBaseline)
	s.Equal("100", resp.Previous.ExpenseChange.Percentage.String())
	s.True(resp.Previous.IncomeChange.Percentage.IsZero())
}

func (s *ReportServiceTestSuite) TestDashboard_AllTime() {
	s.expectLoadAll()

	resp, err := s.service.Dashboard(s.ctx, s.userID, nil)

	s.Require().NoError(err)
	s.Equal("all", resp.Period)
	s.Equal("1500", resp.TotalExpenses.String())
	s.Equal("4000", resp.TotalIncome.String())
	s.Equal(3, resp.ExpenseCount)
	s.Nil(resp.Previous)
}

func (s *ReportServiceTestSuite) TestDashboard_NoIncomeMeansZeroSavingsRate() {
	s.expenseRepo.EXPECT().GetByUserID(s.userID).Return(s.expenses, nil)
	s.incomeRepo.EXPECT().GetByUserID(s.userID).Return(nil, nil)

	resp, err := s.service.Dashboard(s.ctx, s.userID, aggregation.Yearly())

	s.Require().NoError(err)
	s.True(resp.SavingsRate.IsZero())
	s.Equal("-1500", resp.NetBalance.String())
	s.Empty(resp.IncomeBreakdown)
	s.False(resp.Previous.IncomeChange.HasBaseline)
}

func (s *ReportServiceTestSuite) TestDashboard_InvertedRange() {
	s.expectLoadAll()

	_, err := s.service.Dashboard(s.ctx, s.userID, aggregation.Range(s.now, s.now.AddDate(0, -1, 0)))
	s.ErrorIs(err, ErrInvalidRange)
}

func (s *ReportServiceTestSuite) TestTrend() {
	start := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := aggregation.MonthWindow(2024, time.June).End

	s.expenseRepo.EXPECT().GetByDateRange(s.userID, start, end).Return(s.expenses, nil)
	s.incomeRepo.EXPECT().GetByDateRange(s.userID, start, end).Return(s.incomes, nil)

	resp, err := s.service.Trend(s.ctx, s.userID, 3)

	s.Require().NoError(err)
	s.Equal(3, resp.Months)
	s.Require().Len(resp.Points, 3)

	s.Equal("2024-04", resp.Points[0].Label)
	s.True(resp.Points[0].Expenses.IsZero())
	s.True(resp.Points[0].Income.IsZero())

	s.Equal("2024-05", resp.Points[1].Label)
	s.Equal(5, resp.Points[1].Month)
	s.Equal("500", resp.Points[1].Expenses.String())
	s.Equal("1500", resp.Points[1].NetBalance.String())

	s.Equal("2024-06", resp.Points[2].Label)
	s.Equal("1000", resp.Points[2].Expenses.String())
	s.Equal("2000", resp.Points[2].Income.String())
}

func (s *ReportServiceTestSuite) TestTrend_DefaultMonthsCrossesYear() {
	s.now = time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	start := time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC)

	s.expenseRepo.EXPECT().GetByDateRange(s.userID, start, gomock.Any()).Return(nil, nil)
	s.incomeRepo.EXPECT().GetByDateRange(s.userID, start, gomock.Any()).Return(nil, nil)

	resp, err := s.service.Trend(s.ctx, s.userID, 0)

	s.Require().NoError(err)
	s.Equal(DefaultTrendMonths, resp.Months)
	s.Require().Len(resp.Points, DefaultTrendMonths)
	s.Equal("2023-09", resp.Points[0].Label)
	s.Equal("2024-02", resp.Points[5].Label)
}

func (s *ReportServiceTestSuite) TestTrend_InvalidMonths() {
	_, err := s.service.Trend(s.ctx, s.userID, MaxTrendMonths+1)
	s.ErrorIs(err, ErrInvalidMonths)

	_, err = s.service.Trend(s.ctx, s.userID, -1)
	s.ErrorIs(err, ErrInvalidMonths)
}
