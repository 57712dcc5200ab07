package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/models"
	"github.com/11Jagan/Expense-Tracker/internal/repositories/repository_mocks"
	"github.com/11Jagan/Expense-Tracker/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DemoDataServiceTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	expenseRepo *repository_mocks.MockExpenseRepositoryInterface
	incomeRepo  *repository_mocks.MockIncomeRepositoryInterface
	metrics     *service_mocks.MockMetricsRecorderInterface
	ctx         context.Context
	userID      uuid.UUID
	now         time.Time
}

func (s *DemoDataServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.expenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.incomeRepo = repository_mocks.NewMockIncomeRepositoryInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.ctx = context.Background()
	s.userID = uuid.New()
	s.now = time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
}

func (s *DemoDataServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestDemoDataServiceSuite(t *testing.T) {
	suite.Run(t, new(DemoDataServiceTestSuite))
}

func (s *DemoDataServiceTestSuite) newService(enabled bool) *demoDataService {
	return newDemoDataService(s.expenseRepo, s.incomeRepo, enabled, s.metrics, slog.Default(),
		func() time.Time { return s.now }, gofakeit.New(42))
}

func (s *DemoDataServiceTestSuite) TestGenerate() {
	start := s.now.AddDate(0, 0, -60)
	var expenses []models.Expense
	var incomes []models.Income

	s.expenseRepo.EXPECT().CreateBatch(gomock.Any()).DoAndReturn(func(batch []models.Expense) error {
		expenses = batch
		return nil
	})
	s.incomeRepo.EXPECT().CreateBatch(gomock.Any()).DoAndReturn(func(batch []models.Income) error {
		incomes = batch
		return nil
	})
	s.metrics.EXPECT().IncrementCounter(MetricDemoDataRecords, map[string]string{"kind": "expense"})
	s.metrics.EXPECT().IncrementCounter(MetricDemoDataRecords, map[string]string{"kind": "income"})

	resp, err := s.newService(true).Generate(s.ctx, s.userID, 60, 20)

	s.Require().NoError(err)
	s.Equal(60, resp.Days)
	s.Equal(len(expenses), resp.Expenses)
	s.Equal(len(incomes), resp.Incomes)

	// 20 random expenses plus at least the four bills of February
	s.GreaterOrEqual(len(expenses), 24)
	// salaries on Feb 1 and Mar 1 plus two one-off incomes
	s.Len(incomes, 4)

	total := decimal.Zero
	for _, e := range expenses {
		s.Equal(s.userID, e.UserID)
		s.NoError(e.Validate())
		s.False(e.Date.Before(start), e.Date)
		s.False(e.Date.After(s.now), e.Date)
		s.True(e.Amount.IsPositive())
		total = total.Add(e.Amount)
	}
	s.True(total.Equal(resp.TotalExpenses))

	salaries := 0
	for _, i := range incomes {
		s.NoError(i.Validate())
		if i.Source == models.SourceSalary && i.IsRecurring {
			salaries++
			s.Equal(1, i.Date.Day())
			s.Equal(9, i.Date.Hour())
		}
	}
	s.Equal(2, salaries)
}

func (s *DemoDataServiceTestSuite) TestGenerate_Defaults() {
	s.expenseRepo.EXPECT().CreateBatch(gomock.Any()).Return(nil)
	s.incomeRepo.EXPECT().CreateBatch(gomock.Any()).Return(nil)
	s.metrics.EXPECT().IncrementCounter(MetricDemoDataRecords, gomock.Any()).Times(2)

	resp, err := s.newService(true).Generate(s.ctx, s.userID, 0, 0)

	s.Require().NoError(err)
	s.Equal(DefaultDemoDays, resp.Days)
	s.GreaterOrEqual(resp.Expenses, DefaultDemoCount)
}

func (s *DemoDataServiceTestSuite) TestGenerate_Disabled() {
	_, err := s.newService(false).Generate(s.ctx, s.userID, 10, 10)
	s.ErrorIs(err, ErrNotAvailable)
}

func (s *DemoDataServiceTestSuite) TestGenerate_InvalidParameters() {
	service := s.newService(true)

	_, err := service.Generate(s.ctx, s.userID, MaxDemoDays+1, 10)
	s.ErrorIs(err, ErrInvalidDemoParameters)

	_, err = service.Generate(s.ctx, s.userID, 10, MaxDemoCount+1)
	s.ErrorIs(err, ErrInvalidDemoParameters)

	_, err = service.Generate(s.ctx, s.userID, -1, 10)
	s.ErrorIs(err, ErrInvalidDemoParameters)
}

func (s *DemoDataServiceTestSuite) TestGenerate_StoreFailure() {
	s.expenseRepo.EXPECT().CreateBatch(gomock.Any()).Return(errors.New("disk full"))

	_, err := s.newService(true).Generate(s.ctx, s.userID, 5, 5)
	s.Error(err)
}

func (s *DemoDataServiceTestSuite) TestTruncateTitle() {
	long := make([]rune, models.MaxTitleLength+10)
	for i := range long {
		long[i] = 'é'
	}

	s.Len([]rune(truncateTitle(string(long))), models.MaxTitleLength)
	s.Equal("short", truncateTitle("short"))
}
