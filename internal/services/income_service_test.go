package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/dto"
	"github.com/11Jagan/Expense-Tracker/internal/events"
	"github.com/11Jagan/Expense-Tracker/internal/models"
	"github.com/11Jagan/Expense-Tracker/internal/repositories"
	"github.com/11Jagan/Expense-Tracker/internal/repositories/repository_mocks"
	"github.com/11Jagan/Expense-Tracker/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type IncomeServiceTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	incomeRepo *repository_mocks.MockIncomeRepositoryInterface
	publisher  *service_mocks.MockPublisher
	metrics    *service_mocks.MockMetricsRecorderInterface
	service    IncomeServiceInterface
	ctx        context.Context
	userID     uuid.UUID
	now        time.Time
}

func (s *IncomeServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.incomeRepo = repository_mocks.NewMockIncomeRepositoryInterface(s.ctrl)
	s.publisher = service_mocks.NewMockPublisher(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.ctx = context.Background()
	s.userID = uuid.New()
	s.now = time.Date(2024, time.May, 2, 9, 0, 0, 0, time.UTC)

	s.service = NewIncomeService(s.incomeRepo, s.publisher, s.metrics, slog.Default(), func() time.Time { return s.now })
}

func (s *IncomeServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestIncomeServiceSuite(t *testing.T) {
	suite.Run(t, new(IncomeServiceTestSuite))
}

func (s *IncomeServiceTestSuite) expectNotify(action events.Action) {
	s.metrics.EXPECT().
		IncrementCounter(MetricRecordMutation, map[string]string{"kind": "income", "action": string(action)}).
		Times(1)
	s.publisher.EXPECT().PublishRecordEvent(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, event events.RecordEvent) error {
		s.Equal(events.KindIncome, event.Kind)
		s.Equal(action, event.Action)
		return nil
	})
}

func (s *IncomeServiceTestSuite) TestCreate_DefaultsToMonthlySalary() {
	amount := decimal.RequireFromString("5000")

	s.incomeRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.expectNotify(events.ActionCreated)

	income, err := s.service.Create(s.ctx, s.userID, &dto.IncomeRequest{Title: "Paycheck", Amount: &amount})

	s.Require().NoError(err)
	s.Equal(models.SourceSalary, income.Source)
	s.True(income.IsRecurring)
	s.Equal(models.FrequencyMonthly, income.RecurringFrequency)
	s.Equal(s.now, income.Date)
}

func (s *IncomeServiceTestSuite) TestCreate_OneOffIncome() {
	amount := decimal.NewFromFloat(gofakeit.Price(50, 900)).Round(2)
	recurring := false

	s.incomeRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.expectNotify(events.ActionCreated)

	income, err := s.service.Create(s.ctx, s.userID, &dto.IncomeRequest{
		Title:       "Logo design",
		Amount:      &amount,
		Source:      models.SourceFreelance,
		IsRecurring: &recurring,
	})

	s.Require().NoError(err)
	s.Equal(models.SourceFreelance, income.Source)
	s.False(income.IsRecurring)
	s.Equal(models.FrequencyNone, income.RecurringFrequency)
}

func (s *IncomeServiceTestSuite) TestCreate_InvalidAmount() {
	negative := decimal.NewFromInt(-1)

	_, err := s.service.Create(s.ctx, s.userID, &dto.IncomeRequest{Title: "Refund", Amount: &negative})
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *IncomeServiceTestSuite) TestUpdate_KeepsSourceAndRecurring() {
	stored := models.NewIncome(s.userID, "Salary", decimal.NewFromInt(4000))
	stored.ID = uuid.New()
	stored.Source = models.SourceBusiness
	amount := decimal.NewFromInt(4500)

	s.incomeRepo.EXPECT().GetByID(stored.ID).Return(stored, nil)
	s.incomeRepo.EXPECT().Update(stored).Return(nil)
	s.expectNotify(events.ActionUpdated)

	income, err := s.service.Update(s.ctx, s.userID, stored.ID, &dto.IncomeRequest{Title: "Raise", Amount: &amount})

	s.Require().NoError(err)
	s.Equal(models.SourceBusiness, income.Source)
	s.True(income.IsRecurring)
	s.True(amount.Equal(income.Amount))
}

func (s *IncomeServiceTestSuite) TestGetAndDelete_Ownership() {
	missing := uuid.New()
	s.incomeRepo.EXPECT().GetByID(missing).Return(nil, repositories.ErrIncomeNotFound)

	_, err := s.service.Get(s.ctx, s.userID, missing)
	s.ErrorIs(err, ErrNotFound)

	foreign := models.NewIncome(uuid.New(), "Not mine", decimal.NewFromInt(1))
	foreign.ID = uuid.New()
	s.incomeRepo.EXPECT().GetByID(foreign.ID).Return(foreign, nil)

	s.ErrorIs(s.service.Delete(s.ctx, s.userID, foreign.ID), ErrForbidden)
}

func (s *IncomeServiceTestSuite) TestDelete() {
	stored := models.NewIncome(s.userID, "Gift", decimal.NewFromInt(100))
	stored.ID = uuid.New()

	s.incomeRepo.EXPECT().GetByID(stored.ID).Return(stored, nil)
	s.incomeRepo.EXPECT().Delete(stored.ID).Return(nil)
	s.expectNotify(events.ActionDeleted)

	s.NoError(s.service.Delete(s.ctx, s.userID, stored.ID))
}

func (s *IncomeServiceTestSuite) TestList_FiltersBySource() {
	s.incomeRepo.EXPECT().List(gomock.Any()).DoAndReturn(func(f models.RecordFilters) ([]models.Income, int64, error) {
		s.Equal(models.SourceFreelance, f.Key)
		s.Equal([]models.SortField{{Column: "source", Descending: false}}, f.Sort)
		return []models.Income{*models.NewIncome(s.userID, "Gig", decimal.NewFromInt(300))}, 1, nil
	})

	page, err := s.service.List(s.ctx, s.userID, &dto.RecordQuery{Key: models.SourceFreelance, Sort: "source"})

	s.Require().NoError(err)
	s.Len(page.Items, 1)
	s.Equal(1, page.Pages)

	_, err = s.service.List(s.ctx, s.userID, &dto.RecordQuery{Sort: "category"})
	s.ErrorIs(err, ErrInvalidSort)
}
