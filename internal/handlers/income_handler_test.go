package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/dto"
	"github.com/11Jagan/Expense-Tracker/internal/models"
	"github.com/11Jagan/Expense-Tracker/internal/services"
	"github.com/11Jagan/Expense-Tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestIncomeHandler(t *testing.T) {
	suite.Run(t, new(IncomeHandlerSuite))
}

type IncomeHandlerSuite struct {
	handlerSuite
	incomeService  *service_mocks.MockIncomeServiceInterface
	summaryService *service_mocks.MockSummaryServiceInterface
	handler        *IncomeHandler
}

func (s *IncomeHandlerSuite) SetupTest() {
	s.setup()
	s.incomeService = service_mocks.NewMockIncomeServiceInterface(s.ctrl)
	s.summaryService = service_mocks.NewMockSummaryServiceInterface(s.ctrl)
	s.handler = NewIncomeHandler(s.incomeService, s.summaryService)
}

func (s *IncomeHandlerSuite) TestCreate() {
	income := &models.Income{
		ID:                 uuid.New(),
		UserID:             s.userID,
		Title:              "March salary",
		Amount:             decimal.NewFromInt(3500),
		Source:             models.SourceSalary,
		Date:               time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
		IsRecurring:        true,
		RecurringFrequency: models.FrequencyMonthly,
	}
	s.incomeService.EXPECT().
		Create(gomock.Any(), s.userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, req *dto.IncomeRequest) (*models.Income, error) {
			s.Nil(req.IsRecurring)
			s.Empty(req.Source)
			return income, nil
		})

	c, rec := s.request(http.MethodPost, "/api/v1/income", map[string]any{"title": "March salary", "amount": 3500})
	s.NoError(s.handler.Create(c))

	s.Equal(http.StatusCreated, rec.Code)
	var got dto.IncomeResponse
	s.data(rec, &got)
	s.Equal("Salary", got.Source)
	s.True(got.IsRecurring)
	s.Equal("Monthly", got.RecurringFrequency)
}

func (s *IncomeHandlerSuite) TestCreate_InvalidSource() {
	c, rec := s.request(http.MethodPost, "/api/v1/income", map[string]any{
		"title":              "Bonus",
		"amount":             10.001,
		"source":             "Lottery",
		"recurringFrequency": "Hourly",
	})
	s.NoError(s.handler.Create(c))

	resp := s.assertError(rec, http.StatusBadRequest, "VALIDATION_001")
	s.Equal([]string{
		"amount: must have at most 2 decimal places",
		"recurringFrequency: must be one of: Daily, Weekly, Monthly, Yearly, None",
		"source: must be one of: Salary, Freelance, Business, Investment, Gift, Other",
	}, resp.Error.Details)
}

func (s *IncomeHandlerSuite) TestList_FiltersBySource() {
	s.incomeService.EXPECT().
		List(gomock.Any(), s.userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, q *dto.RecordQuery) (*dto.Page[dto.IncomeResponse], error) {
			s.Equal("Freelance", q.Key)
			s.Equal("2024-01-01", q.StartDate)
			s.Equal("2024-03-31", q.EndDate)
			return &dto.Page[dto.IncomeResponse]{Items: []dto.IncomeResponse{}, Page: 1, Pages: 0}, nil
		})

	c, rec := s.request(http.MethodGet, "/api/v1/income?source=Freelance&startDate=2024-01-01&endDate=2024-03-31", nil)
	s.NoError(s.handler.List(c))

	s.Equal(http.StatusOK, rec.Code)
}

func (s *IncomeHandlerSuite) TestList_UnknownSource() {
	c, rec := s.request(http.MethodGet, "/api/v1/income?source=Food", nil)
	s.NoError(s.handler.List(c))

	s.assertError(rec, http.StatusBadRequest, "VALIDATION_003")
}

func (s *IncomeHandlerSuite) TestOwnershipErrors() {
	id := uuid.New()
	s.incomeService.EXPECT().Get(gomock.Any(), s.userID, id).Return(nil, services.ErrForbidden)
	s.incomeService.EXPECT().Delete(gomock.Any(), s.userID, id).Return(services.ErrNotFound)

	c, rec := s.request(http.MethodGet, "/", nil)
	s.NoError(s.handler.Get(withID(c, id.String())))
	s.assertError(rec, http.StatusForbidden, "INCOME_002")

	c, rec = s.request(http.MethodDelete, "/", nil)
	s.NoError(s.handler.Delete(withID(c, id.String())))
	s.assertError(rec, http.StatusNotFound, "INCOME_001")
}

func (s *IncomeHandlerSuite) TestUpdate_InvalidAmount() {
	id := uuid.New()
	s.incomeService.EXPECT().Update(gomock.Any(), s.userID, id, gomock.Any()).Return(nil, services.ErrInvalidAmount)

	c, rec := s.request(http.MethodPut, "/", map[string]any{"title": "Gift", "amount": 0})
	s.NoError(s.handler.Update(withID(c, id.String())))

	s.assertError(rec, http.StatusBadRequest, "INCOME_003")
}

func (s *IncomeHandlerSuite) TestMonthlySummary() {
	s.summaryService.EXPECT().MonthlyIncome(gomock.Any(), s.userID, 2024, 3).Return(&dto.IncomeSummaryResponse{
		TotalAmount: decimal.NewFromInt(4200),
		Count:       2,
		Year:        2024,
		Month:       3,
	}, nil)

	c, rec := s.request(http.MethodGet, "/api/v1/income/summary/monthly?year=2024&month=3", nil)
	s.NoError(s.handler.MonthlySummary(c))

	s.Equal(http.StatusOK, rec.Code)
	var got dto.IncomeSummaryResponse
	s.data(rec, &got)
	s.Equal(2, got.Count)
	s.True(got.TotalAmount.Equal(decimal.NewFromInt(4200)))
}
