package handlers

import (
	"net/http"
	"testing"

	"github.com/11Jagan/Expense-Tracker/internal/dto"
	"github.com/11Jagan/Expense-Tracker/internal/services"
	"github.com/11Jagan/Expense-Tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestDevHandler(t *testing.T) {
	suite.Run(t, new(DevHandlerSuite))
}

type DevHandlerSuite struct {
	handlerSuite
	demoService *service_mocks.MockDemoDataServiceInterface
	handler     *DevHandler
}

func (s *DevHandlerSuite) SetupTest() {
	s.setup()
	s.demoService = service_mocks.NewMockDemoDataServiceInterface(s.ctrl)
	s.handler = NewDevHandler(s.demoService)
}

func (s *DevHandlerSuite) TestGenerateDemoData() {
	s.demoService.EXPECT().Generate(gomock.Any(), s.userID, 60, 20).Return(&dto.DemoDataResponse{
		Expenses:      26,
		Incomes:       4,
		TotalExpenses: decimal.NewFromInt(2500),
		TotalIncome:   decimal.NewFromInt(7000),
		Days:          60,
	}, nil)

	c, rec := s.request(http.MethodPost, "/api/v1/dev/generate-demo-data?days=60&count=20", nil)
	s.NoError(s.handler.GenerateDemoData(c))

	s.Equal(http.StatusCreated, rec.Code)
	var got dto.DemoDataResponse
	s.data(rec, &got)
	s.Equal(26, got.Expenses)
	s.Equal(60, got.Days)
}

func (s *DevHandlerSuite) TestGenerateDemoData_Defaults() {
	s.demoService.EXPECT().Generate(gomock.Any(), s.userID, 0, 0).Return(&dto.DemoDataResponse{}, nil)

	c, rec := s.request(http.MethodPost, "/api/v1/dev/generate-demo-data", nil)
	s.NoError(s.handler.GenerateDemoData(c))

	s.Equal(http.StatusCreated, rec.Code)
}

func (s *DevHandlerSuite) TestGenerateDemoData_OutsideDevelopment() {
	s.demoService.EXPECT().Generate(gomock.Any(), s.userID, 0, 0).Return(nil, services.ErrNotAvailable)

	c, rec := s.request(http.MethodPost, "/api/v1/dev/generate-demo-data", nil)
	s.NoError(s.handler.GenerateDemoData(c))

	s.assertError(rec, http.StatusForbidden, "SYSTEM_008")
}

func (s *DevHandlerSuite) TestGenerateDemoData_BadParameters() {
	s.demoService.EXPECT().Generate(gomock.Any(), s.userID, 1000, 0).Return(nil, services.ErrInvalidDemoParameters)

	c, rec := s.request(http.MethodPost, "/api/v1/dev/generate-demo-data?days=1000", nil)
	s.NoError(s.handler.GenerateDemoData(c))
	s.assertError(rec, http.StatusBadRequest, "VALIDATION_004")

	c, rec = s.request(http.MethodPost, "/api/v1/dev/generate-demo-data?count=lots", nil)
	s.NoError(s.handler.GenerateDemoData(c))
	s.assertError(rec, http.StatusBadRequest, "VALIDATION_003")
}
