package repositories

import (
	"testing"

	"github.com/11Jagan/Expense-Tracker/internal/database"
	"github.com/11Jagan/Expense-Tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestBudgetRepository(t *testing.T) {
	suite.Run(t, new(BudgetRepositorySuite))
}

type BudgetRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo BudgetRepositoryInterface
	user *models.User
}

func (s *BudgetRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewBudgetRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, "budgets@example.com")
}

func (s *BudgetRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *BudgetRepositorySuite) TestUpsert_CreatesThenReplaces() {
	first := &models.Budget{UserID: s.user.ID, Category: models.CategoryGroceries, Amount: decimal.NewFromInt(300), Month: 3, Year: 2024}
	s.Require().NoError(s.repo.Upsert(first))
	s.NotEqual(uuid.Nil, first.ID)

	second := &models.Budget{UserID: s.user.ID, Category: models.CategoryGroceries, Amount: decimal.NewFromInt(450), Month: 3, Year: 2024}
	s.Require().NoError(s.repo.Upsert(second))

	// the existing row is kept and its amount replaced
	s.Equal(first.ID, second.ID)
	s.True(second.Amount.Equal(decimal.NewFromInt(450)))

	budgets, err := s.repo.GetByUserAndPeriod(s.user.ID, 2024, 3)
	s.NoError(err)
	s.Require().Len(budgets, 1)
	s.True(budgets[0].Amount.Equal(decimal.NewFromInt(450)))
}

func (s *BudgetRepositorySuite) TestGetByUserAndPeriod() {
	for _, b := range []models.Budget{
		{UserID: s.user.ID, Category: models.CategoryHousing, Amount: decimal.NewFromInt(1200), Month: 3, Year: 2024},
		{UserID: s.user.ID, Category: models.CategoryFood, Amount: decimal.NewFromInt(150), Month: 3, Year: 2024},
		{UserID: s.user.ID, Category: models.CategoryFood, Amount: decimal.NewFromInt(150), Month: 4, Year: 2024},
	} {
		b := b
		s.Require().NoError(s.repo.Upsert(&b))
	}

	budgets, err := s.repo.GetByUserAndPeriod(s.user.ID, 2024, 3)
	s.NoError(err)
	s.Require().Len(budgets, 2)
	s.Equal(models.CategoryFood, budgets[0].Category)
	s.Equal(models.CategoryHousing, budgets[1].Category)

	none, err := s.repo.GetByUserAndPeriod(uuid.New(), 2024, 3)
	s.NoError(err)
	s.Empty(none)
}

func (s *BudgetRepositorySuite) TestGetByIDAndDelete() {
	b := &models.Budget{UserID: s.user.ID, Category: models.CategoryUtilities, Amount: decimal.NewFromInt(90), Month: 1, Year: 2025}
	s.Require().NoError(s.repo.Upsert(b))

	found, err := s.repo.GetByID(b.ID)
	s.NoError(err)
	s.Equal(models.CategoryUtilities, found.Category)

	s.NoError(s.repo.Delete(b.ID))
	_, err = s.repo.GetByID(b.ID)
	s.ErrorIs(err, ErrBudgetNotFound)
	s.ErrorIs(s.repo.Delete(b.ID), ErrBudgetNotFound)
}

func (s *BudgetRepositorySuite) TestUpsert_Nil() {
	s.Error(s.repo.Upsert(nil))
}
