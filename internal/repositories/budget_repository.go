package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
)

type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepositoryInterface {
	return &budgetRepository{db: db}
}

// Upsert creates the budget or, when one already exists for the same user,
// category and month, replaces its amount. On return budget holds the stored
// row.
func (r *budgetRepository) Upsert(budget *models.Budget) error {
	if budget == nil {
		return errors.New("budget cannot be nil")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "category"},
				{Name: "month"},
				{Name: "year"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"amount":     budget.Amount,
				"updated_at": time.Now(),
			}),
		}).Create(budget).Error; err != nil {
			return err
		}

		var stored models.Budget
		if err := tx.Where("user_id = ? AND category = ? AND month = ? AND year = ?",
			budget.UserID, budget.Category, budget.Month, budget.Year).
			First(&stored).Error; err != nil {
			return err
		}
		*budget = stored
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}

	return nil
}

func (r *budgetRepository) GetByID(id uuid.UUID) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.Where("id = ?", id).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &budget, nil
}

// GetByUserAndPeriod returns the user's budgets for a month ordered by
// category
func (r *budgetRepository) GetByUserAndPeriod(userID uuid.UUID, year, month int) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := r.db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Order("category ASC").
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to get budgets: %w", err)
	}
	return budgets, nil
}

func (r *budgetRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Budget{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete budget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}
