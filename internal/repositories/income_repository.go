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
	ErrIncomeNotFound = errors.New("income not found")
)

type incomeRepository struct {
	db *gorm.DB
}

// NewIncomeRepository creates a new income repository
func NewIncomeRepository(db *gorm.DB) IncomeRepositoryInterface {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) Create(income *models.Income) error {
	if income == nil {
		return errors.New("income cannot be nil")
	}
	if err := r.db.Create(income).Error; err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

// CreateBatch inserts all incomes in one database transaction
func (r *incomeRepository) CreateBatch(incomes []models.Income) error {
	if len(incomes) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&incomes, 100).Error; err != nil {
			return fmt.Errorf("failed to create income batch: %w", err)
		}
		return nil
	})
}

func (r *incomeRepository) GetByID(id uuid.UUID) (*models.Income, error) {
	var income models.Income
	if err := r.db.Where("id = ?", id).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIncomeNotFound
		}
		return nil, fmt.Errorf("failed to get income: %w", err)
	}
	return &income, nil
}

func (r *incomeRepository) Update(income *models.Income) error {
	if income == nil {
		return errors.New("income cannot be nil")
	}

	if err := r.db.Omit(clause.Associations).Save(income).Error; err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}
	return nil
}

func (r *incomeRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Income{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete income: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrIncomeNotFound
	}
	return nil
}

// List returns one page of a user's incomes along with the total number of
// matching rows
func (r *incomeRepository) List(filters models.RecordFilters) ([]models.Income, int64, error) {
	var incomes []models.Income
	var total int64

	if err := applyRecordFilters(r.db.Model(&models.Income{}), filters, "source").
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count incomes: %w", err)
	}

	query := applyRecordFilters(r.db.Model(&models.Income{}), filters, "source")
	if err := applyRecordPaging(query, filters).Find(&incomes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list incomes: %w", err)
	}

	return incomes, total, nil
}

// GetByUserID returns every income of the user in insertion order
func (r *incomeRepository) GetByUserID(userID uuid.UUID) ([]models.Income, error) {
	var incomes []models.Income
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&incomes).Error; err != nil {
		return nil, fmt.Errorf("failed to get incomes for user: %w", err)
	}
	return incomes, nil
}

// GetByDateRange returns the user's incomes dated within [startDate, endDate]
func (r *incomeRepository) GetByDateRange(userID uuid.UUID, startDate, endDate time.Time) ([]models.Income, error) {
	var incomes []models.Income
	if err := r.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, startDate, endDate).
		Order("created_at ASC").
		Find(&incomes).Error; err != nil {
		return nil, fmt.Errorf("failed to get incomes by date range: %w", err)
	}
	return incomes, nil
}
