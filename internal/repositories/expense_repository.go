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
	ErrExpenseNotFound = errors.New("expense not found")
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}
	if err := r.db.Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// CreateBatch inserts all expenses in one database transaction
func (r *expenseRepository) CreateBatch(expenses []models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&expenses, 100).Error; err != nil {
			return fmt.Errorf("failed to create expense batch: %w", err)
		}
		return nil
	})
}

func (r *expenseRepository) GetByID(id uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.Where("id = ?", id).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &expense, nil
}

func (r *expenseRepository) Update(expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}

	if err := r.db.Omit(clause.Associations).Save(expense).Error; err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

func (r *expenseRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Expense{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

// List returns one page of a user's expenses along with the total number of
// matching rows
func (r *expenseRepository) List(filters models.RecordFilters) ([]models.Expense, int64, error) {
	var expenses []models.Expense
	var total int64

	if err := applyRecordFilters(r.db.Model(&models.Expense{}), filters, "category").
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := applyRecordFilters(r.db.Model(&models.Expense{}), filters, "category")
	if err := applyRecordPaging(query, filters).Find(&expenses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}

	return expenses, total, nil
}

// GetByUserID returns every expense of the user in insertion order
func (r *expenseRepository) GetByUserID(userID uuid.UUID) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get expenses for user: %w", err)
	}
	return expenses, nil
}

// GetByDateRange returns the user's expenses dated within [startDate, endDate]
func (r *expenseRepository) GetByDateRange(userID uuid.UUID, startDate, endDate time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, startDate, endDate).
		Order("created_at ASC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get expenses by date range: %w", err)
	}
	return expenses, nil
}

func applyRecordFilters(query *gorm.DB, filters models.RecordFilters, keyColumn string) *gorm.DB {
	query = query.Where("user_id = ?", filters.UserID)

	if filters.StartDate != nil {
		query = query.Where("date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("date <= ?", *filters.EndDate)
	}
	if filters.Key != "" {
		query = query.Where(keyColumn+" = ?", filters.Key)
	}

	return query
}

func applyRecordPaging(query *gorm.DB, filters models.RecordFilters) *gorm.DB {
	sort := filters.Sort
	if len(sort) == 0 {
		sort = []models.SortField{{Column: "date", Descending: true}}
	}
	for _, field := range sort {
		query = query.Order(field.String())
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = models.DefaultPageLimit
	}
	return query.Offset(filters.Offset).Limit(limit)
}
