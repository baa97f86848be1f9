package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"spendtrack/internal/model"
)

// ExpenseFilter narrows an expense listing. Zero values mean "no filter";
// From and To are inclusive calendar dates.
type ExpenseFilter struct {
	From       *model.Date
	To         *model.Date
	CategoryID *uuid.UUID
	Query      string
	Page       int
	Limit      int
}

// ExpenseRepository defines expense persistence operations, all scoped by the
// owning user id.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	Update(ctx context.Context, expense *model.Expense) error
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*model.Expense, error)
	// List returns one page of expenses plus the total row count for the
	// filter, newest spending first.
	List(ctx context.Context, userID uuid.UUID, filter ExpenseFilter) ([]model.Expense, int64, error)
	// ListByDateRange returns every expense with spent_at in [from, to],
	// inclusive both ends, with categories preloaded. Used by the report
	// aggregator.
	ListByDateRange(ctx context.Context, userID uuid.UUID, from, to model.Date) ([]model.Expense, error)
	// DeleteOwned returns gorm.ErrRecordNotFound when no owned row matches.
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) error
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository builds a GORM-backed repository.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) Update(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *expenseRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) List(ctx context.Context, userID uuid.UUID, filter ExpenseFilter) ([]model.Expense, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Expense{}).Where("user_id = ?", userID)

	if filter.From != nil {
		query = query.Where("spent_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("spent_at <= ?", *filter.To)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Query != "" {
		query = query.Where("note LIKE ?", "%"+filter.Query+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}

	var expenses []model.Expense
	if err := query.
		Preload("Category").
		Order("spent_at DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&expenses).Error; err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

func (r *expenseRepository) ListByDateRange(ctx context.Context, userID uuid.UUID, from, to model.Date) ([]model.Expense, error) {
	var expenses []model.Expense
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND spent_at >= ? AND spent_at <= ?", userID, from, to).
		Order("spent_at, created_at").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
