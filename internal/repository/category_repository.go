package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"spendtrack/internal/model"
)

// CategoryRepository defines category persistence operations. Every read and
// write is scoped by the owning user id.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*model.Category, error)
	FindOwnedByName(ctx context.Context, userID uuid.UUID, name string) (*model.Category, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
	// DeleteOwned removes the category and clears the reference from any
	// expenses that point at it, in one transaction. Returns
	// gorm.ErrRecordNotFound when no owned row matches.
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository builds a GORM-backed repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindOwnedByName(ctx context.Context, userID uuid.UUID, name string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Expense{}).
			Where("category_id = ? AND user_id = ?", id, userID).
			Update("category_id", nil).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
