package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"spendtrack/internal/cache"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
)

// CategoryUpdate carries a partial category update; nil fields are unchanged.
type CategoryUpdate struct {
	Name  *string
	Color *string
}

// CategoryService exposes owner-scoped category operations.
type CategoryService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
	Create(ctx context.Context, userID uuid.UUID, name, color string) (*model.Category, error)
	Update(ctx context.Context, id, userID uuid.UUID, update CategoryUpdate) (*model.Category, error)
	// Delete removes the category; referencing expenses become uncategorized.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type categoryService struct {
	categories repository.CategoryRepository
	cache      SummaryCache
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories repository.CategoryRepository, summaries SummaryCache) CategoryService {
	if summaries == nil {
		summaries = (*cache.Client)(nil)
	}
	return &categoryService{categories: categories, cache: summaries}
}

func (s *categoryService) List(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	categories, err := s.categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Create(ctx context.Context, userID uuid.UUID, name, color string) (*model.Category, error) {
	if err := s.checkNameFree(ctx, userID, name); err != nil {
		return nil, err
	}

	if color == "" {
		color = model.DefaultCategoryColor
	}
	category := &model.Category{
		UserID: userID,
		Name:   name,
		Color:  color,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id, userID uuid.UUID, update CategoryUpdate) (*model.Category, error) {
	category, err := s.categories.FindOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	if update.Name != nil && *update.Name != category.Name {
		if err := s.checkNameFree(ctx, userID, *update.Name); err != nil {
			return nil, err
		}
		category.Name = *update.Name
	}
	if update.Color != nil {
		category.Color = *update.Color
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	// Cached summaries embed the category's name and color in their buckets.
	s.invalidateReports(ctx, userID)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.categories.DeleteOwned(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}

	// The formerly referencing expenses now fold into the Uncategorized bucket
	// in any month the category was used; drop all of the owner's summaries.
	s.invalidateReports(ctx, userID)
	return nil
}

func (s *categoryService) invalidateReports(ctx context.Context, userID uuid.UUID) {
	_ = s.cache.DeletePrefix(ctx, reportCachePrefix(userID))
}

// checkNameFree reports a conflict when the owner already has a category with
// this name. The unique index on (user_id, name) backs this up under races.
func (s *categoryService) checkNameFree(ctx context.Context, userID uuid.UUID, name string) error {
	existing, err := s.categories.FindOwnedByName(ctx, userID, name)
	if err == nil && existing != nil {
		return apperrors.ErrDuplicateCategory
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check category name: %w", err)
	}
	return nil
}
