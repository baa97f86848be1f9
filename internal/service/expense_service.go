package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"spendtrack/internal/cache"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
)

// ExpenseInput carries the fields of a new expense. Amount is a decimal
// string like "12.50" and is stored as integer cents.
type ExpenseInput struct {
	Amount     string
	Currency   string
	Note       string
	SpentAt    string
	CategoryID *uuid.UUID
}

// ExpenseUpdate carries a partial expense update; nil fields are unchanged.
// ClearCategory uncategorizes the expense regardless of CategoryID.
type ExpenseUpdate struct {
	Amount        *string
	Currency      *string
	Note          *string
	SpentAt       *string
	CategoryID    *uuid.UUID
	ClearCategory bool
}

// ExpensePage is one page of an expense listing.
type ExpensePage struct {
	Expenses []model.Expense `json:"expenses"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
	Pages    int             `json:"pages"`
}

// ExpenseService exposes owner-scoped expense operations.
type ExpenseService interface {
	Create(ctx context.Context, userID uuid.UUID, input ExpenseInput) (*model.Expense, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*model.Expense, error)
	List(ctx context.Context, userID uuid.UUID, filter repository.ExpenseFilter) (*ExpensePage, error)
	Update(ctx context.Context, id, userID uuid.UUID, update ExpenseUpdate) (*model.Expense, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type expenseService struct {
	expenses   repository.ExpenseRepository
	categories repository.CategoryRepository
	cache      SummaryCache
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenses repository.ExpenseRepository, categories repository.CategoryRepository, summaries SummaryCache) ExpenseService {
	if summaries == nil {
		summaries = (*cache.Client)(nil)
	}
	return &expenseService{expenses: expenses, categories: categories, cache: summaries}
}

func (s *expenseService) Create(ctx context.Context, userID uuid.UUID, input ExpenseInput) (*model.Expense, error) {
	amountCents, err := ParseAmountCents(input.Amount)
	if err != nil {
		return nil, err
	}
	spentAt, err := model.ParseDate(input.SpentAt)
	if err != nil {
		return nil, apperrors.ErrInvalidDate
	}
	if err := s.checkCategoryOwned(ctx, userID, input.CategoryID); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = model.DefaultCurrency
	}
	expense := &model.Expense{
		UserID:      userID,
		AmountCents: amountCents,
		Currency:    currency,
		Note:        input.Note,
		SpentAt:     spentAt,
		CategoryID:  input.CategoryID,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	s.invalidateReport(ctx, userID, spentAt)
	return s.reload(ctx, expense.ID, userID, expense)
}

func (s *expenseService) Get(ctx context.Context, id, userID uuid.UUID) (*model.Expense, error) {
	expense, err := s.expenses.FindOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}
	return expense, nil
}

func (s *expenseService) List(ctx context.Context, userID uuid.UUID, filter repository.ExpenseFilter) (*ExpensePage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	expenses, total, err := s.expenses.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	if expenses == nil {
		expenses = []model.Expense{}
	}

	pages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ExpensePage{
		Expenses: expenses,
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
		Pages:    pages,
	}, nil
}

func (s *expenseService) Update(ctx context.Context, id, userID uuid.UUID, update ExpenseUpdate) (*model.Expense, error) {
	expense, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	previousSpentAt := expense.SpentAt

	if update.Amount != nil {
		amountCents, err := ParseAmountCents(*update.Amount)
		if err != nil {
			return nil, err
		}
		expense.AmountCents = amountCents
	}
	if update.Currency != nil {
		expense.Currency = *update.Currency
	}
	if update.Note != nil {
		expense.Note = *update.Note
	}
	if update.SpentAt != nil {
		spentAt, err := model.ParseDate(*update.SpentAt)
		if err != nil {
			return nil, apperrors.ErrInvalidDate
		}
		expense.SpentAt = spentAt
	}
	switch {
	case update.ClearCategory:
		expense.CategoryID = nil
		expense.Category = nil
	case update.CategoryID != nil:
		if err := s.checkCategoryOwned(ctx, userID, update.CategoryID); err != nil {
			return nil, err
		}
		expense.CategoryID = update.CategoryID
		expense.Category = nil
	}

	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}

	s.invalidateReport(ctx, userID, previousSpentAt)
	s.invalidateReport(ctx, userID, expense.SpentAt)
	return s.reload(ctx, expense.ID, userID, expense)
}

func (s *expenseService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	expense, err := s.Get(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.expenses.DeleteOwned(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrExpenseNotFound
		}
		return fmt.Errorf("delete expense: %w", err)
	}
	s.invalidateReport(ctx, userID, expense.SpentAt)
	return nil
}

// checkCategoryOwned verifies the category exists and belongs to the caller.
// A category owned by someone else reports the same not-found error as a
// missing one.
func (s *expenseService) checkCategoryOwned(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categories.FindOwned(ctx, *categoryID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}

// reload fetches the stored expense with its category preloaded; if the
// reload fails the already-written record is returned as-is.
func (s *expenseService) reload(ctx context.Context, id, userID uuid.UUID, fallback *model.Expense) (*model.Expense, error) {
	stored, err := s.expenses.FindOwned(ctx, id, userID)
	if err != nil {
		return fallback, nil
	}
	return stored, nil
}

func (s *expenseService) invalidateReport(ctx context.Context, userID uuid.UUID, date model.Date) {
	_ = s.cache.Delete(ctx, reportCacheKey(userID, date.Year(), int(date.Month())))
}

// ParseAmountCents converts a decimal amount string to integer cents,
// rounding half away from zero. Negative and malformed amounts are rejected.
func ParseAmountCents(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, apperrors.ErrInvalidAmount
	}
	if d.IsNegative() {
		return 0, apperrors.ErrInvalidAmount
	}
	return d.Shift(2).Round(0).IntPart(), nil
}
