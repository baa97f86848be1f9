package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/model"
)

// MockSummaryCache is a mock implementation of SummaryCache.
type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	args := m.Called(ctx, key, dst)
	return args.Bool(0)
}

func (m *MockSummaryCache) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	m.Called(ctx, key, v, ttl)
}

func (m *MockSummaryCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockSummaryCache) DeletePrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

func expenseOn(day int, cents int64, category *model.Category) model.Expense {
	e := model.Expense{
		ID:          uuid.New(),
		AmountCents: cents,
		Currency:    model.DefaultCurrency,
		SpentAt:     model.NewDate(2026, 8, day),
		Category:    category,
	}
	if category != nil {
		e.CategoryID = &category.ID
	}
	return e
}

func TestReportService_Monthly_Validation(t *testing.T) {
	service := NewReportService(new(MockExpenseRepository), nil)

	tests := []struct {
		name  string
		month int
		year  int
	}{
		{name: "month zero", month: 0, year: 2026},
		{name: "month thirteen", month: 13, year: 2026},
		{name: "year too small", month: 5, year: 999},
		{name: "year too large", month: 5, year: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Monthly(context.Background(), uuid.New(), tt.month, tt.year)
			assert.Equal(t, apperrors.ErrInvalidReportPeriod, err)
		})
	}
}

func TestReportService_Monthly_EmptyMonth(t *testing.T) {
	userID := uuid.New()
	mockExpenses := new(MockExpenseRepository)
	mockExpenses.On("ListByDateRange", mock.Anything, userID, mock.Anything, mock.Anything).
		Return([]model.Expense{}, nil)

	service := NewReportService(mockExpenses, nil)
	summary, err := service.Monthly(context.Background(), userID, 8, 2026)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), summary.Total)
	assert.Equal(t, "0.00", summary.TotalFormatted)
	assert.Equal(t, 0, summary.ExpenseCount)
	assert.Equal(t, 0.0, summary.AvgPerDay)
	assert.NotNil(t, summary.ByCategory)
	assert.Len(t, summary.ByCategory, 0)
	assert.NotNil(t, summary.DailySpend)
	assert.Len(t, summary.DailySpend, 0)
}

func TestReportService_Monthly_DateRange(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name  string
		month int
		year  int
		from  model.Date
		to    model.Date
	}{
		{
			name:  "august has 31 days",
			month: 8, year: 2026,
			from: model.NewDate(2026, 8, 1),
			to:   model.NewDate(2026, 8, 31),
		},
		{
			name:  "leap february",
			month: 2, year: 2024,
			from: model.NewDate(2024, 2, 1),
			to:   model.NewDate(2024, 2, 29),
		},
		{
			name:  "plain february",
			month: 2, year: 2026,
			from: model.NewDate(2026, 2, 1),
			to:   model.NewDate(2026, 2, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockExpenses := new(MockExpenseRepository)
			mockExpenses.On("ListByDateRange", mock.Anything, userID, tt.from, tt.to).
				Return([]model.Expense{}, nil)

			service := NewReportService(mockExpenses, nil)
			_, err := service.Monthly(context.Background(), userID, tt.month, tt.year)

			assert.NoError(t, err)
			mockExpenses.AssertExpectations(t)
		})
	}
}

func TestReportService_Monthly_Aggregation(t *testing.T) {
	userID := uuid.New()
	groceries := &model.Category{ID: uuid.New(), Name: "Groceries", Color: "green"}
	transport := &model.Category{ID: uuid.New(), Name: "Transport", Color: "blue"}

	mockExpenses := new(MockExpenseRepository)
	mockExpenses.On("ListByDateRange", mock.Anything, userID, mock.Anything, mock.Anything).
		Return([]model.Expense{
			expenseOn(3, 500, groceries),
			expenseOn(3, 250, transport),
			expenseOn(10, 1000, groceries),
			expenseOn(21, 750, nil),
		}, nil)

	service := NewReportService(mockExpenses, nil)
	summary, err := service.Monthly(context.Background(), userID, 8, 2026)

	assert.NoError(t, err)
	assert.Equal(t, int64(2500), summary.Total)
	assert.Equal(t, "25.00", summary.TotalFormatted)
	assert.Equal(t, 4, summary.ExpenseCount)
	assert.InDelta(t, 2500.0/31.0, summary.AvgPerDay, 1e-9)

	// buckets ordered by total descending
	assert.Equal(t, []CategoryBucket{
		{Name: "Groceries", Color: "green", Total: 1500, Count: 2},
		{Name: "Uncategorized", Color: model.UncategorizedColor, Total: 750, Count: 1},
		{Name: "Transport", Color: "blue", Total: 250, Count: 1},
	}, summary.ByCategory)

	// daily series ordered by date ascending, one entry per distinct day
	assert.Equal(t, []DailySpend{
		{Date: model.NewDate(2026, 8, 3), Amount: 750},
		{Date: model.NewDate(2026, 8, 10), Amount: 1000},
		{Date: model.NewDate(2026, 8, 21), Amount: 750},
	}, summary.DailySpend)

	// bucket totals and counts add back up to the summary totals
	var bucketTotal int64
	var bucketCount int
	for _, b := range summary.ByCategory {
		bucketTotal += b.Total
		bucketCount += b.Count
	}
	assert.Equal(t, summary.Total, bucketTotal)
	assert.Equal(t, summary.ExpenseCount, bucketCount)
}

func TestReportService_Monthly_Cache(t *testing.T) {
	userID := uuid.New()
	key := reportCacheKey(userID, 2026, 8)

	t.Run("cached summary short-circuits the store", func(t *testing.T) {
		mockExpenses := new(MockExpenseRepository)
		mockCache := new(MockSummaryCache)
		mockCache.On("GetJSON", mock.Anything, key, mock.Anything).
			Run(func(args mock.Arguments) {
				*args.Get(2).(*ReportSummary) = ReportSummary{
					Month:          8,
					Year:           2026,
					Total:          1250,
					TotalFormatted: "12.50",
					ExpenseCount:   1,
				}
			}).
			Return(true)

		service := NewReportService(mockExpenses, mockCache)
		summary, err := service.Monthly(context.Background(), userID, 8, 2026)

		assert.NoError(t, err)
		assert.Equal(t, int64(1250), summary.Total)
		mockExpenses.AssertNotCalled(t, "ListByDateRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockCache.AssertExpectations(t)
	})

	t.Run("a miss computes and stores the summary", func(t *testing.T) {
		mockExpenses := new(MockExpenseRepository)
		mockExpenses.On("ListByDateRange", mock.Anything, userID, mock.Anything, mock.Anything).
			Return([]model.Expense{expenseOn(3, 500, nil)}, nil)

		mockCache := new(MockSummaryCache)
		mockCache.On("GetJSON", mock.Anything, key, mock.Anything).Return(false)
		mockCache.On("SetJSON", mock.Anything, key, mock.MatchedBy(func(s *ReportSummary) bool {
			return s.Total == 500 && s.ExpenseCount == 1
		}), 5*time.Minute).Return()

		service := NewReportService(mockExpenses, mockCache)
		summary, err := service.Monthly(context.Background(), userID, 8, 2026)

		assert.NoError(t, err)
		assert.Equal(t, int64(500), summary.Total)
		mockCache.AssertExpectations(t)
	})
}

func TestReportService_Monthly_TieKeepsFirstSeenOrder(t *testing.T) {
	userID := uuid.New()
	dining := &model.Category{ID: uuid.New(), Name: "Dining", Color: "amber"}
	transport := &model.Category{ID: uuid.New(), Name: "Transport", Color: "blue"}

	mockExpenses := new(MockExpenseRepository)
	mockExpenses.On("ListByDateRange", mock.Anything, userID, mock.Anything, mock.Anything).
		Return([]model.Expense{
			expenseOn(1, 400, dining),
			expenseOn(2, 400, transport),
		}, nil)

	service := NewReportService(mockExpenses, nil)
	summary, err := service.Monthly(context.Background(), userID, 8, 2026)

	assert.NoError(t, err)
	assert.Equal(t, "Dining", summary.ByCategory[0].Name)
	assert.Equal(t, "Transport", summary.ByCategory[1].Name)
}
