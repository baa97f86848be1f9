package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"spendtrack/internal/cache"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
)

const reportCacheTTL = 5 * time.Minute

// CategoryBucket is one per-category slice of a monthly report.
type CategoryBucket struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Total int64  `json:"total"`
	Count int    `json:"count"`
}

// DailySpend is the total spent on one calendar date.
type DailySpend struct {
	Date   model.Date `json:"date"`
	Amount int64      `json:"amount"`
}

// ReportSummary aggregates one user's expenses over a calendar month.
// Consumers computing percent-of-total must tolerate Total == 0.
type ReportSummary struct {
	Month          int              `json:"month"`
	Year           int              `json:"year"`
	Total          int64            `json:"total"`
	TotalFormatted string           `json:"totalFormatted"`
	ExpenseCount   int              `json:"expenseCount"`
	ByCategory     []CategoryBucket `json:"byCategory"`
	DailySpend     []DailySpend     `json:"dailySpend"`
	AvgPerDay      float64          `json:"avgPerDay"`
}

// UncategorizedBucket is the synthetic category name for expenses without one.
const UncategorizedBucket = "Uncategorized"

// SummaryCache is the slice of the cache the services use for monthly report
// summaries. A nil *cache.Client satisfies it and behaves as a permanent
// miss, which keeps tests and cache-less deployments trivial.
type SummaryCache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) bool
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration)
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// ReportService computes monthly summaries by fetching all matching rows and
// reducing in-process. Adequate while per-user monthly result sets stay
// small; pushing the aggregation into the store is the scaling escape hatch.
type ReportService interface {
	Monthly(ctx context.Context, userID uuid.UUID, month, year int) (*ReportSummary, error)
}

type reportService struct {
	expenses repository.ExpenseRepository
	cache    SummaryCache
}

// NewReportService creates a new report service.
func NewReportService(expenses repository.ExpenseRepository, summaries SummaryCache) ReportService {
	if summaries == nil {
		summaries = (*cache.Client)(nil)
	}
	return &reportService{expenses: expenses, cache: summaries}
}

// Monthly computes the report for the given month/year pair. The date range
// is inclusive on both ends and respects variable month lengths.
func (s *reportService) Monthly(ctx context.Context, userID uuid.UUID, month, year int) (*ReportSummary, error) {
	if month < 1 || month > 12 || year < 1000 || year > 9999 {
		return nil, apperrors.ErrInvalidReportPeriod
	}

	cacheKey := reportCacheKey(userID, year, month)
	var cached ReportSummary
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	first := model.NewDate(year, time.Month(month), 1)
	last := first.AddDate(0, 1, -1)
	daysInMonth := last.Day()

	expenses, err := s.expenses.ListByDateRange(ctx, userID, first, model.Date{Time: last})
	if err != nil {
		return nil, fmt.Errorf("fetch report expenses: %w", err)
	}

	summary := reduce(expenses, month, year, daysInMonth)
	s.cache.SetJSON(ctx, cacheKey, summary, reportCacheTTL)
	return summary, nil
}

// reduce folds fetched expenses into a ReportSummary. Buckets keep their
// first-seen order as the tiebreak when totals are equal; dailySpend is
// ordered ascending by date. An empty input yields zeroes and empty slices,
// never an error.
func reduce(expenses []model.Expense, month, year, daysInMonth int) *ReportSummary {
	var total int64
	buckets := make(map[string]*CategoryBucket)
	bucketOrder := make([]string, 0)
	byDate := make(map[model.Date]int64)

	for _, exp := range expenses {
		total += exp.AmountCents

		name := UncategorizedBucket
		color := model.UncategorizedColor
		if exp.Category != nil {
			name = exp.Category.Name
			color = exp.Category.Color
		}
		bucket, ok := buckets[name]
		if !ok {
			bucket = &CategoryBucket{Name: name, Color: color}
			buckets[name] = bucket
			bucketOrder = append(bucketOrder, name)
		}
		bucket.Total += exp.AmountCents
		bucket.Count++

		byDate[exp.SpentAt] += exp.AmountCents
	}

	byCategory := make([]CategoryBucket, 0, len(bucketOrder))
	for _, name := range bucketOrder {
		byCategory = append(byCategory, *buckets[name])
	}
	sort.SliceStable(byCategory, func(i, j int) bool {
		return byCategory[i].Total > byCategory[j].Total
	})

	dailySpend := make([]DailySpend, 0, len(byDate))
	for date, amount := range byDate {
		dailySpend = append(dailySpend, DailySpend{Date: date, Amount: amount})
	}
	sort.Slice(dailySpend, func(i, j int) bool {
		return dailySpend[i].Date.Before(dailySpend[j].Date.Time)
	})

	avgPerDay := 0.0
	if len(expenses) > 0 {
		avgPerDay = float64(total) / float64(daysInMonth)
	}

	return &ReportSummary{
		Month:          month,
		Year:           year,
		Total:          total,
		TotalFormatted: decimal.NewFromInt(total).Shift(-2).StringFixed(2),
		ExpenseCount:   len(expenses),
		ByCategory:     byCategory,
		DailySpend:     dailySpend,
		AvgPerDay:      avgPerDay,
	}
}

func reportCacheKey(userID uuid.UUID, year, month int) string {
	return fmt.Sprintf("%s%04d-%02d", reportCachePrefix(userID), year, month)
}

// reportCachePrefix keys every cached summary of one user; invalidating the
// prefix drops all of that user's months at once.
func reportCachePrefix(userID uuid.UUID) string {
	return fmt.Sprintf("report:%s:", userID)
}
