package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"spendtrack/internal/auth"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/model"
	"spendtrack/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Monthly(ctx context.Context, userID uuid.UUID, month, year int) (*service.ReportSummary, error) {
	args := m.Called(ctx, userID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportSummary), args.Error(1)
}

func reportContext(e *echo.Echo, user *model.User, query url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/reports?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(auth.ContextUserKey, user)
	return c, rec
}

func TestReportHandler_Monthly(t *testing.T) {
	user := &model.User{ID: uuid.New(), Email: "user@example.com"}

	t.Run("explicit month and year", func(t *testing.T) {
		mockReports := new(MockReportService)
		mockReports.On("Monthly", mock.Anything, user.ID, 2, 2024).Return(&service.ReportSummary{
			Month:          2,
			Year:           2024,
			Total:          1250,
			TotalFormatted: "12.50",
			ExpenseCount:   1,
			ByCategory:     []service.CategoryBucket{},
			DailySpend:     []service.DailySpend{},
			AvgPerDay:      1250.0 / 29.0,
		}, nil)

		e := newTestEcho()
		c, rec := reportContext(e, user, url.Values{"month": {"2"}, "year": {"2024"}})

		handler := NewReportHandler(mockReports)
		assert.NoError(t, handler.Monthly(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"totalFormatted":"12.50"`)
		mockReports.AssertExpectations(t)
	})

	t.Run("defaults to the current month", func(t *testing.T) {
		now := time.Now()
		mockReports := new(MockReportService)
		mockReports.On("Monthly", mock.Anything, user.ID, int(now.Month()), now.Year()).
			Return(&service.ReportSummary{
				Month:      int(now.Month()),
				Year:       now.Year(),
				ByCategory: []service.CategoryBucket{},
				DailySpend: []service.DailySpend{},
			}, nil)

		e := newTestEcho()
		c, rec := reportContext(e, user, url.Values{})

		handler := NewReportHandler(mockReports)
		assert.NoError(t, handler.Monthly(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"year":`+strconv.Itoa(now.Year()))
		mockReports.AssertExpectations(t)
	})

	t.Run("non-numeric month is a bad request", func(t *testing.T) {
		mockReports := new(MockReportService)

		e := newTestEcho()
		c, _ := reportContext(e, user, url.Values{"month": {"february"}})

		handler := NewReportHandler(mockReports)
		err := handler.Monthly(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		mockReports.AssertNotCalled(t, "Monthly", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("service validation errors map to a bad request", func(t *testing.T) {
		mockReports := new(MockReportService)
		mockReports.On("Monthly", mock.Anything, user.ID, 13, 2026).
			Return(nil, apperrors.ErrInvalidReportPeriod)

		e := newTestEcho()
		c, _ := reportContext(e, user, url.Values{"month": {"13"}, "year": {"2026"}})

		handler := NewReportHandler(mockReports)
		err := handler.Monthly(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		mockReports.AssertExpectations(t)
	})
}
