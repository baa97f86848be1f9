package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"spendtrack/internal/auth"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/service"
)

// ReportHandler handles the monthly report endpoint.
type ReportHandler struct {
	reports service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Monthly godoc
// @Summary Monthly spending report
// @Description Aggregates the caller's expenses for one calendar month.
// @Tags reports
// @Produce json
// @Param month query int false "Month 1-12 (default: current)"
// @Param year query int false "4-digit year (default: current)"
// @Success 200 {object} service.ReportSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /reports [get]
func (h *ReportHandler) Monthly(c echo.Context) error {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if raw := c.QueryParam("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return h.fail(c, apperrors.ErrInvalidReportPeriod)
		}
		month = parsed
	}
	if raw := c.QueryParam("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return h.fail(c, apperrors.ErrInvalidReportPeriod)
		}
		year = parsed
	}

	user := auth.CurrentUser(c)
	summary, err := h.reports.Monthly(c.Request().Context(), user.ID, month, year)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) fail(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Errorf("report: %v", err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
