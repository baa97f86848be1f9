package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"spendtrack/internal/auth"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
	"spendtrack/internal/service"
)

// ExpenseHandler handles expense CRUD and listing endpoints.
type ExpenseHandler struct {
	expenses service.ExpenseService
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenses service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// ExpenseRequest represents a create request. Amount is a decimal string.
type ExpenseRequest struct {
	Amount     string `json:"amount" validate:"required"`
	Currency   string `json:"currency" validate:"omitempty,max=8"`
	Note       string `json:"note" validate:"omitempty,max=500"`
	SpentAt    string `json:"spentAt" validate:"required"`
	CategoryID string `json:"categoryId" validate:"omitempty,uuid"`
}

// ExpenseUpdateRequest represents a partial update. An empty categoryId
// clears the category; an absent one leaves it unchanged.
type ExpenseUpdateRequest struct {
	Amount     *string `json:"amount"`
	Currency   *string `json:"currency" validate:"omitempty,max=8"`
	Note       *string `json:"note" validate:"omitempty,max=500"`
	SpentAt    *string `json:"spentAt"`
	CategoryID *string `json:"categoryId"`
}

// ExpenseResponse wraps one expense.
type ExpenseResponse struct {
	Expense *model.Expense `json:"expense"`
}

// ListQuery represents the supported listing filters.
type ListQuery struct {
	From       string `query:"from"`
	To         string `query:"to"`
	CategoryID string `query:"categoryId"`
	Q          string `query:"q"`
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
}

// List godoc
// @Summary List the caller's expenses
// @Tags expenses
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 50)"
// @Param from query string false "Inclusive start date YYYY-MM-DD"
// @Param to query string false "Inclusive end date YYYY-MM-DD"
// @Param categoryId query string false "Category filter"
// @Param q query string false "Note substring filter"
// @Success 200 {object} service.ExpensePage
// @Failure 401 {object} errors.ErrorResponse
// @Router /expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	var q ListQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	filter := repository.ExpenseFilter{
		Query: q.Q,
		Page:  q.Page,
		Limit: q.Limit,
	}
	if q.From != "" {
		from, err := model.ParseDate(q.From)
		if err != nil {
			return h.fail(c, apperrors.ErrInvalidDate)
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := model.ParseDate(q.To)
		if err != nil {
			return h.fail(c, apperrors.ErrInvalidDate)
		}
		filter.To = &to
	}
	if q.CategoryID != "" {
		categoryID, err := uuid.Parse(q.CategoryID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid categoryId")
		}
		filter.CategoryID = &categoryID
	}

	user := auth.CurrentUser(c)
	page, err := h.expenses.List(c.Request().Context(), user.ID, filter)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Create godoc
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "Expense data"
// @Success 201 {object} ExpenseResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.ExpenseInput{
		Amount:   req.Amount,
		Currency: req.Currency,
		Note:     req.Note,
		SpentAt:  req.SpentAt,
	}
	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid categoryId")
		}
		input.CategoryID = &categoryID
	}

	user := auth.CurrentUser(c)
	expense, err := h.expenses.Create(c.Request().Context(), user.ID, input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, ExpenseResponse{Expense: expense})
}

// Get godoc
// @Summary Fetch one expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} ExpenseResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user := auth.CurrentUser(c)
	expense, err := h.expenses.Get(c.Request().Context(), id, user.ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ExpenseResponse{Expense: expense})
}

// Update godoc
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body ExpenseUpdateRequest true "Fields to change"
// @Success 200 {object} ExpenseResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /expenses/{id} [patch]
func (h *ExpenseHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req ExpenseUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := service.ExpenseUpdate{
		Amount:   req.Amount,
		Currency: req.Currency,
		Note:     req.Note,
		SpentAt:  req.SpentAt,
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			update.ClearCategory = true
		} else {
			categoryID, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid categoryId")
			}
			update.CategoryID = &categoryID
		}
	}

	user := auth.CurrentUser(c)
	expense, err := h.expenses.Update(c.Request().Context(), id, user.ID, update)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ExpenseResponse{Expense: expense})
}

// Delete godoc
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} errors.ErrorResponse
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user := auth.CurrentUser(c)
	if err := h.expenses.Delete(c.Request().Context(), id, user.ID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *ExpenseHandler) fail(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Errorf("expense: %v", err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
