package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"spendtrack/internal/auth"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/model"
	"spendtrack/internal/service"
)

// CategoryHandler handles category CRUD endpoints.
type CategoryHandler struct {
	categories service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// CategoryRequest represents a create request.
type CategoryRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Color string `json:"color" validate:"omitempty,max=50"`
}

// CategoryUpdateRequest represents a partial update request.
type CategoryUpdateRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=255"`
	Color *string `json:"color" validate:"omitempty,max=50"`
}

// CategoriesResponse wraps a category listing.
type CategoriesResponse struct {
	Categories []model.Category `json:"categories"`
}

// CategoryResponse wraps one category.
type CategoryResponse struct {
	Category *model.Category `json:"category"`
}

// List godoc
// @Summary List the caller's categories
// @Tags categories
// @Produce json
// @Success 200 {object} CategoriesResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	user := auth.CurrentUser(c)
	categories, err := h.categories.List(c.Request().Context(), user.ID)
	if err != nil {
		return h.fail(c, err)
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return c.JSON(http.StatusOK, CategoriesResponse{Categories: categories})
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category data"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := auth.CurrentUser(c)
	category, err := h.categories.Create(c.Request().Context(), user.ID, req.Name, req.Color)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, CategoryResponse{Category: category})
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body CategoryUpdateRequest true "Fields to change"
// @Success 200 {object} CategoryResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /categories/{id} [patch]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req CategoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := auth.CurrentUser(c)
	category, err := h.categories.Update(c.Request().Context(), id, user.ID, service.CategoryUpdate{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, CategoryResponse{Category: category})
}

// Delete godoc
// @Summary Delete a category
// @Description Referencing expenses are kept and become uncategorized.
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user := auth.CurrentUser(c)
	if err := h.categories.Delete(c.Request().Context(), id, user.ID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *CategoryHandler) fail(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Errorf("category: %v", err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
