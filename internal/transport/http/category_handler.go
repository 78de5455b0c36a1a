package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/service"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/util"
)

type CategoryHandler struct {
	categories *service.CategoryService
}

// RegisterCategories mounts the category routes. writeGuard, when non-nil,
// protects the mutating ones.
func RegisterCategories(e *echo.Echo, categories *service.CategoryService, writeGuard echo.MiddlewareFunc) {
	h := &CategoryHandler{categories: categories}
	g := e.Group("/api/categories")
	g.GET("", h.list)

	var guard []echo.MiddlewareFunc
	if writeGuard != nil {
		guard = append(guard, writeGuard)
	}
	g.POST("", h.create, guard...)
	g.PUT("/:id", h.update, guard...)
	g.DELETE("/:id", h.delete, guard...)
}

func (h *CategoryHandler) list(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return writeError(c, err, "Failed to fetch categories")
	}
	return c.JSON(http.StatusOK, util.Success(categories))
}

func (h *CategoryHandler) create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	category, err := h.categories.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err, "Failed to create category")
	}
	return c.JSON(http.StatusCreated, util.Success(category).With("message", "Category created successfully"))
}

func (h *CategoryHandler) update(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return writeError(c, service.ErrInvalidCategoryID, "")
	}
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	category, err := h.categories.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return writeError(c, err, "Failed to update category")
	}
	return c.JSON(http.StatusOK, util.Success(category).With("message", "Category updated successfully"))
}

func (h *CategoryHandler) delete(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return writeError(c, service.ErrInvalidCategoryID, "")
	}
	if err := h.categories.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err, "Failed to delete category")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "message": "Category deleted successfully"})
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
