package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/service"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/util"
)

type ProductHandler struct {
	products *service.ProductService
}

func RegisterProducts(e *echo.Echo, products *service.ProductService, writeGuard echo.MiddlewareFunc) {
	h := &ProductHandler{products: products}
	g := e.Group("/api/products")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	var guard []echo.MiddlewareFunc
	if writeGuard != nil {
		guard = append(guard, writeGuard)
	}
	g.POST("", h.create, guard...)
	g.PUT("/:id", h.update, guard...)
	g.DELETE("/:id", h.delete, guard...)
}

// parseProductListFilter reads the list query. Malformed numbers fall back
// to the defaults instead of failing the request.
func parseProductListFilter(c echo.Context) domain.ProductListFilter {
	filter := domain.ProductListFilter{
		Page:      atoiOr(c.QueryParam("page"), domain.DefaultPage),
		Limit:     atoiOr(c.QueryParam("limit"), domain.DefaultLimit),
		Search:    strings.TrimSpace(c.QueryParam("search")),
		SortBy:    domain.ProductSort(strings.ToLower(strings.TrimSpace(c.QueryParam("sort_by")))),
		SortOrder: domain.SortOrder(strings.ToLower(strings.TrimSpace(c.QueryParam("sort_order")))),
	}
	if id, ok := parseID(c.QueryParam("category_id")); ok {
		filter.CategoryID = &id
	}
	return filter.Normalize()
}

func atoiOr(raw string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return v
}

func (h *ProductHandler) list(c echo.Context) error {
	page, err := h.products.List(c.Request().Context(), parseProductListFilter(c))
	if err != nil {
		return writeError(c, err, "Failed to fetch products")
	}
	return c.JSON(http.StatusOK, ProductListResponse{
		Success:    true,
		Data:       page.Data,
		Pagination: page.Pagination,
	})
}

func (h *ProductHandler) get(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return writeError(c, service.ErrInvalidProductID, "")
	}
	product, err := h.products.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, "Failed to fetch products")
	}
	return c.JSON(http.StatusOK, util.Success(product))
}

func (h *ProductHandler) create(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, service.ErrProductFieldsRequired, "")
	}
	product, err := h.products.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err, "Failed to create product")
	}
	return c.JSON(http.StatusCreated, util.Success(product).With("message", "Product created successfully"))
}

func (h *ProductHandler) update(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return writeError(c, service.ErrInvalidProductID, "")
	}
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, service.ErrProductFieldsRequired, "")
	}
	product, err := h.products.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return writeError(c, err, "Failed to update product")
	}
	return c.JSON(http.StatusOK, util.Success(product).With("message", "Product updated successfully"))
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return writeError(c, service.ErrInvalidProductID, "")
	}
	if err := h.products.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err, "Failed to delete product")
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true, "message": "Product deleted successfully"})
}
