package handler

import (
	"errors"
	"fmt"
	"net/http"

	"catalog-service/internal/middleware"
	"catalog-service/internal/pagination"
	"catalog-service/internal/store"
	"catalog-service/internal/validate"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductHandler serves the product routes against an injected store.
type ProductHandler struct {
	store store.ProductStore
}

// NewProductHandler creates a ProductHandler backed by the given store.
func NewProductHandler(s store.ProductStore) *ProductHandler {
	return &ProductHandler{store: s}
}

// ListProducts handles the paginated product listing. The page window comes
// from the pagination middleware composed onto this route.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	params := middleware.PageParams(c)
	ctx := c.Request().Context()

	totalItems, err := h.store.Count(ctx)
	if err != nil {
		log.Error("Failed to count products", zap.Error(err))
		return storeFault(err)
	}

	products, err := h.store.ListPage(ctx, params.Skip, params.Limit)
	if err != nil {
		log.Error("Failed to list products",
			zap.Int("page", params.Page),
			zap.Int("limit", params.Limit),
			zap.Error(err))
		return storeFault(err)
	}

	prometheus.RecordProductOperation("list")
	log.Info("Products listed",
		zap.Int("page", params.Page),
		zap.Int("limit", params.Limit),
		zap.Int64("total_items", totalItems),
		zap.Int("count", len(products)))

	return c.JSON(http.StatusOK, echo.Map{
		"status":      "success",
		"currentPage": params.Page,
		"limit":       params.Limit,
		"totalItems":  totalItems,
		"totalPages":  pagination.TotalPages(totalItems, params.Limit),
		"products":    products,
	})
}

// ListByCategory handles exact-match category filtering. The category query
// parameter is required; an empty result set is reported as not found, which
// is distinct from a malformed request.
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	log := logger.FromContext(c)

	category := c.QueryParam("category")
	if category == "" {
		log.Warn("Missing category query parameter")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Category query parameter is required. Use ?category=categoryName",
		})
	}

	products, err := h.store.FindByCategory(c.Request().Context(), category)
	if err != nil {
		log.Error("Failed to filter products by category",
			zap.String("category", category),
			zap.Error(err))
		return storeFault(err)
	}

	if len(products) == 0 {
		log.Info("No products in category", zap.String("category", category))
		return c.JSON(http.StatusNotFound, echo.Map{
			"message": "No products found in this category",
		})
	}

	log.Info("Products filtered by category",
		zap.String("category", category),
		zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by its identifier.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	product, err := h.store.FindByID(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		log.Info("Product not found", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"message": "Product not found",
		})
	}
	if err != nil {
		log.Error("Failed to get product",
			zap.String("product_id", id),
			zap.Error(err))
		return storeFault(err)
	}

	log.Info("Product retrieved",
		zap.String("product_id", id),
		zap.String("name", product.Name))
	return c.JSON(http.StatusOK, echo.Map{"product": product})
}

// CreateProduct handles creating a new product. The payload is validated and
// coerced before the store runs; every field violation is reported at once.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	body := map[string]interface{}{}
	if err := c.Bind(&body); err != nil {
		log.Warn("Invalid request body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid request data",
		})
	}

	if errs := validate.CreateProduct(body); len(errs) > 0 {
		log.Warn("Product validation failed", zap.Strings("errors", errs))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status": "fail",
			"errors": errs,
		})
	}

	in := store.NewProduct{
		Name:        body["name"].(string),
		Description: body["description"].(string),
		Price:       body["price"].(float64),
		Category:    body["category"].(string),
	}
	if v, ok := body["inStock"].(bool); ok {
		in.InStock = &v
	}

	saved, err := h.store.Create(c.Request().Context(), in)
	if errors.Is(err, store.ErrInvalid) {
		log.Warn("Product rejected by store constraints", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": err.Error(),
		})
	}
	if err != nil {
		log.Error("Failed to create product",
			zap.String("name", in.Name),
			zap.Error(err))
		return storeFault(err)
	}

	prometheus.RecordProductOperation("create")
	log.Info("Product created",
		zap.String("product_id", saved.ID),
		zap.String("name", saved.Name),
		zap.Float64("price", saved.Price))
	return c.JSON(http.StatusCreated, echo.Map{"savedProduct": saved})
}

// UpdateProduct handles partial updates. Supplied fields must be valid and at
// least one recognized field must be present.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	body := map[string]interface{}{}
	if err := c.Bind(&body); err != nil {
		log.Warn("Invalid request body",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Invalid request data",
		})
	}

	if errs := validate.UpdateProduct(body); len(errs) > 0 {
		log.Warn("Product update validation failed",
			zap.String("product_id", id),
			zap.Strings("errors", errs))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status": "fail",
			"errors": errs,
		})
	}

	upd := store.ProductUpdate{}
	if v, ok := body["name"].(string); ok {
		upd.Name = &v
	}
	if v, ok := body["description"].(string); ok {
		upd.Description = &v
	}
	if v, ok := body["price"].(float64); ok {
		upd.Price = &v
	}
	if v, ok := body["category"].(string); ok {
		upd.Category = &v
	}
	if v, ok := body["inStock"].(bool); ok {
		upd.InStock = &v
	}

	product, err := h.store.UpdateByID(c.Request().Context(), id, upd)
	if errors.Is(err, store.ErrNotFound) {
		log.Info("Product not found for update", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"message": "Product not found",
		})
	}
	if errors.Is(err, store.ErrInvalid) {
		log.Warn("Product update rejected by store constraints",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": err.Error(),
		})
	}
	if err != nil {
		log.Error("Failed to update product",
			zap.String("product_id", id),
			zap.Error(err))
		return storeFault(err)
	}

	prometheus.RecordProductOperation("update")
	log.Info("Product updated", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"product": product})
}

// DeleteProduct handles permanently removing a product.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	err := h.store.DeleteByID(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		log.Info("Product not found for deletion", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"message": "Product not found",
		})
	}
	if err != nil {
		log.Error("Failed to delete product",
			zap.String("product_id", id),
			zap.Error(err))
		return storeFault(err)
	}

	prometheus.RecordProductOperation("delete")
	log.Info("Product deleted", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Product with id %s deleted successfully", id),
	})
}

// storeFault tags an unexpected storage error for the terminal error handler.
// The client sees a generic message; the full detail is logged server-side.
func storeFault(err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError, "Server Error").SetInternal(err)
}
