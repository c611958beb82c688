package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

type ProductsHandler struct {
	repo repository.CatalogRepositoryInterface
}

func NewProductsHandler(repo repository.CatalogRepositoryInterface) *ProductsHandler {
	return &ProductsHandler{repo: repo}
}

// GetProducts serves the catalog listing in one of three shapes, selected by
// which parameters are present: an id lookup (0/1-element array), the
// paginated envelope, or the legacy bare array.
// @Summary List products
// @Description Filtered, sorted, paginated catalog listing
// @Tags products
// @Produce json
// @Param page query int false "Page number (>=1)"
// @Param limit query int false "Page size (max 100)"
// @Param sort query string false "Sort token, leading '-' for descending"
// @Param search query string false "Free-text search"
// @Param category query []string false "Category filter (repeatable)"
// @Param gender query []string false "Gender filter (repeatable)"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minRating query number false "Minimum rating"
// @Param newArrivals query string false "Literal 'true' restricts to new arrivals"
// @Param featured query string false "Literal 'true' restricts to featured"
// @Param id query string false "Single-id lookup mode"
// @Success 200 {object} models.ProductListResponse
// @Router /products [get]
func (h *ProductsHandler) GetProducts(c *gin.Context) {
	values := c.Request.URL.Query()

	switch catalog.ResolveMode(values) {
	case catalog.ModeByID:
		h.listByID(c, values.Get("id"))
	case catalog.ModeLegacy:
		h.listLegacy(c, values)
	default:
		h.listPaginated(c, values)
	}
}

// listPaginated is the preferred mode: {data, pagination, meta}.
func (h *ProductsHandler) listPaginated(c *gin.Context, values url.Values) {
	criteria := catalog.ParseCriteria(values)

	products, total, err := h.repo.ListProducts(c.Request.Context(), criteria)
	if err != nil {
		respondFetchFailed(c)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, models.ProductListResponse{
		Data:       products,
		Pagination: catalog.Paginate(criteria.Page, criteria.PageSize, total),
		Meta:       criteria.Meta(),
	})
}

// listLegacy keeps the pre-pagination calling convention alive: sort and
// limit only, bare array, first page of the sorted catalog.
func (h *ProductsHandler) listLegacy(c *gin.Context, values url.Values) {
	criteria := catalog.ParseCriteria(values)
	criteria.Page = 1

	products, _, err := h.repo.ListProducts(c.Request.Context(), criteria)
	if err != nil {
		respondFetchFailed(c)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, products)
}

// listByID lets a generic filter call fetch one product by id. Not-found and
// malformed ids degrade to an empty array, never an error, to match the
// lenient client expectation.
func (h *ProductsHandler) listByID(c *gin.Context, rawID string) {
	productID, err := uuid.Parse(rawID)
	if err != nil {
		c.JSON(http.StatusOK, []models.Product{})
		return
	}

	product, err := h.repo.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, []models.Product{})
			return
		}
		respondFetchFailed(c)
		return
	}

	c.JSON(http.StatusOK, []models.Product{*product})
}

// GetProduct retrieves a single product by path id.
// @Summary Get product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_ID",
				Message: "Invalid product ID format",
			},
		})
		return
	}

	product, err := h.repo.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "NOT_FOUND",
					Message: "Product not found",
				},
			})
			return
		}
		respondFetchFailed(c)
		return
	}

	c.JSON(http.StatusOK, product)
}

func respondFetchFailed(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "FETCH_FAILED",
			Message: "Failed to retrieve products",
		},
	})
}
