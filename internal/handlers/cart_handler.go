package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

type CartHandler struct {
	repo repository.CartRepositoryInterface
}

func NewCartHandler(repo repository.CartRepositoryInterface) *CartHandler {
	return &CartHandler{repo: repo}
}

// GetCartItems lists the authenticated user's cart.
// @Summary Get cart items
// @Tags cart
// @Produce json
// @Success 200 {array} models.CartItem
// @Router /cart [get]
func (h *CartHandler) GetCartItems(c *gin.Context) {
	user := middleware.CurrentUser(c)

	items, err := h.repo.ListCartItems(c.Request.Context(), user.ID)
	if err != nil {
		respondServerError(c, "Failed to retrieve cart")
		return
	}
	if items == nil {
		items = []models.CartItem{}
	}

	c.JSON(http.StatusOK, items)
}

// AddToCart adds a product. An existing (product, size) line merges
// quantities instead of creating a duplicate.
// @Summary Add item to cart
// @Tags cart
// @Accept json
// @Produce json
// @Success 201 {object} models.CartItem
// @Router /cart [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	existing, err := h.repo.FindCartItem(c.Request.Context(), user.ID, req.ProductID, req.Size)
	if err == nil {
		existing.Quantity += req.Quantity
		if err := h.repo.SaveCartItem(c.Request.Context(), existing); err != nil {
			respondServerError(c, "Failed to update cart item")
			return
		}
		c.JSON(http.StatusOK, existing)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondServerError(c, "Failed to add cart item")
		return
	}

	item := &models.CartItem{
		UserID:    user.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
	}
	if err := h.repo.CreateCartItem(c.Request.Context(), item); err != nil {
		respondServerError(c, "Failed to add cart item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateCartItem changes a cart line's quantity.
// @Summary Update cart item quantity
// @Tags cart
// @Accept json
// @Produce json
// @Success 200 {object} models.CartItem
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{id} [put]
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	user := middleware.CurrentUser(c)

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondCartNotFound(c)
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	item, err := h.repo.GetCartItemByID(c.Request.Context(), itemID)
	if err != nil {
		respondCartNotFound(c)
		return
	}
	if item.UserID != user.ID {
		respondNotOwner(c)
		return
	}

	item.Quantity = req.Quantity
	if err := h.repo.SaveCartItem(c.Request.Context(), item); err != nil {
		respondServerError(c, "Failed to update cart item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// RemoveCartItem deletes a cart line.
// @Summary Remove cart item
// @Tags cart
// @Produce json
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{id} [delete]
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	user := middleware.CurrentUser(c)

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondCartNotFound(c)
		return
	}

	item, err := h.repo.GetCartItemByID(c.Request.Context(), itemID)
	if err != nil {
		respondCartNotFound(c)
		return
	}
	if item.UserID != user.ID {
		respondNotOwner(c)
		return
	}

	if err := h.repo.DeleteCartItem(c.Request.Context(), itemID); err != nil {
		respondServerError(c, "Failed to remove cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

func respondCartNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "NOT_FOUND",
			Message: "Cart item not found",
		},
	})
}

func respondNotOwner(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "NOT_AUTHORIZED",
			Message: "Not authorized",
		},
	})
}
