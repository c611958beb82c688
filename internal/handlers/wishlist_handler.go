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

type WishlistHandler struct {
	repo repository.WishlistRepositoryInterface
}

func NewWishlistHandler(repo repository.WishlistRepositoryInterface) *WishlistHandler {
	return &WishlistHandler{repo: repo}
}

// GetWishlistItems lists the user's saved products with products populated.
// @Summary Get wishlist
// @Tags wishlist
// @Produce json
// @Success 200 {array} models.WishlistItem
// @Router /wishlist [get]
func (h *WishlistHandler) GetWishlistItems(c *gin.Context) {
	user := middleware.CurrentUser(c)

	items, err := h.repo.ListWishlistItems(c.Request.Context(), user.ID)
	if err != nil {
		respondServerError(c, "Failed to retrieve wishlist")
		return
	}
	if items == nil {
		items = []models.WishlistItem{}
	}

	c.JSON(http.StatusOK, items)
}

// AddToWishlist saves a product. Adding an already-saved product is
// idempotent and returns the existing row.
// @Summary Add item to wishlist
// @Tags wishlist
// @Accept json
// @Produce json
// @Success 201 {object} models.WishlistItem
// @Router /wishlist [post]
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Product ID is required")
		return
	}

	existing, err := h.repo.FindWishlistItem(c.Request.Context(), user.ID, req.ProductID)
	if err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondServerError(c, "Failed to add wishlist item")
		return
	}

	item := &models.WishlistItem{
		UserID:    user.ID,
		ProductID: req.ProductID,
	}
	if err := h.repo.CreateWishlistItem(c.Request.Context(), item); err != nil {
		respondServerError(c, "Failed to add wishlist item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// RemoveFromWishlist deletes a saved product.
// @Summary Remove wishlist item
// @Tags wishlist
// @Produce json
// @Failure 404 {object} models.ErrorResponse
// @Router /wishlist/{id} [delete]
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	user := middleware.CurrentUser(c)

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondWishlistNotFound(c)
		return
	}

	item, err := h.repo.GetWishlistItemByID(c.Request.Context(), itemID)
	if err != nil {
		respondWishlistNotFound(c)
		return
	}
	if item.UserID != user.ID {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FORBIDDEN",
				Message: "Not authorized to remove this item",
			},
		})
		return
	}

	if err := h.repo.DeleteWishlistItem(c.Request.Context(), itemID); err != nil {
		respondServerError(c, "Failed to remove wishlist item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from wishlist"})
}

func respondWishlistNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "NOT_FOUND",
			Message: "Wishlist item not found",
		},
	})
}
