package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-service/internal/models"
)

// WishlistRepositoryInterface is the storage contract for wishlist operations.
type WishlistRepositoryInterface interface {
	ListWishlistItems(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	FindWishlistItem(ctx context.Context, userID, productID uuid.UUID) (*models.WishlistItem, error)
	GetWishlistItemByID(ctx context.Context, itemID uuid.UUID) (*models.WishlistItem, error)
	CreateWishlistItem(ctx context.Context, item *models.WishlistItem) error
	DeleteWishlistItem(ctx context.Context, itemID uuid.UUID) error
}

type WishlistRepository struct {
	db *gorm.DB
}

var _ WishlistRepositoryInterface = (*WishlistRepository)(nil)

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// ListWishlistItems returns the user's saved products with the product
// populated, newest first.
func (r *WishlistRepository) ListWishlistItems(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *WishlistRepository) FindWishlistItem(ctx context.Context, userID, productID uuid.UUID) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *WishlistRepository) GetWishlistItemByID(ctx context.Context, itemID uuid.UUID) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateWishlistItem inserts the row and loads the product for the response.
func (r *WishlistRepository) CreateWishlistItem(ctx context.Context, item *models.WishlistItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return err
	}
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", item.ProductID).First(&product).Error; err == nil {
		item.Product = &product
	}
	return nil
}

func (r *WishlistRepository) DeleteWishlistItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", itemID).Delete(&models.WishlistItem{}).Error
}
