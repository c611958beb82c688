package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
)

// Cache TTL constants
const (
	ProductCacheTTL     = 5 * time.Minute // Single product cache
	ProductListCacheTTL = 2 * time.Minute // Product list cache
)

// CatalogRepositoryInterface is the storage contract the listing endpoint
// consumes: filtered count + filtered page fetch, and a by-id lookup.
type CatalogRepositoryInterface interface {
	ListProducts(ctx context.Context, criteria catalog.Criteria) ([]models.Product, int64, error)
	GetProductByID(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	BulkCreateProducts(ctx context.Context, products []*models.Product) error
}

// CatalogRepository executes catalog reads against Postgres with a Redis
// read-through cache on top. The cache degrades to a no-op when Redis is nil
// or unreachable.
type CatalogRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

func NewCatalogRepository(db *gorm.DB, redisClient *redis.Client) *CatalogRepository {
	return &CatalogRepository{db: db, redis: redisClient}
}

// cachedList is the cached shape of one filtered, sorted page plus its total.
type cachedList struct {
	Data  []models.Product `json:"data"`
	Total int64            `json:"total"`
}

// ListProducts returns one page of the filtered catalog along with the total
// count computed against the same predicate. Count and fetch are not
// transactional; the catalog is near-read-only so the window is accepted.
func (r *CatalogRepository) ListProducts(ctx context.Context, criteria catalog.Criteria) ([]models.Product, int64, error) {
	cacheKey := fmt.Sprintf("products:list:%s", criteria.CacheKey())

	if r.redis != nil {
		if val, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached cachedList
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Data, cached.Total, nil
			}
		}
	}

	filter := catalog.BuildFilter(criteria)
	query := filter.Apply(r.db.WithContext(ctx).Model(&models.Product{}))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := catalog.ResolveSort(criteria.Sort)
	offset := catalog.Offset(criteria.Page, criteria.PageSize)

	var products []models.Product
	if err := query.Order(order.Clause()).Offset(offset).Limit(criteria.PageSize).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(cachedList{Data: products, Total: total}); err == nil {
			r.redis.Set(ctx, cacheKey, data, ProductListCacheTTL)
		}
	}

	return products, total, nil
}

// GetProductByID retrieves a product by ID with caching. A missing row
// surfaces as gorm.ErrRecordNotFound; the caller decides whether that is an
// error or an empty result.
func (r *CatalogRepository) GetProductByID(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	cacheKey := fmt.Sprintf("products:item:%s", productID.String())

	if r.redis != nil {
		if val, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(val), &product); err == nil {
				return &product, nil
			}
		}
	}

	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", productID).First(&product).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(product); err == nil {
			r.redis.Set(ctx, cacheKey, data, ProductCacheTTL)
		}
	}

	return &product, nil
}

// BulkCreateProducts inserts imported products in batches and drops every
// list cache so the next listing sees the new rows.
func (r *CatalogRepository) BulkCreateProducts(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(products, 500).Error; err != nil {
		return err
	}
	r.invalidateListCaches(ctx)
	return nil
}

// invalidateListCaches removes all cached list pages.
func (r *CatalogRepository) invalidateListCaches(ctx context.Context) {
	if r.redis == nil {
		return
	}
	iter := r.redis.Scan(ctx, 0, "products:list:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		r.redis.Del(ctx, keys...)
	}
}
