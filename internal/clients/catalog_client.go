// Package clients contains HTTP consumers of the storefront API. The catalog
// client mirrors the web client's query cache: identical filter sets share one
// cache entry and one in-flight request, and expired entries are served stale
// while a background refresh runs.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
)

const DefaultCacheTTL = 2 * time.Minute

// ListResult is a cached listing response. Stale marks entries that were past
// their TTL when served; a refresh is already running for them.
type ListResult struct {
	Response models.ProductListResponse
	Stale    bool
}

type cacheEntry struct {
	response  models.ProductListResponse
	fetchedAt time.Time
}

// CatalogClient consumes GET /api/products with client-side caching.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
	ttl        time.Duration

	mu      sync.RWMutex
	entries map[string]*cacheEntry
	group   singleflight.Group
}

func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		ttl:     DefaultCacheTTL,
		entries: make(map[string]*cacheEntry),
	}
}

// ListProducts returns the listing for the given criteria. Fresh cache hits
// return immediately. Expired entries are returned flagged as stale while a
// single background request refreshes them. Cache misses block until the
// listing is fetched, with concurrent callers for the same criteria collapsed
// into one request.
func (c *CatalogClient) ListProducts(ctx context.Context, criteria catalog.Criteria) (*ListResult, error) {
	key := criteria.CacheKey()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		if time.Since(entry.fetchedAt) < c.ttl {
			return &ListResult{Response: entry.response}, nil
		}
		c.revalidate(key, criteria)
		return &ListResult{Response: entry.response, Stale: true}, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.fetch(ctx, key, criteria)
	})
	if err != nil {
		return nil, err
	}
	return &ListResult{Response: v.(models.ProductListResponse)}, nil
}

// Invalidate drops every cached listing, typically after a catalog import.
func (c *CatalogClient) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

// revalidate refreshes an expired entry in the background. The singleflight
// group guarantees at most one refresh per key regardless of how many stale
// reads trigger it.
func (c *CatalogClient) revalidate(key string, criteria catalog.Criteria) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		c.group.Do(key, func() (interface{}, error) {
			return c.fetch(ctx, key, criteria)
		})
	}()
}

func (c *CatalogClient) fetch(ctx context.Context, key string, criteria catalog.Criteria) (models.ProductListResponse, error) {
	var response models.ProductListResponse

	endpoint := c.baseURL + "/api/products?" + buildQuery(criteria).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return response, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return response, fmt.Errorf("catalog request failed with status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return response, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	c.mu.Lock()
	c.entries[key] = &cacheEntry{response: response, fetchedAt: time.Now()}
	c.mu.Unlock()

	return response, nil
}

// buildQuery renders criteria back into request parameters. Page is always
// sent so the server selects the paginated response shape.
func buildQuery(criteria catalog.Criteria) url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(criteria.Page))
	values.Set("limit", strconv.Itoa(criteria.PageSize))
	if criteria.Search != "" {
		values.Set("search", criteria.Search)
	}
	if len(criteria.Categories) > 0 {
		values.Set("category", strings.Join(criteria.Categories, ","))
	}
	if len(criteria.Genders) > 0 {
		values.Set("gender", strings.Join(criteria.Genders, ","))
	}
	if criteria.MinPrice != nil {
		values.Set("minPrice", strconv.FormatFloat(*criteria.MinPrice, 'f', -1, 64))
	}
	if criteria.MaxPrice != nil {
		values.Set("maxPrice", strconv.FormatFloat(*criteria.MaxPrice, 'f', -1, 64))
	}
	if criteria.MinRating != nil {
		values.Set("minRating", strconv.FormatFloat(*criteria.MinRating, 'f', -1, 64))
	}
	if criteria.NewArrivals {
		values.Set("newArrivals", "true")
	}
	if criteria.Featured {
		values.Set("featured", "true")
	}
	if criteria.Sort != "" {
		values.Set("sort", criteria.Sort)
	}
	return values
}
