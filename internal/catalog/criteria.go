// Package catalog implements the product listing core: translating raw query
// parameters into a storage filter predicate, a sort directive, and a
// skip/limit pair with consistent pagination metadata.
package catalog

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"storefront-service/internal/models"
)

// ListMode identifies which of the three supported response shapes a request
// asks for, derived from which parameters are present.
type ListMode int

const (
	// ModePaginated returns the {data, pagination, meta} envelope.
	ModePaginated ListMode = iota
	// ModeLegacy returns a bare product array: sort and limit only, no page.
	ModeLegacy
	// ModeByID returns a 0- or 1-element array for an id lookup.
	ModeByID
)

// filterParams are the query parameters whose presence selects paginated mode.
var filterParams = []string{
	"page", "search", "category", "gender",
	"minPrice", "maxPrice", "minRating", "newArrivals", "featured",
}

// ResolveMode derives the listing mode from the raw query parameters.
func ResolveMode(values url.Values) ListMode {
	if values.Get("id") != "" {
		return ModeByID
	}
	for _, p := range filterParams {
		if _, ok := values[p]; ok {
			return ModePaginated
		}
	}
	return ModeLegacy
}

// Criteria is the typed filter/sort/page parameter set of one listing
// request. All fields are optional; zero values mean "no constraint".
type Criteria struct {
	Search      string
	Categories  []string
	Genders     []string
	MinPrice    *float64
	MaxPrice    *float64
	MinRating   *float64
	NewArrivals bool
	Featured    bool
	Sort        string
	Page        int
	PageSize    int
}

// ParseCriteria builds Criteria from raw query parameters. Malformed numeric
// inputs are treated as absent rather than rejected, matching the permissive
// client behavior. Page and page size are clamped here so every consumer
// sees the effective values.
func ParseCriteria(values url.Values) Criteria {
	c := Criteria{
		Search: strings.TrimSpace(values.Get("search")),
		Sort:   values.Get("sort"),
	}

	c.Categories = multiValue(values, "category")
	c.Genders = multiValue(values, "gender")

	c.MinPrice = parseFloat(values.Get("minPrice"))
	c.MaxPrice = parseFloat(values.Get("maxPrice"))
	c.MinRating = parseFloat(values.Get("minRating"))

	// Flags restrict only on the literal "true"; anything else is unrestricted.
	c.NewArrivals = values.Get("newArrivals") == "true"
	c.Featured = values.Get("featured") == "true"

	page, _ := strconv.Atoi(values.Get("page"))
	limit, _ := strconv.Atoi(values.Get("limit"))
	c.Page = NormalizePage(page)
	c.PageSize = NormalizePageSize(limit)

	return c
}

// multiValue collects a repeatable parameter, also splitting comma-joined
// values, and drops empty entries.
func multiValue(values url.Values, key string) []string {
	var out []string
	for _, raw := range values[key] {
		for _, v := range strings.Split(raw, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func parseFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// cacheKeyParams is the canonical, order-stable projection of Criteria used
// for cache keying. Array members are sorted so that the same filter set in
// a different parameter order never produces a spurious miss.
type cacheKeyParams struct {
	Page        int      `json:"page"`
	PageSize    int      `json:"pageSize"`
	Search      string   `json:"search"`
	Categories  []string `json:"categories"`
	Genders     []string `json:"genders"`
	MinPrice    *float64 `json:"minPrice"`
	MaxPrice    *float64 `json:"maxPrice"`
	MinRating   *float64 `json:"minRating"`
	NewArrivals bool     `json:"newArrivals"`
	Featured    bool     `json:"featured"`
	Sort        string   `json:"sort"`
}

// CacheKey returns a deterministic key for this criteria set.
func (c Criteria) CacheKey() string {
	params := cacheKeyParams{
		Page:        c.Page,
		PageSize:    c.PageSize,
		Search:      c.Search,
		Categories:  sortedCopy(c.Categories),
		Genders:     sortedCopy(c.Genders),
		MinPrice:    c.MinPrice,
		MaxPrice:    c.MaxPrice,
		MinRating:   c.MinRating,
		NewArrivals: c.NewArrivals,
		Featured:    c.Featured,
		Sort:        c.Sort,
	}
	data, _ := json.Marshal(params)
	hash := md5.Sum(data)
	return hex.EncodeToString(hash[:])
}

func sortedCopy(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}

// Meta echoes the effective search and filters back to the client.
func (c Criteria) Meta() models.ListMeta {
	meta := models.ListMeta{
		Filters: models.ListFilters{
			Categories: c.Categories,
			Genders:    c.Genders,
		},
	}
	if c.Search != "" {
		s := c.Search
		meta.SearchQuery = &s
	}
	if c.MinPrice != nil || c.MaxPrice != nil {
		meta.Filters.PriceRange = &models.PriceRange{Min: c.MinPrice, Max: c.MaxPrice}
	}
	return meta
}
