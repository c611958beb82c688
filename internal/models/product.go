package models

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the closed gender taxonomy used for catalog filtering.
type Gender string

const (
	GenderBoys  Gender = "Boys"
	GenderGirls Gender = "Girls"
	GenderMen   Gender = "Men"
	GenderWomen Gender = "Women"
)

// Product represents a catalog entry. The catalog is read-only from the
// storefront's perspective: rows are created through bulk import and never
// mutated by shoppers.
//
// JSON field names follow the storefront API contract (id, original_price,
// numReviews, created_date, ...), so the storage key never leaks to clients.
type Product struct {
	ID            uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name          string      `json:"name" gorm:"not null;index"`
	Description   string      `json:"description" gorm:"not null"`
	Price         float64     `json:"price" gorm:"not null;default:0;index"`
	OriginalPrice float64     `json:"original_price" gorm:"column:original_price;default:0"`
	Category      string      `json:"category" gorm:"not null;index"`
	Brand         string      `json:"brand" gorm:"default:'Generic'"`
	Images        StringArray `json:"images" gorm:"type:jsonb"`
	Stock         int         `json:"stock" gorm:"not null;default:0"`
	Rating        float64     `json:"rating" gorm:"not null;default:0;index"`
	NumReviews    int         `json:"numReviews" gorm:"column:num_reviews;not null;default:0"`
	NewArrival    bool        `json:"new_arrival" gorm:"column:new_arrival;default:false;index"`
	Featured      bool        `json:"featured" gorm:"default:false;index"`
	Gender        Gender      `json:"gender,omitempty" gorm:"index"`
	Colour        string      `json:"colour,omitempty"`
	ProductType   string      `json:"productType,omitempty" gorm:"column:product_type"`
	SubCategory   string      `json:"subCategory,omitempty" gorm:"column:sub_category"`
	Usage         string      `json:"usage,omitempty"`
	SourceID      string      `json:"productId,omitempty" gorm:"column:source_id;index"`
	CreatedAt     time.Time   `json:"created_date" gorm:"column:created_date;index"`
	UpdatedAt     time.Time   `json:"updated_date" gorm:"column:updated_date"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// OnSale reports whether the product carries a discount. Derived, never
// stored; there is intentionally no server-side onSale filter.
func (p *Product) OnSale() bool {
	return p.OriginalPrice > p.Price
}

// PaginationInfo describes the shape of a filtered result set. All fields are
// derived per response, never stored.
type PaginationInfo struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"pageSize"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// PriceRange echoes the requested price bounds in list metadata.
type PriceRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// ListMeta echoes the effective search and filters for debugging and
// telemetry. It has no functional role in the response.
type ListMeta struct {
	SearchQuery *string     `json:"searchQuery"`
	Filters     ListFilters `json:"filters"`
}

type ListFilters struct {
	Categories []string    `json:"categories,omitempty"`
	Genders    []string    `json:"genders,omitempty"`
	PriceRange *PriceRange `json:"priceRange"`
}

// ProductListResponse is the paginated listing envelope.
type ProductListResponse struct {
	Data       []Product      `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
	Meta       ListMeta       `json:"meta"`
}
