package catalog

import "storefront-service/internal/models"

const (
	// DefaultPageSize is used when the client does not request a limit.
	DefaultPageSize = 20
	// MaxPageSize caps the page size regardless of what the client asks for.
	MaxPageSize = 100
)

// NormalizePage clamps the requested page to a minimum of 1.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// NormalizePageSize applies the default and the hard cap.
func NormalizePageSize(size int) int {
	if size < 1 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Offset converts (page, pageSize) into the number of rows to skip.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// Paginate derives the pagination metadata for a filtered result set. The
// total must have been counted against the same filter as the page of data.
func Paginate(page, pageSize int, total int64) models.PaginationInfo {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return models.PaginationInfo{
		Page:        page,
		PageSize:    pageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: int64(page)*int64(pageSize) < total,
		HasPrevPage: page > 1,
	}
}
