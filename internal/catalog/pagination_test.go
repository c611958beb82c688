package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, 1, NormalizePage(0))
	assert.Equal(t, 1, NormalizePage(-3))
	assert.Equal(t, 1, NormalizePage(1))
	assert.Equal(t, 42, NormalizePage(42))
}

func TestNormalizePageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, NormalizePageSize(0))
	assert.Equal(t, DefaultPageSize, NormalizePageSize(-1))
	assert.Equal(t, 1, NormalizePageSize(1))
	assert.Equal(t, 50, NormalizePageSize(50))
	assert.Equal(t, MaxPageSize, NormalizePageSize(100))
	assert.Equal(t, MaxPageSize, NormalizePageSize(500))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 20, Offset(2, 20))
	assert.Equal(t, 236, Offset(60, 4))
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		total    int64
		want     struct {
			totalPages int
			hasNext    bool
			hasPrev    bool
		}
	}{
		{
			name: "first page of many", page: 1, pageSize: 20, total: 237,
			want: struct {
				totalPages int
				hasNext    bool
				hasPrev    bool
			}{12, true, false},
		},
		{
			name: "middle page", page: 5, pageSize: 20, total: 237,
			want: struct {
				totalPages int
				hasNext    bool
				hasPrev    bool
			}{12, true, true},
		},
		{
			name: "last partial page", page: 12, pageSize: 20, total: 237,
			want: struct {
				totalPages int
				hasNext    bool
				hasPrev    bool
			}{12, false, true},
		},
		{
			name: "past the end", page: 50, pageSize: 20, total: 237,
			want: struct {
				totalPages int
				hasNext    bool
				hasPrev    bool
			}{12, false, true},
		},
		{
			name: "exact multiple", page: 2, pageSize: 10, total: 20,
			want: struct {
				totalPages int
				hasNext    bool
				hasPrev    bool
			}{2, false, true},
		},
		{
			name: "empty result", page: 1, pageSize: 20, total: 0,
			want: struct {
				totalPages int
				hasNext    bool
				hasPrev    bool
			}{0, false, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Paginate(tt.page, tt.pageSize, tt.total)
			assert.Equal(t, tt.page, info.Page)
			assert.Equal(t, tt.pageSize, info.PageSize)
			assert.Equal(t, tt.total, info.Total)
			assert.Equal(t, tt.want.totalPages, info.TotalPages)
			assert.Equal(t, tt.want.hasNext, info.HasNextPage)
			assert.Equal(t, tt.want.hasPrev, info.HasPrevPage)
		})
	}
}
