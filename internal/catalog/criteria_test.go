package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  ListMode
	}{
		{"no params", "", ModeLegacy},
		{"sort and limit only", "sort=-price&limit=8", ModeLegacy},
		{"page selects paginated", "page=2", ModePaginated},
		{"filter selects paginated", "category=Apparel", ModePaginated},
		{"empty filter value still selects paginated", "search=", ModePaginated},
		{"id wins over everything", "id=abc&page=2&category=Apparel", ModeByID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ResolveMode(values))
		})
	}
}

func TestParseCriteria(t *testing.T) {
	values, _ := url.ParseQuery("search=%20silk%20&category=Apparel,Footwear&gender=Men&gender=Women&minPrice=50&maxPrice=150&minRating=4&newArrivals=true&featured=1&page=3&limit=40&sort=-price")
	c := ParseCriteria(values)

	assert.Equal(t, "silk", c.Search)
	assert.Equal(t, []string{"Apparel", "Footwear"}, c.Categories)
	assert.Equal(t, []string{"Men", "Women"}, c.Genders)
	assert.Equal(t, 50.0, *c.MinPrice)
	assert.Equal(t, 150.0, *c.MaxPrice)
	assert.Equal(t, 4.0, *c.MinRating)
	assert.True(t, c.NewArrivals)
	assert.False(t, c.Featured, "flags trigger only on the literal true")
	assert.Equal(t, 3, c.Page)
	assert.Equal(t, 40, c.PageSize)
	assert.Equal(t, "-price", c.Sort)
}

func TestParseCriteriaDefaults(t *testing.T) {
	c := ParseCriteria(url.Values{})

	assert.Empty(t, c.Search)
	assert.Empty(t, c.Categories)
	assert.Nil(t, c.MinPrice)
	assert.Nil(t, c.MaxPrice)
	assert.Nil(t, c.MinRating)
	assert.False(t, c.NewArrivals)
	assert.False(t, c.Featured)
	assert.Equal(t, 1, c.Page)
	assert.Equal(t, DefaultPageSize, c.PageSize)
}

func TestParseCriteriaMalformedNumericsIgnored(t *testing.T) {
	values, _ := url.ParseQuery("minPrice=cheap&maxPrice=&minRating=lots&page=abc&limit=many")
	c := ParseCriteria(values)

	assert.Nil(t, c.MinPrice)
	assert.Nil(t, c.MaxPrice)
	assert.Nil(t, c.MinRating)
	assert.Equal(t, 1, c.Page)
	assert.Equal(t, DefaultPageSize, c.PageSize)
}

func TestParseCriteriaClampsPageSize(t *testing.T) {
	values, _ := url.ParseQuery("page=-2&limit=500")
	c := ParseCriteria(values)

	assert.Equal(t, 1, c.Page)
	assert.Equal(t, MaxPageSize, c.PageSize)
}

func TestCacheKeyDeterministic(t *testing.T) {
	min := 50.0
	a := Criteria{Search: "silk", Categories: []string{"Apparel"}, MinPrice: &min, Page: 1, PageSize: 20}
	b := Criteria{Search: "silk", Categories: []string{"Apparel"}, MinPrice: &min, Page: 1, PageSize: 20}

	assert.Equal(t, a.CacheKey(), b.CacheKey())
}

func TestCacheKeyIgnoresArrayOrder(t *testing.T) {
	a := Criteria{Categories: []string{"Apparel", "Footwear"}, Genders: []string{"Men", "Women"}, Page: 1, PageSize: 20}
	b := Criteria{Categories: []string{"Footwear", "Apparel"}, Genders: []string{"Women", "Men"}, Page: 1, PageSize: 20}

	assert.Equal(t, a.CacheKey(), b.CacheKey())
}

func TestCacheKeyDistinguishesCriteria(t *testing.T) {
	base := Criteria{Page: 1, PageSize: 20}
	otherPage := Criteria{Page: 2, PageSize: 20}
	withSearch := Criteria{Page: 1, PageSize: 20, Search: "silk"}
	withFlag := Criteria{Page: 1, PageSize: 20, Featured: true}

	assert.NotEqual(t, base.CacheKey(), otherPage.CacheKey())
	assert.NotEqual(t, base.CacheKey(), withSearch.CacheKey())
	assert.NotEqual(t, base.CacheKey(), withFlag.CacheKey())
}

func TestMeta(t *testing.T) {
	min, max := 50.0, 150.0
	c := Criteria{Search: "silk", Categories: []string{"Apparel"}, Genders: []string{"Men"}, MinPrice: &min, MaxPrice: &max}
	meta := c.Meta()

	assert.Equal(t, "silk", *meta.SearchQuery)
	assert.Equal(t, []string{"Apparel"}, meta.Filters.Categories)
	assert.Equal(t, []string{"Men"}, meta.Filters.Genders)
	assert.Equal(t, 50.0, *meta.Filters.PriceRange.Min)
	assert.Equal(t, 150.0, *meta.Filters.PriceRange.Max)
}

func TestMetaEmptyCriteria(t *testing.T) {
	meta := Criteria{}.Meta()

	assert.Nil(t, meta.SearchQuery)
	assert.Nil(t, meta.Filters.PriceRange)
	assert.Empty(t, meta.Filters.Categories)
}
