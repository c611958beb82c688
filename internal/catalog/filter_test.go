package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFilterEmptyCriteriaMatchesEverything(t *testing.T) {
	f := BuildFilter(Criteria{})
	assert.Empty(t, f.Conds())
}

func TestBuildFilterSearch(t *testing.T) {
	f := BuildFilter(Criteria{Search: "silk"})
	conds := f.Conds()

	assert.Len(t, conds, 1)
	assert.Equal(t, "(name ILIKE ? OR description ILIKE ? OR product_type ILIKE ? OR colour ILIKE ?)", conds[0].Expr)
	assert.Equal(t, []interface{}{"%silk%", "%silk%", "%silk%", "%silk%"}, conds[0].Args)
}

func TestBuildFilterCategoriesLowered(t *testing.T) {
	f := BuildFilter(Criteria{Categories: []string{"Apparel", "FOOTWEAR"}})
	conds := f.Conds()

	assert.Len(t, conds, 1)
	assert.Equal(t, "LOWER(category) IN ?", conds[0].Expr)
	assert.Equal(t, []interface{}{[]string{"apparel", "footwear"}}, conds[0].Args)
}

func TestBuildFilterGendersCaseSensitive(t *testing.T) {
	f := BuildFilter(Criteria{Genders: []string{"Men", "Women"}})
	conds := f.Conds()

	assert.Len(t, conds, 1)
	assert.Equal(t, "gender IN ?", conds[0].Expr)
	assert.Equal(t, []interface{}{[]string{"Men", "Women"}}, conds[0].Args)
}

func TestBuildFilterPriceBoundsInclusive(t *testing.T) {
	min, max := 50.0, 150.0
	f := BuildFilter(Criteria{MinPrice: &min, MaxPrice: &max})
	conds := f.Conds()

	assert.Len(t, conds, 2)
	assert.Equal(t, "price >= ?", conds[0].Expr)
	assert.Equal(t, []interface{}{50.0}, conds[0].Args)
	assert.Equal(t, "price <= ?", conds[1].Expr)
	assert.Equal(t, []interface{}{150.0}, conds[1].Args)
}

func TestBuildFilterFlags(t *testing.T) {
	f := BuildFilter(Criteria{NewArrivals: true, Featured: true})
	conds := f.Conds()

	assert.Len(t, conds, 2)
	assert.Equal(t, "new_arrival = ?", conds[0].Expr)
	assert.Equal(t, "featured = ?", conds[1].Expr)
}

func TestBuildFilterCombinesWithAnd(t *testing.T) {
	rating := 4.0
	f := BuildFilter(Criteria{
		Search:     "silk",
		Categories: []string{"Apparel"},
		Genders:    []string{"Women"},
		MinRating:  &rating,
		Featured:   true,
	})

	assert.Len(t, f.Conds(), 5)
}
