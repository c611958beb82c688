package catalog

import (
	"strings"

	"gorm.io/gorm"
)

// Cond is one SQL predicate with its bind arguments.
type Cond struct {
	Expr string
	Args []interface{}
}

// Filter is the combined predicate of all active constraints. Conditions are
// ANDed; an empty filter matches everything. The value is immutable once
// built, so it can be applied to the count and the page fetch without the
// two drifting apart.
type Filter struct {
	conds []Cond
}

// Conds exposes the ordered condition list.
func (f Filter) Conds() []Cond {
	return f.conds
}

// Apply chains every condition onto a gorm query.
func (f Filter) Apply(db *gorm.DB) *gorm.DB {
	for _, c := range f.conds {
		db = db.Where(c.Expr, c.Args...)
	}
	return db
}

// searchColumns are the fields free-text search matches against. A product
// matches when ANY of them contains the pattern, case-insensitively.
var searchColumns = []string{"name", "description", "product_type", "colour"}

// BuildFilter translates criteria into a storage predicate. Absent
// parameters contribute nothing: an empty criteria set selects the whole
// catalog, never an empty result.
func BuildFilter(c Criteria) Filter {
	var conds []Cond

	if c.Search != "" {
		pattern := "%" + c.Search + "%"
		exprs := make([]string, len(searchColumns))
		args := make([]interface{}, len(searchColumns))
		for i, col := range searchColumns {
			exprs[i] = col + " ILIKE ?"
			args[i] = pattern
		}
		conds = append(conds, Cond{
			Expr: "(" + strings.Join(exprs, " OR ") + ")",
			Args: args,
		})
	}

	if len(c.Categories) > 0 {
		lowered := make([]string, len(c.Categories))
		for i, cat := range c.Categories {
			lowered[i] = strings.ToLower(cat)
		}
		conds = append(conds, Cond{Expr: "LOWER(category) IN ?", Args: []interface{}{lowered}})
	}

	// Gender values are a closed enumeration, so the membership test stays
	// case-sensitive.
	if len(c.Genders) > 0 {
		conds = append(conds, Cond{Expr: "gender IN ?", Args: []interface{}{c.Genders}})
	}

	if c.MinPrice != nil {
		conds = append(conds, Cond{Expr: "price >= ?", Args: []interface{}{*c.MinPrice}})
	}
	if c.MaxPrice != nil {
		conds = append(conds, Cond{Expr: "price <= ?", Args: []interface{}{*c.MaxPrice}})
	}
	if c.MinRating != nil {
		conds = append(conds, Cond{Expr: "rating >= ?", Args: []interface{}{*c.MinRating}})
	}

	if c.NewArrivals {
		conds = append(conds, Cond{Expr: "new_arrival = ?", Args: []interface{}{true}})
	}
	if c.Featured {
		conds = append(conds, Cond{Expr: "featured = ?", Args: []interface{}{true}})
	}

	return Filter{conds: conds}
}
