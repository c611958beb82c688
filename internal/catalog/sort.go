package catalog

import "strings"

// Order is a resolved sort directive.
type Order struct {
	Column string
	Desc   bool
}

// Clause renders the directive as an ORDER BY fragment.
func (o Order) Clause() string {
	if o.Desc {
		return o.Column + " DESC"
	}
	return o.Column + " ASC"
}

// sortColumns maps public sort tokens to storage columns. Tokens outside
// this list fall back to the default order instead of reaching the storage
// layer, so a hostile or mistyped field name can never fail (or alter) the
// query.
var sortColumns = map[string]string{
	"created_date": "created_date",
	"price":        "price",
	"rating":       "rating",
	"name":         "name",
	"stock":        "stock",
	"numReviews":   "num_reviews",
}

// DefaultOrder is newest-first, the order the storefront renders without an
// explicit sort token.
var DefaultOrder = Order{Column: "created_date", Desc: true}

// ResolveSort maps a sort token to a directive. A leading "-" means
// descending; the remainder is the field name.
func ResolveSort(token string) Order {
	desc := false
	field := strings.TrimSpace(token)
	if strings.HasPrefix(field, "-") {
		desc = true
		field = field[1:]
	}
	col, ok := sortColumns[field]
	if !ok {
		return DefaultOrder
	}
	return Order{Column: col, Desc: desc}
}
