package models

import "strings"

const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 1000
)

// Filter is the set of query parameters one aggregation is run with.
type Filter struct {
	Search   string
	Brand    string
	MinPrice float64
	MaxPrice float64
}

// DefaultFilter matches every listing in the default price window.
func DefaultFilter() Filter {
	return Filter{MinPrice: DefaultMinPrice, MaxPrice: DefaultMaxPrice}
}

// Normalize trims the text fields and replaces unset bounds with defaults.
// A negative minimum and a non-positive maximum both count as unset.
func (f Filter) Normalize() Filter {
	f.Search = strings.TrimSpace(f.Search)
	f.Brand = strings.TrimSpace(f.Brand)
	if f.MinPrice < 0 {
		f.MinPrice = DefaultMinPrice
	}
	if f.MaxPrice <= 0 {
		f.MaxPrice = DefaultMaxPrice
	}
	return f
}

// Matches reports whether l passes the search and price predicate. The search
// term matches name or brand case-insensitively; an empty term matches all.
func (f Filter) Matches(l *Listing) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(l.Name), term) &&
			!strings.Contains(strings.ToLower(l.Brand), term) {
			return false
		}
	}
	return l.Price >= f.MinPrice && l.Price <= f.MaxPrice
}
