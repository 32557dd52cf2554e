package models

import "time"

// RawListing holds one unprocessed candidate exactly as a source adapter
// extracted it. Optional fields are empty when the source does not carry them.
type RawListing struct {
	Source    string
	Title     string
	RawPrice  string
	Image     string
	Rating    string
	Reviews   string
	Location  string
	ScrapedAt time.Time

	// Prebuilt is set by sources that already produce canonical listings
	// (the fallback catalog); the normalizer passes it through as-is.
	Prebuilt *Listing
}

// SourceProfile carries the per-source defaults the normalizer applies when a
// raw record is missing a field.
type SourceProfile struct {
	Store            string
	Colors           []string
	Sizes            []string
	PlaceholderImage string
	DefaultRating    float64
	ReviewsMin       int
	ReviewsSpread    int
	DefaultLocation  string
}

// Listing is the canonical, normalized product record served by the API.
type Listing struct {
	ID            string   `json:"id" validate:"required"`
	Name          string   `json:"name" validate:"required"`
	Brand         string   `json:"brand" validate:"required"`
	Price         float64  `json:"price" validate:"gt=0"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Store         string   `json:"store"`
	Colors        []string `json:"colors" validate:"min=1"`
	Sizes         []string `json:"sizes" validate:"min=1"`
	Rating        float64  `json:"rating" validate:"gte=0,lte=5"`
	Reviews       int      `json:"reviews" validate:"gte=0"`
	Location      string   `json:"location,omitempty"`
}

// Clone returns a deep copy so callers can hand out listings without sharing
// the underlying slices.
func (l *Listing) Clone() *Listing {
	c := *l
	c.Colors = append([]string(nil), l.Colors...)
	c.Sizes = append([]string(nil), l.Sizes...)
	if l.OriginalPrice != nil {
		op := *l.OriginalPrice
		c.OriginalPrice = &op
	}
	return &c
}

// CacheStats reports result cache activity for the health endpoint.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Keys   int   `json:"keys"`
}

// InsightReport summarises one aggregated listing set.
type InsightReport struct {
	TotalListings   int            `json:"totalListings"`
	AveragePrice    float64        `json:"averagePrice"`
	MinPrice        float64        `json:"minPrice"`
	MaxPrice        float64        `json:"maxPrice"`
	MostExpensive   *Listing       `json:"mostExpensive,omitempty"`
	Cheapest        *Listing       `json:"cheapest,omitempty"`
	TopRated        []*Listing     `json:"topRated"`
	ListingsByStore map[string]int `json:"listingsByStore"`
	ListingsByBrand map[string]int `json:"listingsByBrand"`
}
