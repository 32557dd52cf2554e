package services

import (
	"context"
	"sort"
	"time"

	"polo-scraper/models"
)

const fallbackSource = "fallback"

// FallbackProvider serves a small fixed catalog when live sources yield
// nothing, and can also run as a source of its own next to them.
type FallbackProvider struct{}

// NewFallbackProvider creates a FallbackProvider.
func NewFallbackProvider() *FallbackProvider {
	return &FallbackProvider{}
}

// Provide returns the catalog entries matching filter, sorted ascending by
// price. Every call returns fresh copies.
func (p *FallbackProvider) Provide(filter models.Filter) []*models.Listing {
	filter = filter.Normalize()
	result := make([]*models.Listing, 0, 5)
	for _, l := range catalog() {
		if filter.Matches(l) {
			result = append(result, l)
		}
	}
	sortByPrice(result)
	return result
}

// AsSource exposes the catalog through the source adapter contract.
func (p *FallbackProvider) AsSource() *FallbackSource {
	return &FallbackSource{provider: p}
}

// FallbackSource adapts a FallbackProvider to scraper.Source.
type FallbackSource struct {
	provider *FallbackProvider
}

func (s *FallbackSource) Name() string { return fallbackSource }

func (s *FallbackSource) Profile() models.SourceProfile { return models.SourceProfile{} }

func (s *FallbackSource) Fetch(_ context.Context, filter models.Filter) []*models.RawListing {
	listings := s.provider.Provide(filter)
	now := time.Now()
	raw := make([]*models.RawListing, 0, len(listings))
	for _, l := range listings {
		raw = append(raw, &models.RawListing{
			Source:    fallbackSource,
			Title:     l.Name,
			ScrapedAt: now,
			Prebuilt:  l,
		})
	}
	return raw
}

func sortByPrice(listings []*models.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].Price < listings[j].Price
	})
}

func usd(v float64) *float64 { return &v }

func catalog() []*models.Listing {
	return []*models.Listing{
		{
			ID:            "fallback_1",
			Name:          "Classic Fit Polo Shirt",
			Brand:         "Ralph Lauren",
			Price:         89.50,
			OriginalPrice: usd(110.00),
			Image:         "https://images.unsplash.com/photo-1581803118522-7b72a50f7e9f?w=400&h=400&fit=crop",
			Store:         "Macy's",
			Colors:        []string{"Navy", "White", "Red"},
			Sizes:         []string{"S", "M", "L", "XL"},
			Rating:        4.5,
			Reviews:       234,
		},
		{
			ID:      "fallback_2",
			Name:    "Lacoste L.12.12 Polo",
			Brand:   "Lacoste",
			Price:   95.00,
			Image:   "https://images.unsplash.com/photo-1622445275576-721325763afe?w=400&h=400&fit=crop",
			Store:   "Bloomingdale's",
			Colors:  []string{"Green", "Navy", "White"},
			Sizes:   []string{"S", "M", "L", "XL", "XXL"},
			Rating:  4.7,
			Reviews: 189,
		},
		{
			ID:            "fallback_3",
			Name:          "Performance Polo",
			Brand:         "Nike",
			Price:         65.00,
			OriginalPrice: usd(75.00),
			Image:         "https://images.unsplash.com/photo-1604695573706-53170668f6a6?w=400&h=400&fit=crop",
			Store:         "Dick's Sporting Goods",
			Colors:        []string{"Black", "Navy", "Gray"},
			Sizes:         []string{"S", "M", "L", "XL"},
			Rating:        4.3,
			Reviews:       156,
		},
		{
			ID:      "fallback_4",
			Name:    "Premium Cotton Polo",
			Brand:   "Uniqlo",
			Price:   29.90,
			Image:   "https://images.unsplash.com/photo-1622445276096-b7e7fb5ab947?w=400&h=400&fit=crop",
			Store:   "Uniqlo",
			Colors:  []string{"White", "Black", "Blue", "Gray"},
			Sizes:   []string{"XS", "S", "M", "L", "XL"},
			Rating:  4.2,
			Reviews: 89,
		},
		{
			ID:      "fallback_5",
			Name:    "Luxury Pique Polo",
			Brand:   "Polo Ralph Lauren",
			Price:   125.00,
			Image:   "https://images.unsplash.com/photo-1618932260643-eee4a2f652a6?w=400&h=400&fit=crop",
			Store:   "Nordstrom",
			Colors:  []string{"Navy", "White", "Pink"},
			Sizes:   []string{"S", "M", "L", "XL"},
			Rating:  4.6,
			Reviews: 278,
		},
	}
}
