package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polo-scraper/models"
)

func ids(listings []*models.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestFallbackProvideSortedByPrice(t *testing.T) {
	got := NewFallbackProvider().Provide(models.Filter{Search: "polo", MinPrice: 0, MaxPrice: 1000})

	assert.Equal(t, []string{"fallback_4", "fallback_3", "fallback_1", "fallback_2", "fallback_5"}, ids(got))
}

func TestFallbackProvideFilters(t *testing.T) {
	p := NewFallbackProvider()

	assert.Equal(t, []string{"fallback_3"}, ids(p.Provide(models.Filter{Search: "NIKE", MinPrice: 50, MaxPrice: 80})))
	assert.Equal(t, []string{"fallback_1", "fallback_5"}, ids(p.Provide(models.Filter{Search: "ralph"})))
	assert.Empty(t, p.Provide(models.Filter{Search: "adidas"}))
	assert.NotNil(t, p.Provide(models.Filter{Search: "adidas"}), "empty result must still be a slice")
}

func TestFallbackProvideIsDeterministic(t *testing.T) {
	p := NewFallbackProvider()
	a := p.Provide(models.DefaultFilter())
	b := p.Provide(models.DefaultFilter())
	require.Equal(t, a, b)

	a[0].Name = "mutated"
	assert.NotEqual(t, "mutated", p.Provide(models.DefaultFilter())[0].Name)
}

func TestFallbackSourceCarriesPrebuiltListings(t *testing.T) {
	src := NewFallbackProvider().AsSource()
	raw := src.Fetch(context.Background(), models.Filter{Search: "lacoste"})

	require.Len(t, raw, 1)
	assert.Equal(t, "fallback", src.Name())
	require.NotNil(t, raw[0].Prebuilt)
	assert.Equal(t, "fallback_2", raw[0].Prebuilt.ID)
}
