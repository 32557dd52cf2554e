package walmart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polo-scraper/models"
	"polo-scraper/utils"
)

type stubFetcher struct{ body string }

func (f stubFetcher) Fetch(context.Context, string) (string, error) { return f.body, nil }

const page = `<section>
<div data-item-id="1"><span data-testid="product-title">George Men's Polo</span><div data-testid="price-wrap">current price $9.98</div><div data-testid="rating">4.3 stars</div></div>
<div data-item-id="2"><span data-testid="product-title">Tommy Hilfiger Polo</span><div data-testid="price-wrap">$89.00</div></div>
</section>`

func TestFetchParsesResults(t *testing.T) {
	got := New(stubFetcher{body: page}, utils.NewNopLogger()).Fetch(context.Background(), models.Filter{MinPrice: 5, MaxPrice: 50})

	require.Len(t, got, 1)
	assert.Equal(t, "George Men's Polo", got[0].Title)
	assert.Equal(t, "4.3 stars", got[0].Rating)
}

func TestBuildURL(t *testing.T) {
	u := buildURL("lacoste polo", models.Filter{MinPrice: 10, MaxPrice: 99.5})
	assert.Contains(t, u, "q=lacoste+polo")
	assert.Contains(t, u, "min_price=10")
	assert.Contains(t, u, "max_price=99.5")
	assert.Contains(t, u, "sort=price_low")
}
