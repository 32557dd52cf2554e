package walmart

import (
	"fmt"
	"net/url"
	"strconv"

	"polo-scraper/models"
	"polo-scraper/scraper"
	"polo-scraper/utils"
)

const (
	name        = "walmart"
	searchURL   = "https://www.walmart.com/search"
	placeholder = "https://images.unsplash.com/photo-1604695573706-53170668f6a6?w=400&h=400&fit=crop"
)

// Site describes Walmart's search results page.
var Site = scraper.Site{
	Name:          name,
	DefaultSearch: "polo shirt",
	Limit:         10,
	BuildURL:      buildURL,

	ItemSelector:   "[data-item-id]",
	TitleSelector:  `[data-testid="product-title"]`,
	PriceSelector:  `[data-testid="price-wrap"]`,
	ImageSelector:  "img",
	RatingSelector: `[data-testid="rating"]`,

	Profile: models.SourceProfile{
		Store:            "Walmart",
		Colors:           []string{"Navy", "White", "Black"},
		Sizes:            []string{"S", "M", "L", "XL"},
		PlaceholderImage: placeholder,
		ReviewsMin:       100,
		ReviewsSpread:    200,
	},
}

// New creates the Walmart source adapter.
func New(fetcher scraper.Fetcher, logger *utils.Logger) scraper.Source {
	return scraper.NewHTMLSource(Site, fetcher, logger)
}

func buildURL(term string, f models.Filter) string {
	q := url.Values{}
	q.Set("q", term)
	q.Set("min_price", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	q.Set("max_price", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	q.Set("sort", "price_low")
	return fmt.Sprintf("%s?%s", searchURL, q.Encode())
}
