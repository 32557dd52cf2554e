package target

import (
	"fmt"
	"net/url"

	"polo-scraper/models"
	"polo-scraper/scraper"
	"polo-scraper/utils"
)

const (
	name        = "target"
	searchURL   = "https://www.target.com/s"
	placeholder = "https://images.unsplash.com/photo-1622445276096-b7e7fb5ab947?w=400&h=400&fit=crop"
)

// Site describes Target's search results page. Target cards carry no
// rating, so every listing gets the profile's default.
var Site = scraper.Site{
	Name:          name,
	DefaultSearch: "polo shirt",
	Limit:         10,
	BuildURL:      buildURL,

	ItemSelector:  `[data-test="product-card"]`,
	TitleSelector: `[data-test="product-title"]`,
	PriceSelector: `[data-test="product-price"]`,
	ImageSelector: "img",

	Profile: models.SourceProfile{
		Store:            "Target",
		Colors:           []string{"Navy", "White", "Black", "Gray"},
		Sizes:            []string{"S", "M", "L", "XL"},
		PlaceholderImage: placeholder,
		DefaultRating:    4.2,
		ReviewsMin:       50,
		ReviewsSpread:    100,
	},
}

// New creates the Target source adapter.
func New(fetcher scraper.Fetcher, logger *utils.Logger) scraper.Source {
	return scraper.NewHTMLSource(Site, fetcher, logger)
}

// Target's search takes no price bounds; the adapter filters by price itself.
func buildURL(term string, _ models.Filter) string {
	q := url.Values{}
	q.Set("searchTerm", term)
	q.Set("category", "5xt1a")
	q.Set("sortBy", "relevance")
	return fmt.Sprintf("%s?%s", searchURL, q.Encode())
}
