package ebay

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"polo-scraper/models"
	"polo-scraper/scraper"
	"polo-scraper/utils"
)

const (
	name        = "ebay"
	searchURL   = "https://www.ebay.com/sch/i.html"
	placeholder = "https://images.unsplash.com/photo-1581803118522-7b72a50f7e9f?w=400&h=400&fit=crop"
)

// lotRegexp matches bulk "lot" listings, which are not single shirts.
var lotRegexp = regexp.MustCompile(`(?i)\blots?\b`)

// Site describes eBay's search results page.
var Site = scraper.Site{
	Name:          name,
	DefaultSearch: "polo shirt men",
	Limit:         15,
	BuildURL:      buildURL,

	ItemSelector:     ".s-item",
	TitleSelector:    ".s-item__title",
	PriceSelector:    ".s-item__price",
	ImageSelector:    ".s-item__image-img",
	RatingSelector:   ".x-star-rating",
	LocationSelector: ".s-item__location",

	Exclude: lotRegexp.MatchString,

	Profile: models.SourceProfile{
		Store:            "eBay",
		Colors:           []string{"Navy", "White", "Black"},
		Sizes:            []string{"S", "M", "L", "XL"},
		PlaceholderImage: placeholder,
		DefaultLocation:  "US",
	},
}

// New creates the eBay source adapter.
func New(fetcher scraper.Fetcher, logger *utils.Logger) scraper.Source {
	return scraper.NewHTMLSource(Site, fetcher, logger)
}

// buildURL sorts by lowest price first (_sop=12) within the price window.
func buildURL(term string, f models.Filter) string {
	q := url.Values{}
	q.Set("_nkw", term)
	q.Set("_sacat", "0")
	q.Set("_udlo", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	q.Set("_udhi", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	q.Set("_sop", "12")
	return fmt.Sprintf("%s?%s", searchURL, q.Encode())
}
