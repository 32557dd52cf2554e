package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"polo-scraper/models"
	"polo-scraper/utils"
)

// Keyword every live candidate title must contain.
const Keyword = "polo"

// Source is one independent catalog the aggregator fans out to. Fetch never
// fails the caller: any fetch or parse problem yields an empty result.
type Source interface {
	Name() string
	Profile() models.SourceProfile
	Fetch(ctx context.Context, filter models.Filter) []*models.RawListing
}

// Site declares how to query and parse one retailer's search results page.
type Site struct {
	Name          string
	DefaultSearch string
	Limit         int
	BuildURL      func(term string, filter models.Filter) string

	ItemSelector     string
	TitleSelector    string
	PriceSelector    string
	ImageSelector    string
	RatingSelector   string
	ReviewsSelector  string
	LocationSelector string

	// Exclude drops candidates on top of the keyword and price rules.
	Exclude func(title string) bool

	Profile models.SourceProfile
}

// HTMLSource is a Source backed by a Site description and a Fetcher.
type HTMLSource struct {
	site    Site
	fetcher Fetcher
	logger  *utils.Logger
}

// NewHTMLSource creates an HTMLSource for site.
func NewHTMLSource(site Site, fetcher Fetcher, logger *utils.Logger) *HTMLSource {
	return &HTMLSource{site: site, fetcher: fetcher, logger: logger}
}

func (s *HTMLSource) Name() string { return s.site.Name }

func (s *HTMLSource) Profile() models.SourceProfile { return s.site.Profile }

// URL returns the search URL the source would request for filter.
func (s *HTMLSource) URL(filter models.Filter) string {
	term := strings.TrimSpace(filter.Search)
	if term == "" {
		term = s.site.DefaultSearch
	}
	return s.site.BuildURL(term, filter)
}

// Fetch requests the search page and extracts at most Limit candidates.
func (s *HTMLSource) Fetch(ctx context.Context, filter models.Filter) []*models.RawListing {
	filter = filter.Normalize()
	url := s.URL(filter)

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn("[%s] Fetch failed: %v", s.site.Name, err)
		return nil
	}

	listings, err := s.parse(body, filter)
	if err != nil {
		s.logger.Warn("[%s] Parse failed: %v", s.site.Name, err)
		return nil
	}

	s.logger.Debug("[%s] Extracted %d candidates from %s", s.site.Name, len(listings), url)
	return listings
}

func (s *HTMLSource) parse(body string, filter models.Filter) ([]*models.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: parse html: %w", s.site.Name, err)
	}

	now := time.Now()
	listings := make([]*models.RawListing, 0, s.site.Limit)

	doc.Find(s.site.ItemSelector).EachWithBreak(func(i int, item *goquery.Selection) bool {
		if i >= s.site.Limit {
			return false
		}

		title := text(item, s.site.TitleSelector)
		priceText := text(item, s.site.PriceSelector)
		if title == "" || priceText == "" {
			return true
		}
		if !strings.Contains(strings.ToLower(title), Keyword) {
			return true
		}
		if s.site.Exclude != nil && s.site.Exclude(title) {
			s.logger.Debug("[%s] Excluded candidate: %s", s.site.Name, title)
			return true
		}

		price, ok := ParsePrice(priceText)
		if !ok || price <= 0 || price < filter.MinPrice || price > filter.MaxPrice {
			return true
		}

		listings = append(listings, &models.RawListing{
			Source:    s.site.Name,
			Title:     title,
			RawPrice:  priceText,
			Image:     attr(item, s.site.ImageSelector, "src"),
			Rating:    text(item, s.site.RatingSelector),
			Reviews:   text(item, s.site.ReviewsSelector),
			Location:  text(item, s.site.LocationSelector),
			ScrapedAt: now,
		})
		return true
	})

	return listings, nil
}

func text(item *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(item.Find(selector).First().Text())
}

func attr(item *goquery.Selection, selector, name string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(item.Find(selector).First().AttrOr(name, ""))
}
