package services

import (
	"context"
	"errors"
	"strings"

	"polo-scraper/metrics"
	"polo-scraper/models"
	"polo-scraper/storage"
	"polo-scraper/utils"
)

// ErrNotFound is returned when no listing carries the requested id.
var ErrNotFound = errors.New("listing not found")

// ListingAggregator produces a result set for one filter without failing.
type ListingAggregator interface {
	Aggregate(ctx context.Context, filter models.Filter) []*models.Listing
}

// QueryService is the boundary the HTTP layer talks to: cache first, then
// aggregation.
type QueryService struct {
	aggregator ListingAggregator
	cache      storage.ListingStore
	insights   *InsightService
	metrics    *metrics.Registry
	logger     *utils.Logger
}

func NewQueryService(
	aggregator ListingAggregator,
	cache storage.ListingStore,
	insights *InsightService,
	reg *metrics.Registry,
	logger *utils.Logger,
) *QueryService {
	return &QueryService{
		aggregator: aggregator,
		cache:      cache,
		insights:   insights,
		metrics:    reg,
		logger:     logger,
	}
}

// ListAll returns the listings for filter, from cache when a live entry
// exists. Concurrent misses for the same filter each aggregate.
func (s *QueryService) ListAll(ctx context.Context, filter models.Filter) []*models.Listing {
	filter = filter.Normalize()
	fp := storage.Fingerprint(filter)

	if cached, ok := s.cache.Get(fp); ok {
		s.logger.Debug("[query] Serving from cache: %s", fp)
		s.metrics.CacheHits.Inc()
		return cached
	}
	s.metrics.CacheMisses.Inc()

	s.logger.Info("[query] Fetching fresh data for %s", fp)
	listings := s.aggregator.Aggregate(ctx, filter)
	s.cache.Put(fp, listings)
	return listings
}

// GetByID looks id up in every cached result set, then in a fresh
// unfiltered listing.
func (s *QueryService) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	match := func(l *models.Listing) bool { return l.ID == id }

	if l, ok := s.cache.Find(match); ok {
		return l, nil
	}
	for _, l := range s.ListAll(ctx, models.DefaultFilter()) {
		if match(l) {
			return l, nil
		}
	}
	return nil, ErrNotFound
}

// Search lists the listings matching text. Blank text matches nothing and
// does not reach the sources.
func (s *QueryService) Search(ctx context.Context, text string) []*models.Listing {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*models.Listing{}
	}
	f := models.DefaultFilter()
	f.Search = text
	return s.ListAll(ctx, f)
}

// Insights summarises the listings for filter.
func (s *QueryService) Insights(ctx context.Context, filter models.Filter) *models.InsightReport {
	return s.insights.Generate(s.ListAll(ctx, filter))
}

func (s *QueryService) CacheStats() models.CacheStats {
	return s.cache.Stats()
}
