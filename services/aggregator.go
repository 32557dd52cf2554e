package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"polo-scraper/metrics"
	"polo-scraper/models"
	"polo-scraper/scraper"
	"polo-scraper/utils"
)

// Aggregator fans a query out to every source, merges what comes back and
// falls back to the fixed catalog when nothing does. It never fails.
type Aggregator struct {
	sources     []scraper.Source
	normalizer  *Normalizer
	fallback    *FallbackProvider
	validate    *validator.Validate
	metrics     *metrics.Registry
	logger      *utils.Logger
	concurrency int
	rateLimitMs int
}

// AggregatorOptions tunes the per-call worker pool. A zero concurrency runs
// every source at once.
type AggregatorOptions struct {
	MaxConcurrency int
	RateLimitMs    int
}

func NewAggregator(
	sources []scraper.Source,
	normalizer *Normalizer,
	fallback *FallbackProvider,
	reg *metrics.Registry,
	logger *utils.Logger,
	opts AggregatorOptions,
) *Aggregator {
	return &Aggregator{
		sources:     sources,
		normalizer:  normalizer,
		fallback:    fallback,
		validate:    validator.New(),
		metrics:     reg,
		logger:      logger,
		concurrency: opts.MaxConcurrency,
		rateLimitMs: opts.RateLimitMs,
	}
}

// Aggregate returns the listings matching filter, sorted ascending by price.
// Any panic along the way degrades to the fallback catalog.
func (a *Aggregator) Aggregate(ctx context.Context, filter models.Filter) (result []*models.Listing) {
	filter = filter.Normalize()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("[aggregator] Recovered from panic, serving fallback: %v", r)
			a.metrics.FallbackServed.Inc()
			result = a.fallback.Provide(filter)
		}
		a.metrics.AggregateSeconds.Observe(time.Since(start).Seconds())
	}()

	merged := a.collect(ctx, filter)
	if len(merged) == 0 {
		a.logger.Warn("[aggregator] No source returned data, using fallback catalog")
		a.metrics.FallbackServed.Inc()
		return a.fallback.Provide(filter)
	}

	result = make([]*models.Listing, 0, len(merged))
	for _, l := range merged {
		if err := a.validate.Struct(l); err != nil {
			a.logger.Debug("[aggregator] Dropping invalid listing %s: %v", l.ID, err)
			a.metrics.DroppedInvalid.Inc()
			continue
		}
		if filter.Matches(l) {
			result = append(result, l)
		}
	}
	sortByPrice(result)

	a.logger.Info("[aggregator] Returning %d of %d merged listings (%v)", len(result), len(merged), time.Since(start).Round(time.Millisecond))
	return result
}

// collect runs every source concurrently and waits for all of them to
// settle. Results keep source order regardless of completion order.
func (a *Aggregator) collect(ctx context.Context, filter models.Filter) []*models.Listing {
	workers := a.concurrency
	if workers <= 0 {
		workers = len(a.sources)
	}
	pool := utils.NewWorkerPool(workers, a.rateLimitMs)

	slots := make([][]*models.Listing, len(a.sources))
	for i, src := range a.sources {
		i, src := i, src
		pool.Submit(func() {
			slots[i] = a.fetchSource(ctx, src, filter)
		})
	}
	pool.Wait()

	var merged []*models.Listing
	for _, batch := range slots {
		merged = append(merged, batch...)
	}
	return merged
}

// fetchSource isolates one source: a panicking adapter counts as an empty one.
func (a *Aggregator) fetchSource(ctx context.Context, src scraper.Source, filter models.Filter) (listings []*models.Listing) {
	name := src.Name()
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("[aggregator] Source %s panicked: %v", name, r)
			listings = nil
		}
		if len(listings) == 0 {
			a.logger.Info("[aggregator] Source %s failed or returned no data", name)
			a.metrics.SourceEmpty.WithLabelValues(name).Inc()
			return
		}
		a.logger.Info("[aggregator] Source %s returned %d polos", name, len(listings))
		a.metrics.SourceListings.WithLabelValues(name).Add(float64(len(listings)))
	}()

	return a.normalizer.Normalize(src.Fetch(ctx, filter), src.Profile())
}
