package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns the service's collectors on a private prometheus registry so
// tests can build as many as they like.
type Registry struct {
	reg *prometheus.Registry

	SourceListings   *prometheus.CounterVec
	SourceEmpty      *prometheus.CounterVec
	FallbackServed   prometheus.Counter
	DroppedInvalid   prometheus.Counter
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	AggregateSeconds prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	sourceListings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "polo_source_listings_total",
		Help: "Raw listings yielded per source.",
	}, []string{"source"})
	sourceEmpty := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "polo_source_empty_total",
		Help: "Source fetches that failed or yielded nothing.",
	}, []string{"source"})
	fallback := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "polo_fallback_served_total",
		Help: "Aggregations answered from the fallback catalog.",
	})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "polo_listings_dropped_invalid_total",
		Help: "Normalized listings rejected by validation.",
	})
	hits := prometheus.NewCounter(prometheus.CounterOpts{Name: "polo_cache_hits_total"})
	misses := prometheus.NewCounter(prometheus.CounterOpts{Name: "polo_cache_misses_total"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "polo_aggregate_duration_seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 15, 20},
	})

	r.MustRegister(sourceListings, sourceEmpty, fallback, dropped, hits, misses, latency)
	return &Registry{
		reg:              r,
		SourceListings:   sourceListings,
		SourceEmpty:      sourceEmpty,
		FallbackServed:   fallback,
		DroppedInvalid:   dropped,
		CacheHits:        hits,
		CacheMisses:      misses,
		AggregateSeconds: latency,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
