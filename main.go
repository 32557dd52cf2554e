package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"polo-scraper/config"
	"polo-scraper/metrics"
	"polo-scraper/scraper"
	"polo-scraper/scraper/ebay"
	"polo-scraper/scraper/target"
	"polo-scraper/scraper/walmart"
	"polo-scraper/server"
	"polo-scraper/services"
	"polo-scraper/storage"
	"polo-scraper/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := utils.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("=== Polo Scraper starting ===")
	logger.Info("Config: sources %v | fallback source: %t | fetch: %s | timeout: %v | cache TTL: %v",
		cfg.Scraper.Sources, cfg.Scraper.IncludeFallbackSource, cfg.Scraper.FetchMode,
		cfg.Scraper.Timeout, cfg.Cache.TTL)

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{Logger: logger.Zap()}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Supply(cfg, logger),
		fx.Provide(
			metrics.NewRegistry,
			newFetcher,
			services.NewFallbackProvider,
			newSources,
			services.NewNormalizer,
			newAggregator,
			newResultCache,
			services.NewInsightService,
			newQueryService,
			newPoloHandler,
			server.New,
		),
		fx.Invoke(server.Start),
	)
	app.Run()
}

// newFetcher picks the page fetcher for the configured mode. The browser is
// closed when the application stops.
func newFetcher(lc fx.Lifecycle, cfg *config.Config, logger *utils.Logger) scraper.Fetcher {
	if cfg.Scraper.FetchMode != "browser" {
		return scraper.NewHTTPFetcher(cfg.Scraper.Timeout, logger)
	}
	b := scraper.NewBrowserFetcher(cfg.Scraper.ChromeBin, cfg.Scraper.Timeout, logger)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return b.Close() },
	})
	return b
}

func newSources(cfg *config.Config, fetcher scraper.Fetcher, fallback *services.FallbackProvider, logger *utils.Logger) []scraper.Source {
	registry := map[string]func(scraper.Fetcher, *utils.Logger) scraper.Source{
		"ebay":    ebay.New,
		"target":  target.New,
		"walmart": walmart.New,
	}

	sources := make([]scraper.Source, 0, len(cfg.Scraper.Sources)+1)
	for _, name := range cfg.Scraper.Sources {
		sources = append(sources, registry[name](fetcher, logger))
	}
	if cfg.Scraper.IncludeFallbackSource {
		sources = append(sources, fallback.AsSource())
	}
	return sources
}

func newAggregator(
	cfg *config.Config,
	sources []scraper.Source,
	normalizer *services.Normalizer,
	fallback *services.FallbackProvider,
	reg *metrics.Registry,
	logger *utils.Logger,
) *services.Aggregator {
	return services.NewAggregator(sources, normalizer, fallback, reg, logger, services.AggregatorOptions{
		MaxConcurrency: cfg.Scraper.MaxConcurrency,
		RateLimitMs:    cfg.Scraper.RateLimitMs,
	})
}

func newResultCache(cfg *config.Config) *storage.ResultCache {
	return storage.NewResultCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
}

func newQueryService(
	agg *services.Aggregator,
	cache *storage.ResultCache,
	insights *services.InsightService,
	reg *metrics.Registry,
	logger *utils.Logger,
) *services.QueryService {
	return services.NewQueryService(agg, cache, insights, reg, logger)
}

func newPoloHandler(query *services.QueryService, logger *utils.Logger) *server.PoloHandler {
	return server.NewPoloHandler(query, logger)
}
