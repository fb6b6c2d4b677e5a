package app

import (
	"fmt"

	"wiki-resolver-go/internal/cache"
	"wiki-resolver-go/internal/config"
	"wiki-resolver-go/internal/logger"
	"wiki-resolver-go/internal/processor"
	"wiki-resolver-go/internal/resolver"
	"wiki-resolver-go/internal/wikipedia"
)

// App holds the wired components shared by the binaries.
type App struct {
	Config    *config.Config
	Log       *logger.Logger
	Resolver  *resolver.Resolver
	Processor *processor.Processor
	cache     *cache.Store
}

// Build wires the logger, response cache, Wikipedia client, resolver and
// processor from cfg. The cache is only opened when a directory is set.
func Build(cfg *config.Config) (*App, error) {
	log := logger.NewWith(cfg.Logging.Level, cfg.Logging.Format, nil)

	a := &App{Config: cfg, Log: log}

	var responses wikipedia.ResponseCache
	if cfg.Cache.Dir != "" {
		store, err := cache.Open(cfg.Cache.Dir, cfg.Cache.TTL, log.Entry)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		a.cache = store
		responses = store
		log.WithField("dir", cfg.Cache.Dir).WithField("ttl", cfg.Cache.TTL.String()).Info("response cache enabled")
	}

	client := wikipedia.New(cfg.Wikipedia, responses, log.Entry)
	a.Resolver = resolver.New(cfg.Resolver, log.Entry)
	a.Processor = processor.New(client, a.Resolver, cfg.Batch.Workers, log.Entry)
	return a, nil
}

func (a *App) Close() error {
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}
