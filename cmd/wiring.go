package cmd

import (
	"GenrePulse/cache"
	"GenrePulse/config"
	"GenrePulse/core/catalog"
	"GenrePulse/core/dashboard"
	"GenrePulse/logger"
	"GenrePulse/server"

	"github.com/redis/go-redis/v9"
)

// pipeline is the catalog stack shared by the server and the one-shot commands.
type pipeline struct {
	collector *catalog.Collector
	source    dashboard.GenreSource
	cache     *cache.TrackCache // nil when Redis is off or unreachable
	rdb       *redis.Client
}

func newPipeline(cfg *config.Config, useCache bool) *pipeline {
	client := catalog.NewClientFromConfig(cfg)
	collector := catalog.NewCollector(client, nil, catalog.DefaultCollectorOptions())
	p := &pipeline{collector: collector, source: collector}

	if !useCache || !cfg.RedisEnabled() {
		return p
	}

	rdb, err := cache.ConnectRedis(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, continuing without track cache", logger.ErrorField(err))
		return p
	}
	logger.Info("Successfully connected to Redis",
		logger.String("host", cfg.RedisHost),
		logger.Duration("ttl", cfg.CacheTTL))

	p.rdb = rdb
	p.cache = cache.NewTrackCache(rdb, collector, cfg.CacheTTL)
	p.source = p.cache
	return p
}

func (p *pipeline) Close() {
	if p.rdb != nil {
		if err := p.rdb.Close(); err != nil {
			logger.Warn("failed to close Redis", logger.ErrorField(err))
		}
	}
}

// purger returns the cache as a server.Purger, or nil without leaking a typed nil.
func (p *pipeline) purger() server.Purger {
	if p.cache == nil {
		return nil
	}
	return p.cache
}
