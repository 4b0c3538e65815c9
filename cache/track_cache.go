package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"GenrePulse/logger"
	"GenrePulse/model"

	"github.com/redis/go-redis/v9"
)

const trackKeyPrefix = "genrepulse:tracks:"

// Source produces the track list for a genre in a market.
type Source interface {
	TracksForGenre(ctx context.Context, genre, market string) ([]model.Track, error)
}

// TrackCache keeps collected genre tracks in Redis for a short TTL.
// Redis failures are logged and the request goes straight to the wrapped source.
type TrackCache struct {
	rdb  *redis.Client
	next Source
	ttl  time.Duration
}

// NewTrackCache wraps next with a Redis-backed cache.
func NewTrackCache(rdb *redis.Client, next Source, ttl time.Duration) *TrackCache {
	return &TrackCache{rdb: rdb, next: next, ttl: ttl}
}

// TrackKey 根据流派和市场生成Redis键
func TrackKey(genre, market string) string {
	return fmt.Sprintf("%s%s:%s", trackKeyPrefix, strings.ToLower(genre), strings.ToUpper(market))
}

// TracksForGenre serves from Redis when possible and fills the cache on a miss.
func (c *TrackCache) TracksForGenre(ctx context.Context, genre, market string) ([]model.Track, error) {
	key := TrackKey(genre, market)

	if tracks, ok := c.get(ctx, key); ok {
		logger.Debug("[TrackCache] hit", logger.String("key", key), logger.Int("tracks", len(tracks)))
		return tracks, nil
	}

	tracks, err := c.next.TracksForGenre(ctx, genre, market)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(tracks)
	if err != nil {
		logger.Warn("[TrackCache] marshal failed", logger.String("key", key), logger.ErrorField(err))
		return tracks, nil
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn("[TrackCache] store failed", logger.String("key", key), logger.ErrorField(err))
	}
	return tracks, nil
}

func (c *TrackCache) get(ctx context.Context, key string) ([]model.Track, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("[TrackCache] read failed", logger.String("key", key), logger.ErrorField(err))
		}
		return nil, false
	}

	var tracks []model.Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		logger.Warn("[TrackCache] dropping corrupt entry", logger.String("key", key), logger.ErrorField(err))
		c.rdb.Del(ctx, key)
		return nil, false
	}
	return tracks, true
}

// Purge removes every cached genre track list and returns how many keys were deleted.
func (c *TrackCache) Purge(ctx context.Context) (int, error) {
	deleted := 0
	iter := c.rdb.Scan(ctx, 0, trackKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n, err := c.rdb.Del(ctx, iter.Val()).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
		}
		deleted += int(n)
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("failed to scan track cache: %w", err)
	}
	return deleted, nil
}
