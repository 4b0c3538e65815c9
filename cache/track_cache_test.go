package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"GenrePulse/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls  int
	tracks []model.Track
	err    error
}

func (s *countingSource) TracksForGenre(ctx context.Context, genre, market string) ([]model.Track, error) {
	s.calls++
	return s.tracks, s.err
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestTrackKey(t *testing.T) {
	assert.Equal(t, "genrepulse:tracks:techno:DE", TrackKey("TECHNO", "de"))
}

func TestTrackCache_MissThenHit(t *testing.T) {
	mr, rdb := setupRedis(t)
	src := &countingSource{tracks: []model.Track{{ID: "t1", Name: "One", Popularity: 42}}}
	c := NewTrackCache(rdb, src, 10*time.Minute)
	ctx := context.Background()

	first, err := c.TracksForGenre(ctx, "techno", "US")
	require.NoError(t, err)
	second, err := c.TracksForGenre(ctx, "techno", "US")
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls, "second call served from Redis")
	assert.Equal(t, first, second)
	assert.Equal(t, 10*time.Minute, mr.TTL(TrackKey("techno", "US")))

	_, err = c.TracksForGenre(ctx, "techno", "BR")
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls, "markets are cached separately")
}

func TestTrackCache_ExpiredEntryRefetches(t *testing.T) {
	mr, rdb := setupRedis(t)
	src := &countingSource{tracks: []model.Track{{ID: "t1"}}}
	c := NewTrackCache(rdb, src, time.Minute)
	ctx := context.Background()

	_, err := c.TracksForGenre(ctx, "trance", "US")
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = c.TracksForGenre(ctx, "trance", "US")
	require.NoError(t, err)

	assert.Equal(t, 2, src.calls)
}

func TestTrackCache_ErrorsAreNotCached(t *testing.T) {
	mr, rdb := setupRedis(t)
	src := &countingSource{err: errors.New("catalog down")}
	c := NewTrackCache(rdb, src, time.Minute)

	_, err := c.TracksForGenre(context.Background(), "trance", "US")

	assert.EqualError(t, err, "catalog down")
	assert.False(t, mr.Exists(TrackKey("trance", "US")))
}

func TestTrackCache_CorruptEntry(t *testing.T) {
	mr, rdb := setupRedis(t)
	require.NoError(t, mr.Set(TrackKey("techno", "US"), "{not json"))
	src := &countingSource{tracks: []model.Track{{ID: "fresh"}}}
	c := NewTrackCache(rdb, src, time.Minute)

	tracks, err := c.TracksForGenre(context.Background(), "techno", "US")

	require.NoError(t, err)
	assert.Equal(t, "fresh", tracks[0].ID)
	assert.Equal(t, 1, src.calls)
}

func TestTrackCache_RedisDownFallsThrough(t *testing.T) {
	mr, rdb := setupRedis(t)
	mr.Close()
	src := &countingSource{tracks: []model.Track{{ID: "t1"}}}
	c := NewTrackCache(rdb, src, time.Minute)

	tracks, err := c.TracksForGenre(context.Background(), "techno", "US")

	require.NoError(t, err)
	assert.Len(t, tracks, 1)
}

func TestTrackCache_Purge(t *testing.T) {
	mr, rdb := setupRedis(t)
	require.NoError(t, mr.Set(TrackKey("techno", "US"), "[]"))
	require.NoError(t, mr.Set(TrackKey("trance", "DE"), "[]"))
	require.NoError(t, mr.Set("unrelated", "keep"))
	c := NewTrackCache(rdb, &countingSource{}, time.Minute)

	n, err := c.Purge(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, mr.Exists("unrelated"))
}

func TestCheckRedis(t *testing.T) {
	_, rdb := setupRedis(t)
	assert.NoError(t, CheckRedis(context.Background(), rdb))
	assert.Error(t, CheckRedis(context.Background(), nil))
}
