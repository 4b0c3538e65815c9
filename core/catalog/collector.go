package catalog

import (
	"context"
	"fmt"
	"slices"

	"GenrePulse/logger"
	"GenrePulse/model"
)

// PlaylistTrackFetcher loads the tracks of one playlist.
type PlaylistTrackFetcher interface {
	GetPlaylistTracks(ctx context.Context, playlistID, market string, limit int) ([]model.Track, error)
}

// TrackSearcher searches tracks directly.
type TrackSearcher interface {
	SearchTracks(ctx context.Context, query, market string, limit int) (*model.TrackSearchResult, error)
}

// API is everything the collector calls on the catalog. *Client implements it.
type API interface {
	PlaylistSearcher
	PlaylistTrackFetcher
	TrackSearcher
}

// CollectorOptions bound how much the collector asks of the catalog per genre.
type CollectorOptions struct {
	PlaylistSearchLimit int
	MaxPlaylists        int
	TracksPerPlaylist   int
	MaxTracks           int
}

// DefaultCollectorOptions returns the limits used by the dashboard.
func DefaultCollectorOptions() CollectorOptions {
	return CollectorOptions{
		PlaylistSearchLimit: 15,
		MaxPlaylists:        3,
		TracksPerPlaylist:   12,
		MaxTracks:           25,
	}
}

// Collector turns a genre name into a deduplicated, popularity-ordered track list.
type Collector struct {
	api      API
	fallback *FallbackSearcher
	opts     CollectorOptions
}

// NewCollector creates a collector. terms may be nil to use DefaultSearchTerms.
func NewCollector(api API, terms map[string][]string, opts CollectorOptions) *Collector {
	return &Collector{
		api:      api,
		fallback: NewFallbackSearcher(api, terms),
		opts:     opts,
	}
}

// TracksForGenre finds playlists for genre, reads the first few of them one after another
// and returns their unique tracks, most popular first.
func (c *Collector) TracksForGenre(ctx context.Context, genre, market string) ([]model.Track, error) {
	found, err := c.fallback.SearchWithFallback(ctx, genre, market, c.opts.PlaylistSearchLimit)
	if err != nil {
		return nil, err
	}

	playlists := make([]model.Playlist, 0, c.opts.MaxPlaylists)
	for _, p := range found.Playlists.Items {
		if !p.Valid() {
			continue
		}
		playlists = append(playlists, p)
		if len(playlists) == c.opts.MaxPlaylists {
			break
		}
	}
	if len(playlists) == 0 {
		return nil, fmt.Errorf("no valid playlists found for %s", genre)
	}

	var all []model.Track
	for _, p := range playlists {
		tracks, err := c.api.GetPlaylistTracks(ctx, p.ID, market, c.opts.TracksPerPlaylist)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("[Collector] could not read playlist",
				logger.String("genre", genre),
				logger.String("playlist", p.Name),
				logger.ErrorField(err))
			continue
		}
		if len(tracks) == 0 {
			logger.Warn("[Collector] playlist has no tracks", logger.String("playlist", p.Name))
			continue
		}
		all = append(all, tracks...)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no tracks could be retrieved from any %s playlists", genre)
	}

	out := topByPopularity(uniqueByID(all), c.opts.MaxTracks)
	logger.Info("[Collector] genre tracks ready",
		logger.String("genre", genre),
		logger.String("market", market),
		logger.String("term", found.Term),
		logger.Int("tracks", len(out)))
	return out, nil
}

// TracksByMarketSearch skips playlists and searches tracks for genre directly.
func (c *Collector) TracksByMarketSearch(ctx context.Context, genre, market string, limit int) ([]model.Track, error) {
	res, err := c.api.SearchTracks(ctx, genre, market, limit)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

func uniqueByID(tracks []model.Track) []model.Track {
	seen := make(map[string]struct{}, len(tracks))
	out := make([]model.Track, 0, len(tracks))
	for _, t := range tracks {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

func topByPopularity(tracks []model.Track, n int) []model.Track {
	sorted := slices.Clone(tracks)
	slices.SortStableFunc(sorted, func(a, b model.Track) int {
		return b.Popularity - a.Popularity
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
