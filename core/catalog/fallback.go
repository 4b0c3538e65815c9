package catalog

import (
	"context"
	"strings"

	"GenrePulse/logger"
	"GenrePulse/model"
)

// DefaultSearchTerms maps a genre to the queries tried, in order, when looking for playlists.
var DefaultSearchTerms = map[string][]string{
	"techno": {"techno", "techno music", "techno mix", "techno 2024"},
	"trance": {"trance", "trance music", "trance mix", "uplifting trance", "vocal trance", "psytrance"},
	"house":  {"house", "house music", "house mix", "deep house"},
}

// PlaylistSearcher is the slice of the catalog the fallback strategy needs.
type PlaylistSearcher interface {
	SearchPlaylists(ctx context.Context, query, market string, limit int) (*model.PlaylistSearchResult, error)
}

// FallbackResult is the first non-empty playlist search and the term that produced it.
type FallbackResult struct {
	Term      string
	Playlists *model.PlaylistSearchResult
}

// FallbackSearcher retries playlist searches with alternative terms until one returns results.
type FallbackSearcher struct {
	searcher PlaylistSearcher
	terms    map[string][]string
}

// NewFallbackSearcher uses DefaultSearchTerms when terms is nil.
func NewFallbackSearcher(searcher PlaylistSearcher, terms map[string][]string) *FallbackSearcher {
	if terms == nil {
		terms = DefaultSearchTerms
	}
	return &FallbackSearcher{searcher: searcher, terms: terms}
}

// Terms returns the ordered search terms for category. Unknown categories search for themselves.
func (f *FallbackSearcher) Terms(category string) []string {
	if t, ok := f.terms[strings.ToLower(category)]; ok && len(t) > 0 {
		return append([]string(nil), t...)
	}
	return []string{category}
}

// SearchWithFallback returns the first term's results that contain at least one playlist.
// Failing terms are logged and skipped; NotFoundError is returned when no term yields anything.
func (f *FallbackSearcher) SearchWithFallback(ctx context.Context, category, market string, limit int) (*FallbackResult, error) {
	terms := f.Terms(category)
	tried := make([]string, 0, len(terms))

	for _, term := range terms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tried = append(tried, term)

		logger.Info("[Fallback] searching playlists", logger.String("category", category), logger.String("term", term))
		res, err := f.searcher.SearchPlaylists(ctx, term, market, limit)
		if err != nil {
			logger.Warn("[Fallback] search failed for term",
				logger.String("term", term),
				logger.ErrorField(err))
			continue
		}
		if res == nil || len(res.Items) == 0 {
			logger.Info("[Fallback] no playlists for term", logger.String("term", term))
			continue
		}

		logger.Info("[Fallback] found playlists",
			logger.String("term", term),
			logger.Int("count", len(res.Items)))
		return &FallbackResult{Term: term, Playlists: res}, nil
	}

	return nil, &NotFoundError{Category: category, TriedTerms: tried}
}
