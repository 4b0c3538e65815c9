package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"GenrePulse/logger"
	"GenrePulse/model"
)

type rawTrackPage struct {
	Items []*model.Track `json:"items"`
	Total int            `json:"total"`
	Limit int            `json:"limit"`
}

type rawPlaylistPage struct {
	Items []*model.Playlist `json:"items"`
	Total int               `json:"total"`
	Limit int               `json:"limit"`
}

type searchResponse struct {
	Tracks    *rawTrackPage    `json:"tracks"`
	Playlists *rawPlaylistPage `json:"playlists"`
}

func (c *Client) search(ctx context.Context, query, kind, market string, limit int) (*searchResponse, error) {
	body, err := c.Request(ctx, "/search", map[string]string{
		"q":      query,
		"type":   kind,
		"limit":  strconv.Itoa(limit),
		"market": c.market(market),
	})
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &DecodeError{Endpoint: "/search", Err: err}
	}
	return &resp, nil
}

// SearchTracks searches tracks by free-text query in a market.
func (c *Client) SearchTracks(ctx context.Context, query, market string, limit int) (*model.TrackSearchResult, error) {
	if limit <= 0 {
		limit = defaultTrackLimit
	}
	resp, err := c.search(ctx, query, "track", market, limit)
	if err != nil {
		return nil, err
	}
	if resp.Tracks == nil {
		return nil, &DecodeError{Endpoint: "/search", Err: errors.New("response has no tracks object")}
	}

	out := &model.TrackSearchResult{
		Items: make([]model.Track, 0, len(resp.Tracks.Items)),
		Total: resp.Tracks.Total,
		Limit: resp.Tracks.Limit,
	}
	for _, t := range resp.Tracks.Items {
		if t != nil {
			out.Items = append(out.Items, *t)
		}
	}
	logger.Debug("[SearchTracks] done",
		logger.String("query", query),
		logger.String("market", c.market(market)),
		logger.Int("count", len(out.Items)))
	return out, nil
}

// SearchPlaylists searches playlists by free-text query in a market. Null items are dropped.
func (c *Client) SearchPlaylists(ctx context.Context, query, market string, limit int) (*model.PlaylistSearchResult, error) {
	if limit <= 0 {
		limit = defaultPlaylistLimit
	}
	resp, err := c.search(ctx, query, "playlist", market, limit)
	if err != nil {
		return nil, err
	}
	if resp.Playlists == nil {
		return nil, &DecodeError{Endpoint: "/search", Err: errors.New("response has no playlists object")}
	}

	out := &model.PlaylistSearchResult{
		Items: make([]model.Playlist, 0, len(resp.Playlists.Items)),
		Total: resp.Playlists.Total,
		Limit: resp.Playlists.Limit,
	}
	for _, p := range resp.Playlists.Items {
		if p != nil {
			out.Items = append(out.Items, *p)
		}
	}
	return out, nil
}
