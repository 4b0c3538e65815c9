package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"

	"GenrePulse/logger"
	"GenrePulse/model"
)

const playlistTrackFields = "items(track(id,name,artists,album,popularity,duration_ms,preview_url,external_urls))"

type playlistTracksResponse struct {
	Items *[]struct {
		Track *model.Track `json:"track"`
	} `json:"items"`
}

// GetPlaylistTracks returns the tracks of a playlist. Entries whose track was removed from the catalog are skipped.
func (c *Client) GetPlaylistTracks(ctx context.Context, playlistID, market string, limit int) ([]model.Track, error) {
	if playlistID == "" {
		return nil, errors.New("playlist id is required")
	}
	if limit <= 0 {
		limit = defaultPlaylistLimit
	}

	endpoint := "/playlists/" + url.PathEscape(playlistID) + "/tracks"
	body, err := c.Request(ctx, endpoint, map[string]string{
		"limit":  strconv.Itoa(limit),
		"fields": playlistTrackFields,
		"market": c.market(market),
	})
	if err != nil {
		logger.Error("[GetPlaylistTracks] request failed", logger.String("playlist_id", playlistID), logger.ErrorField(err))
		return nil, err
	}

	var resp playlistTracksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	if resp.Items == nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: errors.New("response has no items")}
	}

	tracks := make([]model.Track, 0, len(*resp.Items))
	for _, item := range *resp.Items {
		if item.Track != nil {
			tracks = append(tracks, *item.Track)
		}
	}
	logger.Info("[GetPlaylistTracks] fetched playlist tracks",
		logger.String("playlist_id", playlistID),
		logger.Int("songs_count", len(tracks)))
	return tracks, nil
}
