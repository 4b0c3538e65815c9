package model

// Artist is a catalog artist as referenced by a track.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Image is one rendition of album artwork.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// ExternalURLs holds links to the track on the catalog's own site.
type ExternalURLs struct {
	Spotify string `json:"spotify,omitempty"`
}

// Track is one catalog track. Identity is ID; values are never modified after decode.
type Track struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Artists      []Artist     `json:"artists"`
	Album        Album        `json:"album"`
	Popularity   int          `json:"popularity"` // 0-100
	DurationMs   int          `json:"duration_ms"`
	PreviewURL   *string      `json:"preview_url"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// PrimaryArtist returns the first credited artist name, or "" when there is none.
func (t Track) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0].Name
}
