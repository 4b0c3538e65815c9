package model

// PlaylistOwner is the user that owns a playlist.
type PlaylistOwner struct {
	DisplayName string `json:"display_name"`
}

// PlaylistTracksRef is the track count summary embedded in a playlist search item.
type PlaylistTracksRef struct {
	Total int `json:"total"`
}

// Playlist is a playlist as returned by a playlist search.
type Playlist struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Owner       PlaylistOwner     `json:"owner"`
	Tracks      PlaylistTracksRef `json:"tracks"`
}

// Valid reports whether the playlist can be used to look up tracks.
func (p Playlist) Valid() bool {
	return p.ID != "" && p.Name != ""
}

// TrackSearchResult 歌曲搜索结果
type TrackSearchResult struct {
	Items []Track `json:"items"`
	Total int     `json:"total"`
	Limit int     `json:"limit"`
}

// PlaylistSearchResult is one page of playlist search results. Items never contains null entries.
type PlaylistSearchResult struct {
	Items []Playlist `json:"items"`
	Total int        `json:"total"`
	Limit int        `json:"limit"`
}
