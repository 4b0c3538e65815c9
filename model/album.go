package model

// Album 表示一张专辑
type Album struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	AlbumType   string   `json:"album_type,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	Images      []Image  `json:"images,omitempty"`
	Artists     []Artist `json:"artists,omitempty"`
}

// CoverURL returns the first (largest) image URL, or "".
func (a Album) CoverURL() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0].URL
}
