package model

// GenreStats summarises one genre's track collection.
type GenreStats struct {
	Name          string  `json:"name"`
	TrackCount    int     `json:"trackCount"`
	AvgPopularity float64 `json:"avgPopularity"` // rounded to 1 decimal
	TopTracks     []Track `json:"topTracks"`     // at most 10, popularity descending
	TotalArtists  int     `json:"totalArtists"`  // unique artist ids
}

// Trend labels a week relative to the week before it.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// WeekData is one week of the synthetic play-count series.
type WeekData struct {
	WeekNumber int    `json:"weekNumber"` // 1..52
	Plays      int    `json:"plays"`
	Date       string `json:"date"`
	Trend      Trend  `json:"trend"`
}

// QuarterlyData groups 13 consecutive weeks.
type QuarterlyData struct {
	Quarter    int        `json:"quarter"`
	Year       int        `json:"year"`
	Weeks      []WeekData `json:"weeks"`
	TotalPlays int        `json:"totalPlays"`
	Color      string     `json:"color"`
	Genre      string     `json:"genre"`
}

// GenreQuarterlyStats is a full synthetic year for one genre.
type GenreQuarterlyStats struct {
	Genre          string          `json:"genre"`
	Quarters       []QuarterlyData `json:"quarters"`
	TotalYearPlays int             `json:"totalYearPlays"`
}
