// Package stats derives summary figures and the synthetic play-count series from track lists.
package stats

import (
	"fmt"
	"math"
	"slices"

	"GenrePulse/model"
)

// TopTrackCount is the length of GenreStats.TopTracks.
const TopTrackCount = 10

// Aggregate summarises tracks under label. It never fails; an empty input gives zero values.
func Aggregate(tracks []model.Track, label string) model.GenreStats {
	if len(tracks) == 0 {
		return model.GenreStats{Name: label, TopTracks: []model.Track{}}
	}

	artists := make(map[string]struct{})
	sum := 0
	for _, t := range tracks {
		sum += t.Popularity
		for _, a := range t.Artists {
			artists[a.ID] = struct{}{}
		}
	}

	return model.GenreStats{
		Name:          label,
		TrackCount:    len(tracks),
		AvgPopularity: RoundOneDecimal(float64(sum) / float64(len(tracks))),
		TopTracks:     TopTracks(tracks, TopTrackCount),
		TotalArtists:  len(artists),
	}
}

// RoundOneDecimal rounds half up to one decimal place.
func RoundOneDecimal(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// TopTracks returns up to n tracks by popularity, highest first. Equal popularity keeps input order.
func TopTracks(tracks []model.Track, n int) []model.Track {
	sorted := slices.Clone(tracks)
	slices.SortStableFunc(sorted, func(a, b model.Track) int {
		return b.Popularity - a.Popularity
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// AveragePopularity is the plain mean, 0 for no tracks.
func AveragePopularity(tracks []model.Track) float64 {
	if len(tracks) == 0 {
		return 0
	}
	sum := 0
	for _, t := range tracks {
		sum += t.Popularity
	}
	return float64(sum) / float64(len(tracks))
}

// TopArtists returns up to limit artist names ordered by how many tracks credit them.
// Ties keep the order in which artists were first seen.
func TopArtists(tracks []model.Track, limit int) []string {
	counts := make(map[string]int)
	var order []string
	for _, t := range tracks {
		for _, a := range t.Artists {
			if _, ok := counts[a.Name]; !ok {
				order = append(order, a.Name)
			}
			counts[a.Name]++
		}
	}
	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

// FormatDuration renders milliseconds as m:ss.
func FormatDuration(ms int) string {
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
