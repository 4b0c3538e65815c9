package model

import "time"

// DashboardState is the observable bundle the presentation layer renders.
type DashboardState struct {
	TechnoStats     GenreStats            `json:"technoStats"`
	TranceStats     GenreStats            `json:"tranceStats"`
	TechnoTracks    []Track               `json:"technoTracks"`
	TranceTracks    []Track               `json:"tranceTracks"`
	Quarterly       []GenreQuarterlyStats `json:"quarterly"`
	Loading         bool                  `json:"loading"`
	Error           string                `json:"error,omitempty"`
	Fatal           bool                  `json:"fatal"`
	SelectedCountry string                `json:"selectedCountry"`
	Market          string                `json:"market"`
	Sequence        uint64                `json:"sequence"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}
