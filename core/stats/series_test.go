package stats

import (
	"math"
	"testing"

	"GenrePulse/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedFor(t *testing.T) {
	assert.Equal(t, 530550573, SeedFor("TECHNO", 1, 2025))
	assert.Equal(t, 1807162361, SeedFor("TRANCE", 4, 2024))
	assert.NotEqual(t, SeedFor("TECHNO", 1, 2025), SeedFor("TECHNO", 2, 2025))
}

func TestPseudoRandom(t *testing.T) {
	assert.InDelta(t, 0.7098480789645691, PseudoRandom(1), 1e-6)
	assert.InDelta(t, 0.7845208436629036, PseudoRandom(42), 1e-6)
	assert.InDelta(t, 0.4259076195048692, PseudoRandom(530550574), 1e-6)

	for seed := -500; seed < 500; seed++ {
		r := PseudoRandom(seed)
		assert.GreaterOrEqual(t, r, 0.0)
		assert.Less(t, r, 1.0)
	}
}

func TestBasePlays(t *testing.T) {
	g := NewGenerator(nil)

	assert.Equal(t, 7500, g.BasePlays("TRANCE", nil), "empty uses the 50 baseline")
	assert.Equal(t, 9000, g.BasePlays("TECHNO", nil))
	assert.Equal(t, 15000, g.BasePlays("HOUSE", []model.Track{tr("a", 100)}))
	assert.Equal(t, 1.0, g.GenreFactor("HOUSE"))
}

func TestGenerate_Deterministic(t *testing.T) {
	g := NewGenerator(nil)
	tracks := []model.Track{tr("a", 64), tr("b", 71), tr("c", 58)}

	first := g.Generate("TECHNO", tracks, 2025)
	second := NewGenerator(nil).Generate("TECHNO", tracks, 2025)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, g.Generate("TECHNO", tracks, 2024), "year changes the seed")
}

func TestGenerate_ShapeAndTotals(t *testing.T) {
	g := NewGenerator(nil)
	tracks := []model.Track{tr("a", 80), tr("b", 60)}

	s := g.Generate("TRANCE", tracks, 2025)
	base := g.BasePlays("TRANCE", tracks)

	assert.Equal(t, "TRANCE", s.Genre)
	require.Len(t, s.Quarters, 4)

	yearTotal := 0
	week := 0
	previous := base
	for qi, q := range s.Quarters {
		assert.Equal(t, qi+1, q.Quarter)
		assert.Equal(t, 2025, q.Year)
		assert.Equal(t, QuarterColors[qi], q.Color)
		assert.Equal(t, "TRANCE", q.Genre)
		require.Len(t, q.Weeks, 13)

		quarterTotal := 0
		for wi, w := range q.Weeks {
			week++
			assert.Equal(t, week, w.WeekNumber)
			assert.GreaterOrEqual(t, w.Plays, 0)
			assert.LessOrEqual(t, float64(w.Plays), math.Ceil(float64(base)*1.25*1.1))
			assert.Equal(t, trendOf(w.Plays, previous), w.Trend)
			if wi == 0 {
				assert.Contains(t, w.Date, "2025-Q")
			}
			previous = w.Plays
			quarterTotal += w.Plays
		}
		assert.Equal(t, quarterTotal, q.TotalPlays)
		yearTotal += q.TotalPlays
	}
	assert.Equal(t, yearTotal, s.TotalYearPlays)
	assert.Equal(t, "2025-Q4-W13", s.Quarters[3].Weeks[12].Date)
}

func TestGenerate_QuarterAdjustments(t *testing.T) {
	g := NewGenerator(map[string]float64{"X": 1.0})
	s := g.Generate("X", nil, 2030)
	base := float64(g.BasePlays("X", nil))

	for _, w := range s.Quarters[0].Weeks {
		assert.LessOrEqual(t, float64(w.Plays), base*1.25*0.9)
	}
	for _, w := range s.Quarters[3].Weeks {
		assert.GreaterOrEqual(t, float64(w.Plays), math.Floor(base*0.75)*1.1-1)
	}
}

func TestTrendOf(t *testing.T) {
	assert.Equal(t, model.TrendUp, trendOf(111, 100))
	assert.Equal(t, model.TrendStable, trendOf(110, 100))
	assert.Equal(t, model.TrendStable, trendOf(90, 100))
	assert.Equal(t, model.TrendDown, trendOf(89, 100))
}

func TestGenerateAll_KeepsOrder(t *testing.T) {
	g := NewGenerator(nil)
	out := g.GenerateAll([]GenreTracks{{Genre: "TECHNO"}, {Genre: "TRANCE"}}, 2025)

	require.Len(t, out, 2)
	assert.Equal(t, "TECHNO", out[0].Genre)
	assert.Equal(t, "TRANCE", out[1].Genre)
	assert.Greater(t, out[0].TotalYearPlays, out[1].TotalYearPlays, "techno carries the 1.2 factor")
}
