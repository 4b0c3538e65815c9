// Package dashboard owns the observable state bundle: the latest track
// collections for each genre, their derived stats, the selected market and
// the loading/error flags that the HTTP and WebSocket layers render.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"GenrePulse/core/stats"
	"GenrePulse/logger"
	"GenrePulse/model"

	"golang.org/x/sync/errgroup"
)

// ErrUnknownCountry is returned when a country key is not in model.Countries.
var ErrUnknownCountry = errors.New("unknown country")

// GenreSource produces the track list for one genre in one market.
type GenreSource interface {
	TracksForGenre(ctx context.Context, genre, market string) ([]model.Track, error)
}

// Genre describes one dashboard column.
type Genre struct {
	Key   string // search category
	Label string // stats and series label
	Title string // prefix for error messages
}

// Genres are fetched on every refresh, in display order.
var Genres = []Genre{
	{Key: "techno", Label: "TECHNO", Title: "Techno"},
	{Key: "trance", Label: "TRANCE", Title: "Trance"},
}

// Dashboard serialises state changes and fans them out to subscribers.
type Dashboard struct {
	source    GenreSource
	generator *stats.Generator
	now       func() time.Time

	seq atomic.Uint64

	mu    sync.RWMutex
	state model.DashboardState

	subMu   sync.Mutex
	subs    map[int]chan model.DashboardState
	nextSub int
}

// New creates a dashboard on the default country with empty collections.
func New(source GenreSource, generator *stats.Generator) *Dashboard {
	if generator == nil {
		generator = stats.NewGenerator(nil)
	}
	country, _ := model.LookupCountry(model.DefaultCountry)

	d := &Dashboard{
		source:    source,
		generator: generator,
		now:       time.Now,
		subs:      make(map[int]chan model.DashboardState),
	}
	d.state = model.DashboardState{
		TechnoStats:     stats.Aggregate(nil, Genres[0].Label),
		TranceStats:     stats.Aggregate(nil, Genres[1].Label),
		TechnoTracks:    []model.Track{},
		TranceTracks:    []model.Track{},
		Quarterly:       []model.GenreQuarterlyStats{},
		SelectedCountry: country.Key,
		Market:          country.Code,
	}
	return d
}

// SetClock overrides the time source; used by tests.
func (d *Dashboard) SetClock(now func() time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.now = now
}

// State returns a snapshot of the current state.
func (d *Dashboard) State() model.DashboardState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Refresh re-fetches both genres for the selected country.
func (d *Dashboard) Refresh(ctx context.Context) model.DashboardState {
	country, ok := model.LookupCountry(d.State().SelectedCountry)
	if !ok {
		country, _ = model.LookupCountry(model.DefaultCountry)
	}
	return d.fetch(ctx, country)
}

// SetSelectedCountry switches the market filter and fetches for it.
func (d *Dashboard) SetSelectedCountry(ctx context.Context, key string) (model.DashboardState, error) {
	country, ok := model.LookupCountry(key)
	if !ok {
		return d.State(), fmt.Errorf("%w: %q", ErrUnknownCountry, key)
	}
	return d.fetch(ctx, country), nil
}

// Quarterly builds the synthetic series for year from the current collections.
func (d *Dashboard) Quarterly(year int) []model.GenreQuarterlyStats {
	s := d.State()
	return d.generator.GenerateAll([]stats.GenreTracks{
		{Genre: Genres[0].Label, Tracks: s.TechnoTracks},
		{Genre: Genres[1].Label, Tracks: s.TranceTracks},
	}, year)
}

// Subscribe returns a channel that receives every state change. The channel
// holds one pending value; a slow reader only ever sees the newest state.
func (d *Dashboard) Subscribe() (<-chan model.DashboardState, func()) {
	ch := make(chan model.DashboardState, 1)

	d.subMu.Lock()
	id := d.nextSub
	d.nextSub++
	d.subs[id] = ch
	d.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.subMu.Lock()
			delete(d.subs, id)
			close(ch)
			d.subMu.Unlock()
		})
	}
}

type genreResult struct {
	tracks []model.Track
	err    error
}

func (d *Dashboard) fetch(ctx context.Context, country model.Country) model.DashboardState {
	seq := d.seq.Add(1)

	d.apply(seq, func(s *model.DashboardState) {
		s.Loading = true
		s.SelectedCountry = country.Key
		s.Market = country.Code
		s.Sequence = seq
	})

	logger.Info("[Dashboard] fetching genres",
		logger.Uint64("seq", seq),
		logger.String("country", country.Key),
		logger.String("market", country.Code))

	// 每个流派的失败都单独记录，不影响另一个流派
	results := make([]genreResult, len(Genres))
	var g errgroup.Group
	for i, genre := range Genres {
		g.Go(func() error {
			tracks, err := d.source.TracksForGenre(ctx, genre.Key, country.Code)
			results[i] = genreResult{tracks: tracks, err: err}
			return nil
		})
	}
	_ = g.Wait()

	// An aborted caller keeps the previous collections; only the loading flag is cleared.
	if err := ctx.Err(); err != nil {
		d.apply(seq, func(s *model.DashboardState) {
			s.Loading = false
		})
		logger.Warn("[Dashboard] fetch aborted, keeping previous state",
			logger.Uint64("seq", seq),
			logger.String("country", country.Key),
			logger.ErrorField(err))
		return d.State()
	}

	applied := d.apply(seq, func(s *model.DashboardState) {
		d.settle(s, results)
		s.UpdatedAt = d.now()
	})
	if !applied {
		logger.Warn("[Dashboard] discarding stale result",
			logger.Uint64("seq", seq),
			logger.Uint64("latest", d.seq.Load()),
			logger.String("country", country.Key))
	}
	return d.State()
}

// settle folds the per-genre outcomes into s.
func (d *Dashboard) settle(s *model.DashboardState, results []genreResult) {
	var failures []string
	collections := make([][]model.Track, len(Genres))
	loaded := 0

	for i, genre := range Genres {
		r := results[i]
		switch {
		case r.err != nil:
			failures = append(failures, fmt.Sprintf("%s: %s", genre.Title, r.err.Error()))
			logger.Warn("[Dashboard] genre fetch failed", logger.String("genre", genre.Key), logger.ErrorField(r.err))
		case len(r.tracks) == 0:
			failures = append(failures, fmt.Sprintf("%s: no tracks returned", genre.Title))
		}
		if r.err == nil && len(r.tracks) > 0 {
			collections[i] = r.tracks
			loaded++
		} else {
			collections[i] = []model.Track{}
		}
	}

	s.Loading = false
	s.Fatal = false
	s.Error = ""

	if loaded == 0 {
		s.Fatal = true
		s.Error = "All genres failed: " + strings.Join(failures, "; ")
		s.TechnoTracks = []model.Track{}
		s.TranceTracks = []model.Track{}
		s.TechnoStats = stats.Aggregate(nil, Genres[0].Label)
		s.TranceStats = stats.Aggregate(nil, Genres[1].Label)
		s.Quarterly = []model.GenreQuarterlyStats{}
		return
	}
	if len(failures) > 0 {
		s.Error = "Partial data: " + strings.Join(failures, "; ")
	}

	s.TechnoTracks = collections[0]
	s.TranceTracks = collections[1]
	s.TechnoStats = stats.Aggregate(s.TechnoTracks, Genres[0].Label)
	s.TranceStats = stats.Aggregate(s.TranceTracks, Genres[1].Label)
	s.Quarterly = d.generator.GenerateAll([]stats.GenreTracks{
		{Genre: Genres[0].Label, Tracks: s.TechnoTracks},
		{Genre: Genres[1].Label, Tracks: s.TranceTracks},
	}, d.now().Year())
}

// apply mutates the state only if seq is still the latest issued sequence.
func (d *Dashboard) apply(seq uint64, mutate func(*model.DashboardState)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if seq != d.seq.Load() {
		return false
	}
	mutate(&d.state)
	d.publish(d.state)
	return true
}

// publish must be called with d.mu held so subscribers see states in order.
func (d *Dashboard) publish(s model.DashboardState) {
	d.subMu.Lock()
	defer d.subMu.Unlock()

	for _, ch := range d.subs {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}
