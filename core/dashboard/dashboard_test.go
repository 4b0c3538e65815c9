package dashboard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"GenrePulse/core/catalog"
	"GenrePulse/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sourceFunc func(ctx context.Context, genre, market string) ([]model.Track, error)

func (f sourceFunc) TracksForGenre(ctx context.Context, genre, market string) ([]model.Track, error) {
	return f(ctx, genre, market)
}

func makeTracks(prefix string, n int) []model.Track {
	tracks := make([]model.Track, n)
	for i := range tracks {
		tracks[i] = model.Track{
			ID:         fmt.Sprintf("%s-%d", prefix, i),
			Name:       fmt.Sprintf("%s track %d", prefix, i),
			Artists:    []model.Artist{{ID: fmt.Sprintf("%s-artist-%d", prefix, i%5), Name: "artist"}},
			Popularity: 40 + i,
		}
	}
	return tracks
}

func fixedClock() time.Time {
	return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestNew_InitialState(t *testing.T) {
	d := New(sourceFunc(nil), nil)
	s := d.State()

	assert.Equal(t, "GLOBAL", s.SelectedCountry)
	assert.Equal(t, "US", s.Market)
	assert.False(t, s.Loading)
	assert.Empty(t, s.TechnoTracks)
	assert.Equal(t, "TECHNO", s.TechnoStats.Name)
}

func TestRefresh_BothGenresLoaded(t *testing.T) {
	src := sourceFunc(func(ctx context.Context, genre, market string) ([]model.Track, error) {
		return makeTracks(genre, 25), nil
	})
	d := New(src, nil)
	d.SetClock(fixedClock)

	s := d.Refresh(context.Background())

	assert.False(t, s.Loading)
	assert.Empty(t, s.Error)
	assert.False(t, s.Fatal)
	assert.Equal(t, 25, s.TechnoStats.TrackCount)
	assert.Equal(t, 25, s.TranceStats.TrackCount)
	assert.Equal(t, 5, s.TechnoStats.TotalArtists)
	require.Len(t, s.Quarterly, 2)
	assert.Equal(t, "TECHNO", s.Quarterly[0].Genre)
	assert.Equal(t, 2025, s.Quarterly[0].Quarters[0].Year)
	assert.Equal(t, fixedClock(), s.UpdatedAt)
	assert.Equal(t, uint64(1), s.Sequence)
}

func TestRefresh_PartialFailure(t *testing.T) {
	src := sourceFunc(func(ctx context.Context, genre, market string) ([]model.Track, error) {
		if genre == "techno" {
			return nil, &catalog.NotFoundError{Category: "techno", TriedTerms: []string{"techno", "techno music"}}
		}
		return makeTracks(genre, 25), nil
	})
	d := New(src, nil)

	s := d.Refresh(context.Background())

	assert.False(t, s.Loading)
	assert.False(t, s.Fatal)
	assert.Equal(t, `Partial data: Techno: no playlists found for genre "techno" after trying terms: techno, techno music`, s.Error)
	assert.Equal(t, 0, s.TechnoStats.TrackCount)
	assert.Equal(t, 25, s.TranceStats.TrackCount)
	assert.Empty(t, s.TechnoTracks)
	assert.Len(t, s.TranceTracks, 25)
	assert.Len(t, s.Quarterly, 2)
}

func TestRefresh_TotalFailure(t *testing.T) {
	src := sourceFunc(func(ctx context.Context, genre, market string) ([]model.Track, error) {
		return nil, errors.New(genre + " down")
	})
	d := New(src, nil)

	s := d.Refresh(context.Background())

	assert.False(t, s.Loading)
	assert.True(t, s.Fatal)
	assert.Equal(t, "All genres failed: Techno: techno down; Trance: trance down", s.Error)
	assert.Empty(t, s.TechnoTracks)
	assert.Empty(t, s.TranceTracks)
	assert.Empty(t, s.Quarterly)
	assert.Equal(t, 0, s.TranceStats.TrackCount)
}

func TestRefresh_EmptyResultCountsAsFailure(t *testing.T) {
	src := sourceFunc(func(ctx context.Context, genre, market string) ([]model.Track, error) {
		if genre == "trance" {
			return []model.Track{}, nil
		}
		return makeTracks(genre, 3), nil
	})
	d := New(src, nil)

	s := d.Refresh(context.Background())

	assert.Equal(t, "Partial data: Trance: no tracks returned", s.Error)
}

func TestRefresh_ErrorClearedOnSuccess(t *testing.T) {
	fail := true
	src := sourceFunc(func(ctx context.Context, genre, market string) ([]model.Track, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return makeTracks(genre, 2), nil
	})
	d := New(src, nil)

	require.True(t, d.Refresh(context.Background()).Fatal)
	fail = false
	s := d.Refresh(context.Background())

	assert.False(t, s.Fatal)
	assert.Empty(t, s.Error)
}

func TestSetSelectedCountry_UsesMarketCode(t *testing.T) {
	seen := make(chan string, 2)
	src := sourceFunc(func(ctx context.Context, genre, market string) ([]model.Track, error) {
		seen <- market
		return makeTracks(genre, 1), nil
	})
	d := New(src, nil)

	s, err := d.SetSelectedCountry(context.Background(), "de")

	require.NoError(t, err)
	assert.Equal(t, "DE", s.SelectedCountry)
	assert.Equal(t, "DE", s.Market)
	assert.Equal(t, "DE", <-seen)
	assert.Equal(t, "DE", <-seen)

	// Refresh keeps the selection.
	s = d.Refresh(context.Background())
	assert.Equal(t, "DE", s.Market)
}

func TestSetSelectedCountry_Unknown(t *testing.T) {
	d := New(sourceFunc(func(ctx context.Context, genre, market string) ([]model.Track, error) {
		t.Fatal("source must not be called")
		return nil, nil
	}), nil)

	s, err := d.SetSelectedCountry(context.Background(), "FR")

	assert.ErrorIs(t, err, ErrUnknownCountry)
	assert.Equal(t, "GLOBAL", s.SelectedCountry)
	assert.Equal(t, uint64(0), s.Sequence)
}

func TestLoadingWhileInFlight(t *testing.T) {
	started := make(chan struct{}, 2)
	release := make(chan struct{})
	src := sourceFunc(func(ctx context.Context, genre, market string) ([]model.Track, error) {
		started <- struct{}{}
		<-release
		return makeTracks(genre, 1), nil
	})
	d := New(src, nil)

	done := make(chan model.DashboardState)
	go func() { done <- d.Refresh(context.Background()) }()

	<-started
	assert.True(t, d.State().Loading)

	close(release)
	s := <-done
	assert.False(t, s.Loading)
}

func TestStaleResultIsDiscarded(t *testing.T) {
	brStarted := make(chan struct{}, 2)
	releaseBR := make(chan struct{})
	src := sourceFunc(func(ctx context.Context, genre, market string) ([]model.Track, error) {
		if market == "BR" {
			brStarted <- struct{}{}
			<-releaseBR
			return makeTracks("br-"+genre, 10), nil
		}
		return makeTracks("de-"+genre, 3), nil
	})
	d := New(src, nil)

	slow := make(chan model.DashboardState)
	go func() {
		s, _ := d.SetSelectedCountry(context.Background(), "BR")
		slow <- s
	}()
	<-brStarted
	<-brStarted

	fresh, err := d.SetSelectedCountry(context.Background(), "DE")
	require.NoError(t, err)
	assert.Equal(t, "DE", fresh.Market)
	assert.Equal(t, 3, fresh.TechnoStats.TrackCount)

	close(releaseBR)
	late := <-slow

	assert.Equal(t, "DE", late.Market, "superseded fetch returns the current state")
	final := d.State()
	assert.Equal(t, "DE", final.SelectedCountry)
	assert.Equal(t, 3, final.TechnoStats.TrackCount)
	assert.Equal(t, "de-techno-0", final.TechnoTracks[0].ID)
	assert.Equal(t, uint64(2), final.Sequence)
	assert.False(t, final.Loading)
}

func TestSubscribe_LatestWins(t *testing.T) {
	d := New(sourceFunc(func(ctx context.Context, genre, market string) ([]model.Track, error) {
		return makeTracks(genre, 4), nil
	}), nil)

	ch, cancel := d.Subscribe()
	defer cancel()

	d.Refresh(context.Background())

	select {
	case s := <-ch:
		assert.False(t, s.Loading)
		assert.Equal(t, 4, s.TechnoStats.TrackCount)
	default:
		t.Fatal("expected a pending state")
	}
}

func TestSubscribe_CancelClosesChannel(t *testing.T) {
	d := New(sourceFunc(func(ctx context.Context, genre, market string) ([]model.Track, error) {
		return makeTracks(genre, 1), nil
	}), nil)

	ch, cancel := d.Subscribe()
	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)
	assert.NotPanics(t, func() { d.Refresh(context.Background()) })
}

func TestQuarterly_UsesCurrentTracks(t *testing.T) {
	d := New(sourceFunc(func(ctx context.Context, genre, market string) ([]model.Track, error) {
		return makeTracks(genre, 5), nil
	}), nil)
	d.Refresh(context.Background())

	a := d.Quarterly(2023)
	b := d.Quarterly(2023)

	require.Len(t, a, 2)
	assert.Equal(t, a, b)
	assert.Equal(t, 2023, a[1].Quarters[3].Year)
	assert.Equal(t, "TRANCE", a[1].Genre)
}

func TestRefresh_CancelledContextKeepsState(t *testing.T) {
	src := sourceFunc(func(ctx context.Context, genre, market string) ([]model.Track, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return makeTracks(genre, 25), nil
	})
	d := New(src, nil)
	d.SetClock(fixedClock)

	good := d.Refresh(context.Background())
	require.Equal(t, 25, good.TechnoStats.TrackCount)

	ch, unsubscribe := d.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := d.Refresh(ctx)

	assert.False(t, s.Loading)
	assert.False(t, s.Fatal)
	assert.Empty(t, s.Error)
	assert.Equal(t, 25, s.TechnoStats.TrackCount)
	assert.Equal(t, 25, s.TranceStats.TrackCount)
	assert.Len(t, s.TechnoTracks, 25)
	assert.Len(t, s.Quarterly, 2)
	assert.Equal(t, good.UpdatedAt, s.UpdatedAt)

	latest := <-ch
	assert.False(t, latest.Fatal, "subscribers never see a fatal state from an aborted fetch")
	assert.Equal(t, 25, latest.TranceStats.TrackCount)
}

func TestSetClock_ConcurrentWithRefresh(t *testing.T) {
	d := New(sourceFunc(func(ctx context.Context, genre, market string) ([]model.Track, error) {
		return makeTracks(genre, 2), nil
	}), nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Refresh(context.Background())
	}()
	d.SetClock(fixedClock)
	<-done

	s := d.Refresh(context.Background())
	assert.Equal(t, fixedClock(), s.UpdatedAt)
}
