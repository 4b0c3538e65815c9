package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"GenrePulse/core/dashboard"
	"GenrePulse/core/stats"
	"GenrePulse/model"

	"github.com/spf13/cobra"
)

const directSearchLimit = 40

var (
	fetchCountry string
	fetchDirect  bool
	fetchNoCache bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "拉取两个流派的数据并打印统计",
	Long:  `Fetch techno and trance tracks for a country and print their stats, top tracks and top artists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		country, ok := model.LookupCountry(fetchCountry)
		if !ok {
			return fmt.Errorf("unknown country %q", fetchCountry)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		p := newPipeline(appConfig, !fetchNoCache && !fetchDirect)
		defer p.Close()

		if fetchDirect {
			return fetchByTrackSearch(ctx, p, country)
		}

		dash := dashboard.New(p.source, stats.NewGenerator(nil))
		state, err := dash.SetSelectedCountry(ctx, country.Key)
		if err != nil {
			return err
		}
		if state.Error != "" {
			fmt.Printf("⚠ %s\n", state.Error)
		}
		if state.Fatal {
			return fmt.Errorf("fetch failed for %s", country.Name)
		}

		fmt.Printf("Market: %s (%s)\n", country.Name, country.Code)
		printGenre(state.TechnoStats, state.TechnoTracks)
		printGenre(state.TranceStats, state.TranceTracks)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchCountry, "country", "c", model.DefaultCountry, "country filter (GLOBAL, BR, DE, MX)")
	fetchCmd.Flags().BoolVar(&fetchDirect, "direct", false, "search tracks directly instead of going through playlists")
	fetchCmd.Flags().BoolVar(&fetchNoCache, "no-cache", false, "bypass the Redis track cache")
	rootCmd.AddCommand(fetchCmd)
}

func fetchByTrackSearch(ctx context.Context, p *pipeline, country model.Country) error {
	fmt.Printf("Market: %s (%s), direct track search\n", country.Name, country.Code)
	for _, genre := range dashboard.Genres {
		tracks, err := p.collector.TracksByMarketSearch(ctx, genre.Key, country.Code, directSearchLimit)
		if err != nil {
			fmt.Printf("\n%s: %v\n", genre.Title, err)
			continue
		}
		printGenre(stats.Aggregate(tracks, genre.Label), tracks)
	}
	return nil
}

func printGenre(s model.GenreStats, tracks []model.Track) {
	fmt.Printf("\n== %s ==\n", s.Name)
	if s.TrackCount == 0 {
		fmt.Println("no data")
		return
	}
	fmt.Printf("tracks: %d  avg popularity: %.1f  artists: %d\n", s.TrackCount, s.AvgPopularity, s.TotalArtists)

	for i, t := range s.TopTracks {
		fmt.Printf("%2d. %s - %s [%s] pop %d\n",
			i+1, t.Name, t.PrimaryArtist(), stats.FormatDuration(t.DurationMs), t.Popularity)
		if cover := t.Album.CoverURL(); cover != "" {
			fmt.Printf("    cover: %s\n", cover)
		}
	}
	if artists := stats.TopArtists(tracks, 5); len(artists) > 0 {
		fmt.Printf("top artists: %s\n", strings.Join(artists, ", "))
	}
}
