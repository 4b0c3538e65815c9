package cmd

import (
	"context"
	"fmt"
	"time"

	"GenrePulse/core/dashboard"
	"GenrePulse/core/stats"
	"GenrePulse/model"

	"github.com/spf13/cobra"
)

var (
	seriesYear    int
	seriesCountry string
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "打印合成的季度播放量",
	Long:  `Fetch both genres and print the synthetic quarterly play-count series derived from them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		year := seriesYear
		if year == 0 {
			year = time.Now().Year()
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		p := newPipeline(appConfig, true)
		defer p.Close()

		dash := dashboard.New(p.source, stats.NewGenerator(nil))
		state, err := dash.SetSelectedCountry(ctx, seriesCountry)
		if err != nil {
			return err
		}
		if state.Error != "" {
			fmt.Printf("⚠ %s\n", state.Error)
		}

		for _, g := range dash.Quarterly(year) {
			printSeries(g)
		}
		return nil
	},
}

func init() {
	seriesCmd.Flags().IntVarP(&seriesYear, "year", "y", 0, "year to generate (default current year)")
	seriesCmd.Flags().StringVarP(&seriesCountry, "country", "c", model.DefaultCountry, "country filter (GLOBAL, BR, DE, MX)")
	rootCmd.AddCommand(seriesCmd)
}

func printSeries(g model.GenreQuarterlyStats) {
	fmt.Printf("\n== %s: %d plays ==\n", g.Genre, g.TotalYearPlays)
	for _, q := range g.Quarters {
		up, down := 0, 0
		for _, w := range q.Weeks {
			switch w.Trend {
			case model.TrendUp:
				up++
			case model.TrendDown:
				down++
			}
		}
		fmt.Printf("Q%d %d  %10d plays  (%d up, %d down)  %s\n", q.Quarter, q.Year, q.TotalPlays, up, down, q.Color)
	}
}
