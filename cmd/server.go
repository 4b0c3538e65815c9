package cmd

import (
	"GenrePulse/core/dashboard"
	"GenrePulse/core/stats"
	"GenrePulse/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动GenrePulse服务器",
	Long:  `Start the HTTP API and WebSocket state stream for the genre dashboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer() error {
	p := newPipeline(appConfig, true)
	defer p.Close()

	dash := dashboard.New(p.source, stats.NewGenerator(nil))

	return server.New(appConfig, dash, p.purger()).Start()
}
