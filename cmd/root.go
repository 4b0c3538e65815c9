package cmd

import (
	"fmt"
	"os"

	"GenrePulse/config"
	"GenrePulse/logger"

	"github.com/spf13/cobra"
)

var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "genrepulse",
	Short: "GenrePulse tracks techno and trance popularity across markets.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		appConfig = config.Load()
		logger.InitLogger(logger.Config{
			Level:      logger.ParseLevel(appConfig.LogLevel),
			OutputPath: appConfig.LogFile,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// 不带子命令时直接启动服务器
		return runServer()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
