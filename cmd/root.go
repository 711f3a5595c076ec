package cmd

import (
	"os"

	"watchlist/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is stamped into exported snapshots. Overridden at build time with -ldflags.
var Version = "dev"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Personal watchlist service",
	Long: `Watchlist tracks the media you are watching, have finished or plan to watch.
Lists can be exported to portable snapshot files and merged back on any device.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		l := logger.NewConsole("debug")
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
}
