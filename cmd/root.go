package cmd

import (
	"os"

	"mastodon-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "mastodon-sync",
	Short: "Mastodon Sync Service",
	Long: `Mastodon Sync reconciles responses of Mastodon-compatible servers into a local
entity graph of users, statuses, polls, tags and push settings.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		l := logger.NewCLI()
		l.Error("Command failed", zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
}
