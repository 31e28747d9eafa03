package cmd

import (
	"mastodon-sync/core/graph"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the graph tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := graph.Migrate(cmd.Context(), a.db); err != nil {
			return err
		}
		a.logger.Info("Graph migrated", zap.Int("tables", len(graph.Models())))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
