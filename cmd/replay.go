package cmd

import (
	"fmt"
	"strings"
	"time"

	"mastodon-sync/feature/replay"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	replayList        bool
	replayPruneBefore string
)

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay <domain>",
	Short: "Re-reconcile archived API responses",
	Long:  `Reads the archived envelopes of a domain in observation order and dispatches them again. Already applied envelopes are skipped by the reconciler.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		domain := strings.ToLower(args[0])
		svc := replay.NewService(a.archive, a.pipeline.Router(), a.logger)

		if replayPruneBefore != "" {
			cutoff, err := time.Parse(time.RFC3339Nano, replayPruneBefore)
			if err != nil {
				return fmt.Errorf("invalid --prune-before: %w", err)
			}
			removed, err := a.archive.Prune(cmd.Context(), domain, cutoff)
			if err != nil {
				return err
			}
			a.logger.Info("Archive pruned", zap.String("domain", domain), zap.Int("removed", removed))
			return nil
		}

		if replayList {
			keys, err := svc.List(cmd.Context(), domain)
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		}

		report, err := svc.Replay(cmd.Context(), domain)
		if err != nil {
			return err
		}

		for _, f := range report.Failed {
			a.logger.Warn("Envelope failed", zap.String("key", f.Key), zap.String("error", f.Error))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Envelopes: %d\nCreated: %d\nUpdated: %d\nSkipped: %d\nFailed: %d\n",
			report.Envelopes, report.Created, report.Updated, report.Skipped, len(report.Failed))
		if len(report.Failed) > 0 {
			return fmt.Errorf("%d envelopes failed", len(report.Failed))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayList, "list", false, "Only list the archived keys")
	replayCmd.Flags().StringVar(&replayPruneBefore, "prune-before", "", "Remove envelopes observed before this RFC3339 time instead of replaying")
}
