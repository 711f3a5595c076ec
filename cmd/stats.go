package cmd

import (
	"watchlist/core/entry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var statsJSON bool

// statsCmd reports list statistics.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show watchlist statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer svc.Close()

		stats, err := svc.watchlist.Stats(cmd.Context())
		if err != nil {
			return err
		}

		if statsJSON {
			return writeJSON(cmd.OutOrStdout(), stats)
		}

		fields := []zap.Field{
			zap.Int64("total", stats.Total),
			zap.Int64("total_progress", stats.TotalProgress),
			zap.Float64("mean_score", stats.MeanScore),
		}
		for _, st := range entry.Statuses {
			fields = append(fields, zap.Int64(string(st), stats.ByStatus[st]))
		}
		svc.log.Info("Watchlist stats", fields...)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output statistics as JSON")
	RootCmd.AddCommand(statsCmd)
}
