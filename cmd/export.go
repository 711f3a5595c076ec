package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportScope  string
	exportOut    string
	exportStdout bool
)

// exportCmd writes a snapshot of the watchlist.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the watchlist to a snapshot file",
	Long: `Serializes the entries within --scope into a snapshot document.

The file is written to the storage backend under --out, or under
watchlist_export_<scope>_<timestamp>.json when no name is given.
With --stdout the document is printed instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, err := loadServices(ctx, true)
		if err != nil {
			return err
		}
		defer svc.Close()

		if exportStdout {
			_, data, err := svc.watchlist.Export(ctx, exportScope)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		res, err := svc.watchlist.ExportTo(ctx, exportScope, exportOut)
		if err != nil {
			return err
		}

		svc.log.Info("Export complete",
			zap.String("path", res.Path),
			zap.Int("entries", res.EntryCount),
			zap.String("scope", string(res.Scope)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportScope, "scope", "all", "Export only entries with this status (or all)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "File name in the storage backend")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Print the snapshot instead of writing a file")
	RootCmd.AddCommand(exportCmd)
}
