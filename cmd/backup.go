package cmd

import (
	"watchlist/core/reconcile"
	"watchlist/feature/watchlist"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// backupCmd is the parent command for backup operations.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create, list and restore watchlist backups",
}

var backupRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Write a backup now and prune old ones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer svc.Close()

		res, err := svc.backup.Run(cmd.Context())
		if err != nil {
			return err
		}
		svc.log.Info("Backup complete",
			zap.String("id", res.ID),
			zap.String("name", res.Name),
			zap.Int("entries", res.EntryCount),
			zap.Strings("pruned", res.Pruned),
		)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer svc.Close()

		backups, err := svc.backup.List(cmd.Context())
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), backups)
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Import a stored backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0], func(svc *services, opts watchlist.ImportOptions) (*reconcile.Outcome, error) {
			return svc.backup.Restore(cmd.Context(), args[0], opts)
		})
	},
}

func init() {
	addImportFlags(backupRestoreCmd)
	backupCmd.AddCommand(backupRunCmd, backupListCmd, backupRestoreCmd)
	RootCmd.AddCommand(backupCmd)
}
