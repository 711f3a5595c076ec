package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"watchlist/core/reconcile"
	"watchlist/feature/watchlist"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	importStrategy   string
	importResolution string
	importScope      string
	importDryRun     bool
	yesConfirm       bool
)

// stdinIsTerminal is replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// importCmd merges a snapshot file into the store.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a snapshot file into the watchlist",
	Long: `Reads a snapshot from the storage backend and reconciles it into the store.

Strategies:
  merge          update existing ids according to --resolution (default)
  replace        clear the store first, then insert every entry
  skip_existing  only insert ids that are not in the store yet

Resolutions (merge only):
  keep_existing  keep the stored entry (default)
  use_imported   overwrite with the imported entry
  keep_newer     take the imported entry only if its end date is later

Examples:
  # Preview what would change
  import watchlist_export_all_20240301_100000.json --dry-run

  # Replace everything without prompting
  import backup.json --strategy replace --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0], func(svc *services, opts watchlist.ImportOptions) (*reconcile.Outcome, error) {
			return svc.watchlist.ImportFrom(cmd.Context(), args[0], opts)
		})
	},
}

func init() {
	addImportFlags(importCmd)
	RootCmd.AddCommand(importCmd)
}

func addImportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&importStrategy, "strategy", string(reconcile.StrategyMerge), "Merge strategy (merge, replace, skip_existing)")
	cmd.Flags().StringVar(&importResolution, "resolution", string(reconcile.ResolutionKeepExisting), "Conflict resolution (keep_existing, use_imported, keep_newer)")
	cmd.Flags().StringVar(&importScope, "scope", "all", "Only import entries with this status (or all)")
	cmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Report what would happen without writing")
	cmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
}

// runImport validates the policy, confirms a replace and runs the import.
func runImport(cmd *cobra.Command, name string, do func(*services, watchlist.ImportOptions) (*reconcile.Outcome, error)) error {
	policy, err := reconcile.ParsePolicy(importStrategy, importResolution, importScope)
	if err != nil {
		return err
	}

	svc, err := loadServices(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer svc.Close()

	l := svc.log
	l.Info("Starting import",
		zap.String("file", name),
		zap.String("strategy", string(policy.Strategy)),
		zap.String("resolution", string(policy.Resolution)),
		zap.String("scope", string(policy.Scope)),
	)

	if policy.Strategy == reconcile.StrategyReplace && !importDryRun {
		if !confirmDestructiveAction(os.Stdin, cmd.OutOrStdout()) {
			l.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
	}

	out, err := do(svc, watchlist.ImportOptions{
		Strategy:   string(policy.Strategy),
		Resolution: string(policy.Resolution),
		Scope:      string(policy.Scope),
		DryRun:     importDryRun,
	})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	printImportReport(l, out)
	if out.DryRun {
		l.Info("Dry-run mode: No changes were made.")
	}
	return nil
}

// printImportReport logs an outcome the same way for imports and restores.
func printImportReport(l *zap.Logger, out *reconcile.Outcome) {
	l.Info("Import report",
		zap.Int("total", out.Total),
		zap.Int("imported", out.Imported),
		zap.Int("updated", out.Updated),
		zap.Int("skipped", out.Skipped),
		zap.Int("conflicts", out.Conflicts),
		zap.Int("errors", len(out.Errors)),
	)

	// Show a sample of failures
	maxShow := 5
	if len(out.Errors) < maxShow {
		maxShow = len(out.Errors)
	}
	for _, e := range out.Errors[:maxShow] {
		l.Warn("Entry failed",
			zap.Int("index", e.Index),
			zap.Int64("id", e.ID),
			zap.String("kind", string(e.Kind)),
			zap.String("message", e.Message),
		)
	}
	if len(out.Errors) > maxShow {
		l.Info("Additional errors not shown", zap.Int("count", len(out.Errors)-maxShow))
	}
}

// confirmDestructiveAction asks for an explicit "yes" unless --yes was given.
// Without a terminal on stdin there is nobody to ask, so it refuses.
func confirmDestructiveAction(in io.Reader, out io.Writer) bool {
	if yesConfirm {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}
	if !stdinIsTerminal() {
		fmt.Fprintln(out, "\nReplace clears the whole watchlist; re-run with --yes to confirm.")
		return false
	}

	fmt.Fprint(out, "\n⚠️  Replace clears the whole watchlist. Type 'yes' to confirm: ")
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
