package cmd

import (
	"fmt"
	"strconv"

	"watchlist/core/entry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	entriesStatus string
	addEntry      entry.Entry
	addStart      string
	addEnd        string
)

// entriesCmd is the parent command for editing the list.
var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List and edit watchlist entries",
}

var entriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer svc.Close()

		entries, err := svc.watchlist.List(cmd.Context(), entriesStatus)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), entries)
	},
}

var entriesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		svc, err := loadServices(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer svc.Close()

		e, err := svc.watchlist.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), e)
	},
}

var entriesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or replace an entry",
	Example: `  entries add --id 5114 --status watching --progress 3 --title "Fullmetal Alchemist"
  entries add --id 5114 --status completed --score 10 --end 2024-03-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := addEntry
		if addStart != "" {
			e.StartDate = entry.Date(addStart)
		}
		if addEnd != "" {
			e.EndDate = entry.Date(addEnd)
		}

		svc, err := loadServices(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer svc.Close()

		saved, err := svc.watchlist.Upsert(cmd.Context(), e)
		if err != nil {
			return err
		}
		svc.log.Info("Entry saved", zap.Int64("id", saved.ID), zap.String("status", string(saved.Status)))
		return nil
	},
}

var entriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		svc, err := loadServices(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.watchlist.Delete(cmd.Context(), id); err != nil {
			return err
		}
		svc.log.Info("Entry deleted", zap.Int64("id", id))
		return nil
	},
}

var entriesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search entries by title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer svc.Close()

		entries, err := svc.watchlist.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), entries)
	},
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return id, nil
}

func init() {
	entriesListCmd.Flags().StringVar(&entriesStatus, "status", "", "Only list entries with this status")

	f := entriesAddCmd.Flags()
	f.Int64Var(&addEntry.ID, "id", 0, "External id of the item")
	f.StringVar((*string)(&addEntry.Status), "status", string(entry.StatusPlanned), "watching, completed, on_hold, dropped or planned")
	f.IntVar(&addEntry.Score, "score", 0, "Score from 1 to 10 (0 = unrated)")
	f.IntVar(&addEntry.Progress, "progress", 0, "Units watched")
	f.StringVar(&addEntry.Title, "title", "", "Display title")
	f.StringVar(&addEntry.Notes, "notes", "", "Free-form notes")
	f.StringVar(&addEntry.ImageReference, "image", "", "Image URL")
	f.BoolVar(&addEntry.Favorite, "favorite", false, "Mark as favorite")
	f.StringVar(&addStart, "start", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&addEnd, "end", "", "End date (YYYY-MM-DD)")
	_ = entriesAddCmd.MarkFlagRequired("id")

	entriesCmd.AddCommand(entriesListCmd, entriesGetCmd, entriesAddCmd, entriesDeleteCmd, entriesSearchCmd)
	RootCmd.AddCommand(entriesCmd)
}
