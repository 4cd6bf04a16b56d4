package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/baseconv/internal/app"
	"github.com/doeshing/baseconv/internal/domain"
	"github.com/doeshing/baseconv/internal/infrastructure/cli/helpers"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect conversion history for the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.Context(), cmd.OutOrStdout(), container, 0)
		},
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
		newHistoryRetainCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent conversions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return errors.New(ErrInvalidLimit)
			}
			return listHistoryEntries(cmd.Context(), cmd.OutOrStdout(), container, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Max entries to show (default history.limit from config)")
	return cmd
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the current user's history",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := container.AccountService.CurrentUsername()
			if !yes && container.Prompter != nil && container.Prompter.Enabled() {
				ok, err := container.Prompter.Confirm(fmt.Sprintf("Clear conversion history for %s?", user))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), MsgCancelled)
					return nil
				}
			}
			if err := container.ConvertService.ClearHistory(cmd.Context(), user); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export the current user's history to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := container.HistoryStore
			if store == nil {
				return errors.New(ErrHistoryStoreUnavailable)
			}
			user := container.AccountService.CurrentUsername()
			if err := store.ExportJSON(cmd.Context(), user, args[0]); err != nil {
				return fmt.Errorf("failed to export history to %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported history for %s to %s\n", user, args[0])
			return nil
		},
	}
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show conversion counts and the most used base pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistoryStats(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newHistoryRetainCommand creates the 'history retain' subcommand
func newHistoryRetainCommand(container *app.Container) *cobra.Command {
	var retainDays int

	cmd := &cobra.Command{
		Use:   "retain",
		Short: "Prune history older than N days and update retention policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if retainDays <= 0 {
				return errors.New(ErrInvalidRetainDays)
			}
			return updateHistoryRetention(cmd.Context(), cmd.OutOrStdout(), container, retainDays)
		},
	}

	cmd.Flags().IntVar(&retainDays, "days", domain.DefaultHistoryRetainDays, "Days to retain history")
	return cmd
}

// listHistoryEntries prints the conversion history the way the converter's
// history dialog shows it.
func listHistoryEntries(ctx context.Context, out io.Writer, container *app.Container, limit int) error {
	user := container.AccountService.CurrentUsername()
	records, err := container.ConvertService.History(ctx, user, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}
	now := time.Now()
	for _, rec := range records {
		fmt.Fprintf(out, "%-16s %s\n", humanize.RelTime(rec.Timestamp, now, "ago", "from now"), rec.Summary())
	}
	return nil
}

// showHistoryStats displays totals and top base pairs
func showHistoryStats(ctx context.Context, out io.Writer, container *app.Container) error {
	user := container.AccountService.CurrentUsername()
	stats, err := container.ConvertService.Stats(ctx, user)
	if err != nil {
		return err
	}
	if stats.Total == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	fmt.Fprintf(out, "User: %s\nConversions analyzed: %s\n", user, humanize.Comma(int64(stats.Total)))
	fmt.Fprintf(out, "First: %s\nLatest: %s\n", humanize.Time(stats.Oldest), humanize.Time(stats.Newest))
	fmt.Fprintln(out, "Top conversions:")
	for _, pc := range stats.TopPairs {
		fmt.Fprintf(out, "  %s\n", helpers.FormatPairCount(pc, stats.Total))
	}
	return nil
}

// updateHistoryRetention prunes old history and updates retention policy
func updateHistoryRetention(ctx context.Context, out io.Writer, container *app.Container, days int) error {
	store := container.HistoryStore
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	if err := store.PruneOlderThan(ctx, days); err != nil {
		return fmt.Errorf("failed to prune old history: %w", err)
	}

	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.History.RetentionDays = days
	if err := helpers.SaveConfigWithValidation(container, cfg); err != nil {
		return err
	}

	// only the SQLite store prunes on save
	if retainer, ok := store.(interface{ SetRetentionDays(int) }); ok {
		retainer.SetRetentionDays(days)
	}

	fmt.Fprintf(out, "Retained last %d days of history.\n", days)
	return nil
}
