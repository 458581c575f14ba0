package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/yildizm/ReviewRadar/internal/config"
	"github.com/yildizm/ReviewRadar/internal/history"
)

var historyLimit int

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear past analyses",
		Long: `Show the analyses recorded in the local history database.

History is only written when history.enabled is set in the configuration.

Examples:
  reviewradar history
  reviewradar history list --limit 50 -o json
  reviewradar history clear`,
		Args: cobra.NoArgs,
		RunE: runHistoryList,
	}

	cmd.PersistentFlags().IntVarP(&historyLimit, "limit", "n", history.DefaultLimit, "number of entries to show")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recent analyses",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded analyses",
		Args:  cobra.NoArgs,
		RunE:  runHistoryClear,
	})

	return cmd
}

func openHistory(cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled (set history.enabled: true in the config file)")
	}
	return history.Open(cfg.HistoryPath())
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory(GetGlobalConfig())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return listHistory(cmd.Context(), store, historyLimit, cmd.OutOrStdout())
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openHistory(GetGlobalConfig())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	n, err := store.Clear(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %d entries from %s\n", GetEmoji("clear"), n, store.Path())
	return nil
}

// listHistory prints entries as JSON or as a table
func listHistory(ctx context.Context, store *history.Store, limit int, out io.Writer) error {
	entries, err := store.List(ctx, limit)
	if err != nil {
		return err
	}

	if getOutputFormat() == "json" {
		if entries == nil {
			entries = []history.Entry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintf(out, "%s No analyses recorded yet\n", GetEmoji("history"))
		return err
	}

	data := pterm.TableData{{"When", "Mode", "Source", "Threshold", "Reviews", "Fake", "Mean"}}
	for _, e := range entries {
		mean := "n/a"
		if e.MeanRating != nil {
			mean = strconv.FormatFloat(*e.MeanRating, 'f', 1, 64)
		}
		source := e.Source
		if e.Site != "" {
			source = e.Site
		}
		data = append(data, []string{
			e.At.Local().Format("2006-01-02 15:04"),
			e.Mode,
			excerpt(source, 40),
			e.Threshold,
			strconv.Itoa(e.Reviews),
			strconv.Itoa(e.Fake),
			mean,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render history: %w", err)
	}
	_, err = fmt.Fprintln(out, table)
	return err
}
