package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/five82/trendintel/internal/app"
)

var reportsLimit int

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List reports that were emailed",
	Args:  cobra.NoArgs,
	RunE:  runReports,
}

func init() {
	reportsCmd.Flags().IntVarP(&reportsLimit, "limit", "n", 0, "maximum reports (default from config)")
	rootCmd.AddCommand(reportsCmd)
}

func runReports(cmd *cobra.Command, args []string) error {
	client, cfg, done, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer done()

	limit := reportsLimit
	if limit <= 0 {
		limit = cfg.ReportsLimit
	}
	items, err := client.FetchReports(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("fetch reports: %s", app.Describe(err))
	}

	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "No reports sent yet.")
		return nil
	}
	for _, item := range items {
		sent := "-"
		if t := item.ParsedTimestamp(); !t.IsZero() {
			sent = humanize.Time(t)
		}
		fmt.Fprintf(out, "%-16s %3d  %-12s %s\n", sent, item.Score(), item.TrendLabel(), item.Title)
	}
	return nil
}
