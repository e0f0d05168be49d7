package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/five82/trendintel/internal/app"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate counters and automation status",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	client, _, done, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer done()

	stats, err := client.FetchStats(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch stats: %s", app.Describe(err))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== TrendIntel Statistics ===")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Videos analyzed:  %s\n", humanize.Comma(stats.TotalAnalyzed))
	fmt.Fprintf(out, "Emails sent:      %s\n", humanize.Comma(stats.EmailsSent))
	fmt.Fprintf(out, "Avg viral score:  %s%%\n", humanize.FtoaWithDigits(stats.ViralityRate, 1))
	fmt.Fprintf(out, "Automation:       %s\n", botLabel(stats.BotActive))
	if stats.TotalAnalyzed == 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "No analysis data yet. Run `trendintel run` to start a cycle.")
	}
	return nil
}

func botLabel(active bool) string {
	if active {
		return "RUNNING"
	}
	return "STOPPED"
}
