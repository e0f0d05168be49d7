package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/five82/trendintel/internal/app"
	"github.com/five82/trendintel/internal/trendapi"
)

var (
	trendsCategory string
	trendsLimit    int
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "List the current trending videos",
	Args:  cobra.NoArgs,
	RunE:  runTrends,
}

func init() {
	trendsCmd.Flags().StringVarP(&trendsCategory, "category", "c", trendapi.CategoryAll,
		"category filter: "+strings.Join(trendapi.Categories, ", "))
	trendsCmd.Flags().IntVarP(&trendsLimit, "limit", "n", 0, "maximum videos (default from config)")
	rootCmd.AddCommand(trendsCmd)
}

func runTrends(cmd *cobra.Command, args []string) error {
	if !trendapi.IsCategory(trendsCategory) {
		return fmt.Errorf("unknown category %q (want one of: %s)", trendsCategory, strings.Join(trendapi.Categories, ", "))
	}

	client, cfg, done, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer done()

	limit := trendsLimit
	if limit <= 0 {
		limit = cfg.FeedLimit
	}
	items, err := client.FetchTrends(cmd.Context(), trendapi.TrendQuery{Category: trendsCategory, Limit: limit})
	if err != nil {
		return fmt.Errorf("fetch trends: %s", app.Describe(err))
	}

	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "No trending videos found for this category.")
		return nil
	}
	for i, item := range items {
		fmt.Fprintf(out, "%2d. %s\n", i+1, item.Title)
		fmt.Fprintf(out, "    %s · %s · %s views · score %d · %s\n",
			item.TrendLabel(),
			item.ChannelTitle,
			humanize.Comma(item.ViewCount),
			item.Score(),
			uploadedAgo(item),
		)
		fmt.Fprintf(out, "    %s\n", item.URL())
	}
	return nil
}

func uploadedAgo(item trendapi.TrendItem) string {
	if t := item.ParsedPublishedAt(); !t.IsZero() {
		return humanize.Time(t)
	}
	return fmt.Sprintf("%.0fh ago", item.HoursSinceUpload)
}
