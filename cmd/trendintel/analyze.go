package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/trendintel/internal/app"
	"github.com/five82/trendintel/internal/controller"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <youtube-url>",
	Short: "Score a single video and print AI insights",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if _, ok := controller.ExtractVideoID(args[0]); !ok {
		return fmt.Errorf("%w: %s", controller.ErrInvalidURL, args[0])
	}

	client, _, done, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer done()

	analyzer := controller.NewAnalyzer(client)
	res, err := analyzer.Analyze(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("analyze: %s", app.Describe(err))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", res.Title)
	fmt.Fprintf(out, "Viral score: %d/100\n\n", res.ViralScore)
	printField(cmd, "Why trending", res.Insights.WhyTrending)
	printField(cmd, "Emotional trigger", res.Insights.EmotionalTrigger)
	printField(cmd, "Audience", res.Insights.Audience)
	printField(cmd, "Sentiment", res.Insights.Sentiment)
	return nil
}

func printField(cmd *cobra.Command, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s:\n  %s\n", label, value)
}
