package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/trendintel/internal/app"
	"github.com/five82/trendintel/internal/trendapi"
)

var botCmd = &cobra.Command{
	Use:       "bot [on|off|status]",
	Short:     "Show or change the automation flag",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off", "status"},
	RunE:      runBot,
}

func init() {
	rootCmd.AddCommand(botCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	action := "status"
	if len(args) == 1 {
		action = args[0]
	}

	client, _, done, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer done()

	out := cmd.OutOrStdout()
	if action == "status" {
		stats, err := client.FetchStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch stats: %s", app.Describe(err))
		}
		fmt.Fprintf(out, "Automation %s\n", botLabel(stats.BotActive))
		return nil
	}

	active := action == "on"
	if err := client.WriteSetting(cmd.Context(), trendapi.SettingBotActive, trendapi.BoolSetting(active)); err != nil {
		return fmt.Errorf("update automation: %s", app.Describe(err))
	}
	fmt.Fprintf(out, "Automation %s\n", botLabel(active))
	return nil
}
