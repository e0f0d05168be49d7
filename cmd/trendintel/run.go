package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/trendintel/internal/app"
)

const cycleStarted = "Cycle started! Check your email in ~30 seconds."

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start one analysis cycle on the service",
	Args:  cobra.NoArgs,
	RunE:  runCycle,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runCycle(cmd *cobra.Command, args []string) error {
	client, _, done, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer done()

	ack, err := client.RunCycle(cmd.Context())
	if err != nil {
		return fmt.Errorf("run cycle: %s", app.Describe(err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), cycleStarted)
	if ack != nil && ack.Message != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Service: %s\n", ack.Message)
	}
	return nil
}
