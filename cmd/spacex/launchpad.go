package main

import (
	"github.com/spf13/cobra"
)

var launchpadCmd = &cobra.Command{
	Use:   "launchpad <id>",
	Short: "Show a launchpad by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runLaunchpad,
}

func init() {
	rootCmd.AddCommand(launchpadCmd)
}

func runLaunchpad(cmd *cobra.Command, args []string) error {
	if err := requireID(args); err != nil {
		return err
	}
	p, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	pad, err := newClient().Launchpad(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return p.launchpad(pad)
}
