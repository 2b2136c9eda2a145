package main

import (
	"github.com/spf13/cobra"
)

var payloadsCmd = &cobra.Command{
	Use:   "payloads <id>...",
	Short: "Show payloads by id, in the order given",
	Long: `Show payloads by id, in the order given. Payloads are fetched one at a
time; the first failed lookup aborts the command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPayloads,
}

func init() {
	rootCmd.AddCommand(payloadsCmd)
}

func runPayloads(cmd *cobra.Command, args []string) error {
	if err := requireID(args); err != nil {
		return err
	}
	p, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	payloads, err := newClient().Payloads(cmd.Context(), args)
	if err != nil {
		return err
	}
	return p.payloads(payloads)
}
