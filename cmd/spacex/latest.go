package main

import (
	"github.com/Adda-Baaj/launch-harvester/pkg/spacex"
	"github.com/spf13/cobra"
)

var latestFlags struct {
	filter string
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "List the ten most recent past launches",
	Long: `List the ten most recent past launches, newest first.
--filter narrows the list to successful or failed launches.`,
	Args: cobra.NoArgs,
	RunE: runLatest,
}

func init() {
	rootCmd.AddCommand(latestCmd)

	latestCmd.Flags().StringVar(&latestFlags.filter, "filter", string(spacex.FilterAll), "launch filter: all, success or failed")
}

func runLatest(cmd *cobra.Command, args []string) error {
	filter, err := spacex.ParseLaunchFilter(latestFlags.filter)
	if err != nil {
		return err
	}
	p, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	launches, err := newClient().LatestLaunches(cmd.Context(), filter)
	if err != nil {
		return err
	}
	return p.launches(launches)
}
