package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Adda-Baaj/launch-harvester/internal/logger"
	"github.com/Adda-Baaj/launch-harvester/pkg/spacex"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var zlog *zap.Logger

var rootFlags struct {
	baseURL string
	timeout time.Duration
	output  string
}

var rootCmd = &cobra.Command{
	Use:   "spacex",
	Short: "Query the SpaceX launch-data API",
	Long: `spacex queries the public SpaceX launch-data API for the next launch,
the latest launches, launchpads and payloads.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := parseOutputFormat(rootFlags.output); err != nil {
			return err
		}
		zlog = logger.New(getEnv("SPACEX_LOG_LEVEL", "error"), zap.String("app", "spacex"))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if zlog != nil {
			_ = zlog.Sync()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.baseURL, "base-url", getEnv("SPACEX_BASE_URL", spacex.DefaultBaseURL), "SpaceX API base URL")
	flags.DurationVar(&rootFlags.timeout, "timeout", 0, "request timeout (0 disables it)")
	flags.StringVarP(&rootFlags.output, "output", "o", string(outputAuto), "output format: auto, json or text")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newClient() *spacex.Client {
	return spacex.New(spacex.Options{
		BaseURL: rootFlags.baseURL,
		Timeout: rootFlags.timeout,
	}, logger.NewZapLogger(zlog))
}

func newPrinter(cmd *cobra.Command) (*printer, error) {
	format, err := parseOutputFormat(rootFlags.output)
	if err != nil {
		return nil, err
	}
	return newPrinterFor(cmd.OutOrStdout(), format, stdoutIsTerminal()), nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func requireID(args []string) error {
	for _, id := range args {
		if id == "" {
			return fmt.Errorf("empty id")
		}
	}
	return nil
}
