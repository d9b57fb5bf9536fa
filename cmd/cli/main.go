package main

import (
	"fmt"
	"os"

	"edaviz/internal"

	"github.com/spf13/cobra"
)

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "edaviz-cli",
		Short: "Describe and chart tabular files from the command line",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, ok := internal.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("invalid log level %q", logLevel)
			}
			internal.DefaultLogger.SetLevel(level)
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "WARN", "Log level: ERROR|WARN|INFO|DEBUG|TRACE")

	rootCmd.AddCommand(
		newDescribeCmd(),
		newChartCmd(),
		newReportCmd(),
		newSampleCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
