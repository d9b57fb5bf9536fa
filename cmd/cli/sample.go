package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"edaviz/internal/testkit"

	"github.com/spf13/cobra"
)

func newSampleCmd() *cobra.Command {
	config := testkit.DefaultSuperstoreConfig()
	var out string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a Superstore-style orders file to explore",
		Long: `Generate seeded retail orders with Category, Sub-Category and Sales columns.
The format follows the --out suffix (.csv, .txt or .xlsx); without --out CSV is written to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.OrderCount < 1 {
				return fmt.Errorf("--orders must be positive, got %d", config.OrderCount)
			}
			if out == "" {
				return runSample(cmd.OutOrStdout(), ".csv", config)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := runSample(f, filepath.Ext(out), config); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d orders written to %s\n", config.OrderCount, out)
			return nil
		},
	}

	cmd.Flags().IntVar(&config.OrderCount, "orders", config.OrderCount, "Number of order rows")
	cmd.Flags().Int64Var(&config.Seed, "seed", config.Seed, "Random seed")
	cmd.Flags().Float64Var(&config.MissingRate, "missing", config.MissingRate, "Share of rows with a blank Sales cell")
	cmd.Flags().StringVar(&out, "out", "", "Output file (.csv, .txt or .xlsx)")
	return cmd
}

func runSample(w io.Writer, ext string, config testkit.SuperstoreGeneratorConfig) error {
	orders := testkit.NewSuperstoreGenerator(config).GenerateOrders()
	switch strings.ToLower(ext) {
	case ".csv", ".txt":
		return testkit.WriteCSV(w, orders)
	case ".xlsx":
		return testkit.WriteXLSX(w, orders)
	default:
		return fmt.Errorf("cannot write sample as %q, use .csv, .txt or .xlsx", ext)
	}
}
