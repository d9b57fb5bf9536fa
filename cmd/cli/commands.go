package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/tabwriter"

	"edaviz/adapters/echarts"
	"edaviz/adapters/excel"
	"edaviz/domain/chart"
	"edaviz/domain/dataset"
	"edaviz/internal/analysis"
	"edaviz/internal/profiling"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newDescribeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "describe FILE",
		Short: "Print summary statistics for a CSV, TXT, XLSX or XLS file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := excel.Load(excel.LocalFile{Path: args[0]})
			if err != nil {
				return err
			}
			return runDescribe(cmd.OutOrStdout(), ds, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the describe tables as JSON")
	return cmd
}

func runDescribe(w io.Writer, ds *dataset.Dataset, asJSON bool) error {
	profiler := profiling.NewDataProfiler()
	table := profiler.Summarize(ds)
	text := profiler.DescribeText(ds)

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{"numeric": table, "text": text})
	}

	fmt.Fprintf(w, "%s: %d rows, %d columns", ds.Source(), ds.Len(), ds.Width())
	if h := ds.Fingerprint(); !h.IsEmpty() {
		fmt.Fprintf(w, " (sha256 %s)", h.Short())
	}
	fmt.Fprint(w, "\n\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if table.Empty() {
		fmt.Fprintln(w, "No numeric columns to describe.")
	} else {
		fmt.Fprintf(tw, "\t%s\t\n", strings.Join(table.Names(), "\t"))
		for _, row := range table.Rows() {
			fmt.Fprintf(tw, "%s\t%s\t\n", row.Name, strings.Join(row.Values, "\t"))
		}
	}
	if len(text) > 0 {
		fmt.Fprintf(tw, "\t\t\t\t\t\n\tcount\tunique\ttop\tfreq\t\n")
		for _, s := range text {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\t\n", s.Column, s.Count, s.Unique, s.Top, s.Freq)
		}
	}
	return tw.Flush()
}

func newChartCmd() *cobra.Command {
	var kind, x, y, out string
	var columns []string

	cmd := &cobra.Command{
		Use:   "chart FILE",
		Short: "Render one chart of a file to an HTML page",
		Long: `Render a Line, Bar, Pie, Scatter or Treemap chart to a standalone HTML page.

Example: edaviz-cli chart superstore.csv --kind pie --columns Category,Sales --out pie.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := chart.ParseKind(kind)
			if err != nil {
				return err
			}
			ds, err := excel.Load(excel.LocalFile{Path: args[0]})
			if err != nil {
				return err
			}
			spec, err := chart.Build(ds, chart.Request{Kind: parsed, Columns: columns, X: x, Y: y})
			if err != nil {
				return err
			}

			if out == "" {
				out = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])) + "_" + string(parsed) + ".html"
			}
			if err := writePage(out, spec.Title, []*chart.Spec{spec}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "line", "Plot type: line|bar|pie|scatter|treemap")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Selected columns, in order")
	cmd.Flags().StringVar(&x, "x", "", "X-axis column (bar, scatter, treemap)")
	cmd.Flags().StringVar(&y, "y", "", "Y-axis column (scatter)")
	cmd.Flags().StringVar(&out, "out", "", "Output HTML file (default FILE_KIND.html)")
	return cmd
}

func newReportCmd() *cobra.Command {
	var outDir string
	var jobs int

	cmd := &cobra.Command{
		Use:   "report FILE...",
		Short: "Write a summary JSON and a breakdown page for each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobs < 1 {
				return fmt.Errorf("--jobs must be at least 1, got %d", jobs)
			}
			if err := checkReportNames(args); err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			var mu sync.Mutex
			g, _ := errgroup.WithContext(cmd.Context())
			g.SetLimit(jobs)
			for _, path := range args {
				g.Go(func() error {
					written, err := runReport(path, outDir)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					mu.Lock()
					defer mu.Unlock()
					for _, file := range written {
						fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", file)
					}
					return nil
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "reports", "Directory for report files")
	cmd.Flags().IntVar(&jobs, "jobs", 4, "Files processed concurrently")
	return cmd
}

func reportStem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// checkReportNames rejects inputs whose report files would overwrite each other
func checkReportNames(paths []string) error {
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		stem := reportStem(path)
		if prev, ok := seen[stem]; ok {
			return fmt.Errorf("%s and %s would both write %s_summary.json; rename one or report them separately", prev, path, stem)
		}
		seen[stem] = path
	}
	return nil
}

// runReport describes one file and renders its category breakdown when present
func runReport(path, outDir string) ([]string, error) {
	ds, err := excel.Load(excel.LocalFile{Path: path})
	if err != nil {
		return nil, err
	}
	base := filepath.Join(outDir, reportStem(path))

	summaryFile := base + "_summary.json"
	f, err := os.Create(summaryFile)
	if err != nil {
		return nil, err
	}
	if err := runDescribe(f, ds, true); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	written := []string{summaryFile}

	specs, err := analysis.Breakdown(ds)
	if err != nil {
		return written, err
	}
	if len(specs) > 0 {
		pageFile := base + "_breakdown.html"
		if err := writePage(pageFile, "Category Breakdown", specs); err != nil {
			return written, err
		}
		written = append(written, pageFile)
	}
	return written, nil
}

func writePage(path, title string, specs []*chart.Spec) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := echarts.NewRenderer().RenderPage(f, title, specs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
