package profiling

import (
	"edaviz/domain/dataset"
)

// DataProfiler computes the describe tables shown under "Summary Statistics"
type DataProfiler struct{}

// NewDataProfiler creates a new data profiler
func NewDataProfiler() *DataProfiler {
	return &DataProfiler{}
}

// Summarize describes every numeric column. Non-numeric columns are skipped and
// a dataset without numeric columns yields an empty table.
func (dp *DataProfiler) Summarize(ds *dataset.Dataset) SummaryTable {
	table := SummaryTable{Columns: []ColumnSummary{}}
	for _, col := range ds.NumericColumns() {
		table.Columns = append(table.Columns, describeValues(col.Name, col.Present()))
	}
	return table
}

// DescribeText summarizes text and boolean columns
func (dp *DataProfiler) DescribeText(ds *dataset.Dataset) []TextSummary {
	var out []TextSummary
	for _, col := range ds.Columns() {
		if col.Kind != dataset.KindText && col.Kind != dataset.KindBoolean {
			continue
		}

		counts := make(map[string]int)
		summary := TextSummary{Column: col.Name}
		for i := range col.Cells {
			if col.IsMissing(i) {
				continue
			}
			value := col.Cells[i]
			summary.Count++
			counts[value]++
			if counts[value] > summary.Freq {
				summary.Top = value
				summary.Freq = counts[value]
			}
		}
		summary.Unique = len(counts)
		out = append(out, summary)
	}
	return out
}

// Summarize is a convenience wrapper around DataProfiler.Summarize
func Summarize(ds *dataset.Dataset) SummaryTable {
	return NewDataProfiler().Summarize(ds)
}
