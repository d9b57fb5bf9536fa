package profiling

import (
	"math"
	"strconv"
)

// Stat is one descriptive statistic; NaN marks a value that cannot be computed
type Stat float64

// NaN returns the "not computable" statistic
func NaN() Stat { return Stat(math.NaN()) }

// IsNaN reports whether the statistic is undefined
func (s Stat) IsNaN() bool { return math.IsNaN(float64(s)) }

// String formats the statistic with six decimals, as a describe table prints it
func (s Stat) String() string {
	if s.IsNaN() {
		return "NaN"
	}
	return strconv.FormatFloat(float64(s), 'f', 6, 64)
}

// MarshalJSON encodes undefined statistics as null
func (s Stat) MarshalJSON() ([]byte, error) {
	if s.IsNaN() || math.IsInf(float64(s), 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(s), 'g', -1, 64), nil
}

// ColumnSummary holds the descriptive statistics of one numeric column
type ColumnSummary struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
	Mean   Stat   `json:"mean"`
	Std    Stat   `json:"std"`
	Min    Stat   `json:"min"`
	Q25    Stat   `json:"25%"`
	Q50    Stat   `json:"50%"`
	Q75    Stat   `json:"75%"`
	Max    Stat   `json:"max"`
}

// SummaryTable is the describe table over every numeric column
type SummaryTable struct {
	Columns []ColumnSummary `json:"columns"`
}

// StatNames lists the rows of a describe table in display order
var StatNames = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// StatRow is one display row: a statistic across all summarized columns
type StatRow struct {
	Name   string
	Values []string
}

// Empty reports whether the dataset had no numeric column
func (t SummaryTable) Empty() bool {
	return len(t.Columns) == 0
}

// Names returns the summarized column names
func (t SummaryTable) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Column
	}
	return names
}

// Rows lays the table out with statistics as rows and columns as columns
func (t SummaryTable) Rows() []StatRow {
	rows := make([]StatRow, len(StatNames))
	for i, name := range StatNames {
		rows[i] = StatRow{Name: name, Values: make([]string, len(t.Columns))}
	}
	for j, c := range t.Columns {
		values := []Stat{Stat(c.Count), c.Mean, c.Std, c.Min, c.Q25, c.Q50, c.Q75, c.Max}
		for i, v := range values {
			rows[i].Values[j] = v.String()
		}
	}
	return rows
}

// Lookup returns the summary for a column by name
func (t SummaryTable) Lookup(column string) (ColumnSummary, bool) {
	for _, c := range t.Columns {
		if c.Column == column {
			return c, true
		}
	}
	return ColumnSummary{}, false
}

// TextSummary describes a non-numeric column: present count, distinct values
// and the most frequent value
type TextSummary struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
	Unique int    `json:"unique"`
	Top    string `json:"top"`
	Freq   int    `json:"freq"`
}
