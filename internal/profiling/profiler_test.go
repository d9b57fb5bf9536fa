package profiling

import (
	"encoding/json"
	"testing"

	"edaviz/adapters/excel"
	"edaviz/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCSV(t *testing.T, content string) *dataset.Dataset {
	t.Helper()
	ds, err := excel.Load(excel.MemoryFile{FileName: "test.csv", Data: []byte(content)})
	require.NoError(t, err)
	return ds
}

func TestSummarizeTwoRows(t *testing.T) {
	table := Summarize(loadCSV(t, "A,B\n1,2\n3,4\n"))

	require.Len(t, table.Columns, 2)
	a, ok := table.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, 2, a.Count)
	assert.InDelta(t, 2.0, float64(a.Mean), 1e-9)
	assert.InDelta(t, 1.4142135, float64(a.Std), 1e-6)
	assert.Equal(t, Stat(1), a.Min)
	assert.Equal(t, Stat(1.5), a.Q25)
	assert.Equal(t, Stat(2), a.Q50)
	assert.Equal(t, Stat(2.5), a.Q75)
	assert.Equal(t, Stat(3), a.Max)

	b, ok := table.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, 2, b.Count)
}

func TestSummarizeSkipsNonNumeric(t *testing.T) {
	table := Summarize(loadCSV(t, "Name,Score,Flag\nann,1,true\nbob,NA,false\ncid,5,true\n"))

	assert.Equal(t, []string{"Score"}, table.Names())
	score := table.Columns[0]
	assert.Equal(t, 2, score.Count)
	assert.Equal(t, Stat(3), score.Mean)
}

func TestSummarizeNoNumericColumns(t *testing.T) {
	table := Summarize(loadCSV(t, "Name\nann\nbob\n"))

	assert.True(t, table.Empty())
	assert.NotNil(t, table.Columns)
}

func TestSummarizeUndefinedStatistics(t *testing.T) {
	single := describeValues("one", []float64{7})
	assert.Equal(t, 1, single.Count)
	assert.True(t, single.Std.IsNaN())
	assert.Equal(t, Stat(7), single.Q25)
	assert.Equal(t, Stat(7), single.Max)

	empty := describeValues("none", nil)
	assert.Equal(t, 0, empty.Count)
	for _, s := range []Stat{empty.Mean, empty.Std, empty.Min, empty.Q25, empty.Q50, empty.Q75, empty.Max} {
		assert.True(t, s.IsNaN())
	}
}

func TestSummarizeQuartileOrdering(t *testing.T) {
	s := describeValues("v", []float64{9, 1, 4, 4, 12, -3, 0.5, 7})

	assert.LessOrEqual(t, float64(s.Min), float64(s.Q25))
	assert.LessOrEqual(t, float64(s.Q25), float64(s.Q50))
	assert.LessOrEqual(t, float64(s.Q50), float64(s.Q75))
	assert.LessOrEqual(t, float64(s.Q75), float64(s.Max))
}

func TestSummarizeIsIdempotent(t *testing.T) {
	ds := loadCSV(t, "A,B,C\n1,2,x\n3,,y\n10,4,z\n")

	first, err := json.Marshal(Summarize(ds))
	require.NoError(t, err)
	second, err := json.Marshal(Summarize(ds))
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestStatJSONAndString(t *testing.T) {
	data, err := json.Marshal(describeValues("one", []float64{2}))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"std":null`)
	assert.Contains(t, string(data), `"mean":2`)

	assert.Equal(t, "NaN", NaN().String())
	assert.Equal(t, "2.500000", Stat(2.5).String())
}

func TestRowsLayout(t *testing.T) {
	rows := Summarize(loadCSV(t, "A,B\n1,2\n3,4\n")).Rows()

	require.Len(t, rows, len(StatNames))
	assert.Equal(t, "count", rows[0].Name)
	assert.Equal(t, []string{"2.000000", "2.000000"}, rows[0].Values)
	assert.Equal(t, "max", rows[7].Name)
	assert.Equal(t, []string{"3.000000", "4.000000"}, rows[7].Values)
}

func TestDescribeText(t *testing.T) {
	summaries := NewDataProfiler().DescribeText(loadCSV(t, "Region,Sales,Flag\nEast,1,true\nWest,2,false\nEast,3,true\n,4,true\n"))

	require.Len(t, summaries, 2)
	region := summaries[0]
	assert.Equal(t, TextSummary{Column: "Region", Count: 3, Unique: 2, Top: "East", Freq: 2}, region)
	flag := summaries[1]
	assert.Equal(t, "Flag", flag.Column)
	assert.Equal(t, 4, flag.Count)
	assert.Equal(t, "true", flag.Top)
	assert.Equal(t, 3, flag.Freq)
}
