package excel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"edaviz/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func xlsxFixture(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		expected Format
		suffix   string
	}{
		{"sales.csv", FormatCSV, ""},
		{"notes.TXT", FormatCSV, ""},
		{"Book.XLSX", FormatXLSX, ""},
		{"legacy.xls", FormatXLS, ""},
		{"data.json", "", ".json"},
		{"archive.tar.gz", "", ".gz"},
		{"README", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := DetectFormat(tt.name)
			if tt.expected != "" {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, format)
				return
			}
			var unsupported *UnsupportedFormatError
			require.True(t, errors.As(err, &unsupported))
			assert.Equal(t, tt.suffix, unsupported.Suffix)
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	ds, err := Load(MemoryFile{FileName: "report.pdf", Data: []byte("%PDF-1.4")})

	assert.Nil(t, ds)
	var unsupported *UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, ".pdf", unsupported.Suffix)
	assert.Contains(t, err.Error(), "CSV, TXT, XLSX, or XLS")
}

func TestLoadCSV(t *testing.T) {
	ds, err := Load(MemoryFile{FileName: "ab.csv", Data: []byte("A,B\n1,2\n3,4\n")})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, ds.Names())
	assert.Equal(t, 2, ds.Len())
	a, _ := ds.Column("A")
	assert.Equal(t, dataset.KindNumeric, a.Kind)
	assert.Equal(t, []float64{1, 3}, a.Present())
}

func TestLoadCSVShapes(t *testing.T) {
	content := "\xef\xbb\xbfRegion, ,Region,Sales\nEast,x,e1,10\nWest\n\n,,,\n"
	ds, err := Load(MemoryFile{FileName: "shapes.txt", Data: []byte(content)})
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Unnamed: 1", "Region.1", "Sales"}, ds.Names())
	assert.Equal(t, 2, ds.Len())

	sales, _ := ds.Column("Sales")
	assert.Equal(t, dataset.KindNumeric, sales.Kind)
	assert.True(t, sales.IsMissing(1))
}

func TestLoadCSVRowTooLong(t *testing.T) {
	_, err := Load(MemoryFile{FileName: "bad.csv", Data: []byte("A,B\n1,2\n3,4,5\n")})

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, FormatCSV, parseErr.Format)
	assert.Equal(t, 3, parseErr.Line)
	assert.Contains(t, err.Error(), "expected 2 fields, saw 3")
}

func TestLoadCSVMalformedQuotes(t *testing.T) {
	_, err := Load(MemoryFile{FileName: "quotes.csv", Data: []byte("A,B\n\"unterminated,2\n")})

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestLoadEmptyCSV(t *testing.T) {
	_, err := Load(MemoryFile{FileName: "empty.csv", Data: nil})

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, err.Error(), "no columns")
}

func TestLoadHeaderOnlyCSV(t *testing.T) {
	ds, err := Load(MemoryFile{FileName: "header.csv", Data: []byte("A,B\n")})
	require.NoError(t, err)

	assert.Equal(t, 0, ds.Len())
	col, _ := ds.Column("A")
	assert.Equal(t, dataset.KindEmpty, col.Kind)
}

func TestLoadXLSX(t *testing.T) {
	data := xlsxFixture(t, [][]interface{}{
		{"Category", "Sales"},
		{"Furniture", 10.5},
		{"Technology", 20},
		{"Office", nil, "extra"},
	})

	ds, err := Load(MemoryFile{FileName: "book.xlsx", Data: data})
	require.NoError(t, err)

	assert.Equal(t, []string{"Category", "Sales", "Unnamed: 2"}, ds.Names())
	assert.Equal(t, 3, ds.Len())
	sales, _ := ds.Column("Sales")
	assert.Equal(t, dataset.KindNumeric, sales.Kind)
	assert.Equal(t, []float64{10.5, 20}, sales.Present())
}

func TestLoadXLS(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "table.xls"))
	require.NoError(t, err)

	ds, err := Load(MemoryFile{FileName: "Table.XLS", Data: data})
	require.NoError(t, err)

	assert.Equal(t, []string{"Code", "Name", "Description"}, ds.Names())
	assert.Equal(t, 11, ds.Len())
	for _, name := range ds.Names() {
		col, _ := ds.Column(name)
		assert.Equal(t, dataset.KindText, col.Kind, name)
	}

	code, _ := ds.Column("Code")
	description, _ := ds.Column("Description")
	assert.Equal(t, "code1", code.Cells[0])
	assert.Equal(t, "code11", code.Cells[10])
	assert.Equal(t, "description11", description.Cells[10])
}

func TestLoadXLSWithOOXMLContent(t *testing.T) {
	data := xlsxFixture(t, [][]interface{}{{"A"}, {1}})

	ds, err := Load(MemoryFile{FileName: "renamed.xls", Data: data})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ds.Names())
}

func TestLoadCorruptSpreadsheets(t *testing.T) {
	for _, name := range []string{"broken.xlsx", "broken.xls"} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(MemoryFile{FileName: name, Data: []byte("definitely not a workbook")})

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr), "got %v", err)
		})
	}
}

func TestLoadLimits(t *testing.T) {
	reader := NewDataReader(ReaderConfig{MaxBytes: 8, MaxRows: 10})
	_, err := reader.Load(MemoryFile{FileName: "big.csv", Data: []byte("A,B\n1,2\n3,4\n")})
	assert.ErrorIs(t, err, ErrTooLarge)

	reader = NewDataReader(ReaderConfig{MaxRows: 1})
	_, err = reader.Load(MemoryFile{FileName: "long.csv", Data: []byte("A\n1\n2\n")})
	assert.ErrorIs(t, err, ErrTooManyRows)
}

func TestNormalizeHeaders(t *testing.T) {
	assert.Equal(t,
		[]string{"A", "A.1", "A.2", "Unnamed: 3", "Unnamed: 4"},
		NormalizeHeaders([]string{"A", "A", " A ", ""}, 5))
	assert.Equal(t,
		[]string{"A.1", "A", "A.1.1"},
		NormalizeHeaders([]string{"A.1", "A", "A.1"}, 3))
}

func TestLoadFingerprint(t *testing.T) {
	content := []byte("A,B\n1,2\n")
	a, err := Load(MemoryFile{FileName: "a.csv", Data: content})
	require.NoError(t, err)
	b, err := Load(MemoryFile{FileName: "b.txt", Data: content})
	require.NoError(t, err)

	assert.False(t, a.Fingerprint().IsEmpty())
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, "a.csv", a.Source())
}
