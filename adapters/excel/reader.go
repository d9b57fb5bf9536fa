package excel

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"edaviz/adapters/coercer"
	"edaviz/domain/core"
	"edaviz/domain/dataset"
	"edaviz/internal"
	"edaviz/ports"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var logger = internal.DefaultLogger.Named("DataReader")

var zipMagic = []byte("PK\x03\x04")

var _ ports.DatasetReader = (*DataReader)(nil)

// DataReader parses uploaded CSV, TXT, XLSX and XLS files into a Dataset
type DataReader struct {
	config  ReaderConfig
	coercer *coercer.TypeCoercer
}

// NewDataReader creates a reader with the given limits
func NewDataReader(config ReaderConfig) *DataReader {
	return &DataReader{
		config:  config,
		coercer: coercer.NewTypeCoercer(config.Coercion),
	}
}

// Load parses a file with the default reader configuration
func Load(file FileHandle) (*dataset.Dataset, error) {
	return NewDataReader(DefaultReaderConfig()).Load(file)
}

// DetectFormat maps the lower-cased file suffix to a parser family
func DetectFormat(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	default:
		return "", &UnsupportedFormatError{Suffix: ext}
	}
}

// Load reads the file content and parses it according to its suffix
func (r *DataReader) Load(file FileHandle) (*dataset.Dataset, error) {
	format, err := DetectFormat(file.Name())
	if err != nil {
		logger.Warn("Rejected %s: %v", file.Name(), err)
		return nil, err
	}

	startTime := time.Now()
	data, err := r.readAll(file)
	if err != nil {
		return nil, err
	}

	var records [][]string
	strictWidth := false
	switch format {
	case FormatCSV:
		records, err = readCSV(data)
		strictWidth = true
	case FormatXLSX:
		records, err = readXLSX(data)
	case FormatXLS:
		if bytes.HasPrefix(data, zipMagic) {
			// Workbook saved as OOXML under a legacy name
			records, err = readXLSX(data)
		} else {
			records, err = readXLS(data)
		}
	}
	if err != nil {
		logger.Warn("Failed to parse %s: %v", file.Name(), err)
		return nil, err
	}

	ds, err := r.buildDataset(file.Name(), format, records, strictWidth)
	if err != nil {
		return nil, err
	}
	ds = ds.WithFingerprint(core.NewHash(data))

	logger.Info("%s loaded in %.2fms (%d columns, %d rows)",
		file.Name(), float64(time.Since(startTime).Nanoseconds())/1e6, ds.Width(), ds.Len())
	return ds, nil
}

func (r *DataReader) readAll(file FileHandle) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name(), err)
	}
	defer rc.Close()

	src := io.Reader(rc)
	if r.config.MaxBytes > 0 {
		src = io.LimitReader(rc, r.config.MaxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Name(), err)
	}
	if r.config.MaxBytes > 0 && int64(len(data)) > r.config.MaxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, r.config.MaxBytes)
	}
	return data, nil
}

// readCSV reads comma separated text; rows may be shorter than the header
func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Format: FormatCSV, Line: csvErr.Line, Err: csvErr.Err}
			}
			return nil, &ParseError{Format: FormatCSV, Err: err}
		}
		if len(records) > 0 && len(record) > len(records[0]) {
			line, _ := reader.FieldPos(0)
			return nil, &ParseError{
				Format: FormatCSV,
				Line:   line,
				Err:    fmt.Errorf("expected %d fields, saw %d", len(records[0]), len(record)),
			}
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, &ParseError{Format: FormatCSV, Err: errors.New("no columns to parse from file")}
	}
	return records, nil
}

// readXLSX reads the first worksheet with raw cell values
func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Format: FormatXLSX, Err: errors.New("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Err: fmt.Errorf("failed to read %s: %w", sheets[0], err)}
	}
	rows = dropBlankRows(rows)
	if len(rows) == 0 {
		return nil, &ParseError{Format: FormatXLSX, Err: fmt.Errorf("sheet %s is empty", sheets[0])}
	}
	return rows, nil
}

// readXLS reads the first worksheet of a BIFF workbook
func readXLS(data []byte) (records [][]string, err error) {
	defer func() {
		// the BIFF decoder panics on corrupt records
		if p := recover(); p != nil {
			records = nil
			err = &ParseError{Format: FormatXLS, Err: fmt.Errorf("corrupt workbook: %v", p)}
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, &ParseError{Format: FormatXLS, Err: err}
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, &ParseError{Format: FormatXLS, Err: errors.New("workbook has no sheets")}
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		records = append(records, cells)
	}

	records = dropBlankRows(records)
	if len(records) == 0 {
		return nil, &ParseError{Format: FormatXLS, Err: errors.New("sheet is empty")}
	}
	return records, nil
}

// buildDataset turns a header row plus data rows into typed columns
func (r *DataReader) buildDataset(name string, format Format, records [][]string, strictWidth bool) (*dataset.Dataset, error) {
	header := records[0]
	rows := dropBlankRows(records[1:])

	if r.config.MaxRows > 0 && len(rows) > r.config.MaxRows {
		return nil, fmt.Errorf("%w: %d rows (limit %d)", ErrTooManyRows, len(rows), r.config.MaxRows)
	}

	width := len(header)
	if !strictWidth {
		for _, row := range rows {
			if len(row) > width {
				width = len(row)
			}
		}
	}
	names := NormalizeHeaders(header, width)

	columns := make([]*dataset.Column, width)
	for j := 0; j < width; j++ {
		raw := make([]string, len(rows))
		for i, row := range rows {
			if j < len(row) {
				raw[i] = row[j]
			}
		}
		columns[j] = r.coercer.CoerceColumn(names[j], raw)
	}

	ds, err := dataset.New(name, columns)
	if err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}
	return ds, nil
}

// NormalizeHeaders pads the header to width, names blank cells "Unnamed: i"
// and suffixes repeated names with .1, .2, ... so every name is unique.
func NormalizeHeaders(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]bool, width)
	counts := make(map[string]int, width)

	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		base := name
		for seen[name] {
			counts[base]++
			name = base + "." + strconv.Itoa(counts[base])
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
