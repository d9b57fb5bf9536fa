package api

import (
	"time"

	"edaviz/domain/dataset"
	"edaviz/internal/profiling"
)

// ColumnInfo describes one dataset column
type ColumnInfo struct {
	Name string       `json:"name"`
	Kind dataset.Kind `json:"kind"`
}

// DatasetDescriptor is returned when a dataset is uploaded or fetched
type DatasetDescriptor struct {
	ID       string       `json:"id"`
	Source   string       `json:"source"`
	SHA256   string       `json:"sha256"`
	Rows     int          `json:"rows"`
	Columns  []ColumnInfo `json:"columns"`
	LoadedAt time.Time    `json:"loaded_at"`
}

// SummaryResponse carries both describe tables
type SummaryResponse struct {
	Numeric profiling.SummaryTable  `json:"numeric"`
	Text    []profiling.TextSummary `json:"text"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody names the AppError code and message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func describe(id string, ds *dataset.Dataset, loadedAt time.Time) DatasetDescriptor {
	columns := make([]ColumnInfo, 0, ds.Width())
	for _, col := range ds.Columns() {
		columns = append(columns, ColumnInfo{Name: col.Name, Kind: col.Kind})
	}
	return DatasetDescriptor{
		ID:       id,
		Source:   ds.Source(),
		SHA256:   ds.Fingerprint().String(),
		Rows:     ds.Len(),
		Columns:  columns,
		LoadedAt: loadedAt,
	}
}
