package dataset

import (
	"fmt"
	"math"

	"edaviz/domain/core"
)

// Kind is the inferred storage kind of a column
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindBoolean Kind = "boolean"
	KindText    Kind = "text"
	KindEmpty   Kind = "empty"
)

// Column holds one named column of a Dataset.
// Cells keeps the cleaned cell text with "" marking a missing cell.
// Floats is only populated for numeric columns and carries NaN for missing cells.
type Column struct {
	Name   string    `json:"name"`
	Kind   Kind      `json:"kind"`
	Cells  []string  `json:"-"`
	Floats []float64 `json:"-"`
}

// IsMissing reports whether row i has no value in this column
func (c *Column) IsMissing(i int) bool {
	return c.Cells[i] == ""
}

// Float returns the numeric value at row i
func (c *Column) Float(i int) (float64, bool) {
	if c.Kind != KindNumeric || math.IsNaN(c.Floats[i]) {
		return 0, false
	}
	return c.Floats[i], true
}

// Present returns the non-missing numeric values in row order
func (c *Column) Present() []float64 {
	if c.Kind != KindNumeric {
		return nil
	}
	out := make([]float64, 0, len(c.Floats))
	for _, v := range c.Floats {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Dataset is an immutable in-memory table loaded from one uploaded file.
type Dataset struct {
	source      string
	fingerprint core.Hash
	columns     []*Column
	index       map[string]int
	rows        int
}

// New assembles a Dataset, enforcing unique column names and equal column lengths.
func New(source string, columns []*Column) (*Dataset, error) {
	ds := &Dataset{
		source:  source,
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if _, dup := ds.index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		ds.index[col.Name] = i
		if i == 0 {
			ds.rows = len(col.Cells)
		} else if len(col.Cells) != ds.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Cells), ds.rows)
		}
		if col.Kind == KindNumeric && len(col.Floats) != len(col.Cells) {
			return nil, fmt.Errorf("numeric column %q is missing parsed values", col.Name)
		}
	}
	return ds, nil
}

// Source returns the file name the dataset was loaded from
func (d *Dataset) Source() string { return d.source }

// Fingerprint returns the SHA-256 of the raw file content, empty when unknown
func (d *Dataset) Fingerprint() core.Hash { return d.fingerprint }

// WithFingerprint returns a copy of the dataset carrying the content hash
func (d *Dataset) WithFingerprint(h core.Hash) *Dataset {
	out := *d
	out.fingerprint = h
	return &out
}

// Len returns the number of rows
func (d *Dataset) Len() int { return d.rows }

// Width returns the number of columns
func (d *Dataset) Width() int { return len(d.columns) }

// Names returns the column names in file order
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, col := range d.columns {
		names[i] = col.Name
	}
	return names
}

// Columns returns the columns in file order
func (d *Dataset) Columns() []*Column {
	return d.columns
}

// Column looks up a column by exact name
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i], true
}

// Has reports whether every name is a column of the dataset
func (d *Dataset) Has(names ...string) bool {
	for _, name := range names {
		if _, ok := d.index[name]; !ok {
			return false
		}
	}
	return true
}

// NumericColumns returns the numeric columns in file order
func (d *Dataset) NumericColumns() []*Column {
	var out []*Column
	for _, col := range d.columns {
		if col.Kind == KindNumeric {
			out = append(out, col)
		}
	}
	return out
}

// Head returns up to n rows of cell text for previews
func (d *Dataset) Head(n int) [][]string {
	if n > d.rows {
		n = d.rows
	}
	out := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(d.columns))
		for j, col := range d.columns {
			row[j] = col.Cells[i]
		}
		out[i] = row
	}
	return out
}
