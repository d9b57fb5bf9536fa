package dataset

import "fmt"

// SchemaReason says why a column failed a schema check
type SchemaReason string

const (
	SchemaMissing SchemaReason = "missing"
	SchemaType    SchemaReason = "type"
)

// SchemaError reports a column that is absent or has the wrong kind
type SchemaError struct {
	Column string
	Reason SchemaReason
	Want   Kind
	Got    Kind
}

func (e *SchemaError) Error() string {
	if e.Reason == SchemaMissing {
		return fmt.Sprintf("column %q does not exist in the dataset", e.Column)
	}
	return fmt.Sprintf("column %q is %s, expected %s", e.Column, e.Got, e.Want)
}

// Require returns the named column or a SchemaError when it is absent.
func (d *Dataset) Require(name string) (*Column, error) {
	col, ok := d.Column(name)
	if !ok {
		return nil, &SchemaError{Column: name, Reason: SchemaMissing}
	}
	return col, nil
}

// RequireKind returns the named column when it exists with the given kind.
func (d *Dataset) RequireKind(name string, kind Kind) (*Column, error) {
	col, err := d.Require(name)
	if err != nil {
		return nil, err
	}
	if col.Kind != kind {
		return nil, &SchemaError{Column: name, Reason: SchemaType, Want: kind, Got: col.Kind}
	}
	return col, nil
}
