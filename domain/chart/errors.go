package chart

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned for a plot type outside Kinds
var ErrUnknownKind = errors.New("unknown chart kind")

// InsufficientColumnsError is returned when fewer columns are selected than the
// plot type needs
type InsufficientColumnsError struct {
	Kind     Kind
	Required int
	Got      int
}

func (e *InsufficientColumnsError) Error() string {
	return fmt.Sprintf("%s needs at least %d selected columns, got %d", e.Kind.Title(), e.Required, e.Got)
}

// BindingError is returned when an axis choice names a column outside the selection
type BindingError struct {
	Role   Role
	Column string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("column %q chosen for %s is not among the selected columns", e.Column, e.Role)
}
