package chart

import (
	"fmt"

	"edaviz/domain/dataset"
)

// choice names the request field that may override a positional role
type choice int

const (
	fixed choice = iota
	chooseX
	chooseY
)

// roleSource describes where a role takes its column from
type roleSource struct {
	Role     Role
	Position int
	Choice   choice
	Measure  bool
}

var roleTable = map[Kind][]roleSource{
	KindLine: {
		{Role: RoleX, Position: 0},
		{Role: RoleY, Position: 1, Measure: true},
	},
	KindBar: {
		{Role: RoleX, Position: 0, Choice: chooseX},
		{Role: RoleY, Position: 1, Measure: true},
	},
	KindPie: {
		{Role: RoleNames, Position: 0},
		{Role: RoleValues, Position: 1, Measure: true},
	},
	KindScatter: {
		{Role: RoleX, Position: 0, Choice: chooseX},
		{Role: RoleY, Position: 1, Choice: chooseY, Measure: true},
	},
	KindTreemap: {
		{Role: RolePath, Position: 0, Choice: chooseX},
		{Role: RoleValues, Position: 1, Measure: true},
	},
}

// RequiredColumns is the minimum selection size for a plot type
func RequiredColumns(kind Kind) int {
	required := 0
	for _, src := range roleTable[kind] {
		if src.Position+1 > required {
			required = src.Position + 1
		}
	}
	return required
}

// Choices reports which axis selectors a plot type exposes
func Choices(kind Kind) (x bool, y bool) {
	for _, src := range roleTable[kind] {
		switch src.Choice {
		case chooseX:
			x = true
		case chooseY:
			y = true
		}
	}
	return x, y
}

// Resolve validates a request against the dataset and binds every role of the
// plot type to a column.
func Resolve(ds *dataset.Dataset, req Request) (Binding, error) {
	sources, ok := roleTable[req.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	if required := RequiredColumns(req.Kind); len(req.Columns) < required {
		return nil, &InsufficientColumnsError{Kind: req.Kind, Required: required, Got: len(req.Columns)}
	}

	binding := make(Binding, len(sources))
	for _, src := range sources {
		column := req.Columns[src.Position]
		if chosen := chosenColumn(req, src.Choice); chosen != "" {
			if !contains(req.Columns, chosen) {
				return nil, &BindingError{Role: src.Role, Column: chosen}
			}
			column = chosen
		}

		var err error
		if src.Measure {
			_, err = ds.RequireKind(column, dataset.KindNumeric)
		} else {
			_, err = ds.Require(column)
		}
		if err != nil {
			return nil, err
		}
		binding[src.Role] = column
	}
	return binding, nil
}

func chosenColumn(req Request, c choice) string {
	switch c {
	case chooseX:
		return req.X
	case chooseY:
		return req.Y
	}
	return ""
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
