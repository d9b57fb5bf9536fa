package chart

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Kind identifies a supported plot type
type Kind string

const (
	KindLine    Kind = "line"
	KindBar     Kind = "bar"
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
	KindTreemap Kind = "treemap"
)

// Kinds lists the plot types in the order the selector offers them
var Kinds = []Kind{KindLine, KindBar, KindPie, KindScatter, KindTreemap}

var titles = map[Kind]string{
	KindLine:    "Line Chart",
	KindBar:     "Bar Chart",
	KindPie:     "Pie Chart",
	KindScatter: "Scatter Plot",
	KindTreemap: "Treemap",
}

// ParseKind accepts a kind identifier ("bar") or its display title ("Bar Chart")
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range Kinds {
		if strings.EqualFold(s, string(k)) || strings.EqualFold(s, titles[k]) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Title is the chart heading and the label shown in the plot type selector
func (k Kind) Title() string {
	return titles[k]
}

// Role is the part a column plays in a chart
type Role string

const (
	RoleX      Role = "x"
	RoleY      Role = "y"
	RoleNames  Role = "names"
	RoleValues Role = "values"
	RolePath   Role = "path"
)

// Request is the widget state of one render: the plot type, the ordered column
// selection and the optional axis choices.
type Request struct {
	Kind    Kind     `json:"kind"`
	Columns []string `json:"columns"`
	X       string   `json:"x,omitempty"`
	Y       string   `json:"y,omitempty"`
}

// Binding maps each role of a chart to the column bound to it
type Binding map[Role]string

// Slice is one aggregated category: a bar, a pie slice or a treemap area
type Slice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Point is one plotted row. Label carries the x cell text and X its numeric
// value when the x column is numeric.
type Point struct {
	X     float64 `json:"x"`
	Label string  `json:"label"`
	Y     float64 `json:"y"`
}

// Spec is a fully resolved, serialisable chart ready to be rendered
type Spec struct {
	Kind     Kind    `json:"kind"`
	Title    string  `json:"title"`
	Binding  Binding `json:"binding"`
	Slices   []Slice `json:"slices,omitempty"`
	Points   []Point `json:"points,omitempty"`
	XNumeric bool    `json:"x_numeric,omitempty"`
}

// Total sums the aggregated values, or the y values of point charts
func (s *Spec) Total() float64 {
	if len(s.Slices) > 0 {
		values := make([]float64, len(s.Slices))
		for i, sl := range s.Slices {
			values[i] = sl.Value
		}
		return floats.Sum(values)
	}
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Y
	}
	return floats.Sum(values)
}

// Labels returns the slice names in order
func (s *Spec) Labels() []string {
	out := make([]string, len(s.Slices))
	for i, sl := range s.Slices {
		out[i] = sl.Name
	}
	return out
}
