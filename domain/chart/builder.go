package chart

import (
	"sort"
	"strconv"

	"edaviz/domain/dataset"
)

// Build resolves the request and constructs the chart it describes.
// Rows with a missing cell in any bound column are left out.
func Build(ds *dataset.Dataset, req Request) (*Spec, error) {
	binding, err := Resolve(ds, req)
	if err != nil {
		return nil, err
	}

	spec := &Spec{Kind: req.Kind, Title: req.Kind.Title(), Binding: binding}
	switch req.Kind {
	case KindLine:
		spec.Points, spec.XNumeric = points(ds, binding[RoleX], binding[RoleY])
		if spec.XNumeric {
			sort.SliceStable(spec.Points, func(i, j int) bool {
				return spec.Points[i].X < spec.Points[j].X
			})
		}
	case KindScatter:
		spec.Points, spec.XNumeric = points(ds, binding[RoleX], binding[RoleY])
	case KindBar:
		spec.Slices = groupSum(ds, binding[RoleX], binding[RoleY])
	case KindPie:
		spec.Slices = groupSum(ds, binding[RoleNames], binding[RoleValues])
	case KindTreemap:
		spec.Slices = groupSum(ds, binding[RolePath], binding[RoleValues])
	}
	return spec, nil
}

// GroupSum sums a numeric column per distinct key, in order of first appearance.
// Rows missing either the key or the value are skipped.
func GroupSum(ds *dataset.Dataset, key, value string) ([]Slice, error) {
	if _, err := ds.Require(key); err != nil {
		return nil, err
	}
	if _, err := ds.RequireKind(value, dataset.KindNumeric); err != nil {
		return nil, err
	}
	return groupSum(ds, key, value), nil
}

func groupSum(ds *dataset.Dataset, key, value string) []Slice {
	keys, _ := ds.Column(key)
	values, _ := ds.Column(value)

	slices := []Slice{}
	index := make(map[string]int)
	for i := 0; i < ds.Len(); i++ {
		if keys.IsMissing(i) {
			continue
		}
		v, ok := values.Float(i)
		if !ok {
			continue
		}
		name := keyOf(keys, i)
		pos, seen := index[name]
		if !seen {
			pos = len(slices)
			index[name] = pos
			slices = append(slices, Slice{Name: name})
		}
		slices[pos].Value += v
	}
	return slices
}

func points(ds *dataset.Dataset, x, y string) ([]Point, bool) {
	xs, _ := ds.Column(x)
	ys, _ := ds.Column(y)
	numeric := xs.Kind == dataset.KindNumeric

	out := []Point{}
	for i := 0; i < ds.Len(); i++ {
		if xs.IsMissing(i) {
			continue
		}
		yv, ok := ys.Float(i)
		if !ok {
			continue
		}
		p := Point{Label: keyOf(xs, i), Y: yv}
		if numeric {
			p.X, _ = xs.Float(i)
		}
		out = append(out, p)
	}
	return out, numeric
}

// keyOf renders a cell as a category name; numeric cells are canonicalised so
// "1" and "1.0" fall in the same group
func keyOf(col *dataset.Column, i int) string {
	if v, ok := col.Float(i); ok {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return col.Cells[i]
}
