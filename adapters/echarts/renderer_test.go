package echarts

import (
	"bytes"
	"testing"

	"edaviz/domain/chart"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderKinds(t *testing.T) {
	renderer := NewRenderer()
	specs := map[chart.Kind]*chart.Spec{
		chart.KindLine: {
			Kind: chart.KindLine, Title: "Line Chart",
			Binding: chart.Binding{chart.RoleX: "Day", chart.RoleY: "Sales"},
			Points:  []chart.Point{{X: 1, Label: "1", Y: 10}, {X: 2, Label: "2", Y: 12}},
		},
		chart.KindBar: {
			Kind: chart.KindBar, Title: "Bar Chart",
			Binding: chart.Binding{chart.RoleX: "Region", chart.RoleY: "Sales"},
			Slices:  []chart.Slice{{Name: "East", Value: 4}},
		},
		chart.KindPie: {
			Kind: chart.KindPie, Title: "Pie Chart",
			Binding: chart.Binding{chart.RoleNames: "Category", chart.RoleValues: "Sales"},
			Slices:  []chart.Slice{{Name: "X", Value: 15}, {Name: "Y", Value: 7}},
		},
		chart.KindScatter: {
			Kind: chart.KindScatter, Title: "Scatter Plot",
			Binding: chart.Binding{chart.RoleX: "Region", chart.RoleY: "Sales"},
			Points:  []chart.Point{{Label: "East", Y: 1}, {Label: "East", Y: 3}},
		},
		chart.KindTreemap: {
			Kind: chart.KindTreemap, Title: "Treemap",
			Binding: chart.Binding{chart.RolePath: "Category", chart.RoleValues: "Sales"},
			Slices:  []chart.Slice{{Name: "X", Value: 15.4}, {Name: "Refunds", Value: -2}},
		},
	}

	for kind, spec := range specs {
		t.Run(string(kind), func(t *testing.T) {
			figure, err := renderer.Render(spec)
			require.NoError(t, err)
			require.NotNil(t, figure)
		})
	}

	figure, err := renderer.Render(specs[chart.KindPie])
	require.NoError(t, err)
	_, ok := figure.(*charts.Pie)
	assert.True(t, ok)
}

func TestRenderUnknownKind(t *testing.T) {
	_, err := NewRenderer().Render(&chart.Spec{Kind: "radar"})
	assert.ErrorIs(t, err, chart.ErrUnknownKind)
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer().RenderPage(&buf, "Charts", []*chart.Spec{
		{
			Kind: chart.KindPie, Title: "Category-wise Sales",
			Binding: chart.Binding{chart.RoleNames: "Category", chart.RoleValues: "Sales"},
			Slices:  []chart.Slice{{Name: "Furniture", Value: 300.5}},
		},
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>Charts</title>")
	assert.Contains(t, html, "Category-wise Sales")
	assert.Contains(t, html, "Furniture")
}
