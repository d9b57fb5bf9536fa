package echarts

import (
	"fmt"
	"io"
	"math"

	"edaviz/domain/chart"
	"edaviz/internal"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var logger = internal.DefaultLogger.Named("ChartRenderer")

// Renderer turns chart specs into go-echarts figures
type Renderer struct {
	Width  string
	Height string
}

// NewRenderer creates a renderer sized for the page layout
func NewRenderer() *Renderer {
	return &Renderer{Width: "100%", Height: "480px"}
}

// Render builds the go-echarts chart for one spec
func (r *Renderer) Render(spec *chart.Spec) (components.Charter, error) {
	global := []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: spec.Title,
			Width:     r.Width,
			Height:    r.Height,
		}),
	}

	switch spec.Kind {
	case chart.KindLine:
		return r.line(spec, global), nil
	case chart.KindBar:
		return r.bar(spec, global), nil
	case chart.KindPie:
		return r.pie(spec, global), nil
	case chart.KindScatter:
		return r.scatter(spec, global), nil
	case chart.KindTreemap:
		return r.treemap(spec, global), nil
	}
	return nil, fmt.Errorf("%w: %q", chart.ErrUnknownKind, spec.Kind)
}

func (r *Renderer) line(spec *chart.Spec, global []charts.GlobalOpts) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(global,
		charts.WithXAxisOpts(opts.XAxis{Name: spec.Binding[chart.RoleX]}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.Binding[chart.RoleY]}),
	)...)

	labels := make([]string, len(spec.Points))
	data := make([]opts.LineData, len(spec.Points))
	for i, p := range spec.Points {
		labels[i] = p.Label
		data[i] = opts.LineData{Value: p.Y}
	}
	line.SetXAxis(labels).AddSeries(spec.Binding[chart.RoleY], data)
	return line
}

func (r *Renderer) bar(spec *chart.Spec, global []charts.GlobalOpts) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(global,
		charts.WithXAxisOpts(opts.XAxis{Name: spec.Binding[chart.RoleX]}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.Binding[chart.RoleY]}),
	)...)

	data := make([]opts.BarData, len(spec.Slices))
	for i, s := range spec.Slices {
		data[i] = opts.BarData{Value: s.Value}
	}
	bar.SetXAxis(spec.Labels()).AddSeries(spec.Binding[chart.RoleY], data)
	return bar
}

func (r *Renderer) pie(spec *chart.Spec, global []charts.GlobalOpts) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(global...)

	data := make([]opts.PieData, len(spec.Slices))
	for i, s := range spec.Slices {
		data[i] = opts.PieData{Name: s.Name, Value: s.Value}
	}
	pie.AddSeries(spec.Binding[chart.RoleValues], data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)
	return pie
}

func (r *Renderer) scatter(spec *chart.Spec, global []charts.GlobalOpts) *charts.Scatter {
	scatter := charts.NewScatter()
	xAxis := opts.XAxis{Name: spec.Binding[chart.RoleX]}
	if spec.XNumeric {
		xAxis.Type = "value"
	}
	scatter.SetGlobalOptions(append(global,
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.Binding[chart.RoleY]}),
	)...)

	data := make([]opts.ScatterData, len(spec.Points))
	if spec.XNumeric {
		for i, p := range spec.Points {
			data[i] = opts.ScatterData{Value: []interface{}{p.X, p.Y}}
		}
	} else {
		labels := make([]string, 0, len(spec.Points))
		seen := make(map[string]bool)
		for i, p := range spec.Points {
			if !seen[p.Label] {
				seen[p.Label] = true
				labels = append(labels, p.Label)
			}
			data[i] = opts.ScatterData{Value: []interface{}{p.Label, p.Y}}
		}
		scatter.SetXAxis(labels)
	}
	scatter.AddSeries(spec.Binding[chart.RoleY], data)
	return scatter
}

func (r *Renderer) treemap(spec *chart.Spec, global []charts.GlobalOpts) *charts.TreeMap {
	treemap := charts.NewTreeMap()
	treemap.SetGlobalOptions(global...)

	// treemap node values are integral
	nodes := make([]opts.TreeMapNode, 0, len(spec.Slices))
	for _, s := range spec.Slices {
		if s.Value <= 0 {
			logger.Debug("Dropping non-positive treemap area %q (%g)", s.Name, s.Value)
			continue
		}
		nodes = append(nodes, opts.TreeMapNode{Name: s.Name, Value: int(math.Round(s.Value))})
	}
	treemap.AddSeries(spec.Binding[chart.RolePath], nodes)
	return treemap
}

// RenderPage writes an HTML page holding one figure per spec
func (r *Renderer) RenderPage(w io.Writer, title string, specs []*chart.Spec) error {
	page := components.NewPage()
	page.PageTitle = title

	for _, spec := range specs {
		figure, err := r.Render(spec)
		if err != nil {
			return err
		}
		page.AddCharts(figure)
	}
	return page.Render(w)
}
