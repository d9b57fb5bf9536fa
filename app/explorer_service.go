package app

import (
	"edaviz/domain/chart"
	"edaviz/domain/dataset"
	"edaviz/internal"
	"edaviz/internal/analysis"
	apperrors "edaviz/internal/errors"
	"edaviz/internal/profiling"
	"edaviz/internal/session"
	"edaviz/ports"
)

var logger = internal.DefaultLogger.Named("Explorer")

const (
	PageTitle      = "Dynamic Exploratory Data Analysis App"
	MsgLoaded      = "Dataset loaded successfully!"
	MsgNoSelection = "Please select at least one column for visualization."
	PreviewRows    = 10
)

// Message levels shown on the page
const (
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Message is a status line shown above a page section
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// Selection is the raw widget state posted by the page
type Selection struct {
	Columns []string
	Kind    string
	X       string
	Y       string
}

// Edit applies the page's add and remove widgets. Columns keep the order in
// which they were picked: duplicates collapse to their first position, removed
// names drop out and added names go to the end.
func (sel Selection) Edit(add, remove []string) Selection {
	drop := make(map[string]bool, len(remove))
	for _, name := range remove {
		drop[name] = true
	}

	seen := make(map[string]bool, len(sel.Columns)+len(add))
	columns := make([]string, 0, len(sel.Columns)+len(add))
	for _, name := range append(append([]string(nil), sel.Columns...), add...) {
		if name == "" || drop[name] || seen[name] {
			continue
		}
		seen[name] = true
		columns = append(columns, name)
	}

	sel.Columns = columns
	if drop[sel.X] {
		sel.X = ""
	}
	if drop[sel.Y] {
		sel.Y = ""
	}
	return sel
}

// KindOption is one entry of the plot type selector
type KindOption struct {
	Value    chart.Kind
	Label    string
	Selected bool
}

// AxisChoice describes the "Select X-axis" / "Select Y-axis" widgets
type AxisChoice struct {
	ShowX   bool
	ShowY   bool
	X       string
	Y       string
	Options []string
}

// Preview is the first rows of the dataset
type Preview struct {
	Header []string
	Rows   [][]string
}

// PageModel is everything one render of the page displays
type PageModel struct {
	Title    string
	Loaded   bool
	FileName string
	Rows     int
	Messages []Message

	Summary     profiling.SummaryTable
	TextSummary []profiling.TextSummary
	Preview     Preview

	Columns      []string
	Selection    Selection
	Kinds        []KindOption
	Axis         AxisChoice
	Chart        *chart.Spec
	ChartMessage *Message

	Breakdown        []*chart.Spec
	BreakdownMessage *Message
}

// ExplorerService runs the upload, summary, chart and breakdown steps for a session
type ExplorerService struct {
	reader   ports.DatasetReader
	profiler *profiling.DataProfiler
}

// NewExplorerService creates an explorer over the given reader
func NewExplorerService(reader ports.DatasetReader) *ExplorerService {
	return &ExplorerService{
		reader:   reader,
		profiler: profiling.NewDataProfiler(),
	}
}

// Upload parses a file and makes it the session dataset.
// On failure the previous dataset is kept.
func (s *ExplorerService) Upload(sess *session.Session, file ports.FileHandle) (*dataset.Dataset, error) {
	ds, err := s.reader.Load(file)
	if err != nil {
		return nil, classify(err)
	}
	if prev := sess.Dataset(); prev != nil && prev.Fingerprint() == ds.Fingerprint() {
		logger.Debug("Session %s re-uploaded identical content as %s", sess.ID, ds.Source())
	}
	sess.SetDataset(ds)
	logger.Info("Session %s loaded %s (sha256 %s)", sess.ID, ds.Source(), ds.Fingerprint().Short())
	return ds, nil
}

// Summary describes the session dataset
func (s *ExplorerService) Summary(sess *session.Session) (profiling.SummaryTable, []profiling.TextSummary, error) {
	ds, err := requireDataset(sess)
	if err != nil {
		return profiling.SummaryTable{}, nil, err
	}
	return s.profiler.Summarize(ds), s.profiler.DescribeText(ds), nil
}

// Chart builds the chart for a request against the session dataset
func (s *ExplorerService) Chart(sess *session.Session, req chart.Request) (*chart.Spec, error) {
	ds, err := requireDataset(sess)
	if err != nil {
		return nil, err
	}
	spec, err := chart.Build(ds, req)
	if err != nil {
		return nil, classify(err)
	}
	return spec, nil
}

// Breakdown builds the category pies for the session dataset
func (s *ExplorerService) Breakdown(sess *session.Session) ([]*chart.Spec, error) {
	ds, err := requireDataset(sess)
	if err != nil {
		return nil, err
	}
	specs, err := analysis.Breakdown(ds)
	if err != nil {
		return nil, classify(err)
	}
	return specs, nil
}

// Request turns the widget state into a chart request. Axis choices are only
// carried for plot types that expose them.
func (s *ExplorerService) Request(sel Selection) (chart.Request, error) {
	kind := chart.KindLine
	if sel.Kind != "" {
		parsed, err := chart.ParseKind(sel.Kind)
		if err != nil {
			return chart.Request{}, classify(err)
		}
		kind = parsed
	}

	req := chart.Request{Kind: kind, Columns: sel.Columns}
	showX, showY := chart.Choices(kind)
	if showX {
		req.X = sel.X
	}
	if showY {
		req.Y = sel.Y
	}
	return req, nil
}

// FailedPage is the render for a rejected upload: the error alone, with no
// statistics or charts from whatever dataset the session still holds
func (s *ExplorerService) FailedPage(msg Message) PageModel {
	return PageModel{Title: PageTitle, Messages: []Message{msg}}
}

// Page computes one full render of the page from the session dataset
func (s *ExplorerService) Page(sess *session.Session, sel Selection) PageModel {
	model := PageModel{Title: PageTitle, Selection: sel}

	ds := sess.Dataset()
	if ds == nil {
		return model
	}

	model.Loaded = true
	model.FileName = ds.Source()
	model.Rows = ds.Len()
	model.Messages = append(model.Messages, Message{Level: LevelSuccess, Text: MsgLoaded})
	model.Columns = ds.Names()
	model.Summary = s.profiler.Summarize(ds)
	model.TextSummary = s.profiler.DescribeText(ds)
	model.Preview = Preview{Header: ds.Names(), Rows: ds.Head(PreviewRows)}

	s.selectChart(ds, sel, &model)

	breakdown, err := analysis.Breakdown(ds)
	if err != nil {
		logger.Warn("Breakdown skipped for %s: %v", ds.Source(), err)
		model.BreakdownMessage = &Message{Level: LevelWarning, Text: err.Error()}
	} else {
		model.Breakdown = breakdown
	}
	return model
}

func (s *ExplorerService) selectChart(ds *dataset.Dataset, sel Selection, model *PageModel) {
	req, err := s.Request(sel)
	for _, k := range chart.Kinds {
		model.Kinds = append(model.Kinds, KindOption{Value: k, Label: k.Title(), Selected: err == nil && k == req.Kind})
	}
	if len(sel.Columns) == 0 {
		model.ChartMessage = &Message{Level: LevelWarning, Text: MsgNoSelection}
		return
	}
	if err != nil {
		model.ChartMessage = &Message{Level: LevelWarning, Text: err.Error()}
		return
	}

	showX, showY := chart.Choices(req.Kind)
	model.Axis = AxisChoice{ShowX: showX, ShowY: showY, Options: sel.Columns, X: sel.Columns[0], Y: sel.Columns[0]}
	if len(sel.Columns) > 1 {
		model.Axis.Y = sel.Columns[1]
	}
	if req.X != "" {
		model.Axis.X = req.X
	}
	if req.Y != "" {
		model.Axis.Y = req.Y
	}

	spec, err := chart.Build(ds, req)
	if err != nil {
		model.ChartMessage = &Message{Level: LevelWarning, Text: err.Error()}
		return
	}
	model.Chart = spec
}

func requireDataset(sess *session.Session) (*dataset.Dataset, error) {
	ds := sess.Dataset()
	if ds == nil {
		return nil, apperrors.NotFound("dataset")
	}
	return ds, nil
}
