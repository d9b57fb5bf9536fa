package coercer

import (
	"math"
	"strconv"
	"strings"

	"edaviz/domain/dataset"
)

// TypeCoercer cleans raw cell text and infers the kind of each column
type TypeCoercer struct {
	config  CoercionConfig
	missing map[string]bool
}

// CoercionConfig defines the cleaning and inference rules
type CoercionConfig struct {
	MissingTokens []string `json:"missing_tokens"` // Cell values treated as missing
	TrimSpace     bool     `json:"trim_space"`     // Whether to trim surrounding whitespace
}

// DefaultCoercionConfig returns the tokens a dataframe reader treats as missing
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		MissingTokens: []string{
			"", "NA", "N/A", "n/a", "NaN", "nan", "-NaN", "-nan",
			"null", "NULL", "None", "#N/A", "#NA", "<NA>", "NA/NA",
		},
		TrimSpace: true,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	missing := make(map[string]bool, len(config.MissingTokens))
	for _, tok := range config.MissingTokens {
		missing[tok] = true
	}
	return &TypeCoercer{config: config, missing: missing}
}

// Clean normalises one raw cell, returning "" for missing cells
func (c *TypeCoercer) Clean(raw string) string {
	if c.config.TrimSpace {
		raw = strings.TrimSpace(raw)
	}
	if c.missing[raw] {
		return ""
	}
	return raw
}

// ParseNumeric parses a cleaned cell as a decimal number.
// Hex literals and digit separators are rejected so "0x10" or "1_000" stay text.
func (c *TypeCoercer) ParseNumeric(s string) (float64, bool) {
	if s == "" || strings.ContainsAny(s, "_xX") {
		return 0, false
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// ParseBoolean accepts the spellings a dataframe reader maps to booleans
func (c *TypeCoercer) ParseBoolean(s string) (bool, bool) {
	switch s {
	case "True", "TRUE", "true":
		return true, true
	case "False", "FALSE", "false":
		return false, true
	}
	return false, false
}

// AnalyzeColumn counts how many present cells parse as each kind
func (c *TypeCoercer) AnalyzeColumn(cells []string) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(cells)}
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		analysis.PresentCount++
		if _, ok := c.ParseNumeric(cell); ok {
			analysis.NumericCount++
		}
		if _, ok := c.ParseBoolean(cell); ok {
			analysis.BooleanCount++
		}
	}
	analysis.RecommendedKind = c.determineKind(analysis)
	return analysis
}

// CoerceColumn cleans raw cells and builds a typed column
func (c *TypeCoercer) CoerceColumn(name string, raw []string) *dataset.Column {
	cells := make([]string, len(raw))
	for i, cell := range raw {
		cells[i] = c.Clean(cell)
	}

	col := &dataset.Column{
		Name:  name,
		Kind:  c.AnalyzeColumn(cells).RecommendedKind,
		Cells: cells,
	}
	if col.Kind == dataset.KindNumeric {
		col.Floats = make([]float64, len(cells))
		for i, cell := range cells {
			if v, ok := c.ParseNumeric(cell); ok {
				col.Floats[i] = v
			} else {
				col.Floats[i] = math.NaN()
			}
		}
	}
	return col
}

// determineKind requires every present cell to agree, as a dataframe reader does
func (c *TypeCoercer) determineKind(analysis TypeAnalysis) dataset.Kind {
	switch {
	case analysis.PresentCount == 0:
		return dataset.KindEmpty
	case analysis.NumericCount == analysis.PresentCount:
		return dataset.KindNumeric
	case analysis.BooleanCount == analysis.PresentCount:
		return dataset.KindBoolean
	default:
		return dataset.KindText
	}
}

// TypeAnalysis contains the results of type distribution analysis
type TypeAnalysis struct {
	TotalCount      int          `json:"total_count"`
	PresentCount    int          `json:"present_count"`
	NumericCount    int          `json:"numeric_count"`
	BooleanCount    int          `json:"boolean_count"`
	RecommendedKind dataset.Kind `json:"recommended_kind"`
}
