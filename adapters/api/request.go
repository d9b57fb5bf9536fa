package api

import (
	"strings"

	"edaviz/domain/chart"
	apperrors "edaviz/internal/errors"

	"github.com/tidwall/gjson"
)

// parseChartRequest reads a chart request body. columns may be a JSON array or
// a comma separated string, and kind may be an identifier or a display title.
func parseChartRequest(body []byte) (chart.Request, error) {
	if !gjson.ValidBytes(body) {
		return chart.Request{}, apperrors.InvalidInput("request body is not valid JSON")
	}
	doc := gjson.ParseBytes(body)

	req := chart.Request{
		X: strings.TrimSpace(doc.Get("x").String()),
		Y: strings.TrimSpace(doc.Get("y").String()),
	}

	kind := doc.Get("kind")
	if !kind.Exists() || kind.String() == "" {
		return chart.Request{}, apperrors.InvalidInput("kind is required")
	}
	parsed, err := chart.ParseKind(kind.String())
	if err != nil {
		return chart.Request{}, apperrors.Coded(apperrors.CodeInvalidInput, err)
	}
	req.Kind = parsed

	columns := doc.Get("columns")
	switch {
	case columns.IsArray():
		for _, col := range columns.Array() {
			req.Columns = append(req.Columns, col.String())
		}
	case columns.Type == gjson.String:
		for _, col := range strings.Split(columns.String(), ",") {
			if col = strings.TrimSpace(col); col != "" {
				req.Columns = append(req.Columns, col)
			}
		}
	}
	return req, nil
}
