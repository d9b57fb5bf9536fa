// Package fragments provides template path constants for the page sections
package fragments

// Template path constants, relative to ui/templates
const (
	Index = "index.html"

	// Page sections
	Upload        = "fragments/upload.html"
	Messages      = "fragments/messages.html"
	Summary       = "fragments/summary.html"
	Preview       = "fragments/preview.html"
	Visualization = "fragments/visualization.html"
	Breakdown     = "fragments/breakdown.html"

	// Help text, rendered from Markdown
	Help = "help.md"
)

// GetAllTemplatePaths returns all HTML template paths for registration
func GetAllTemplatePaths() []string {
	return []string{
		Index,
		Upload,
		Messages,
		Summary,
		Preview,
		Visualization,
		Breakdown,
	}
}
