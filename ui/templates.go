package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"

	"edaviz/ui/templates/fragments"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

var funcMap = template.FuncMap{
	"has": func(list []string, s string) bool {
		for _, v := range list {
			if v == s {
				return true
			}
		}
		return false
	},
}

// parseTemplates registers every page template under its path
func parseTemplates(templatesFS fs.FS) (*template.Template, error) {
	templates := template.New("").Funcs(funcMap)
	for _, file := range fragments.GetAllTemplatePaths() {
		content, err := fs.ReadFile(templatesFS, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", file, err)
		}
		if _, err := templates.New(file).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", file, err)
		}
	}
	return templates, nil
}

// renderMarkdown converts the embedded help text to HTML
func renderMarkdown(templatesFS fs.FS, file string) (template.HTML, error) {
	source, err := fs.ReadFile(templatesFS, file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return template.HTML(markdown.ToHTML(source, p, renderer)), nil
}

// renderTemplate executes a template into a buffer so a failure never leaves a
// half-written page behind
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("[Server] Template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		log.Printf("[Server] Error writing template response: %v", err)
	}
}
