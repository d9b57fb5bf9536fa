package ui

import (
	"bytes"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"edaviz/adapters/excel"
	"edaviz/app"
	"edaviz/domain/chart"
	apperrors "edaviz/internal/errors"
	"edaviz/ui/middleware"
	"edaviz/ui/templates/fragments"

	"github.com/gin-gonic/gin"
)

// pageData is the template model for index.html
type pageData struct {
	app.PageModel
	ChartSrc template.URL
	Help     template.HTML
}

// parseSelection reads the selection widgets from the query string. The
// picked columns arrive as ordered hidden inputs; add and remove edit them.
func parseSelection(c *gin.Context) app.Selection {
	sel := app.Selection{
		Columns: c.QueryArray("columns"),
		Kind:    c.Query("kind"),
		X:       c.Query("x"),
		Y:       c.Query("y"),
	}
	return sel.Edit(c.QueryArray("add"), c.QueryArray("remove"))
}

func selectionQuery(sel app.Selection) url.Values {
	values := url.Values{}
	for _, col := range sel.Columns {
		values.Add("columns", col)
	}
	for key, value := range map[string]string{"kind": sel.Kind, "x": sel.X, "y": sel.Y} {
		if value != "" {
			values.Set(key, value)
		}
	}
	return values
}

func (s *Server) renderPage(c *gin.Context, status int, sel app.Selection) {
	sess := middleware.CurrentSession(c)
	model := s.explorer.Page(sess, sel)

	data := pageData{PageModel: model, Help: s.help}
	if model.Chart != nil {
		query := selectionQuery(sel)
		query.Set("kind", string(model.Chart.Kind))
		data.ChartSrc = template.URL("/charts?" + query.Encode())
	}
	s.renderTemplate(c, status, fragments.Index, data)
}

// renderFailure shows a rejected upload without any dataset content
func (s *Server) renderFailure(c *gin.Context, status int, text string) {
	model := s.explorer.FailedPage(app.Message{Level: app.LevelError, Text: text})
	s.renderTemplate(c, status, fragments.Index, pageData{PageModel: model, Help: s.help})
}

// handleIndex renders the page for the current selection
func (s *Server) handleIndex(c *gin.Context) {
	s.renderPage(c, http.StatusOK, parseSelection(c))
}

// handleUpload replaces the session dataset with the posted file
func (s *Server) handleUpload(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Printf("[Upload] Session %s sent more than %d bytes", sess.ID, tooLarge.Limit)
			s.renderFailure(c, http.StatusRequestEntityTooLarge, excel.ErrTooLarge.Error())
			return
		}
		log.Printf("[Upload] No file in request: %v", err)
		s.renderFailure(c, http.StatusBadRequest, "Please choose a file to upload.")
		return
	}

	if _, err := s.explorer.Upload(sess, excel.UploadedFile{Header: header}); err != nil {
		log.Printf("[Upload] Session %s rejected %s: %v", sess.ID, header.Filename, err)
		s.renderFailure(c, apperrors.HTTPStatus(err), err.Error())
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// handleCharts renders the chart page embedded by the index: the current
// selection by default, the category breakdown with view=breakdown
func (s *Server) handleCharts(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var specs []*chart.Spec
	var err error
	title := "Data Visualization"
	if c.Query("view") == "breakdown" {
		title = "Category Breakdown"
		specs, err = s.explorer.Breakdown(sess)
	} else {
		var req chart.Request
		req, err = s.explorer.Request(parseSelection(c))
		if err == nil {
			var spec *chart.Spec
			spec, err = s.explorer.Chart(sess, req)
			specs = []*chart.Spec{spec}
		}
	}
	if err != nil {
		c.String(apperrors.HTTPStatus(err), err.Error())
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderPage(&buf, title, specs); err != nil {
		log.Printf("[Charts] Render failed: %v", err)
		c.String(http.StatusInternalServerError, "chart rendering failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// handleReset drops the session dataset
func (s *Server) handleReset(c *gin.Context) {
	middleware.CurrentSession(c).Clear()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
}
