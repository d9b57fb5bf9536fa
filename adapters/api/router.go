package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"edaviz/adapters/excel"
	"edaviz/app"
	"edaviz/domain/chart"
	"edaviz/domain/core"
	"edaviz/internal"
	apperrors "edaviz/internal/errors"
	"edaviz/internal/session"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

var logger = internal.DefaultLogger.Named("API")

type ctxKey struct{}

// maxRequestBody bounds chart request bodies
const maxRequestBody = 1 << 20

// Handler serves the JSON mirror of the page: one session per uploaded dataset
type Handler struct {
	explorer *app.ExplorerService
	sessions *session.Store
	maxBytes int64
}

// NewRouter builds the chi router for the dataset API
func NewRouter(explorer *app.ExplorerService, sessions *session.Store, maxBytes int64) http.Handler {
	h := &Handler{explorer: explorer, sessions: sessions, maxBytes: maxBytes}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.handleHealth)
	r.Route("/api/datasets", func(r chi.Router) {
		r.Post("/", h.handleCreateDataset)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.withSession)
			r.Get("/", h.handleGetDataset)
			r.Delete("/", h.handleDeleteDataset)
			r.Get("/summary", h.handleSummary)
			r.Post("/charts", h.handleChart)
			r.Get("/breakdown", h.handleBreakdown)
		})
	})
	return r
}

// withSession resolves {id} to a live session
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := core.ParseSessionID(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, apperrors.Coded(apperrors.CodeInvalidInput, err))
			return
		}
		sess, ok := h.sessions.Get(id)
		if !ok {
			writeError(w, apperrors.NotFound("dataset"))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	return r.Context().Value(ctxKey{}).(*session.Session)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "datasets": h.sessions.Len()})
}

func (h *Handler) handleCreateDataset(w http.ResponseWriter, r *http.Request) {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, uploadError(err))
		return
	}
	_, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperrors.InvalidInput("multipart field \"file\" is required"))
		return
	}

	sess := h.sessions.Create()
	ds, err := h.explorer.Upload(sess, excel.UploadedFile{Header: header})
	if err != nil {
		h.sessions.Delete(sess.ID)
		logger.Warn("Upload of %s rejected: %v", header.Filename, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, describe(sess.ID.String(), ds, sess.LoadedAt()))
}

func (h *Handler) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	ds := sess.Dataset()
	if ds == nil {
		writeError(w, apperrors.NotFound("dataset"))
		return
	}
	writeJSON(w, http.StatusOK, describe(sess.ID.String(), ds, sess.LoadedAt()))
}

func (h *Handler) handleDeleteDataset(w http.ResponseWriter, r *http.Request) {
	h.sessions.Delete(sessionFrom(r).ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	numeric, text, err := h.explorer.Summary(sessionFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{Numeric: numeric, Text: text})
}

func (h *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeError(w, apperrors.Coded(apperrors.CodeInvalidInput, err))
		return
	}
	req, err := parseChartRequest(body)
	if err != nil {
		writeError(w, err)
		return
	}

	spec, err := h.explorer.Chart(sessionFrom(r), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

func (h *Handler) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	specs, err := h.explorer.Breakdown(sessionFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if specs == nil {
		specs = []*chart.Spec{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"charts": specs})
}

// writeJSON encodes before writing the header so an unencodable value
// (a non-finite float, say) becomes a 500 instead of an empty body
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		logger.Error("Failed to encode response: %v", err)
		status = http.StatusInternalServerError
		body, _ = sonic.ConfigStd.Marshal(ErrorResponse{Error: ErrorBody{
			Code:    apperrors.CodeInternalError,
			Message: "response could not be encoded as JSON: " + err.Error(),
		}})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.HTTPStatus(err), ErrorResponse{Error: ErrorBody{
		Code:    apperrors.GetCode(err),
		Message: err.Error(),
	}})
}

// uploadError codes a multipart parse failure, 413 when the body limit tripped
func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperrors.Coded(apperrors.CodeTooLarge, fmt.Errorf("%w (%d bytes)", excel.ErrTooLarge, tooLarge.Limit))
	}
	return apperrors.Coded(apperrors.CodeInvalidInput, err)
}
