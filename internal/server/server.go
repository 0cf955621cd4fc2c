// Package server exposes the docparse service over HTTP.
package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rs/cors"

	"github.com/cognicore/docparse/pkg/docparse"
	"github.com/cognicore/docparse/pkg/docparse/internalerr"
	"github.com/cognicore/docparse/pkg/docparse/store"
)

// multipartOverhead is allowed on top of the upload ceiling for part
// headers and boundaries.
const multipartOverhead = 1 << 20

// Options configures the HTTP handler.
type Options struct {
	CORSOrigins    []string
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// Handler serves the parse and ledger endpoints.
type Handler struct {
	svc       *docparse.Service
	maxUpload int64
	logger    *slog.Logger
}

// New builds the full middleware chain around the routes.
// Order: CORS → request log → recovery → routes.
func New(svc *docparse.Service, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = docparse.DefaultMaxUploadBytes
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	h := &Handler{svc: svc, maxUpload: maxUpload, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /parse", h.Parse)
	mux.HandleFunc("GET /api/ingestions", h.ListIngestions)
	mux.HandleFunc("GET /api/ingestions/{id}", h.GetIngestion)

	var handler http.Handler = mux
	handler = Recovery(logger)(handler)
	handler = RequestLogger(logger)(handler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return corsHandler.Handler(handler)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Parse accepts a multipart upload in the "file" field. The part is
// streamed straight into the service without buffering the whole form.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+multipartOverhead)

	mr, err := r.MultipartReader()
	if err != nil {
		RespondError(w, http.StatusBadRequest, "No file provided")
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			RespondError(w, http.StatusBadRequest, "No file provided")
			return
		}
		if err != nil {
			h.respondErr(w, err)
			return
		}
		if part.FormName() != "file" {
			part.Close()
			continue
		}
		if part.FileName() == "" {
			part.Close()
			RespondError(w, http.StatusBadRequest, "No file provided")
			return
		}

		resp, err := h.svc.Parse(r.Context(), docparse.Upload{Filename: part.FileName(), Body: part})
		part.Close()
		if err != nil {
			h.respondErr(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, resp)
		return
	}
}

// ListIngestions returns recent ledger entries, newest first.
func (h *Handler) ListIngestions(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			RespondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.svc.RecentIngestions(r.Context(), limit)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, entries)
}

// GetIngestion returns one ledger entry.
func (h *Handler) GetIngestion(w http.ResponseWriter, r *http.Request) {
	entry, err := h.svc.Ingestion(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, entry)
}

// respondErr maps service errors to problem responses.
func (h *Handler) respondErr(w http.ResponseWriter, err error) {
	status, detail := mapError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
	RespondError(w, status, detail)
}

func mapError(err error) (int, string) {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, internalerr.ErrUnsupportedType), errors.Is(err, internalerr.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, internalerr.ErrInputTooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, internalerr.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, internalerr.ErrExtraction):
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, internalerr.ErrStoreUnavailable):
		return http.StatusInternalServerError, "ingestion ledger unavailable"
	default:
		return http.StatusInternalServerError, "Error processing file: " + err.Error()
	}
}
