package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/medflow/resume-parser/internal/resume/domain"
	"github.com/medflow/resume-parser/internal/resume/service"
	"github.com/medflow/resume-parser/pkg/errors"
	"github.com/medflow/resume-parser/pkg/httputil"
	"github.com/medflow/resume-parser/pkg/logger"
	"github.com/medflow/resume-parser/pkg/messaging"
)

// DefaultMaxUploadBytes is used when Options.MaxUploadBytes is not set
const DefaultMaxUploadBytes = 10 << 20 // 10MB

// multipart framing on top of the file itself
const multipartOverhead = 64 << 10

// Options configures the HTTP layer
type Options struct {
	MaxUploadBytes int64
	// IncludeRawText adds raw_data to the POST /parse response
	IncludeRawText bool
	// BrokerHealth, when set, is reported under "rabbitmq" by GET /health
	BrokerHealth func() map[string]string
}

// Handler handles HTTP requests for resume parsing
type Handler struct {
	service *service.Service
	log     *logger.Logger
	opts    Options
}

// NewHandler creates a new resume parsing handler
func NewHandler(svc *service.Service, log *logger.Logger, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		service: svc,
		log:     log,
		opts:    opts,
	}
}

// Routes registers the compatibility routes at the root and the versioned API
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Post("/parse", h.Parse)
	r.Post("/parse_resume", h.ParseLegacy)

	r.Route("/api/v1/resumes", func(r chi.Router) {
		r.Post("/parse", h.ParseV1)
		r.Post("/extract", h.Extract)
		r.Get("/extract/{jobId}", h.GetResult)
	})
}

type uploadForm struct {
	Filename string `form:"filename" validate:"required,max=255"`
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	httputil.RawJSON(w, http.StatusOK, map[string]interface{}{
		"status": http.StatusOK,
		"data":   "hello parser",
	})
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":  "healthy",
		"service": "resume-parser",
	}
	if h.opts.BrokerHealth != nil {
		health["rabbitmq"] = h.opts.BrokerHealth()
	}

	httputil.JSON(w, http.StatusOK, health)
}

// Parse handles POST /parse and returns the bare resume record
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	upload, err := h.readUpload(w, r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	resume, err := h.service.Parse(eventContext(r), upload, service.ParseOptions{IncludeRawText: h.opts.IncludeRawText})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httputil.RawJSON(w, http.StatusOK, resume)
}

// ParseLegacy handles POST /parse_resume
func (h *Handler) ParseLegacy(w http.ResponseWriter, r *http.Request) {
	upload, err := h.readUpload(w, r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	resume, err := h.service.ParseLegacy(eventContext(r), upload)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httputil.RawJSON(w, http.StatusOK, resume)
}

// ParseV1 handles POST /api/v1/resumes/parse
// Query: include_raw_text=true adds the extracted text as raw_data
func (h *Handler) ParseV1(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	upload, err := h.readUpload(w, r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	resume, err := h.service.Parse(eventContext(r), upload, opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, resume)
}

// Extract handles POST /api/v1/resumes/extract
// The upload is parsed in the background; poll GetResult with the returned job ID.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	upload, err := h.readUpload(w, r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	job, err := h.service.StartExtraction(eventContext(r), upload, opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusAccepted, job)
}

// GetResult handles GET /api/v1/resumes/extract/{jobId}
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobId")

	job, err := h.service.GetJob(jobID)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, job)
}

// readUpload reads the "file" part into memory (never to disk)
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (domain.Upload, error) {
	limit := h.opts.MaxUploadBytes

	if r.ContentLength > limit+multipartOverhead {
		return domain.Upload{}, errors.PayloadTooLarge(limit)
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	if err := r.ParseMultipartForm(limit + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.Upload{}, errors.PayloadTooLarge(limit)
		}
		return domain.Upload{}, keyed(errors.BadRequest("invalid multipart form"), "errors.invalid_multipart")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return domain.Upload{}, keyed(errors.BadRequest("missing file in request"), "errors.missing_file")
	}
	defer file.Close()

	if err := httputil.Validate(uploadForm{Filename: header.Filename}); err != nil {
		return domain.Upload{}, err
	}
	if header.Size > limit {
		return domain.Upload{}, errors.PayloadTooLarge(limit)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.Upload{}, errors.Wrap(err, "INTERNAL_ERROR", "failed to read uploaded file", http.StatusInternalServerError)
	}

	return domain.Upload{Filename: header.Filename, Data: data}, nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	log := h.log.WithRequestID(httputil.GetRequestID(r.Context()))

	var appErr *errors.AppError
	if errors.As(err, &appErr) && appErr.StatusCode < http.StatusInternalServerError {
		log.Warn().Err(err).Str("code", appErr.Code).Msg("resume rejected")
	} else {
		log.Error().Err(err).Msg("resume parsing failed")
	}
	httputil.ErrorLocalized(w, r, err)
}

func parseOptions(r *http.Request) (service.ParseOptions, error) {
	raw := r.URL.Query().Get("include_raw_text")
	if raw == "" {
		return service.ParseOptions{}, nil
	}

	include, err := strconv.ParseBool(raw)
	if err != nil {
		return service.ParseOptions{}, errors.Validation(map[string]string{
			"include_raw_text": "must be true or false",
		})
	}
	return service.ParseOptions{IncludeRawText: include}, nil
}

// eventContext tags published events with the request ID
func eventContext(r *http.Request) context.Context {
	return messaging.WithCorrelationID(r.Context(), httputil.GetRequestID(r.Context()))
}

func keyed(err *errors.AppError, key string) *errors.AppError {
	err.MessageKey = key
	return err
}
