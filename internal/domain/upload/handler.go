package upload

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orbitshare/orbit-api/internal/pkg/errorhandler"
	"github.com/orbitshare/orbit-api/internal/pkg/response"
)

// multipartOverhead is the slack allowed on top of the file size for
// boundaries and other form fields.
const multipartOverhead = 1 << 20

// Handler accepts multipart uploads
type Handler struct {
	service  *Service
	maxBytes int64
}

// NewHandler creates upload handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, maxBytes: service.maxBytes}
}

// Routes mounts under /upload
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Upload)
	return r
}

// Upload handles POST /upload
// Multipart form: file
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.PayloadTooLarge(w, "File exceeds maximum size")
			return
		}
		response.BadRequest(w, "No file uploaded or upload error occurred")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		errorhandler.HandleError(r.Context(), w, ErrNoFile)
		return
	}
	defer file.Close()

	in := Input{
		OriginalName: SanitizeFileName(header.Filename),
		DeclaredType: header.Header.Get("Content-Type"),
		Size:         header.Size,
	}

	result, err := h.service.Upload(r.Context(), in, file)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, err)
		return
	}

	response.Created(w, UploadResponse{Message: "File uploaded successfully", File: result.Record})
}
