package files

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orbitshare/orbit-api/internal/pkg/errorhandler"
	"github.com/orbitshare/orbit-api/internal/pkg/response"
	"github.com/orbitshare/orbit-api/internal/pkg/validator"
)

// Handler serves the metadata registry over HTTP
type Handler struct {
	service *Service
}

// NewHandler creates files handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts under /files
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Delete("/", h.DeleteByBody)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
	return r
}

// List handles GET /files. An ?id= filter behaves like GET /files/{id}.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("id"); id != "" {
		h.get(w, r, id)
		return
	}

	records, err := h.service.List(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, err)
		return
	}
	if records == nil {
		records = []FileRecord{}
	}
	response.OK(w, ListResponse{Files: records, Total: len(records)})
}

// Get handles GET /files/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := h.service.Get(r.Context(), id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, err)
		return
	}
	response.OK(w, FileResponse{File: *rec})
}

// Delete handles DELETE /files/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, chi.URLParam(r, "id"))
}

// DeleteByBody handles DELETE /files with a JSON {"id": "..."} body
func (h *Handler) DeleteByBody(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}
	h.delete(w, r, req.ID)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, id string) {
	result, err := h.service.Delete(r.Context(), id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, err)
		return
	}
	response.OK(w, DeleteResponse{
		Message: "File deleted successfully",
		ID:      result.Record.ID,
		Failed:  result.Failed,
	})
}
