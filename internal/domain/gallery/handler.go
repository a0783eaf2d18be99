package gallery

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orbitshare/orbit-api/internal/pkg/errorhandler"
	"github.com/orbitshare/orbit-api/internal/pkg/response"
	"github.com/orbitshare/orbit-api/internal/pkg/validator"
)

// Handler serves shared galleries over HTTP
type Handler struct {
	service *Service
}

// NewHandler creates gallery handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts under /galleries. Extra routes (such as the scene view)
// can be registered on the returned router by the caller.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Publish)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/views", h.IncrementViews)
	r.Put("/{id}", h.Update)
	return r
}

// Publish handles POST /galleries
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	var req PublishRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	snap, err := h.service.Publish(r.Context(), req.GalleryID, req.Files, req.Title)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, err)
		return
	}
	response.Created(w, PublishResponse{
		GalleryID: snap.ID,
		ShareURL:  h.service.ShareURL(snap.ID),
		Gallery:   *snap,
	})
}

// List handles GET /galleries
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.service.List(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, err)
		return
	}
	response.OK(w, ListResponse{Galleries: ids, Count: len(ids)})
}

// Get handles GET /galleries/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errorhandler.HandleError(r.Context(), w, err)
		return
	}
	response.OK(w, GalleryResponse{Gallery: *snap})
}

// IncrementViews handles POST /galleries/{id}/views
func (h *Handler) IncrementViews(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, chi.URLParam(r, "id"))
}

// Update handles PUT /galleries/{id}. The only supported update is a view
// increment; snapshots are otherwise replaced through Publish.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if !req.IncrementViews {
		response.BadRequest(w, "Unsupported update")
		return
	}
	h.view(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request, id string) {
	snap, err := h.service.View(r.Context(), id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, err)
		return
	}
	response.OK(w, ViewsResponse{GalleryID: snap.ID, Views: snap.Views})
}
