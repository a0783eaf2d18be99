package admin

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/orbitshare/orbit-api/internal/middleware"
	"github.com/orbitshare/orbit-api/internal/pkg/errorhandler"
	"github.com/orbitshare/orbit-api/internal/pkg/jwt"
	"github.com/orbitshare/orbit-api/internal/pkg/response"
	"github.com/orbitshare/orbit-api/internal/pkg/validator"
)

// Handler serves maintenance endpoints
type Handler struct {
	service *Service
	jwtSvc  *jwt.Service
}

// NewHandler creates admin handler
func NewHandler(service *Service, jwtSvc *jwt.Service) *Handler {
	return &Handler{service: service, jwtSvc: jwtSvc}
}

// Routes mounts under /admin. Every route requires an admin token.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.AdminOnly(h.jwtSvc))
	r.Post("/reset", h.Reset)
	r.Get("/stats", h.Stats)
	r.Post("/galleries/prune", h.Prune)
	return r
}

// Reset handles POST /admin/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if !req.Confirm {
		errorhandler.HandleError(r.Context(), w, ErrConfirmationRequired)
		return
	}

	result, err := h.service.Reset(r.Context(), middleware.GetAdminSubject(r.Context()))
	if err != nil {
		errorhandler.HandleError(r.Context(), w, err)
		return
	}
	response.OK(w, result)
}

// Stats handles GET /admin/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Stats(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, err)
		return
	}
	response.OK(w, st)
}

// Prune handles POST /admin/galleries/prune
func (h *Handler) Prune(w http.ResponseWriter, r *http.Request) {
	var req PruneRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}
	maxAge, err := time.ParseDuration(req.MaxAge)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, ErrInvalidMaxAge)
		return
	}

	removed, err := h.service.PruneGalleries(r.Context(), middleware.GetAdminSubject(r.Context()), maxAge)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, err)
		return
	}
	if removed == nil {
		removed = []string{}
	}
	response.OK(w, PruneResponse{Removed: removed, Count: len(removed)})
}
