package scene

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/orbitshare/orbit-api/internal/galaxy/render"
	"github.com/orbitshare/orbit-api/internal/pkg/errorhandler"
	"github.com/orbitshare/orbit-api/internal/pkg/response"
)

// Handler serves rendered galaxy frames
type Handler struct {
	service *Service
}

// NewHandler creates scene handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts under /scene
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Files)
	return r
}

// Files handles GET /scene
func (h *Handler) Files(w http.ResponseWriter, r *http.Request) {
	opts, ok := parseOptions(w, r)
	if !ok {
		return
	}
	resp, err := h.service.BuildForFiles(r.Context(), opts)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, err)
		return
	}
	response.OK(w, resp)
}

// Gallery handles GET /galleries/{id}/scene
func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	opts, ok := parseOptions(w, r)
	if !ok {
		return
	}
	resp, err := h.service.BuildForGallery(r.Context(), chi.URLParam(r, "id"), opts)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, err)
		return
	}
	response.OK(w, resp)
}

// maxSceneOffset caps the at parameter
const maxSceneOffset = 24 * time.Hour

// parseOptions reads seed, aspect, at (milliseconds) and debris from the query
func parseOptions(w http.ResponseWriter, r *http.Request) (Options, bool) {
	q := r.URL.Query()
	opts := Options{Render: render.Options{MaxDebris: 500}}

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(w, "seed must be an integer")
			return opts, false
		}
		opts.Seed = seed
	}
	if v := q.Get("aspect"); v != "" {
		aspect, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(aspect) || math.IsInf(aspect, 0) || aspect <= 0 {
			response.BadRequest(w, "aspect must be a positive number")
			return opts, false
		}
		opts.Aspect = aspect
	}
	if v := q.Get("at"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if (err != nil && !errors.Is(err, strconv.ErrRange)) || ms < 0 {
			response.BadRequest(w, "at must be a non-negative number of milliseconds")
			return opts, false
		}
		if ms > maxSceneOffset.Milliseconds() {
			ms = maxSceneOffset.Milliseconds()
		}
		opts.At = time.Duration(ms) * time.Millisecond
	}
	if v := q.Get("debris"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			response.BadRequest(w, "debris must be a non-negative integer")
			return opts, false
		}
		opts.Render.MaxDebris = n
	}
	opts.Render.SkipStarfield = q.Get("stars") == "false"
	return opts, true
}
