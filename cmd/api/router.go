package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orbitshare/orbit-api/internal/domain/admin"
	"github.com/orbitshare/orbit-api/internal/domain/files"
	"github.com/orbitshare/orbit-api/internal/domain/gallery"
	"github.com/orbitshare/orbit-api/internal/domain/scene"
	"github.com/orbitshare/orbit-api/internal/domain/upload"
	"github.com/orbitshare/orbit-api/internal/middleware"
	"github.com/orbitshare/orbit-api/internal/pkg/response"
)

// handlers groups everything the router mounts. Admin and UploadDir are optional.
type handlers struct {
	Files          *files.Handler
	Gallery        *gallery.Handler
	Upload         *upload.Handler
	Scene          *scene.Handler
	Admin          *admin.Handler
	UploadDir      string
	AllowedOrigins []string
}

func newRouter(h handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORSHandler(h.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	if h.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.UploadDir)))
		r.Handle("/uploads/*", fs)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Uploads stream large bodies; compression only applies to JSON answers.
		r.Mount("/upload", h.Upload.Routes())

		r.Group(func(r chi.Router) {
			r.Use(chimw.Compress(5))

			r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
				response.OK(w, map[string]string{"message": "pong"})
			})

			r.Mount("/files", h.Files.Routes())
			r.Mount("/scene", h.Scene.Routes())

			galleries := h.Gallery.Routes()
			galleries.Get("/{id}/scene", h.Scene.Gallery)
			r.Mount("/galleries", galleries)

			if h.Admin != nil {
				r.Mount("/admin", h.Admin.Routes())
			}
		})
	})

	return r
}
