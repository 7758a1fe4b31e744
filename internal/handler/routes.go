package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/popeskul/wacloud/internal/middleware"
)

// Routes mounts the gateway endpoints on a new chi router.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.NotFound(middleware.NotFound)
	r.MethodNotAllowed(middleware.MethodNotAllowed)

	r.Get("/health", h.HealthCheck)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/messages", h.SendMessage)
		r.Post("/messages/{messageID}/read", h.MarkAsRead)
		r.Post("/templates", h.SendTemplate)
	})

	return r
}
