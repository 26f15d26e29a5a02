// internal/server/router.go
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware(handler.logger))

	r.Get("/health", handler.health)
	r.Get("/ready", handler.ready)
	r.Get("/commands", handler.commands)
	if handler.metrics != nil {
		r.Handle("/metrics", handler.metrics)
	}

	r.Post("/chatbox", handler.chatbox)
	r.Post("/webhook", handler.webhook)
	r.Post("/validate_license", handler.validateLicense)
	return r
}
