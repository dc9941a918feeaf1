package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the sample routes behind mw. Loggers see the socket peer
// unless mw starts with TrustProxy.
func NewRouter(h *Handler, mw ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(mw...)
	r.Use(middleware.Recoverer)

	r.Get("/", h.Index)
	r.Get("/search", h.Search)
	r.Get("/api/v1/users/{id}", h.GetUser)
	r.Post("/api/v1/users", h.CreateUser)

	return r
}

// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
// Only mount it behind a proxy that overwrites those headers.
var TrustProxy = middleware.RealIP
