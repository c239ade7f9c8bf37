package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turris-cz/turrishw/src/internal/domain"
)

// NewRouter creates a new HTTP router with all API endpoints. A nil access
// policy trusts no proxies.
func NewRouter(deps *domain.AppDependencies, access *AccessPolicy) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(Recovery)
	r.Use(Logger)
	if collector := deps.Metrics(); collector != nil {
		r.Use(collector.Middleware)
	}
	r.Use(access.LocalOnly)
	r.Use(CORS)

	h := NewHandler(deps)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/interfaces", h.GetInterfaces)
		r.Get("/interfaces/{name}", h.GetInterface)
		r.Get("/board", h.GetBoard)
		r.Get("/health", h.CheckHealth)
	})

	if collector := deps.Metrics(); collector != nil {
		r.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "endpoint "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, NewAPIError(ErrCodeInvalidRequest, "method "+r.Method+" not allowed"))
	})

	return r
}
