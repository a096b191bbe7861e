// Package router sets up all HTTP routes and middleware chains for the
// recipe API.
package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recipebox/internal/handlers"
	"recipebox/internal/middleware"
	"recipebox/internal/storage"
)

// Options carries what the router wires besides the handlers.
type Options struct {
	// CORSOrigin is a comma-separated list of allowed origins, or "*".
	CORSOrigin string
	// UploadDir is served under /uploads/ when images are stored on disk.
	// Empty disables the static route.
	UploadDir string
	// RateLimiter limits write requests. Nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(db *sql.DB, api *handlers.API, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(opts.CORSOrigin))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", handlers.Health(db))

	if opts.UploadDir != "" {
		files := http.StripPrefix(storage.URLPrefix, http.FileServer(http.Dir(opts.UploadDir)))
		r.Get(storage.URLPrefix+"*", files.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		// Suggestions are not rate limited.
		r.Post("/gemini-suggest", api.Suggest)
		r.Post("/suggest", api.Suggest)

		r.Group(func(r chi.Router) {
			if opts.RateLimiter != nil {
				r.Use(opts.RateLimiter.Middleware)
			}

			r.Get("/categories", api.ListCategories)
			r.Put("/categories/order", api.ReorderCategories)

			r.Route("/recipes", func(r chi.Router) {
				r.Get("/", api.ListRecipes)
				r.Post("/", api.CreateRecipe)
				r.Get("/{id}", api.GetRecipe)
				r.Put("/{id}", api.UpdateRecipe)
				r.Delete("/{id}", api.DeleteRecipe)
				r.Post("/{id}/like", api.LikeRecipe)
				r.Delete("/{id}/like", api.UnlikeRecipe)
				r.Get("/{id}/comments", api.ListComments)
				r.Post("/{id}/comments", api.CreateComment)
			})

			r.Get("/comments", api.ListComments)
			r.Post("/comments", api.CreateComment)
		})
	})

	return r
}
