package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"postfeed/internal/api/handlers/post"
	"postfeed/internal/core/posts"
)

// RegisterPostRoutes registers the /posts collection on the router.
// The collection is public and mirrors the JSONPlaceholder contract.
func RegisterPostRoutes(r chi.Router, service posts.Service) {
	listHandler := post.NewListHandler(service)
	getHandler := post.NewGetHandler(service)
	createHandler := post.NewCreateHandler(service)

	r.Route("/posts", func(r chi.Router) {
		r.Use(corsMiddleware())
		r.Get("/", listHandler.HandleList)
		r.Post("/", createHandler.HandleCreate)
		r.Get("/{id}", getHandler.HandleGet)
	})
}

// corsMiddleware lets browser clients on any origin read and create posts
func corsMiddleware() func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
		},
		ExposedHeaders: []string{"Location"},
		MaxAge:         300, // 5 minutes
	})
}
