package routes

import (
	"github.com/go-chi/chi/v5"

	"Scribe/internal/api/handlers/post"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/assets"
	"Scribe/internal/core/posts"
)

// RegisterPostRoutes registers the post endpoints on the router.
// Reads are public; every write requires an authenticated caller.
func RegisterPostRoutes(r chi.Router, service posts.Service, store assets.Store, authMiddleware *middleware.JWTAuthMiddleware) {
	createHandler := post.NewCreateHandler(service, store)
	getHandler := post.NewGetHandler(service)
	updateHandler := post.NewUpdateHandler(service, store)
	deleteHandler := post.NewDeleteHandler(service)
	likeHandler := post.NewLikeHandler(service)

	r.Get("/posts", getHandler.HandleList)
	// Static segment wins over {id}
	r.With(authMiddleware.RequireAuth).Get("/posts/mine", getHandler.HandleListMine)
	r.Get("/posts/{id}", getHandler.HandleGet)

	r.With(authMiddleware.RequireAuth).Post("/posts", createHandler.HandleCreate)
	r.With(authMiddleware.RequireAuth).Put("/posts/{id}", updateHandler.HandleUpdate)
	r.With(authMiddleware.RequireAuth).Delete("/posts/{id}", deleteHandler.HandleDelete)
	r.With(authMiddleware.RequireAuth).Post("/posts/{id}/like", likeHandler.HandleToggle)
}
