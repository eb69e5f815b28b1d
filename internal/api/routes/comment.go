package routes

import (
	"github.com/go-chi/chi/v5"

	"Scribe/internal/api/handlers/comments"
	"Scribe/internal/api/middleware"
	commentsCore "Scribe/internal/core/comments"
)

// RegisterCommentRoutes registers comment endpoints on the router
// Adding and deleting comments require authentication
func RegisterCommentRoutes(r chi.Router, service commentsCore.Service, authMiddleware *middleware.JWTAuthMiddleware) {
	createHandler := comments.NewCreateCommentHandler(service)
	listHandler := comments.NewGetCommentsHandler(service)
	deleteHandler := comments.NewDeleteCommentHandler(service)

	r.Get("/posts/{postId}/comments", listHandler.HandleList)

	r.With(authMiddleware.RequireAuth).Post(
		"/posts/{postId}/comments",
		createHandler.HandleCreate)

	r.With(authMiddleware.RequireAuth).Delete(
		"/comments/{commentId}",
		deleteHandler.HandleDelete)
}
