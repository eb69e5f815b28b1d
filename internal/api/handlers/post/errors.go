package post

import (
	"errors"
	"log"
	"net/http"

	"Scribe/internal/api/handlers"
	"Scribe/internal/core/assets"
	"Scribe/internal/core/posts"
)

func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	handlers.WriteError(w, statusCode, errorType, message)
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, posts.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "InvalidID", "Invalid post id")

	case posts.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case posts.IsNotFound(err):
		writeError(w, http.StatusNotFound, "PostNotFound", "Post not found")

	case errors.Is(err, posts.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, "NotAuthorized",
			"You are not authorized to modify this post")

	case errors.Is(err, assets.ErrUnsupportedFormat),
		errors.Is(err, assets.ErrImageTooLarge),
		errors.Is(err, assets.ErrEmptyUpload):
		writeError(w, http.StatusBadRequest, "InvalidImage", err.Error())

	default:
		// Don't leak internal error details to clients
		log.Printf("Unexpected error in post handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
