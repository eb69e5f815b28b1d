package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Scribe/internal/api/handlers"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/comments"
)

// DeleteCommentHandler handles comment deletion
type DeleteCommentHandler struct {
	service comments.Service
}

// NewDeleteCommentHandler creates a new handler for deleting comments
func NewDeleteCommentHandler(service comments.Service) *DeleteCommentHandler {
	return &DeleteCommentHandler{service: service}
}

// HandleDelete handles DELETE /comments/{commentId}
func (h *DeleteCommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return
	}

	if err := h.service.DeleteComment(r.Context(), chi.URLParam(r, "commentId"), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteMessage(w, http.StatusOK, "Comment deleted")
}
