package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Scribe/internal/api/handlers"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/posts"
)

// DeleteHandler handles post deletion
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{service: service}
}

// HandleDelete handles DELETE /posts/{id}
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return
	}

	if err := h.service.DeletePost(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteMessage(w, http.StatusOK, "Post deleted")
}
