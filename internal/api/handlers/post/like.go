package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Scribe/internal/api/handlers"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/posts"
)

// LikeHandler toggles the caller's like on a post
type LikeHandler struct {
	service posts.Service
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(service posts.Service) *LikeHandler {
	return &LikeHandler{service: service}
}

// HandleToggle handles POST /posts/{id}/like
// Returns the post with its like set after the toggle.
func (h *LikeHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return
	}

	view, err := h.service.ToggleLike(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, view)
}
