package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Scribe/internal/api/handlers"
	"Scribe/internal/core/comments"
)

// GetCommentsHandler lists the comments on a post
type GetCommentsHandler struct {
	service comments.Service
}

// NewGetCommentsHandler creates a new handler for listing comments
func NewGetCommentsHandler(service comments.Service) *GetCommentsHandler {
	return &GetCommentsHandler{service: service}
}

// HandleList handles GET /posts/{postId}/comments
func (h *GetCommentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListComments(r.Context(), chi.URLParam(r, "postId"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, views)
}
