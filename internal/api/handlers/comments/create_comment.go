package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Scribe/internal/api/handlers"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/comments"
)

// CreateCommentInput is the JSON body accepted when commenting on a post
type CreateCommentInput struct {
	Content string `json:"content"`
	Author  string `json:"author,omitempty"`
}

// CreateCommentHandler handles adding comments to posts
type CreateCommentHandler struct {
	service comments.Service
}

// NewCreateCommentHandler creates a new handler for adding comments
func NewCreateCommentHandler(service comments.Service) *CreateCommentHandler {
	return &CreateCommentHandler{service: service}
}

// HandleCreate handles POST /posts/{postId}/comments
func (h *CreateCommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return
	}

	var input CreateCommentInput
	if !handlers.DecodeJSON(w, r, &input) {
		return
	}
	if input.Author != "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest",
			"author must not be provided - derived from authenticated user")
		return
	}

	view, err := h.service.AddComment(r.Context(), comments.AddCommentRequest{
		PostID:   chi.URLParam(r, "postId"),
		AuthorID: userID,
		Content:  input.Content,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, view)
}
