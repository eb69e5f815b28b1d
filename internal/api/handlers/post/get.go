package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Scribe/internal/api/handlers"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/posts"
)

// GetHandler serves post reads
type GetHandler struct {
	service posts.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service posts.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleList handles GET /posts?search=&sort=&author=
func (h *GetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	views, err := h.service.ListPosts(r.Context(), posts.ListPostsRequest{
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
		Author: q.Get("author"),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, views)
}

// HandleListMine handles GET /posts/mine
func (h *GetHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return
	}

	views, err := h.service.ListAuthorPosts(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, views)
}

// HandleGet handles GET /posts/{id}
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, view)
}
