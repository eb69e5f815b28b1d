package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Scribe/internal/api/handlers"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/assets"
	"Scribe/internal/core/ownership"
	"Scribe/internal/core/posts"
)

// UpdateHandler handles post edits
type UpdateHandler struct {
	service posts.Service
	assets  assets.Store
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(service posts.Service, store assets.Store) *UpdateHandler {
	return &UpdateHandler{
		service: service,
		assets:  store,
	}
}

// HandleUpdate handles PUT /posts/{id}
// Fields that are not sent keep their stored value, including the image.
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	in, ok := parseInput(w, r)
	if !ok {
		return
	}

	req := posts.UpdatePostRequest{
		ID:      id,
		ActorID: userID,
		Title:   in.fields.Title,
		Content: in.fields.Content,
	}

	if in.upload != nil {
		// Only store the file once the edit is known to be allowed
		existing, err := h.service.GetPost(r.Context(), id)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		if !ownership.CanMutate(userID, existing.Author.ID) {
			handleServiceError(w, posts.ErrNotAuthorized)
			return
		}

		image, err := in.upload.save(r.Context(), h.assets)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		req.Image = image
	}

	view, err := h.service.UpdatePost(r.Context(), req)
	if err != nil {
		discardUpload(r.Context(), h.assets, req.Image)
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, view)
}
