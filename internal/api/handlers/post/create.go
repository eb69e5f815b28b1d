package post

import (
	"net/http"

	"Scribe/internal/api/handlers"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/assets"
	"Scribe/internal/core/posts"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
	assets  assets.Store
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service, store assets.Store) *CreateHandler {
	return &CreateHandler{
		service: service,
		assets:  store,
	}
}

// HandleCreate handles POST /posts
// Accepts JSON or multipart/form-data with an optional "image" file
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return
	}

	in, ok := parseInput(w, r)
	if !ok {
		return
	}

	req := posts.CreatePostRequest{
		AuthorID: userID,
		Title:    valueOrEmpty(in.fields.Title),
		Content:  valueOrEmpty(in.fields.Content),
	}

	if in.upload != nil {
		image, err := in.upload.save(r.Context(), h.assets)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		req.Image = image
	}

	view, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		discardUpload(r.Context(), h.assets, req.Image)
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, view)
}
