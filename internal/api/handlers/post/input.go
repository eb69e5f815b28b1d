package post

import (
	"context"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"

	"Scribe/internal/api/handlers"
	"Scribe/internal/core/assets"
)

const imageField = "image"

// postInput is the editable part of a post as sent by the client.
// A nil field was not sent.
type postInput struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	AuthorID string  `json:"author"`
}

// errAuthorProvided rejects bodies that try to choose the author
var errAuthorProvided = errors.New("author must not be provided - derived from authenticated user")

// parsedInput carries the decoded fields plus an optional uploaded image that
// has not been stored yet
type parsedInput struct {
	fields postInput
	upload *pendingUpload
}

type pendingUpload struct {
	open     func() (io.ReadCloser, error)
	filename string
}

// save stores the pending upload and returns its public path
func (u *pendingUpload) save(ctx context.Context, store assets.Store) (*string, error) {
	f, err := u.open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	path, err := store.Save(ctx, u.filename, f)
	if err != nil {
		return nil, err
	}
	return &path, nil
}

// discardUpload removes an image stored for a request that then failed
func discardUpload(ctx context.Context, store assets.Store, path *string) {
	if path == nil {
		return
	}
	// The request context may already be canceled
	if err := store.Delete(context.WithoutCancel(ctx), *path); err != nil {
		log.Printf("Failed to remove orphaned upload %s: %v", *path, err)
	}
}

// parseInput decodes a JSON or multipart/form-data body. It writes the error
// response itself and returns false when the body is unusable.
func parseInput(w http.ResponseWriter, r *http.Request) (*parsedInput, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var in postInput
		if !handlers.DecodeJSON(w, r, &in) {
			return nil, false
		}
		if in.AuthorID != "" {
			writeError(w, http.StatusBadRequest, "InvalidRequest", errAuthorProvided.Error())
			return nil, false
		}
		return &parsedInput{fields: in}, true
	}

	r.Body = http.MaxBytesReader(w, r.Body, handlers.MaxMultipartBodyBytes)
	if err := r.ParseMultipartForm(handlers.MaxMultipartBodyBytes); err != nil {
		if handlers.IsBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge",
				"Request body too large (max 10MB)")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid multipart body")
		return nil, false
	}

	form := r.MultipartForm
	if len(form.Value["author"]) > 0 {
		writeError(w, http.StatusBadRequest, "InvalidRequest", errAuthorProvided.Error())
		return nil, false
	}

	in := &parsedInput{}
	if v, ok := form.Value["title"]; ok && len(v) > 0 {
		in.fields.Title = &v[0]
	}
	if v, ok := form.Value["content"]; ok && len(v) > 0 {
		in.fields.Content = &v[0]
	}
	if files := form.File[imageField]; len(files) > 0 {
		header := files[0]
		in.upload = &pendingUpload{
			filename: header.Filename,
			open: func() (io.ReadCloser, error) {
				return header.Open()
			},
		}
	}
	return in, true
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
