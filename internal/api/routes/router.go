package routes

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"Scribe/internal/api/handlers"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/assets"
	commentsCore "Scribe/internal/core/comments"
	"Scribe/internal/core/posts"
)

// Deps are the services and middleware the HTTP surface is assembled from
type Deps struct {
	Posts       posts.Service
	Comments    commentsCore.Service
	Assets      assets.Store
	Auth        *middleware.JWTAuthMiddleware
	RateLimiter *middleware.RateLimiter

	// UploadDir is served read-only at assets.PublicPrefix; empty disables it
	UploadDir      string
	AllowedOrigins []string
}

// NewRouter builds the complete HTTP handler
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware(deps.AllowedOrigins))

	// Identity is loaded before rate limiting so callers are limited per user
	r.Use(deps.Auth.OptionalAuth)
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware)
	}

	RegisterPostRoutes(r, deps.Posts, deps.Assets, deps.Auth)
	RegisterCommentRoutes(r, deps.Comments, deps.Auth)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if deps.UploadDir != "" {
		uploads := http.StripPrefix(assets.PublicPrefix, http.FileServer(filesOnly{http.Dir(deps.UploadDir)}))
		r.Get(assets.PublicPrefix+"*", uploads.ServeHTTP)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Route not found")
	})

	return r
}

// filesOnly hides directories so stored filenames cannot be listed
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}

// corsMiddleware allows the frontend origins to call the API with a bearer token
func corsMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		MaxAge: 300,
	})
}
