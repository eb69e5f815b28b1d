package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"Scribe/internal/core/users"
)

// Context keys for storing user information
type contextKey string

const UserIDKey contextKey = "user_id"

// Claims are the token claims the server reads. Subject is the identity id.
type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// IdentityResolver records the caller's profile once their token is verified
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, identity users.Identity) (*users.User, error)
}

// JWTAuthMiddleware authenticates requests carrying an HS256 Bearer token
type JWTAuthMiddleware struct {
	resolver IdentityResolver
	secret   []byte
}

// NewJWTAuthMiddleware creates a middleware verifying tokens signed with secret
func NewJWTAuthMiddleware(secret string, resolver IdentityResolver) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		secret:   []byte(secret),
		resolver: resolver,
	}
}

// RequireAuth ensures the caller is authenticated.
// If not authenticated, returns 401. If authenticated, injects the user id and
// claims into the context. Requests already authenticated upstream pass through.
func (m *JWTAuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserID(r) != "" {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Missing Authorization header")
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			writeAuthError(w, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		claims, err := m.verify(token)
		if err != nil {
			log.Printf("[AUTH_FAILURE] type=verification_failed ip=%s method=%s path=%s error=%v",
				r.RemoteAddr, r.Method, r.URL.Path, err)
			writeAuthError(w, "Invalid or expired token")
			return
		}

		ctx, err := m.authenticate(r.Context(), claims)
		if err != nil {
			if users.IsInvalidIdentity(err) {
				writeAuthError(w, "Missing subject in token")
				return
			}
			log.Printf("[AUTH_FAILURE] type=identity_error path=%s error=%v", r.URL.Path, err)
			writeJSON(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads the caller's identity when a valid token is present, but
// never rejects the request
func (m *JWTAuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.verify(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx, err := m.authenticate(r.Context(), claims)
		if err != nil {
			log.Printf("Optional auth failed: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *JWTAuthMiddleware) verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}

func (m *JWTAuthMiddleware) authenticate(ctx context.Context, claims *Claims) (context.Context, error) {
	user, err := m.resolver.ResolveIdentity(ctx, users.Identity{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
	})
	if err != nil {
		return nil, err
	}

	return context.WithValue(ctx, UserIDKey, user.ID), nil
}

func bearerToken(header string) (string, bool) {
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[7:])
	return token, token != ""
}

// GetUserID extracts the authenticated user's id from the request context.
// Returns empty string if not authenticated.
func GetUserID(r *http.Request) string {
	return GetAuthenticatedUserID(r.Context())
}

// GetAuthenticatedUserID extracts the authenticated user's id from ctx
func GetAuthenticatedUserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// SetTestUserID sets the user id in the context for testing purposes.
// This function should ONLY be used in tests to mock authenticated users.
func SetTestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, "AuthenticationRequired", message)
}

func writeJSON(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   errorType,
		"message": message,
	}); err != nil {
		log.Printf("Failed to write error response: %v", err)
	}
}
