// Package middleware provides the HTTP middleware shared by the API routes.
//
// Authenticate enforces "Authorization: Bearer <token>" on protected routes,
// resolves the token to a stored user and injects that user into the request
// context.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/arcdefender/arc-defender/internal/model"
	"github.com/arcdefender/arc-defender/internal/service"
)

// contextKey is an unexported type used for context keys to avoid collisions.
type contextKey string

// ContextKeyUser holds the authenticated *model.User.
const ContextKeyUser contextKey = "auth.user"

// Authenticator resolves a bearer token to the user it was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, bearer string) (*model.User, error)
}

// Authenticate returns a chi-compatible middleware. Missing, malformed,
// invalid or expired tokens get 401; a token whose user no longer exists
// gets 404.
func Authenticate(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearer, ok := BearerToken(r)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "missing or malformed Authorization header")
				return
			}

			user, err := auth.Authenticate(r.Context(), bearer)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrNotFound):
					writeJSONError(w, http.StatusNotFound, err.Error())
				case errors.Is(err, service.ErrUnauthorized):
					logger.Debug("token rejected",
						zap.String("remote_addr", r.RemoteAddr),
						zap.String("path", r.URL.Path),
					)
					writeJSONError(w, http.StatusUnauthorized, err.Error())
				default:
					logger.Error("authentication failed", zap.Error(err))
					writeJSONError(w, http.StatusInternalServerError, "authentication failed")
				}
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the credential from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	scheme, credential, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	credential = strings.TrimSpace(credential)
	return credential, credential != ""
}

// UserFromContext returns the user injected by Authenticate, or nil.
func UserFromContext(ctx context.Context) *model.User {
	u, _ := ctx.Value(ContextKeyUser).(*model.User)
	return u
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
