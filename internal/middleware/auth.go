// Package middleware provides HTTP middlewares for authentication and
// request logging.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"contactdesk/internal/models"
	"contactdesk/internal/service"
)

type ctxKey string

const userKey ctxKey = "user"

// UserResolver maps a bearer token to its user. Implemented by
// service.UserService.
type UserResolver interface {
	// ByToken returns the user holding the token, or
	// service.ErrUnauthenticated when no user holds it.
	ByToken(ctx context.Context, token string) (*models.User, error)
}

// TokenAuth is a middleware that enforces bearer-token authentication.
//
// It reads the raw token from the Authorization header, resolves it to a
// user and stores the user in the request context for downstream handlers.
// Requests with a missing or unknown token are rejected with 401.
func TokenAuth(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			user, err := resolver.ByToken(r.Context(), token)
			if errors.Is(err, service.ErrUnauthenticated) {
				writeAuthError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if err != nil {
				writeAuthError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// ContextWithUser returns a context carrying the authenticated user, the
// same way TokenAuth stores it for downstream handlers.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext extracts the authenticated user from the request
// context. Returns nil if the request did not pass TokenAuth.
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"errors": msg})
}
