package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/showroom/pkg/auth"
	"github.com/shashiranjanraj/showroom/pkg/response"
)

type userIDKey struct{}
type roleKey struct{}

// UserResolver maps a token's user id to the role stored in the users table.
// Returning an error means the credential does not resolve to a local user.
// The database row is authoritative for roles, never the token claim.
type UserResolver func(ctx context.Context, userID uint) (role string, err error)

// Auth validates the bearer token and resolves the local user. On success the
// user id and the database role land in the request context.
func Auth(tokens *auth.Manager, resolve UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.Unauthorized(w)
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			role, err := resolve(r.Context(), claims.UserID)
			if err != nil {
				response.Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
			ctx = context.WithValue(ctx, roleKey{}, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromCtx returns the authenticated user's id.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(userIDKey{}).(uint)
	return id, ok
}

// RoleFromCtx returns the authenticated user's role as stored in the database.
func RoleFromCtx(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(roleKey{}).(string)
	return role, ok
}

// WithUser stores id and role in the request context. Used by handler tests.
func WithUser(r *http.Request, id uint, role string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey{}, id)
	ctx = context.WithValue(ctx, roleKey{}, role)
	return r.WithContext(ctx)
}
