// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/showroom/pkg/middleware"
	"github.com/shashiranjanraj/showroom/pkg/response"
)

// Role names; the users table column holds exactly one of these.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// IsAdmin reports whether role is ADMIN or SUPER_ADMIN.
func IsAdmin(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// HasRole returns middleware that allows access only to users whose database
// role is one of roles. Requires middleware.Auth to have already run.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok || !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly allows ADMIN and SUPER_ADMIN.
func AdminOnly(next http.Handler) http.Handler {
	return HasRole(RoleAdmin, RoleSuperAdmin)(next)
}

// SuperAdminOnly allows SUPER_ADMIN alone (role assignment).
func SuperAdminOnly(next http.Handler) http.Handler {
	return HasRole(RoleSuperAdmin)(next)
}
