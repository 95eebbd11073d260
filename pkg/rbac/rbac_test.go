package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/showroom/pkg/middleware"
	"github.com/shashiranjanraj/showroom/pkg/rbac"
)

func TestIsAdmin(t *testing.T) {
	assert.True(t, rbac.IsAdmin(rbac.RoleAdmin))
	assert.True(t, rbac.IsAdmin(rbac.RoleSuperAdmin))
	assert.False(t, rbac.IsAdmin(rbac.RoleUser))
	assert.False(t, rbac.IsAdmin(""))
	assert.False(t, rbac.IsAdmin("admin"), "role names are case sensitive")
}

func serveAs(t *testing.T, guard func(http.Handler) http.Handler, role string) int {
	t.Helper()
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if role != "" {
		req = middleware.WithUser(req, 1, role)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestAdminOnly(t *testing.T) {
	assert.Equal(t, http.StatusOK, serveAs(t, rbac.AdminOnly, rbac.RoleAdmin))
	assert.Equal(t, http.StatusOK, serveAs(t, rbac.AdminOnly, rbac.RoleSuperAdmin))
	assert.Equal(t, http.StatusForbidden, serveAs(t, rbac.AdminOnly, rbac.RoleUser))
	assert.Equal(t, http.StatusForbidden, serveAs(t, rbac.AdminOnly, ""))
}

func TestSuperAdminOnly(t *testing.T) {
	assert.Equal(t, http.StatusOK, serveAs(t, rbac.SuperAdminOnly, rbac.RoleSuperAdmin))
	assert.Equal(t, http.StatusForbidden, serveAs(t, rbac.SuperAdminOnly, rbac.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, serveAs(t, rbac.SuperAdminOnly, rbac.RoleUser))
}

func TestHasRoleCustomSet(t *testing.T) {
	guard := rbac.HasRole(rbac.RoleUser, rbac.RoleAdmin)
	assert.Equal(t, http.StatusOK, serveAs(t, guard, rbac.RoleUser))
	assert.Equal(t, http.StatusOK, serveAs(t, guard, rbac.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, serveAs(t, guard, "GUEST"))
}
