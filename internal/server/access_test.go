package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"healthvibe/internal/auth"
)

func TestAccessRolesKnownRoutes(t *testing.T) {
	t.Parallel()

	require.ElementsMatch(t, anyRole, accessRoles(http.MethodGet, "/me"))
	require.Equal(t, []auth.Role{auth.RoleAdmin}, accessRoles(http.MethodGet, "/admin-dashboard"))
	require.Equal(t, []auth.Role{auth.RoleTrainer}, accessRoles(http.MethodGet, "/trainer-dashboard"))
}

func TestAccessRolesPanicsOnUnknownRoute(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		accessRoles(http.MethodGet, "/not-in-the-table")
	})
}

func TestRoleAllowed(t *testing.T) {
	t.Parallel()

	admins := []auth.Role{auth.RoleAdmin}
	require.True(t, roleAllowed(admins, auth.RoleAdmin))
	require.False(t, roleAllowed(admins, auth.RoleTrainer))
	require.False(t, roleAllowed(admins, auth.RoleUser))
	require.False(t, roleAllowed(nil, auth.RoleAdmin))
}
