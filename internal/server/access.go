package server

import (
	"fmt"
	"net/http"

	"healthvibe/internal/auth"
)

type AccessRule struct {
	Method string
	Path   string
	Roles  []auth.Role
}

var anyRole = []auth.Role{auth.RoleUser, auth.RoleAdmin, auth.RoleTrainer}

// endpointAccess is the closed allow-list for protected routes. A protected
// route missing here fails loudly at registration instead of silently
// allowing everyone.
var endpointAccess = []AccessRule{
	{Method: http.MethodPost, Path: "/enable-2fa", Roles: anyRole},
	{Method: http.MethodPost, Path: "/disable-2fa", Roles: anyRole},
	{Method: http.MethodPost, Path: "/logout", Roles: anyRole},
	{Method: http.MethodGet, Path: "/me", Roles: anyRole},

	{Method: http.MethodGet, Path: "/admin-dashboard", Roles: []auth.Role{auth.RoleAdmin}},
	{Method: http.MethodGet, Path: "/trainer-dashboard", Roles: []auth.Role{auth.RoleTrainer}},
}

func accessRoles(method, path string) []auth.Role {
	for _, rule := range endpointAccess {
		if rule.Method == method && rule.Path == path {
			return rule.Roles
		}
	}
	panic(fmt.Sprintf("missing access roles for %s %s", method, path))
}

func roleAllowed(roles []auth.Role, role auth.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
