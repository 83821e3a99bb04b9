package server

import (
	"context"
	"log"
	"net/http"
	"strings"

	"healthvibe/internal/auth"
)

type ctxKey string

const authContextKey ctxKey = "auth"

// AuthContext carries the resolved caller through the request, so handlers
// never re-parse the token or re-fetch the user.
type AuthContext struct {
	User   *auth.User
	Claims *auth.Claims
	Token  string
}

// requireAuth resolves the bearer credential: signature and expiry first
// (no store lookup), then one store check that the token identifier is
// still in the user's active session collection.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Please authenticate.")
			return
		}

		claims, err := s.Tokens.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Please authenticate.")
			return
		}

		ctx := r.Context()
		active, err := s.Users.HasSessionToken(ctx, claims.Subject, claims.ID)
		if err != nil {
			log.Printf("auth: session lookup failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to resolve session")
			return
		}
		if !active {
			// Signature still validates but the token was revoked (logout).
			writeError(w, http.StatusUnauthorized, "Please authenticate.")
			return
		}

		user, err := s.Users.FindByID(ctx, claims.Subject)
		if err != nil {
			log.Printf("auth: user lookup failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to resolve user")
			return
		}
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Please authenticate.")
			return
		}

		ctx = context.WithValue(ctx, authContextKey, &AuthContext{
			User:   user,
			Claims: claims,
			Token:  token,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRoles runs after requireAuth and enforces the route's allow-list.
func (s *Server) requireRoles(roles []auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac := authFromContext(r.Context())
			if ac == nil {
				writeError(w, http.StatusUnauthorized, "Please authenticate.")
				return
			}
			if !roleAllowed(roles, ac.User.Role) {
				writeError(w, http.StatusForbidden, "Access denied. Insufficient permissions.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authFromContext(ctx context.Context) *AuthContext {
	if val, ok := ctx.Value(authContextKey).(*AuthContext); ok {
		return val
	}
	return nil
}

// bearerToken extracts the session token from the Authorization header,
// falling back to the session cookie set at login. A present but malformed
// header fails closed rather than falling through to the cookie.
func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimPrefix(header, "Bearer ")
		}
		return ""
	}
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
