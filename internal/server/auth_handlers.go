package server

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"healthvibe/internal/auth"
)

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,e164"`
	Password  string `json:"password" validate:"required,min=6"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validateStruct(req); errs != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}

	ctx := r.Context()
	email := normalizeEmail(req.Email)

	existing, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		log.Printf("register: lookup by email failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to check user")
		return
	}
	if existing != nil {
		writeError(w, http.StatusBadRequest, "User already exists with this email.")
		return
	}

	hashed, err := s.Hasher.Hash(req.Password)
	if err != nil {
		log.Printf("register: hash failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := &auth.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hashed,
		Role:         auth.RoleUser,
		Membership:   auth.MembershipBasic,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		// The unique constraints catch an insert racing the lookup above.
		if errors.Is(err, auth.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "User already exists with this email.")
			return
		}
		if errors.Is(err, auth.ErrDuplicatePhone) {
			writeError(w, http.StatusBadRequest, "User already exists with this phone number.")
			return
		}
		log.Printf("register: create user failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := s.issueSession(r, w, user)
	if err != nil {
		log.Printf("register: issue session failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user":  userPayload(user),
		"token": token,
	})
}

type loginRequest struct {
	EmailOrPhone   string `json:"emailOrPhone" validate:"required"`
	Password       string `json:"password" validate:"required"`
	TwoFactorToken string `json:"twoFactorToken,omitempty"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validateStruct(req); errs != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}

	ctx := r.Context()
	ip := clientIP(r, s.trustedProxies)

	// Every attempt counts toward the window before credentials are looked
	// at, so the limit cannot be probed with valid passwords either.
	allowed, err := s.Limiter.AllowLogin(ctx, ip)
	if err != nil {
		log.Printf("login: rate limit check failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if !allowed {
		writeError(w, http.StatusTooManyRequests, "Too many login attempts from this IP, please try again after 15 minutes")
		return
	}

	// A request that already carries a valid, unrevoked token is a no-op.
	if token := bearerToken(r); token != "" {
		if claims, err := s.Tokens.Verify(token); err == nil {
			if active, _ := s.Users.HasSessionToken(ctx, claims.Subject, claims.ID); active {
				writeJSON(w, http.StatusOK, map[string]string{"message": "User is already logged in."})
				return
			}
		}
	}

	identifier := strings.TrimSpace(req.EmailOrPhone)
	if strings.Contains(identifier, "@") {
		identifier = normalizeEmail(identifier)
	}

	user, err := s.Users.FindByEmailOrPhone(ctx, identifier)
	if err != nil {
		log.Printf("login: lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if user == nil || !s.Hasher.Compare(user.PasswordHash, req.Password) {
		// Deliberately uniform: no distinction between unknown identifier and
		// wrong password.
		writeError(w, http.StatusBadRequest, "Unable to login. Invalid credentials.")
		return
	}

	if user.TwoFactorEnabled {
		if req.TwoFactorToken == "" {
			writeError(w, http.StatusBadRequest, "Two-factor authentication token is required.")
			return
		}
		if user.TwoFactorSecret == nil || !s.TOTP.Verify(*user.TwoFactorSecret, req.TwoFactorToken) {
			writeError(w, http.StatusUnauthorized, "Invalid two-factor authentication token.")
			return
		}
	}

	if _, err := s.issueSession(r, w, user); err != nil {
		log.Printf("login: issue session failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": userPayload(user),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	ac := authFromContext(r.Context())
	if ac == nil {
		writeError(w, http.StatusUnauthorized, "Please authenticate.")
		return
	}

	if err := s.Users.RemoveSessionToken(r.Context(), ac.User.ID, ac.Claims.ID); err != nil {
		log.Printf("logout: revoke failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	auth.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully."})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	ac := authFromContext(r.Context())
	if ac == nil {
		writeError(w, http.StatusUnauthorized, "Please authenticate.")
		return
	}

	writeJSON(w, http.StatusOK, userPayload(ac.User))
}

// issueSession signs a token, records its identifier in the user's session
// collection, and sets the session cookie.
func (s *Server) issueSession(r *http.Request, w http.ResponseWriter, user *auth.User) (string, error) {
	token, jti, err := s.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", err
	}
	if err := s.Users.AddSessionToken(r.Context(), user.ID, jti); err != nil {
		return "", err
	}

	auth.SetSessionCookie(w, token, time.Now().Add(s.Tokens.TTL()))
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
