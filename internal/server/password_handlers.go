package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"healthvibe/internal/auth"
	"healthvibe/internal/email"
)

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validateStruct(req); errs != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}

	ctx := r.Context()
	user, err := s.Users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		log.Printf("forgot-password: lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to process request")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found with this email.")
		return
	}

	token, err := randomToken(32)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	// Storing a new digest overwrites any outstanding one, so only the
	// newest token is ever valid.
	expires := time.Now().Add(s.Config.ResetTokenTTL)
	if err := s.Users.SetPasswordReset(ctx, user.ID, auth.HashString(token), expires); err != nil {
		log.Printf("forgot-password: store token failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to store token")
		return
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", s.Config.BaseURL, token)
	content := email.PasswordReset(resetLink, int(s.Config.ResetTokenTTL.Hours()))
	if err := s.Mailer.Send(ctx, user.Email, content.Subject, content.Text, content.HTML); err != nil {
		// Delivery is best effort; the mail collaborator owns retries.
		log.Printf("forgot-password: send failed for %s: %v", user.Email, err)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Password reset link sent to your email.",
	})
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "Token is required")
		return
	}

	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validateStruct(req); errs != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}

	ctx := r.Context()
	user, err := s.Users.FindByResetToken(ctx, auth.HashString(token))
	if err != nil {
		log.Printf("reset-password: lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}
	if user == nil {
		writeError(w, http.StatusBadRequest, "Invalid or expired token.")
		return
	}

	hashed, err := s.Hasher.Hash(req.Password)
	if err != nil {
		log.Printf("reset-password: hash failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	if err := s.Users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		log.Printf("reset-password: update failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	// A completed reset invalidates every outstanding session for the
	// account; whoever held the old password loses access now.
	if err := s.Users.DeleteSessionTokens(ctx, user.ID); err != nil {
		log.Printf("reset-password: revoke sessions failed: %v", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Password has been reset successfully.",
	})
}
