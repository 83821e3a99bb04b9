package server

import (
	"log"
	"net/http"
)

func (s *Server) handleEnableTwoFactor(w http.ResponseWriter, r *http.Request) {
	ac := authFromContext(r.Context())
	if ac == nil {
		writeError(w, http.StatusUnauthorized, "Please authenticate.")
		return
	}

	if ac.User.TwoFactorEnabled {
		writeError(w, http.StatusBadRequest, "Two-factor authentication is already enabled.")
		return
	}

	secret, otpauth, qr, err := s.TOTP.Generate(ac.User.Email)
	if err != nil {
		log.Printf("enable-2fa: generate secret failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to set up two-factor authentication")
		return
	}

	if err := s.Users.SetTwoFactorSecret(r.Context(), ac.User.ID, secret); err != nil {
		log.Printf("enable-2fa: store secret failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to set up two-factor authentication")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":    "Two-factor authentication setup complete.",
		"secret":     secret,
		"otpauthUrl": otpauth,
		"qrCode":     qr,
	})
}

func (s *Server) handleDisableTwoFactor(w http.ResponseWriter, r *http.Request) {
	ac := authFromContext(r.Context())
	if ac == nil {
		writeError(w, http.StatusUnauthorized, "Please authenticate.")
		return
	}

	if !ac.User.TwoFactorEnabled {
		writeError(w, http.StatusBadRequest, "Two-factor authentication is not enabled.")
		return
	}

	// Secret and flag are cleared together; one never changes without the other.
	if err := s.Users.DisableTwoFactor(r.Context(), ac.User.ID); err != nil {
		log.Printf("disable-2fa: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to disable two-factor authentication")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Two-factor authentication has been disabled.",
	})
}
