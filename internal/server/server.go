package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"healthvibe/internal/auth"
	"healthvibe/internal/config"
)

// UserStore is the persistence surface the handlers need; implemented by
// *auth.UserRepository and by in-memory fakes in tests.
type UserStore interface {
	Create(ctx context.Context, u *auth.User) error
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
	FindByEmailOrPhone(ctx context.Context, identifier string) (*auth.User, error)
	FindByID(ctx context.Context, id string) (*auth.User, error)

	AddSessionToken(ctx context.Context, userID, jti string) error
	RemoveSessionToken(ctx context.Context, userID, jti string) error
	HasSessionToken(ctx context.Context, userID, jti string) (bool, error)
	DeleteSessionTokens(ctx context.Context, userID string) error

	SetTwoFactorSecret(ctx context.Context, userID, secret string) error
	DisableTwoFactor(ctx context.Context, userID string) error

	SetPasswordReset(ctx context.Context, userID, tokenDigest string, expires time.Time) error
	FindByResetToken(ctx context.Context, tokenDigest string) (*auth.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

type LoginLimiter interface {
	AllowLogin(ctx context.Context, ip string) (bool, error)
}

type Server struct {
	Users          UserStore
	Tokens         *auth.TokenService
	TOTP           auth.TOTPVerifier
	Hasher         auth.PasswordHasher
	Limiter        LoginLimiter
	Mailer         Mailer
	Config         config.Config
	trustedProxies []net.IPNet
}

func NewServer(cfg config.Config, users UserStore, tokens *auth.TokenService, totp auth.TOTPVerifier, hasher auth.PasswordHasher, limiter LoginLimiter, mailer Mailer) *Server {
	return &Server{
		Users:          users,
		Tokens:         tokens,
		TOTP:           totp,
		Hasher:         hasher,
		Limiter:        limiter,
		Mailer:         mailer,
		Config:         cfg,
		trustedProxies: parseProxyCIDRs(cfg.TrustedProxies),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	formatter := &middleware.DefaultLogFormatter{
		Logger:  log.New(log.Writer(), "", log.Flags()),
		NoColor: true,
	}
	r.Use(middleware.RequestLogger(formatter))
	r.Use(middleware.Recoverer)
	r.Use(secureHeaders)

	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
	r.Post("/forgot-password", s.handleForgotPassword)
	r.Post("/reset-password/{token}", s.handleResetPassword)

	r.Group(func(pr chi.Router) {
		pr.Use(s.requireAuth)

		pr.With(s.requireRoles(accessRoles(http.MethodPost, "/enable-2fa"))).Post("/enable-2fa", s.handleEnableTwoFactor)
		pr.With(s.requireRoles(accessRoles(http.MethodPost, "/disable-2fa"))).Post("/disable-2fa", s.handleDisableTwoFactor)
		pr.With(s.requireRoles(accessRoles(http.MethodPost, "/logout"))).Post("/logout", s.handleLogout)
		pr.With(s.requireRoles(accessRoles(http.MethodGet, "/me"))).Get("/me", s.handleMe)

		pr.With(s.requireRoles(accessRoles(http.MethodGet, "/admin-dashboard"))).Get("/admin-dashboard", s.handleAdminDashboard)
		pr.With(s.requireRoles(accessRoles(http.MethodGet, "/trainer-dashboard"))).Get("/trainer-dashboard", s.handleTrainerDashboard)
	})

	return r
}
