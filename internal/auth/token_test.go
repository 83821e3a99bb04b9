package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("super-secret"), time.Hour)

	token, jti, err := svc.Issue("user-123", RoleTrainer)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a non-empty token identifier")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Fatalf("subject mismatch: got %q", claims.Subject)
	}
	if claims.Role != RoleTrainer {
		t.Fatalf("role mismatch: got %q", claims.Role)
	}
	if claims.ID != jti {
		t.Fatalf("jti mismatch: got %q want %q", claims.ID, jti)
	}
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	svc := &TokenService{secret: []byte("secret"), ttl: -time.Second}

	token, _, err := svc.Issue("u1", RoleUser)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := NewTokenService([]byte("right-secret"), time.Hour).Issue("u2", RoleUser)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewTokenService([]byte("wrong-secret"), time.Hour).Verify(token)
	if !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("k"), time.Hour)

	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := svc.Verify(tok); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("token %q: expected ErrTokenMalformed, got %v", tok, err)
		}
	}
}

func TestNewTokenService_DefaultTTL(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("k"), 0)
	if svc.TTL() != 7*24*time.Hour {
		t.Fatalf("expected 7-day default TTL, got %v", svc.TTL())
	}
}
