package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
)

func TestTOTPService_GenerateAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTOTPService("HealthVibe")

	secret, otpauth, qr, err := svc.Generate("a@x.com")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if secret == "" {
		t.Fatal("expected a non-empty secret")
	}
	if !strings.HasPrefix(otpauth, "otpauth://totp/") {
		t.Fatalf("unexpected provisioning URI: %q", otpauth)
	}
	if !strings.Contains(otpauth, "HealthVibe") {
		t.Fatalf("provisioning URI should carry the issuer: %q", otpauth)
	}
	if !strings.HasPrefix(qr, "data:image/png;base64,") {
		t.Fatalf("unexpected QR data URL prefix: %q", qr)
	}

	code, err := totp.GenerateCode(secret, time.Now())
	if err != nil {
		t.Fatalf("GenerateCode error: %v", err)
	}
	if !svc.Verify(secret, code) {
		t.Fatal("code for the current time step should verify")
	}
}

func TestTOTPService_AcceptsAdjacentStep(t *testing.T) {
	t.Parallel()

	svc := NewTOTPService("HealthVibe")
	secret, _, _, err := svc.Generate("a@x.com")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	// One step of drift in either direction is within the window.
	for _, offset := range []time.Duration{-30 * time.Second, 30 * time.Second} {
		code, err := totp.GenerateCode(secret, time.Now().Add(offset))
		if err != nil {
			t.Fatalf("GenerateCode error: %v", err)
		}
		if !svc.Verify(secret, code) {
			t.Fatalf("code at offset %v should verify", offset)
		}
	}
}

func TestTOTPService_RejectsDistantStep(t *testing.T) {
	t.Parallel()

	svc := NewTOTPService("HealthVibe")
	secret, _, _, err := svc.Generate("a@x.com")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	// Three steps of drift is outside the one-step window.
	for _, offset := range []time.Duration{-90 * time.Second, 90 * time.Second} {
		code, err := totp.GenerateCode(secret, time.Now().Add(offset))
		if err != nil {
			t.Fatalf("GenerateCode error: %v", err)
		}
		if svc.Verify(secret, code) {
			t.Fatalf("code at offset %v should not verify", offset)
		}
	}
}

func TestTOTPService_RejectsGarbage(t *testing.T) {
	t.Parallel()

	svc := NewTOTPService("HealthVibe")
	secret, _, _, err := svc.Generate("a@x.com")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if svc.Verify(secret, "000000") && svc.Verify(secret, "123456") {
		t.Fatal("arbitrary codes should not both verify")
	}
	if svc.Verify(secret, "not-a-code") {
		t.Fatal("non-numeric code should not verify")
	}
}
