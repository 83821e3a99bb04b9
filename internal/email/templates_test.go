package email

import (
	"strings"
	"testing"
)

func TestPasswordReset_ContainsLinkAndExpiry(t *testing.T) {
	t.Parallel()

	content := PasswordReset("https://example.com/reset-password/abc123", 1)

	if content.Subject == "" {
		t.Fatal("subject should not be empty")
	}
	if !strings.Contains(content.Text, "https://example.com/reset-password/abc123") {
		t.Fatal("text body should contain the reset link")
	}
	if !strings.Contains(content.HTML, "href=\"https://example.com/reset-password/abc123\"") {
		t.Fatal("html body should link to the reset URL")
	}
	if !strings.Contains(content.Text, "1 hour(s)") {
		t.Fatal("text body should state the expiry window")
	}
}
