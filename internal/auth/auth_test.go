package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func hashForTest(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	return string(hash)
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$12$") {
		t.Fatalf("expected bcrypt cost 12 hash, got %q", hash)
	}
	if !CheckPassword("correct horse", hash) {
		t.Fatal("expected password to match its hash")
	}
	if CheckPassword("battery staple", hash) {
		t.Fatal("expected wrong password to be rejected")
	}
}

func TestCredentials_Validate(t *testing.T) {
	creds := Credentials{Username: "admin", PasswordHash: hashForTest(t, "secret")}

	if !creds.Enabled() {
		t.Fatal("expected credentials to be enabled")
	}
	if !creds.Validate("admin", "secret") {
		t.Fatal("expected valid credentials to pass")
	}
	if creds.Validate("admin", "wrong") {
		t.Fatal("expected wrong password to fail")
	}
	if creds.Validate("root", "secret") {
		t.Fatal("expected wrong username to fail")
	}
}

func TestCredentials_DisabledWithoutUsername(t *testing.T) {
	if (Credentials{}).Enabled() {
		t.Fatal("expected empty credentials to be disabled")
	}
	if (Credentials{}).Validate("", "") {
		t.Fatal("expected empty credentials to reject everything")
	}
}
