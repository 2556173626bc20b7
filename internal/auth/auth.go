// Package auth verifies HTTP API credentials.
package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the bcrypt cost factor
const BcryptCost = 12

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a password against a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Credentials is the single API account configured through http.username
// and http.password_hash.
type Credentials struct {
	Username     string
	PasswordHash string
}

// Enabled reports whether an account is configured.
func (c Credentials) Enabled() bool {
	return c.Username != ""
}

// Validate checks a basic auth username/password pair.
// The password is checked even when the username is wrong so both paths cost the same.
func (c Credentials) Validate(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passOK := CheckPassword(password, c.PasswordHash)
	return userOK && passOK
}
