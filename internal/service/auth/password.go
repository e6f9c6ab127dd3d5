package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// weakPasswordList contains common weak passwords that must be rejected.
var weakPasswordList = []string{
	"password",
	"123456",
	"12345678",
	"123456789",
	"qwerty",
	"abc123",
	"letmein",
	"welcome",
	"admin",
	"admin123",
	"password1",
	"iloveyou",
}

// keyboardPatterns are rejected when the password is a leading run of one of them.
var keyboardPatterns = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

// PasswordPolicy bounds acceptable passwords and the bcrypt work factor.
type PasswordPolicy struct {
	MinLength     int
	BcryptCost    int
	WeakPasswords []string
}

// DefaultPasswordPolicy returns a policy with bcrypt.DefaultCost and an 8 character minimum.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: 8, BcryptCost: bcrypt.DefaultCost}
}

// Validate rejects short, weak, repeated-character and keyboard-walk passwords.
func (p PasswordPolicy) Validate(pass string) error {
	if len(pass) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters", p.MinLength)
	}
	// bcrypt ignores everything past 72 bytes
	if len(pass) > 72 {
		return errors.New("password must be at most 72 bytes")
	}
	if isRepeatedChar(pass) {
		return errors.New("password must not be a single repeated character")
	}
	lower := strings.ToLower(pass)
	for _, pattern := range keyboardPatterns {
		if strings.HasPrefix(pattern, lower) {
			return errors.New("password must not be a keyboard pattern")
		}
	}
	for _, weak := range append(weakPasswordList, p.WeakPasswords...) {
		if lower == strings.ToLower(weak) {
			return errors.New("password is too common")
		}
	}
	return nil
}

// Hash returns the bcrypt hash of pass.
func (p PasswordPolicy) Hash(pass string) (string, error) {
	cost := p.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether pass matches the stored bcrypt hash.
func VerifyPassword(hash, pass string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass)) == nil
}

func isRepeatedChar(pass string) bool {
	if len(pass) == 0 {
		return false
	}
	first := pass[0]
	for i := 1; i < len(pass); i++ {
		if pass[i] != first {
			return false
		}
	}
	return true
}
