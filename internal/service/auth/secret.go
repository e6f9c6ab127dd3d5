package auth

import (
	"errors"
	"fmt"
)

// minSecretLength is 256 bits for HS256.
const minSecretLength = 32

var weakSecrets = []string{"secret", "password", "test", "admin", "default", "changeme"}

// ValidateSessionSecret enforces the signing secret requirements checked at startup.
func ValidateSessionSecret(secret string) error {
	if secret == "" {
		return errors.New("session secret must be set")
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf("session secret must be at least %d characters (256 bits)", minSecretLength)
	}
	for _, weak := range weakSecrets {
		if isRepetitionOf(secret, weak) {
			return fmt.Errorf("session secret must not be a repetition of %q", weak)
		}
	}
	if isRepeatedChar(secret) {
		return errors.New("session secret must not be a single repeated character")
	}
	return nil
}

// isRepetitionOf reports whether s is unit repeated one or more times.
func isRepetitionOf(s, unit string) bool {
	if len(s)%len(unit) != 0 {
		return false
	}
	for i := 0; i < len(s); i += len(unit) {
		if s[i:i+len(unit)] != unit {
			return false
		}
	}
	return true
}
