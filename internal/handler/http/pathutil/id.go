package pathutil

import (
	"errors"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

const maxIDLength = 64

// ExtractID returns the single path segment following prefix.
// Empty segments, nested paths and segments longer than 64 bytes are rejected.
//
//	id, err := ExtractID("/api/newsletters/3f0c6a9e", "/api/newsletters/")
//	// "3f0c6a9e", nil
func ExtractID(path, prefix string) (string, error) {
	if !strings.HasPrefix(path, prefix) {
		return "", ErrInvalidID
	}
	id := strings.TrimSuffix(strings.TrimPrefix(path, prefix), "/")
	if id == "" || len(id) > maxIDLength || strings.Contains(id, "/") {
		return "", ErrInvalidID
	}
	return id, nil
}
