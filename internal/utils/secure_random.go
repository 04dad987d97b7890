package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// RandomPassword returns a URL safe password built from lengthInBytes random
// bytes; 12 bytes give a 16 character password.
func RandomPassword(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
