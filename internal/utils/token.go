package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateShareToken produces a cryptographically random, URL-safe opaque
// token with the given number of bytes of entropy. The result is
// base64url-encoded without padding, so it is safe to embed in paths and
// query strings.
func GenerateShareToken(numBytes int) (string, error) {
	raw := make([]byte, numBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("error generating share token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}
