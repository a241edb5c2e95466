package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// RandomSecret returns n random bytes encoded as unpadded URL-safe base64.
// Used to seed default signing secrets on first start.
func RandomSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
