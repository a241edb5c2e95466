package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"
)

// Fingerprint returns a hex SHA-256 digest of v's JSON encoding. Map keys are
// encoded in sorted order, so equal documents always share a fingerprint.
// Used as the ETag of the configuration document.
func Fingerprint(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("error encoding value for fingerprint: %w", err)
	}

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
