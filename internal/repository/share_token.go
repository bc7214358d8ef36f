package repository

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// shareTokenBytes gives 144 bits of entropy; uniqueness is still enforced by
// the unique index on surveys.share_token.
const shareTokenBytes = 18

// NewShareToken returns an opaque, URL-safe token with no padding.
func NewShareToken() (string, error) {
	b := make([]byte, shareTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
