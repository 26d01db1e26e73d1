package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateCredential generates a cryptographically secure opaque session
// credential. 32 bytes = 256 bits of entropy.
func GenerateCredential() (string, error) {
	const size = 32

	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("session: failed to generate credential: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
