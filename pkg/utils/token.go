package utils

import (
	"crypto/rand"
	"encoding/base64"
)

const sessionTokenBytes = 32

// GenerateSessionToken returns an unpredictable opaque token suitable
// for use as a bearer session credential.
func GenerateSessionToken() (string, error) {
	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
