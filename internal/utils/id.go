package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateSecureToken returns n random bytes encoded as unpadded base64url.
// Used for OAuth state nonces and throwaway passwords.
func GenerateSecureToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
