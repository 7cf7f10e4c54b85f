package utils

import (
	"crypto/rand"
	"fmt"
)

// RandomString returns 16 lowercase hex characters.
func RandomString() (string, error) {
	b := make([]byte, 8)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("can't generate a random number: %w", err)
	}
	return fmt.Sprintf("%x", b), nil
}
