package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateCode generates the 6-digit code mailed for account confirmation
// and password resets.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
