package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	// GeneratedPasswordLength is the length of system-issued passwords.
	GeneratedPasswordLength = 14

	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%&*"
	allChars    = lowerChars + upperChars + digitChars + symbolChars

	resetTokenBytes = 32
)

func randIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random: %w", err)
	}
	return int(v.Int64()), nil
}

// GeneratePassword returns a random password containing at least one
// lower-case letter, upper-case letter, digit and symbol.
func GeneratePassword() (string, error) {
	out := make([]byte, 0, GeneratedPasswordLength)
	for _, set := range []string{lowerChars, upperChars, digitChars, symbolChars} {
		i, err := randIndex(len(set))
		if err != nil {
			return "", err
		}
		out = append(out, set[i])
	}
	for len(out) < GeneratedPasswordLength {
		i, err := randIndex(len(allChars))
		if err != nil {
			return "", err
		}
		out = append(out, allChars[i])
	}

	// Fisher-Yates so the required classes are not always in front.
	for i := len(out) - 1; i > 0; i-- {
		j, err := randIndex(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

// GenerateResetToken returns 64 hex characters of randomness.
func GenerateResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random: %w", err)
	}
	return hex.EncodeToString(b), nil
}
