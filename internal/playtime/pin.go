package playtime

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPINMismatch is returned when a supplied PIN does not match the
// stored hash.
var ErrPINMismatch = errors.New("playtime: PIN does not match")

const minPINLength = 4

// HashPIN hashes a parent PIN for storage. The PIN must be at least
// four characters.
func HashPIN(pin string) (string, error) {
	if len(pin) < minPINLength {
		return "", fmt.Errorf("playtime: PIN must be at least %d characters", minPINLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("playtime: cannot hash PIN: %w", err)
	}
	return string(hash), nil
}

// VerifyPIN checks a PIN against a stored hash.
func VerifyPIN(hash, pin string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin))
	if err != nil {
		return ErrPINMismatch
	}
	return nil
}
