package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const cost = 12 // bcrypt cost factor

// MinLength is the shortest password accepted at sign-up.
const MinLength = 6

var (
	ErrTooShort = errors.New("password too short")
	ErrMismatch = errors.New("passwords do not match")
)

// Check enforces the sign-up rules on a password and its confirmation.
func Check(password, confirm string) error {
	if len([]rune(password)) < MinLength {
		return ErrTooShort
	}
	if password != confirm {
		return ErrMismatch
	}
	return nil
}

// Hash hashes password using bcrypt
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// Verify compares password with hash
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
