package util

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordMinLength = 8
	// PasswordMaxBytes is the bcrypt input limit.
	PasswordMaxBytes = 72
	PasswordCost     = 10
)

var (
	ErrWeakPassword    = errors.New("password must be at least 8 characters and include letters and numbers")
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

// ValidatePassword requires a minimum length plus at least one letter and one
// digit, and rejects input bcrypt cannot hash.
func ValidatePassword(password string) error {
	if len(password) > PasswordMaxBytes {
		return ErrPasswordTooLong
	}
	if len([]rune(password)) < PasswordMinLength {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}

func HashPassword(password string) ([]byte, error) {
	if len(password) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	return bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
}

func VerifyPassword(password string, hash []byte) bool {
	if len(password) == 0 || len(hash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
