package util

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if len(hash) == 0 {
		t.Fatalf("expected hash to be populated")
	}
	if !VerifyPassword("s3cretpass", hash) {
		t.Fatalf("expected password verification to succeed")
	}
	if VerifyPassword("wrongpass1", hash) {
		t.Fatalf("expected password verification to fail for wrong password")
	}
}

func TestHashPasswordEmptyInput(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatalf("expected error when password empty")
	}
	if VerifyPassword("", []byte("x")) {
		t.Fatalf("expected empty password to never verify")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := map[string]bool{
		"abc12345":    true,
		"Passw0rd":    true,
		"short1":      false,
		"lettersonly": false,
		"12345678":    false,
		"ពាក្យ12345":  true,
	}
	for pw, ok := range cases {
		err := ValidatePassword(pw)
		if ok && err != nil {
			t.Fatalf("expected %q to be accepted, got %v", pw, err)
		}
		if !ok && !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("expected %q to be rejected, got %v", pw, err)
		}
	}
}

func TestValidatePasswordBcryptLimit(t *testing.T) {
	atLimit := strings.Repeat("a", PasswordMaxBytes-1) + "1"
	if err := ValidatePassword(atLimit); err != nil {
		t.Fatalf("expected 72-byte password to be accepted, got %v", err)
	}
	if _, err := HashPassword(atLimit); err != nil {
		t.Fatalf("expected 72-byte password to hash, got %v", err)
	}
	if err := ValidatePassword(atLimit + "b"); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected 73-byte password to be rejected, got %v", err)
	}
}
