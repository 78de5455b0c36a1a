package util

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTManagerGenerateAndParse(t *testing.T) {
	manager := NewJWTManager("top-secret", time.Hour)

	userID := uuid.New()
	token, expiresAt, err := manager.Generate(userID, "reader@example.com")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token to be non-empty")
	}
	if d := time.Until(expiresAt); d < 59*time.Minute || d > time.Hour {
		t.Fatalf("expected expiry about one hour ahead, got %s", d)
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Subject != userID.String() {
		t.Fatalf("expected subject %s, got %s", userID, claims.Subject)
	}
	if claims.Email != "reader@example.com" {
		t.Fatalf("unexpected email claim %q", claims.Email)
	}
}

func TestJWTManagerParseExpiredToken(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return base }

	token, _, err := manager.Generate(uuid.New(), "reader@example.com")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	manager.now = func() time.Time { return base.Add(time.Hour + time.Second) }
	if _, err := manager.Parse(token); err == nil {
		t.Fatalf("expected parse error for expired token")
	}
}

func TestJWTManagerRejectsForeignSecret(t *testing.T) {
	token, _, err := NewJWTManager("one", time.Hour).Generate(uuid.New(), "a@b.co")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, err := NewJWTManager("two", time.Hour).Parse(token); err == nil {
		t.Fatalf("expected signature mismatch to fail")
	}
}
