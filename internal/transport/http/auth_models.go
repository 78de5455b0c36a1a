package http

import (
	"time"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Invalid credentials"`
}

// MessageResponse is returned by auth endpoints that only confirm an action.
type MessageResponse struct {
	Message string `json:"message" example:"OTP sent to email"`
}

// AuthUser is the public view of an account.
type AuthUser struct {
	ID    string `json:"id" example:"9fd13fd2-63c5-4f29-a210-4a1a8e285f74"`
	Email string `json:"email" example:"reader@example.com"`
}

// AuthTokenResponse is returned by login.
type AuthTokenResponse struct {
	Token     string   `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt string   `json:"expires_at" example:"2024-01-02T09:30:00Z"`
	User      AuthUser `json:"user"`
}

type CredentialsRequest struct {
	Email    string `json:"email" example:"reader@example.com"`
	Password string `json:"password" example:"bookworm42"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" example:"reader@example.com"`
}

// ResetPasswordRequest keeps the camelCase newPassword field existing clients send.
type ResetPasswordRequest struct {
	Email       string `json:"email" example:"reader@example.com"`
	OTP         string `json:"otp" example:"123456"`
	NewPassword string `json:"newPassword" example:"bookworm43"`
}

func toAuthUser(user *domain.User) AuthUser {
	return AuthUser{ID: user.ID.String(), Email: user.Email}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
