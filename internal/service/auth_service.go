package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/util"
)

type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, email, otp string) error
}

type AuthService struct {
	users     ports.UserRepository
	resets    ports.PasswordResetRepository
	mailer    PasswordResetSender
	jwt       *util.JWTManager
	resetTTL  time.Duration
	otpLength int
	now       func() time.Time
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

func NewAuthService(users ports.UserRepository, resets ports.PasswordResetRepository, mailer PasswordResetSender, jwtManager *util.JWTManager, resetTTL time.Duration, otpLength int) *AuthService {
	if resetTTL <= 0 {
		resetTTL = 15 * time.Minute
	}
	if otpLength <= 0 {
		otpLength = 6
	}
	return &AuthService{
		users:     users,
		resets:    resets,
		mailer:    mailer,
		jwt:       jwtManager,
		resetTTL:  resetTTL,
		otpLength: otpLength,
		now:       time.Now,
	}
}

func (s *AuthService) Signup(ctx context.Context, email, password string) (*domain.User, error) {
	email = util.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrEmailPasswordRequired
	}
	if !util.ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := util.ValidatePassword(password); err != nil {
		if errors.Is(err, util.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, ErrPasswordTooWeak
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyUsed
	} else if !isNotFound(err) {
		return nil, domain.Internal("Signup failed", err)
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, domain.Internal("Signup failed", err)
	}
	user, err := s.users.Create(ctx, email, hash)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, domain.Internal("Signup failed", err)
	}
	zerolog.Ctx(ctx).Info().Str("user_id", user.ID.String()).Msg("user registered")
	return user, nil
}

// Login answers an unknown email and a wrong password identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = util.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrEmailPasswordRequired
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, domain.Internal("Login failed", err)
	}
	if !util.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return nil, domain.Internal("Login failed", err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Authenticate resolves a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(strings.TrimSpace(token))
	if err != nil {
		return nil, ErrUnauthorized.Wrap(err)
	}
	return s.userFromClaims(ctx, claims)
}

// UserFromClaims resolves claims already verified by middleware.
func (s *AuthService) UserFromClaims(ctx context.Context, claims *util.Claims) (*domain.User, error) {
	if claims == nil {
		return nil, ErrUnauthorized
	}
	return s.userFromClaims(ctx, claims)
}

func (s *AuthService) userFromClaims(ctx context.Context, claims *util.Claims) (*domain.User, error) {
	id := claims.UserID
	if id == uuid.Nil {
		parsed, err := uuid.Parse(claims.Subject)
		if err != nil {
			return nil, ErrUnauthorized
		}
		id = parsed
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnauthorized
		}
		return nil, domain.Internal("Authentication failed", err)
	}
	return user, nil
}

func (s *AuthService) JWT() *util.JWTManager {
	return s.jwt
}

// RequestPasswordReset stores a fresh code for the user, replacing any pending
// one, then mails it. If the mail cannot be handed off the new code is deleted
// again so that no undeliverable code stays valid.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	logger := zerolog.Ctx(ctx)
	email = util.NormalizeEmail(email)
	if email == "" {
		return ErrEmailRequired
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return ErrEmailNotFound
		}
		return domain.Internal("Failed to process request", err)
	}

	otp, err := util.GenerateNumericOTP(s.otpLength)
	if err != nil {
		return domain.Internal("Failed to process request", err)
	}
	hash, salt, err := util.DeriveOTP(otp)
	if err != nil {
		return domain.Internal("Failed to process request", err)
	}

	expiresAt := s.now().Add(s.resetTTL)
	reset, err := s.resets.Replace(ctx, user.ID, hash, salt, expiresAt)
	if err != nil {
		return domain.Internal("Failed to process request", err)
	}

	sendErr := errors.New("no password reset sender configured")
	if s.mailer != nil {
		sendErr = s.mailer.SendPasswordReset(ctx, user.Email, otp)
	}
	if sendErr != nil {
		if delErr := s.resets.Delete(ctx, reset.ID); delErr != nil {
			logger.Error().Err(delErr).Int64("reset_id", reset.ID).Msg("failed to withdraw undelivered reset code")
		}
		return domain.Internal("Failed to send OTP email", sendErr)
	}
	logger.Info().Str("user_id", user.ID.String()).Time("expires_at", expiresAt).Msg("password reset code issued")
	return nil
}

// ResetPassword consumes a pending code. Unknown email, wrong code and expired
// code all yield ErrResetOTPInvalid.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	email = util.NormalizeEmail(email)
	otp = strings.TrimSpace(otp)
	if email == "" || otp == "" || newPassword == "" {
		return ErrResetFieldsRequired
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		if errors.Is(err, util.ErrPasswordTooLong) {
			return ErrPasswordTooLong
		}
		return ErrPasswordTooWeak
	}

	reset, err := s.resets.FindActiveByEmail(ctx, email, s.now())
	if err != nil {
		if isNotFound(err) {
			return ErrResetOTPInvalid
		}
		return domain.Internal("Password reset failed", err)
	}
	if reset.Expired(s.now()) || !util.VerifyOTP(otp, reset.OTPSalt, reset.OTPHash) {
		return ErrResetOTPInvalid
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return domain.Internal("Password reset failed", err)
	}
	if err := s.resets.Consume(ctx, reset.ID, reset.UserID, hash); err != nil {
		if isNotFound(err) {
			return ErrResetOTPInvalid
		}
		return domain.Internal("Password reset failed", err)
	}
	zerolog.Ctx(ctx).Info().Str("user_id", reset.UserID.String()).Msg("password reset completed")
	return nil
}
