package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
)

type PasswordResetRepository interface {
	// Replace drops every pending reset of the user and stores a new one in a
	// single transaction.
	Replace(ctx context.Context, userID uuid.UUID, otpHash, otpSalt []byte, expiresAt time.Time) (*domain.PasswordReset, error)
	// FindActiveByEmail returns the pending reset of the user with that email
	// that has not expired at now, or sql.ErrNoRows.
	FindActiveByEmail(ctx context.Context, email string, now time.Time) (*domain.PasswordReset, error)
	Delete(ctx context.Context, id int64) error
	// Consume sets the new password hash and deletes the reset atomically. It
	// returns sql.ErrNoRows when the reset was already consumed.
	Consume(ctx context.Context, resetID int64, userID uuid.UUID, passwordHash []byte) error
}
