package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/ports"
)

type PasswordResetRepository struct {
	db *sqlx.DB
}

var _ ports.PasswordResetRepository = (*PasswordResetRepository)(nil)

func NewPasswordResetRepo(db *sqlx.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

// Replace serialises concurrent requests for the same user on the user row
// lock, so exactly one reset survives.
func (r *PasswordResetRepository) Replace(ctx context.Context, userID uuid.UUID, otpHash, otpSalt []byte, expiresAt time.Time) (*domain.PasswordReset, error) {
	const lockUser = `SELECT id FROM user_account WHERE id = $1 FOR UPDATE`
	const deleteExisting = `DELETE FROM password_reset WHERE user_id = $1`
	const insert = `
        INSERT INTO password_reset (user_id, otp_hash, otp_salt, expires_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, user_id, otp_hash, otp_salt, expires_at, created_at
    `

	var reset domain.PasswordReset
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var locked uuid.UUID
		if err := tx.GetContext(ctx, &locked, lockUser, userID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, deleteExisting, userID); err != nil {
			return err
		}
		return tx.QueryRowxContext(ctx, insert, userID, otpHash, otpSalt, expiresAt).StructScan(&reset)
	})
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *PasswordResetRepository) FindActiveByEmail(ctx context.Context, email string, now time.Time) (*domain.PasswordReset, error) {
	const query = `
        SELECT pr.id, pr.user_id, pr.otp_hash, pr.otp_salt, pr.expires_at, pr.created_at
        FROM password_reset pr
        JOIN user_account u ON u.id = pr.user_id
        WHERE lower(u.email) = lower($1) AND pr.expires_at > $2
        ORDER BY pr.created_at DESC
        LIMIT 1
    `
	var reset domain.PasswordReset
	if err := r.db.GetContext(ctx, &reset, query, email, now); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *PasswordResetRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM password_reset WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PasswordResetRepository) Consume(ctx context.Context, resetID int64, userID uuid.UUID, passwordHash []byte) error {
	const deleteReset = `DELETE FROM password_reset WHERE id = $1 AND user_id = $2`
	const updatePassword = `
        UPDATE user_account
        SET password_hash = $2,
            updated_at = NOW()
        WHERE id = $1
    `
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, deleteReset, resetID, userID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return sql.ErrNoRows
		}
		res, err = tx.ExecContext(ctx, updatePassword, userID, passwordHash)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}
