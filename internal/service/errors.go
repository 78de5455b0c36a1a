package service

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
)

var (
	ErrEmailPasswordRequired = domain.Validation("Email and password are required")
	ErrInvalidEmail          = domain.Validation("Invalid email format")
	ErrPasswordTooWeak       = domain.Validation("Password must be at least 8 characters and include letters and numbers")
	ErrPasswordTooLong       = domain.Validation("Password must be at most 72 bytes")
	ErrEmailAlreadyUsed      = domain.Conflict("Email already exists")
	ErrInvalidCredentials    = domain.Auth("Invalid credentials")
	ErrUnauthorized          = domain.Auth("unauthorized")
	ErrEmailRequired         = domain.Validation("Email is required")
	ErrEmailNotFound         = domain.NotFound("Email not found")
	ErrResetFieldsRequired   = domain.Validation("All fields are required")
	ErrResetOTPInvalid       = domain.Validation("Invalid or expired OTP")

	ErrCategoryNameRequired = domain.Validation("Category name is required")
	ErrCategoryNameExists   = domain.Conflict("Category name already exists")
	ErrCategoryNotFound     = domain.NotFound("Category not found")
	ErrInvalidCategoryID    = domain.Validation("Invalid category ID")
	ErrCategoryInUse        = domain.Conflict("Category has products")

	ErrProductFieldsRequired = domain.Validation("Name, price, and category are required")
	ErrProductNotFound       = domain.NotFound("Product not found")
	ErrInvalidProductID      = domain.Validation("Invalid product ID")
	ErrCategoryDoesNotExist  = domain.Validation("Category does not exist")

	ErrImageRequired        = domain.Validation("No image uploaded")
	ErrImageTooLarge        = domain.Validation("File too large")
	ErrImageUnsupportedType = domain.Validation("Only image files allowed")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}

// pgErrorCode extracts the SQLSTATE from either driver's error type.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
