package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, email string, passwordHash []byte) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
