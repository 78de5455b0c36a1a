package ports

import (
	"context"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
)

type CategoryRepository interface {
	List(ctx context.Context, search string) ([]domain.Category, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	// NameTaken reports whether another category already uses nameKey.
	NameTaken(ctx context.Context, nameKey string, excludeID int64) (bool, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryCache interface {
	Get(ctx context.Context, search string) ([]domain.Category, bool, error)
	Set(ctx context.Context, search string, categories []domain.Category) error
	Invalidate(ctx context.Context) error
}
