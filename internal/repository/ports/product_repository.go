package ports

import (
	"context"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
)

type ProductRepository interface {
	// List returns one page of products and the total number of matches for
	// the same filter.
	List(ctx context.Context, filter domain.ProductListFilter) ([]domain.Product, int, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
