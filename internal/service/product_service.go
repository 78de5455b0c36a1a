package service

import (
	"context"
	"math"
	"strings"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/util"
)

type ProductService struct {
	repo ports.ProductRepository
}

func NewProductService(repo ports.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) List(ctx context.Context, filter domain.ProductListFilter) (*domain.ProductPage, error) {
	filter = filter.Normalize()
	filter.Search = strings.TrimSpace(filter.Search)

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, domain.Internal("Failed to fetch products", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return &domain.ProductPage{
		Data:       products,
		Pagination: domain.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidProductID
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, domain.Internal("Failed to fetch products", err)
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	product, err := productFromInput(input)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrCategoryDoesNotExist
		}
		return nil, domain.Internal("Failed to create product", err)
	}
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, input domain.ProductInput) (*domain.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidProductID
	}
	product, err := productFromInput(input)
	if err != nil {
		return nil, err
	}
	product.ID = id

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, ErrProductNotFound
		case isForeignKeyViolation(err):
			return nil, ErrCategoryDoesNotExist
		}
		return nil, domain.Internal("Failed to update product", err)
	}
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidProductID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrProductNotFound
		}
		return domain.Internal("Failed to delete product", err)
	}
	return nil
}

// productFromInput applies the write contract shared by create and update:
// a name, a non-negative price kept to cents and a positive category id.
func productFromInput(input domain.ProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price == nil || input.CategoryID <= 0 {
		return nil, ErrProductFieldsRequired
	}
	price := *input.Price
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, ErrProductFieldsRequired
	}
	return &domain.Product{
		Name:        name,
		NameKey:     util.FoldKey(name),
		Description: trimOptional(input.Description),
		Price:       math.Round(price*100) / 100,
		ImageURL:    trimOptional(input.ImageURL),
		CategoryID:  input.CategoryID,
	}, nil
}
