package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/util"
)

type CategoryService struct {
	repo  ports.CategoryRepository
	cache ports.CategoryCache
}

// NewCategoryService builds the service. cache may be nil.
func NewCategoryService(repo ports.CategoryRepository, cache ports.CategoryCache) *CategoryService {
	return &CategoryService{repo: repo, cache: cache}
}

// List returns every category whose folded name contains the folded search,
// newest first. Cache failures only cost a database round trip.
func (s *CategoryService) List(ctx context.Context, search string) ([]domain.Category, error) {
	logger := zerolog.Ctx(ctx)
	search = strings.TrimSpace(search)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, search)
		if err != nil {
			logger.Warn().Err(err).Msg("category cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	categories, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, domain.Internal("Failed to fetch categories", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, search, categories); err != nil {
			logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	category, err := categoryFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, category.NameKey, 0, "Failed to create category"); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCategoryNameExists
		}
		return nil, domain.Internal("Failed to create category", err)
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, input domain.CategoryInput) (*domain.Category, error) {
	if id <= 0 {
		return nil, ErrInvalidCategoryID
	}
	category, err := categoryFromInput(input)
	if err != nil {
		return nil, err
	}
	category.ID = id
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if isNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, domain.Internal("Failed to update category", err)
	}
	if err := s.ensureNameFree(ctx, category.NameKey, id, "Failed to update category"); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, ErrCategoryNotFound
		case isUniqueViolation(err):
			return nil, ErrCategoryNameExists
		}
		return nil, domain.Internal("Failed to update category", err)
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidCategoryID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case isNotFound(err):
			return ErrCategoryNotFound
		case isForeignKeyViolation(err):
			return ErrCategoryInUse
		}
		return domain.Internal("Failed to delete category", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, nameKey string, excludeID int64, failure string) error {
	taken, err := s.repo.NameTaken(ctx, nameKey, excludeID)
	if err != nil {
		return domain.Internal(failure, err)
	}
	if taken {
		return ErrCategoryNameExists
	}
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("category cache invalidation failed")
	}
}

func categoryFromInput(input domain.CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	return &domain.Category{
		Name:        name,
		NameKey:     util.FoldKey(name),
		Description: trimOptional(input.Description),
	}, nil
}

// trimOptional trims s and maps blank values to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
