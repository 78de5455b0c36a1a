package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/ports"
)

type CategoryRepository struct {
	db *sqlx.DB
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

func NewCategoryRepo(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context, search string) ([]domain.Category, error) {
	query, args := buildCategoryListQuery(search)
	categories := make([]domain.Category, 0)
	if err := r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	const query = `
        SELECT id, name, name_key, description, created_at
        FROM category
        WHERE id = $1
    `
	var category domain.Category
	if err := r.db.GetContext(ctx, &category, query, id); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) NameTaken(ctx context.Context, nameKey string, excludeID int64) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM category WHERE name_key = $1 AND id <> $2
        )
    `
	var taken bool
	if err := r.db.GetContext(ctx, &taken, query, nameKey, excludeID); err != nil {
		return false, err
	}
	return taken, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	const query = `
        INSERT INTO category (name, name_key, description)
        VALUES ($1, $2, $3)
        RETURNING id, name, name_key, description, created_at
    `
	var created domain.Category
	if err := r.db.QueryRowxContext(ctx, query, category.Name, category.NameKey, category.Description).StructScan(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	const query = `
        UPDATE category
        SET name = $2,
            name_key = $3,
            description = $4
        WHERE id = $1
        RETURNING id, name, name_key, description, created_at
    `
	var updated domain.Category
	if err := r.db.QueryRowxContext(ctx, query, category.ID, category.Name, category.NameKey, category.Description).StructScan(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM category WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
