package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/repository/ports"
)

type ProductRepository struct {
	db *sqlx.DB
}

var _ ports.ProductRepository = (*ProductRepository)(nil)

func NewProductRepo(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context, filter domain.ProductListFilter) ([]domain.Product, int, error) {
	filter = filter.Normalize()
	dataSQL, dataArgs, countSQL, countArgs := buildProductListQuery(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, err
	}

	products := make([]domain.Product, 0)
	// Pages past the last row are empty without asking the database.
	if domain.NewPagination(filter.Page, filter.Limit, total).Offset() >= total {
		return products, total, nil
	}
	if err := r.db.SelectContext(ctx, &products, dataSQL, dataArgs...); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := "SELECT" + productColumns + `
        FROM product p
        JOIN category c ON c.id = p.category_id
        WHERE p.id = $1`
	var product domain.Product
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		return nil, err
	}
	return &product, nil
}

// Create and Update write the row and re-read it with the joined category
// name in one statement.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
        WITH p AS (
            INSERT INTO product (name, name_key, description, price, image_url, category_id)
            VALUES ($1, $2, $3, $4, $5, $6)
            RETURNING *
        )
        SELECT` + productColumns + `
        FROM p
        JOIN category c ON c.id = p.category_id`
	var created domain.Product
	err := r.db.GetContext(ctx, &created, query,
		product.Name, product.NameKey, product.Description, product.Price, product.ImageURL, product.CategoryID)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
        WITH p AS (
            UPDATE product
            SET name = $2,
                name_key = $3,
                description = $4,
                price = $5,
                image_url = $6,
                category_id = $7,
                updated_at = NOW()
            WHERE id = $1
            RETURNING *
        )
        SELECT` + productColumns + `
        FROM p
        JOIN category c ON c.id = p.category_id`
	var updated domain.Product
	err := r.db.GetContext(ctx, &updated, query,
		product.ID, product.Name, product.NameKey, product.Description, product.Price, product.ImageURL, product.CategoryID)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM product WHERE id = $1`
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
