package domain

import "time"

type Product struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	NameKey      string    `db:"name_key" json:"-"`
	Description  *string   `db:"description" json:"description"`
	Price        float64   `db:"price" json:"price"`
	ImageURL     *string   `db:"image_url" json:"image_url"`
	CategoryID   int64     `db:"category_id" json:"category_id"`
	CategoryName string    `db:"category_name" json:"category_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ProductInput carries the writable fields of a product. Price is a pointer so
// that a missing price can be told apart from a free item.
type ProductInput struct {
	Name        string
	Description *string
	Price       *float64
	ImageURL    *string
	CategoryID  int64
}

type ProductSort string

const (
	ProductSortName  ProductSort = "name"
	ProductSortPrice ProductSort = "price"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type ProductListFilter struct {
	Page       int
	Limit      int
	Search     string
	CategoryID *int64
	SortBy     ProductSort
	SortOrder  SortOrder
}

// Normalize applies list defaults: page 1, limit 20 capped at MaxLimit, sort
// by name ascending. Unknown sort values fall back to the defaults.
func (f ProductListFilter) Normalize() ProductListFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	switch f.SortBy {
	case ProductSortName, ProductSortPrice:
	default:
		f.SortBy = ProductSortName
	}
	switch f.SortOrder {
	case SortAsc, SortDesc:
	default:
		f.SortOrder = SortAsc
	}
	if f.CategoryID != nil && *f.CategoryID <= 0 {
		f.CategoryID = nil
	}
	return f
}
