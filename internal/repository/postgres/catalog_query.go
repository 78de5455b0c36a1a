package postgres

import (
	"fmt"
	"strings"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/util"
)

const productColumns = `
            p.id,
            p.name,
            p.name_key,
            p.description,
            p.price::float8 AS price,
            p.image_url,
            p.category_id,
            c.name AS category_name,
            p.created_at,
            p.updated_at`

// catalogQuery is a FROM/JOIN/WHERE fragment with its positional arguments.
// The page query and the count query are both rendered from the same value,
// so their filters cannot drift apart.
type catalogQuery struct {
	from string
	args []any
}

func (q catalogQuery) placeholder() string {
	return fmt.Sprintf("$%d", len(q.args)+1)
}

// searchClause matches the folded search term anywhere in column. The term is
// LIKE-escaped so user input never acts as a wildcard.
func searchClause(column, placeholder string) string {
	return "\n        AND " + column + " LIKE '%' || " + placeholder + ` || '%' ESCAPE '\'`
}

func searchArg(search string) (string, bool) {
	key := util.FoldKey(search)
	if key == "" {
		return "", false
	}
	return util.EscapeLike(key), true
}

func productFilter(filter domain.ProductListFilter) catalogQuery {
	q := catalogQuery{args: make([]any, 0, 4)}
	var builder strings.Builder
	builder.WriteString(`
        FROM product p
        JOIN category c ON c.id = p.category_id
        WHERE 1 = 1`)

	if term, ok := searchArg(filter.Search); ok {
		builder.WriteString(searchClause("p.name_key", q.placeholder()))
		q.args = append(q.args, term)
	}
	if filter.CategoryID != nil {
		builder.WriteString("\n        AND p.category_id = " + q.placeholder())
		q.args = append(q.args, *filter.CategoryID)
	}

	q.from = builder.String()
	return q
}

func productOrderBy(filter domain.ProductListFilter) string {
	column := "p.name_key"
	if filter.SortBy == domain.ProductSortPrice {
		column = "p.price"
	}
	direction := "ASC"
	if filter.SortOrder == domain.SortDesc {
		direction = "DESC"
	}
	return fmt.Sprintf("\n        ORDER BY %s %s, p.created_at DESC, p.id DESC", column, direction)
}

// buildProductListQuery renders the page query and the matching count query
// for an already normalised filter.
func buildProductListQuery(filter domain.ProductListFilter) (string, []any, string, []any) {
	base := productFilter(filter)

	countSQL := "SELECT COUNT(*)" + base.from
	countArgs := append([]any(nil), base.args...)

	limitPH := base.placeholder()
	offsetPH := fmt.Sprintf("$%d", len(base.args)+2)
	offset := domain.Pagination{Page: filter.Page, Limit: filter.Limit}.Offset()

	dataSQL := "SELECT" + productColumns + base.from + productOrderBy(filter) +
		"\n        LIMIT " + limitPH + " OFFSET " + offsetPH
	dataArgs := append(append([]any(nil), base.args...), filter.Limit, offset)

	return dataSQL, dataArgs, countSQL, countArgs
}

func buildCategoryListQuery(search string) (string, []any) {
	var builder strings.Builder
	builder.WriteString(`
        SELECT id, name, name_key, description, created_at
        FROM category c
        WHERE 1 = 1`)
	var args []any
	if term, ok := searchArg(search); ok {
		builder.WriteString(searchClause("c.name_key", "$1"))
		args = append(args, term)
	}
	builder.WriteString("\n        ORDER BY c.created_at DESC, c.id DESC")
	return builder.String(), args
}
