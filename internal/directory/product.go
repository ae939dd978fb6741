package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ginzalimited/orderdesk/internal/order"
)

var ErrUnknownCategory = errors.New("unknown product category")

// Product is one catalog suggestion: the value of the category-specific
// column plus the optional width and unit of measure.
type Product struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Width string `db:"width" json:"width"`
	UOM   string `db:"uom" json:"uom"`
}

// ProductDirectory searches the catalog column mapped to a category.
type ProductDirectory interface {
	Search(ctx context.Context, category, query string) ([]Product, error)
}

const productSearchLimit = 50

type PostgresProductDirectory struct {
	db *sqlx.DB
}

func NewPostgresProductDirectory(db *sqlx.DB) *PostgresProductDirectory {
	return &PostgresProductDirectory{db: db}
}

// Search matches the query case-insensitively against the category's
// catalog column, ascending by that column, capped at 50 results. The
// column name comes from the static category map, never from input.
func (r *PostgresProductDirectory) Search(ctx context.Context, category, query string) ([]Product, error) {
	column, ok := order.CategoryColumns[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	q := fmt.Sprintf(`
		SELECT id, %[1]s AS name,
		       COALESCE(width, '') AS width,
		       COALESCE(uom, '') AS uom
		FROM products
		WHERE %[1]s IS NOT NULL AND %[1]s <> '' AND %[1]s ILIKE $1
		ORDER BY %[1]s ASC
		LIMIT $2`, column)

	pattern := "%" + query + "%"
	products := make([]Product, 0, productSearchLimit)
	if err := r.db.SelectContext(ctx, &products, q, pattern, productSearchLimit); err != nil {
		return nil, fmt.Errorf("failed to search products for category %s: %w", category, err)
	}

	return products, nil
}
