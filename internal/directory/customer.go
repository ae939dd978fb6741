package directory

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Customer is the normalized customer-directory record. Boundary
// looseness (nullable columns) is absorbed here via COALESCE so the
// engine only ever sees fixed shapes.
type Customer struct {
	ID            string `db:"id" json:"id"`
	Branch        string `db:"branch" json:"branch"`
	Name          string `db:"customer_name" json:"customer_name"`
	MobNo         string `db:"mob_no" json:"mob_no"`
	Email         string `db:"email_id" json:"email_id"`
	Address       string `db:"address" json:"address"`
	AccountStatus string `db:"account_status" json:"account_status"`
}

// CustomerDirectory searches customers by free text within a branch.
type CustomerDirectory interface {
	Search(ctx context.Context, branch, query string) ([]Customer, error)
}

const customerSearchLimit = 15

type PostgresCustomerDirectory struct {
	db *sqlx.DB
}

func NewPostgresCustomerDirectory(db *sqlx.DB) *PostgresCustomerDirectory {
	return &PostgresCustomerDirectory{db: db}
}

// Search matches the query case-insensitively against the customer name
// OR the phone number, scoped to the branch, capped at 15 results.
func (r *PostgresCustomerDirectory) Search(ctx context.Context, branch, query string) ([]Customer, error) {
	const q = `
		SELECT id, branch, customer_name,
		       COALESCE(mob_no, '') AS mob_no,
		       COALESCE(email_id, '') AS email_id,
		       COALESCE(address, '') AS address,
		       COALESCE(account_status, '') AS account_status
		FROM customers
		WHERE branch = $1 AND (customer_name ILIKE $2 OR mob_no ILIKE $2)
		ORDER BY customer_name ASC
		LIMIT $3`

	pattern := "%" + query + "%"
	customers := make([]Customer, 0, customerSearchLimit)
	if err := r.db.SelectContext(ctx, &customers, q, branch, pattern, customerSearchLimit); err != nil {
		return nil, fmt.Errorf("failed to search customers for branch %s: %w", branch, err)
	}

	return customers, nil
}
