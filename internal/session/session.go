// Package session resolves the operator's identity so a new draft can be
// pre-filled with their branch and name.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Identity is the optional (branch, first name, last name) tuple used
// once at engine start.
type Identity struct {
	Branch    string `db:"branch"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}

func (i Identity) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(i.FirstName) + " " + strings.TrimSpace(i.LastName))
}

// Lookup returns the current operator's identity, or nil when no
// session is available.
type Lookup interface {
	Current(ctx context.Context) (*Identity, error)
}

type PostgresLookup struct {
	db         *sqlx.DB
	operatorID string
}

func NewPostgresLookup(db *sqlx.DB, operatorID string) *PostgresLookup {
	return &PostgresLookup{db: db, operatorID: operatorID}
}

func (l *PostgresLookup) Current(ctx context.Context) (*Identity, error) {
	if l.operatorID == "" {
		return nil, nil
	}

	var id Identity
	err := l.db.GetContext(ctx, &id,
		`SELECT COALESCE(branch, '') AS branch,
		        COALESCE(first_name, '') AS first_name,
		        COALESCE(last_name, '') AS last_name
		 FROM operators WHERE id = $1`, l.operatorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up operator %s: %w", l.operatorID, err)
	}

	// Some operator records carry a placeholder branch.
	if id.Branch == "N/A" {
		id.Branch = ""
	}
	return &id, nil
}
