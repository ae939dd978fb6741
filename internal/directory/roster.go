package directory

import (
	"context"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/ginzalimited/orderdesk/internal/order"
)

// RosterDirectory lists the salespersons selectable for a branch.
type RosterDirectory interface {
	SalesPersons(ctx context.Context, branch string) ([]string, error)
}

type PostgresRosterDirectory struct {
	db *sqlx.DB
}

func NewPostgresRosterDirectory(db *sqlx.DB) *PostgresRosterDirectory {
	return &PostgresRosterDirectory{db: db}
}

// SalesPersons merges the directory's names for the branch with the
// static fallback roster, deduplicated and sorted. The Delhi branch
// bypasses the directory entirely and uses only the static list. A
// directory error degrades to the static list.
func (r *PostgresRosterDirectory) SalesPersons(ctx context.Context, branch string) ([]string, error) {
	if branch == "" {
		return nil, nil
	}

	static := order.BranchSalesPersons[branch]
	if branch == order.RosterBypassBranch {
		return MergeRoster(static, nil), nil
	}

	var fetched []string
	err := r.db.SelectContext(ctx, &fetched, `SELECT name FROM sales_persons WHERE branch = $1`, branch)
	if err != nil {
		log.Warn().Err(err).Str("branch", branch).Msg("roster: directory query failed, using static list")
		return MergeRoster(static, nil), nil
	}

	return MergeRoster(static, fetched), nil
}

// MergeRoster trims both lists, drops empties, deduplicates by exact
// string match and sorts lexicographically.
func MergeRoster(static, fetched []string) []string {
	seen := make(map[string]bool, len(static)+len(fetched))
	merged := make([]string, 0, len(static)+len(fetched))
	for _, name := range append(append([]string{}, static...), fetched...) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		merged = append(merged, name)
	}
	sort.Strings(merged)
	return merged
}
