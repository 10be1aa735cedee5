package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Spec describes how one entity type maps onto its Postgres table:
// the table identifier, its column list, a deterministic read order, and
// the two row translation functions. Values must return column values in
// Columns order for the COPY protocol; Scan is the inverse.
type Spec[T any] struct {
	Name    pgx.Identifier
	Columns []string
	OrderBy string
	Values  func(T) []any
	Scan    func(row pgx.CollectableRow) (T, error)
}

// Postgres is a Table backed by a Postgres relation. ReplaceAll runs
// TRUNCATE + COPY inside a single transaction, so a failed run never
// disturbs the previous snapshot.
type Postgres[T any] struct {
	db   *pgxpool.Pool
	spec Spec[T]
}

// NewPostgres builds a Postgres-backed table from its spec.
func NewPostgres[T any](db *pgxpool.Pool, spec Spec[T]) *Postgres[T] {
	return &Postgres[T]{db: db, spec: spec}
}

// ReadAll returns the full snapshot ordered by the spec's OrderBy clause.
func (p *Postgres[T]) ReadAll(ctx context.Context) ([]T, error) {
	sql := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(p.spec.Columns, ", "), p.spec.Name.Sanitize(), p.spec.OrderBy)

	rows, err := p.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.spec.Name.Sanitize(), err)
	}
	out, err := pgx.CollectRows(rows, p.spec.Scan)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", p.spec.Name.Sanitize(), err)
	}
	return out, nil
}

// ReplaceAll atomically swaps the table contents for rows and returns the
// number of rows written.
func (p *Postgres[T]) ReplaceAll(ctx context.Context, rows []T) (int64, error) {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin replace %s: %w", p.spec.Name.Sanitize(), err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	if _, err := tx.Exec(ctx, "TRUNCATE "+p.spec.Name.Sanitize()); err != nil {
		return 0, fmt.Errorf("truncate %s: %w", p.spec.Name.Sanitize(), err)
	}

	n, err := tx.CopyFrom(ctx, p.spec.Name, p.spec.Columns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return p.spec.Values(rows[i]), nil
		}))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", p.spec.Name.Sanitize(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit replace %s: %w", p.spec.Name.Sanitize(), err)
	}
	return n, nil
}
