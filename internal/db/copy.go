// Package db provides the Postgres bulk-load helpers behind the factor store.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Table names a schema-qualified Postgres table.
type Table struct {
	Schema string
	Name   string
}

// Ident returns the table as a pgx identifier. An empty schema resolves
// through the search path.
func (t Table) Ident() pgx.Identifier {
	if t.Schema == "" {
		return pgx.Identifier{t.Name}
	}
	return pgx.Identifier{t.Schema, t.Name}
}

// Sanitize returns the quoted table name for use in SQL text.
func (t Table) Sanitize() string { return t.Ident().Sanitize() }

func (t Table) String() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// Copy appends rows to t with the COPY protocol.
func Copy(ctx context.Context, pool Pool, t Table, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := pool.CopyFrom(ctx, t.Ident(), columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, eris.Wrapf(err, "db: COPY INTO %s", t)
	}
	zap.L().Debug("db: copied rows", zap.String("table", t.String()), zap.Int64("rows", n))
	return n, nil
}

// Replace deletes every row of t and loads rows in its place inside one
// transaction. Readers see either the old contents or the new.
func Replace(ctx context.Context, pool Pool, t Table, columns []string, rows [][]any) (int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "db: replace: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	tag, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", t.Sanitize()))
	if err != nil {
		return 0, eris.Wrapf(err, "db: replace: clear %s", t)
	}

	var n int64
	if len(rows) > 0 {
		if n, err = tx.CopyFrom(ctx, t.Ident(), columns, pgx.CopyFromRows(rows)); err != nil {
			return 0, eris.Wrapf(err, "db: replace: COPY INTO %s", t)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "db: replace: commit tx")
	}
	zap.L().Debug("db: replaced rows",
		zap.String("table", t.String()),
		zap.Int64("deleted", tag.RowsAffected()),
		zap.Int64("inserted", n),
	)
	return n, nil
}
