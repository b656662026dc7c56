package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/lca-cli/internal/factors"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS impact_factors (
	id            TEXT PRIMARY KEY,
	factor_key    TEXT NOT NULL UNIQUE,
	scope         TEXT NOT NULL,
	grp           TEXT NOT NULL,
	country       TEXT NOT NULL,
	item          TEXT NOT NULL DEFAULT '',
	impact        TEXT NOT NULL,
	value         REAL NOT NULL,
	unit          TEXT NOT NULL,
	confidence    TEXT NOT NULL,
	source        TEXT NOT NULL,
	year          INTEGER NOT NULL,
	low           REAL NOT NULL,
	high          REAL NOT NULL,
	reliability   INTEGER NOT NULL DEFAULT 5,
	completeness  INTEGER NOT NULL DEFAULT 5,
	temporal      INTEGER NOT NULL DEFAULT 5,
	geographical  INTEGER NOT NULL DEFAULT 5,
	technological INTEGER NOT NULL DEFAULT 5,
	updated_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS assessment_runs (
	id             TEXT PRIMARY KEY,
	kind           TEXT NOT NULL,
	subject        TEXT NOT NULL,
	country        TEXT NOT NULL,
	single_score   REAL NOT NULL,
	global_warming REAL NOT NULL,
	unit           TEXT NOT NULL,
	confidence     TEXT NOT NULL,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_impact_factors_scope_country ON impact_factors(scope, country);
CREATE INDEX IF NOT EXISTS idx_assessment_runs_subject ON assessment_runs(subject);
CREATE INDEX IF NOT EXISTS idx_assessment_runs_created_at ON assessment_runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func sqlitePlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func sqliteUpsertFactor() string {
	sets := make([]string, len(factorUpdateColumns))
	for i, c := range factorUpdateColumns {
		sets[i] = c + " = excluded." + c
	}
	return `INSERT INTO impact_factors (` + strings.Join(factorColumns, ", ") + `) VALUES (` +
		sqlitePlaceholders(len(factorColumns)) + `) ON CONFLICT(factor_key) DO UPDATE SET ` + strings.Join(sets, ", ")
}

// SaveFactors inserts or updates factors by key in one transaction.
func (s *SQLiteStore) SaveFactors(ctx context.Context, fs []factors.Factor) (int64, error) {
	return s.writeFactors(ctx, fs, false)
}

// ReplaceFactors clears the table and writes fs in one transaction.
func (s *SQLiteStore) ReplaceFactors(ctx context.Context, fs []factors.Factor) (int64, error) {
	return s.writeFactors(ctx, fs, true)
}

func (s *SQLiteStore) writeFactors(ctx context.Context, fs []factors.Factor, replace bool) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	if replace {
		if _, err := tx.ExecContext(ctx, `DELETE FROM impact_factors`); err != nil {
			return 0, eris.Wrap(err, "sqlite: clear factors")
		}
	}

	stmt, err := tx.PrepareContext(ctx, sqliteUpsertFactor())
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare factor upsert")
	}
	defer stmt.Close() //nolint:errcheck

	now := time.Now().UTC()
	var n int64
	for _, f := range fs {
		if _, err := stmt.ExecContext(ctx, factorRow(f, now)...); err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert factor %s", f.Key())
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit factors")
	}
	return n, nil
}

// ListFactors returns stored factors matching filter, sorted by key.
func (s *SQLiteStore) ListFactors(ctx context.Context, filter factors.Filter) ([]factors.Factor, error) {
	where, args := factorWhere(filter, func(int) string { return "?" })
	rows, err := s.db.QueryContext(ctx, factorSelect+` FROM impact_factors`+where+` ORDER BY factor_key`, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list factors")
	}
	defer rows.Close() //nolint:errcheck

	var out []factors.Factor
	for rows.Next() {
		f, err := scanFactor(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan factor")
		}
		out = append(out, f)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list factors")
}

// SaveRuns appends run summaries.
func (s *SQLiteStore) SaveRuns(ctx context.Context, runs []RunSummary) (int64, error) {
	if len(runs) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO assessment_runs (`+strings.Join(runColumns, ", ")+`) VALUES (`+
		sqlitePlaceholders(len(runColumns))+`)`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare run insert")
	}
	defer stmt.Close() //nolint:errcheck

	for _, r := range runs {
		if _, err := stmt.ExecContext(ctx, runRow(r)...); err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert run %s", r.ID)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit runs")
	}
	return int64(len(runs)), nil
}

// ListRuns returns the newest runs first.
func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]RunSummary, error) {
	query := runSelect + ` FROM assessment_runs`
	var args []any
	if filter.Subject != "" {
		query += ` WHERE subject = ?`
		args = append(args, filter.Subject)
	}
	query += ` ORDER BY created_at DESC, id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var out []RunSummary
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list runs")
}
