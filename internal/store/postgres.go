package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/lca-cli/internal/db"
	"github.com/sells-group/lca-cli/internal/factors"
)

var (
	pgFactorsTable = db.Table{Schema: "lca", Name: "impact_factors"}
	pgRunsTable    = db.Table{Schema: "lca", Name: "assessment_runs"}
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// Pool returns the underlying database pool.
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE SCHEMA IF NOT EXISTS lca;

CREATE TABLE IF NOT EXISTS lca.impact_factors (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	factor_key    TEXT NOT NULL UNIQUE,
	scope         TEXT NOT NULL,
	grp           TEXT NOT NULL,
	country       TEXT NOT NULL,
	item          TEXT NOT NULL DEFAULT '',
	impact        TEXT NOT NULL,
	value         DOUBLE PRECISION NOT NULL,
	unit          TEXT NOT NULL,
	confidence    TEXT NOT NULL,
	source        TEXT NOT NULL,
	year          INTEGER NOT NULL,
	low           DOUBLE PRECISION NOT NULL,
	high          DOUBLE PRECISION NOT NULL,
	reliability   INTEGER NOT NULL DEFAULT 5,
	completeness  INTEGER NOT NULL DEFAULT 5,
	temporal      INTEGER NOT NULL DEFAULT 5,
	geographical  INTEGER NOT NULL DEFAULT 5,
	technological INTEGER NOT NULL DEFAULT 5,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS lca.assessment_runs (
	id             TEXT PRIMARY KEY,
	kind           TEXT NOT NULL,
	subject        TEXT NOT NULL,
	country        TEXT NOT NULL,
	single_score   DOUBLE PRECISION NOT NULL,
	global_warming DOUBLE PRECISION NOT NULL,
	unit           TEXT NOT NULL,
	confidence     TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_impact_factors_scope_country ON lca.impact_factors(scope, country);
CREATE INDEX IF NOT EXISTS idx_assessment_runs_subject ON lca.assessment_runs(subject);
CREATE INDEX IF NOT EXISTS idx_assessment_runs_created_at ON lca.assessment_runs(created_at DESC);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func factorRows(fs []factors.Factor) [][]any {
	now := time.Now().UTC()
	rows := make([][]any, len(fs))
	for i, f := range fs {
		rows[i] = factorRow(f, now)
	}
	return rows
}

// dedupe keeps the last factor per key; one COPY batch cannot touch the
// same conflict key twice.
func dedupe(fs []factors.Factor) []factors.Factor {
	idx := make(map[factors.Key]int, len(fs))
	out := make([]factors.Factor, 0, len(fs))
	for _, f := range fs {
		if i, ok := idx[f.Key()]; ok {
			out[i] = f
			continue
		}
		idx[f.Key()] = len(out)
		out = append(out, f)
	}
	return out
}

// SaveFactors upserts factors by key through a temp table and COPY.
func (s *PostgresStore) SaveFactors(ctx context.Context, fs []factors.Factor) (int64, error) {
	n, err := db.Upsert(ctx, s.pool, db.UpsertConfig{
		Table:        pgFactorsTable,
		Columns:      factorColumns,
		ConflictKeys: []string{"factor_key"},
		UpdateCols:   factorUpdateColumns,
	}, factorRows(dedupe(fs)))
	if err != nil {
		return 0, eris.Wrap(err, "postgres: save factors")
	}
	return n, nil
}

// ReplaceFactors swaps the factor table contents for fs in one transaction.
func (s *PostgresStore) ReplaceFactors(ctx context.Context, fs []factors.Factor) (int64, error) {
	n, err := db.Replace(ctx, s.pool, pgFactorsTable, factorColumns, factorRows(dedupe(fs)))
	if err != nil {
		return 0, eris.Wrap(err, "postgres: replace factors")
	}
	return n, nil
}

// ListFactors returns stored factors matching filter, sorted by key.
func (s *PostgresStore) ListFactors(ctx context.Context, filter factors.Filter) ([]factors.Factor, error) {
	where, args := factorWhere(filter, func(n int) string { return fmt.Sprintf("$%d", n) })
	query := factorSelect + ` FROM lca.impact_factors` + where + ` ORDER BY factor_key COLLATE "C"`
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list factors")
	}
	defer rows.Close()

	var out []factors.Factor
	for rows.Next() {
		f, err := scanFactor(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan factor")
		}
		out = append(out, f)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list factors")
}

// SaveRuns appends run summaries with COPY.
func (s *PostgresStore) SaveRuns(ctx context.Context, runs []RunSummary) (int64, error) {
	rows := make([][]any, len(runs))
	for i, r := range runs {
		rows[i] = runRow(r)
	}
	n, err := db.Copy(ctx, s.pool, pgRunsTable, runColumns, rows)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: save runs")
	}
	return n, nil
}

// ListRuns returns the newest runs first.
func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]RunSummary, error) {
	query := runSelect + ` FROM lca.assessment_runs`
	var args []any
	if filter.Subject != "" {
		args = append(args, filter.Subject)
		query += fmt.Sprintf(` WHERE subject = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list runs")
}
