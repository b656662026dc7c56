package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

var scanColumns = []string{
	"scope", "grp", "country", "item", "impact", "value", "unit", "confidence", "source", "year", "low", "high",
	"reliability", "completeness", "temporal", "geographical", "technological",
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE SCHEMA IF NOT EXISTS lca`).WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Ping(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`SELECT 1`).WillReturnError(errors.New("connection refused"))

	err := s.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: ping")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveFactors(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	fs := sampleFactors(t)

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_stage_lca_impact_factors"}, factorColumns).WillReturnResult(3)
	mock.ExpectExec(`INSERT INTO "lca"."impact_factors" .* ON CONFLICT \("factor_key"\) DO UPDATE SET "scope" = EXCLUDED."scope"`).
		WillReturnResult(pgxmock.NewResult("INSERT", 3))
	mock.ExpectCommit()

	// The duplicate key collapses to one row.
	n, err := s.SaveFactors(context.Background(), append(fs, fs[0]))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveFactors_Error(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin().WillReturnError(errors.New("db error"))

	_, err := s.SaveFactors(context.Background(), sampleFactors(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: save factors")
}

func TestPostgresStore_ReplaceFactors(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "lca"."impact_factors"`).WillReturnResult(pgxmock.NewResult("DELETE", 12))
	mock.ExpectCopyFrom(pgx.Identifier{"lca", "impact_factors"}, factorColumns).WillReturnResult(3)
	mock.ExpectCommit()

	n, err := s.ReplaceFactors(context.Background(), sampleFactors(t))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListFactors(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	rows := pgxmock.NewRows(scanColumns).
		AddRow("production", "Cereals", "Ghana", "Maize", "Global warming", 0.62, "kg CO2-eq", "High",
			"Ghana field survey", 2021, 0.5, 0.8, 2, 2, 1, 1, 2)
	mock.ExpectQuery(`FROM lca.impact_factors WHERE scope = \$1 AND lower\(country\) = lower\(\$2\) ORDER BY factor_key`).
		WithArgs("production", "Ghana").
		WillReturnRows(rows)

	got, err := s.ListFactors(context.Background(), factors.Filter{Scope: factors.ScopeProduction, Country: model.CountryGhana})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Cereals", got[0].Group)
	assert.Equal(t, "Maize", got[0].Item)
	assert.Equal(t, model.ConfidenceHigh, got[0].Confidence)
	assert.Equal(t, 1, got[0].Pedigree.TemporalCorrelation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListFactors_InvalidRow(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	rows := pgxmock.NewRows(scanColumns).
		AddRow("production", "Sweets", "Ghana", "", "Global warming", 1.0, "kg CO2-eq", "Medium",
			"x", 2020, 0.8, 1.2, 5, 5, 5, 5, 5)
	mock.ExpectQuery(`FROM lca.impact_factors ORDER BY factor_key`).WillReturnRows(rows)

	_, err := s.ListFactors(context.Background(), factors.Filter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: scan factor")
}

func TestPostgresStore_SaveRuns(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectCopyFrom(pgx.Identifier{"lca", "assessment_runs"}, runColumns).WillReturnResult(1)

	n, err := s.SaveRuns(context.Background(), []RunSummary{{
		ID: "r1", Kind: model.KindSimple, Subject: "Accra Greens", Country: model.CountryGhana, CreatedAt: time.Now().UTC(),
	}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListRuns(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	created := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows(runColumns).
		AddRow("r9", "processing", "Tema Mill", "Ghana", 61.5, 420.0, "kg CO2-eq", "Low", created)
	mock.ExpectQuery(`FROM lca.assessment_runs WHERE subject = \$1 ORDER BY created_at DESC, id LIMIT \$2`).
		WithArgs("Tema Mill", 5).
		WillReturnRows(rows)

	got, err := s.ListRuns(context.Background(), RunFilter{Subject: "Tema Mill", Limit: 5})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.KindProcessing, got[0].Kind)
	assert.InDelta(t, 61.5, got[0].SingleScore, 1e-12)
	assert.Equal(t, created, got[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListRuns_QueryError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`FROM lca.assessment_runs ORDER BY`).WillReturnError(errors.New("relation does not exist"))

	_, err := s.ListRuns(context.Background(), RunFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: list runs")
}

func TestPostgresStore_Close(t *testing.T) {
	closed := false
	s := &PostgresStore{closeFn: func() { closed = true }}
	require.NoError(t, s.Close())
	assert.True(t, closed)
}

func TestNewPostgres_BadConnString(t *testing.T) {
	_, err := NewPostgres(context.Background(), "://not-a-url", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: parse config")
}
