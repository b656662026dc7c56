package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/uncertainty"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func mustFactor(t *testing.T, f factors.Fields) factors.Factor {
	t.Helper()
	out, err := f.Build()
	require.NoError(t, err)
	return out
}

func sampleFactors(t *testing.T) []factors.Factor {
	t.Helper()
	return []factors.Factor{
		mustFactor(t, factors.Fields{
			Group: "Cereals", Country: "Ghana", Item: "Maize", Impact: "Global warming",
			Value: 0.62, Confidence: "High", Source: "Ghana field survey", Year: 2021,
			Range:    uncertainty.Range{Low: 0.5, High: 0.8},
			Pedigree: uncertainty.NewPedigree(2, 2, 1, 1, 2),
		}),
		mustFactor(t, factors.Fields{
			Group: "Cereals", Country: "Nigeria", Impact: "Water consumption",
			Value: 1.4, Source: "FAO", Year: 2019,
			Range:    uncertainty.Range{Low: 1, High: 2},
			Pedigree: uncertainty.NewPedigree(3, 3, 3, 3, 3),
		}),
		mustFactor(t, factors.Fields{
			Scope: factors.ScopeProcessing, Group: "Mill", Country: "Ghana", Item: "FlourMaize",
			Impact: "Energy consumption", Value: 55, Source: "Facility audit", Year: 2022,
			Range:    uncertainty.Range{Low: 40, High: 70},
			Pedigree: uncertainty.NewPedigree(2, 3, 2, 1, 2),
		}),
	}
}

// --- Factors ---

func TestSQLite_SaveAndListFactors(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	fs := sampleFactors(t)

	n, err := st.SaveFactors(ctx, fs)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	got, err := st.ListFactors(ctx, factors.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Sorted by key: processing_* < production_*.
	assert.Equal(t, fs[2], got[0])
	assert.Equal(t, fs[0], got[1])
	assert.Equal(t, fs[1], got[2])
}

func TestSQLite_ListFactors_Filter(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	_, err := st.SaveFactors(ctx, sampleFactors(t))
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter factors.Filter
		want   int
	}{
		{"scope", factors.Filter{Scope: factors.ScopeProduction}, 2},
		{"country case-insensitive", factors.Filter{Country: "ghana"}, 2},
		{"group", factors.Filter{Group: "cereals", Country: model.CountryNigeria}, 1},
		{"no match", factors.Filter{Scope: factors.ScopeProcessing, Country: model.CountryNigeria}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := st.ListFactors(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestSQLite_SaveFactors_UpsertsByKey(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	fs := sampleFactors(t)
	_, err := st.SaveFactors(ctx, fs)
	require.NoError(t, err)

	updated := fs[0]
	updated.Value = 0.7
	updated.Source = "Revised survey"
	_, err = st.SaveFactors(ctx, []factors.Factor{updated})
	require.NoError(t, err)

	got, err := st.ListFactors(ctx, factors.Filter{Country: model.CountryGhana, Scope: factors.ScopeProduction})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 0.7, got[0].Value, 1e-12)
	assert.Equal(t, "Revised survey", got[0].Source)
}

func TestSQLite_ReplaceFactors(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	fs := sampleFactors(t)
	_, err := st.SaveFactors(ctx, fs)
	require.NoError(t, err)

	n, err := st.ReplaceFactors(ctx, fs[:1])
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := st.ListFactors(ctx, factors.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, fs[0].Key(), got[0].Key())
}

func TestSQLite_ListFactors_Empty(t *testing.T) {
	st := newTestSQLiteStore(t)

	got, err := st.ListFactors(context.Background(), factors.Filter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// --- Runs ---

func TestSQLite_SaveAndListRuns(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	runs := []RunSummary{
		{ID: "r1", Kind: model.KindSimple, Subject: "Accra Greens", Country: model.CountryGhana,
			SingleScore: 0.4, GlobalWarming: 1.2, Unit: "kg CO2-eq per kg", Confidence: model.ConfidenceMedium, CreatedAt: base},
		{ID: "r2", Kind: model.KindProcessing, Subject: "Tema Mill", Country: model.CountryGhana,
			SingleScore: 55, GlobalWarming: 310, Unit: "kg CO2-eq", Confidence: model.ConfidenceLow, CreatedAt: base.Add(time.Hour)},
		{ID: "r3", Kind: model.KindSimple, Subject: "Accra Greens", Country: model.CountryGhana,
			SingleScore: 0.3, GlobalWarming: 1.1, Unit: "kg CO2-eq per kg", Confidence: model.ConfidenceMedium, CreatedAt: base.Add(2 * time.Hour)},
	}
	n, err := st.SaveRuns(ctx, runs)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	all, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "r3", all[0].ID)
	assert.Equal(t, model.KindProcessing, all[1].Kind)
	assert.True(t, base.Equal(all[2].CreatedAt))

	mine, err := st.ListRuns(ctx, RunFilter{Subject: "Accra Greens", Limit: 1})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "r3", mine[0].ID)
	assert.InDelta(t, 1.1, mine[0].GlobalWarming, 1e-12)
}

func TestSQLite_SaveRuns_Empty(t *testing.T) {
	st := newTestSQLiteStore(t)

	n, err := st.SaveRuns(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLite_SaveRuns_DuplicateID(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	r := RunSummary{ID: "dup", Kind: model.KindSimple, Subject: "A", Country: model.CountryGlobal, CreatedAt: time.Now().UTC()}

	_, err := st.SaveRuns(ctx, []RunSummary{r})
	require.NoError(t, err)
	_, err = st.SaveRuns(ctx, []RunSummary{r})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite: insert run dup")
}

func TestSQLite_MigrateIdempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	assert.NoError(t, st.Migrate(context.Background()))
}

func TestSummaryOf(t *testing.T) {
	t.Parallel()

	r := &model.Results{
		RunID:   "run-1",
		Kind:    model.KindComprehensive,
		Subject: "Tamale Farms",
		Country: model.CountryGhana,
		Midpoints: model.Midpoints{
			model.GlobalWarming: {Value: 0.9, Unit: "kg CO2-eq per kg"},
		},
		SingleScore: model.SingleScore{Value: 0.25},
		DataQuality: model.DataQuality{Confidence: model.ConfidenceHigh},
	}
	s := SummaryOf(r)
	assert.Equal(t, "run-1", s.ID)
	assert.Equal(t, "Tamale Farms", s.Subject)
	assert.InDelta(t, 0.9, s.GlobalWarming, 1e-12)
	assert.Equal(t, "kg CO2-eq per kg", s.Unit)
	assert.InDelta(t, 0.25, s.SingleScore, 1e-12)
	assert.Equal(t, model.ConfidenceHigh, s.Confidence)
	assert.False(t, s.CreatedAt.IsZero())

	r.RunID = ""
	assert.NotEmpty(t, SummaryOf(r).ID)
}
