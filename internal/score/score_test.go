package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/uncertainty"
)

func f(v float64) *float64 { return &v }

func endpoints(hh, eq, rs float64) model.Endpoints {
	return model.Endpoints{
		model.HumanHealth:      {Value: hh, Range: uncertainty.Relative(hh, 0.5, 2), Normalization: f(5.2e-2)},
		model.EcosystemQuality: {Value: eq, Range: uncertainty.Relative(eq, 0.3, 3), Normalization: f(4.1e-9)},
		model.ResourceScarcity: {Value: rs, Range: uncertainty.Relative(rs, 0.7, 1.5), Normalization: f(8.5e3)},
	}
}

func TestProduction_RawAndDisplay(t *testing.T) {
	t.Parallel()

	c := New(factors.MustDefaultTables())
	eps := endpoints(5.2e-3, 4.1e-10, 850)
	s := c.Production(eps, model.ProductionMethodology())

	// Each endpoint is 0.1 of its reference, so raw = 0.1 x (0.40+0.35+0.25).
	assert.InDelta(t, 0.05, s.Value, 1e-9)
	assert.Equal(t, productionUnit, s.Unit)
	assert.Equal(t, "ISO 14044 compliant: AfricanContext normalization with AfricanPriorities weighting. Raw score: 0.100 person-equiv.", s.Methodology)
	assert.InDelta(t, 0.40, s.Weights[model.HumanHealth], 1e-12)
	assert.True(t, s.Range.Contains(s.Value))
}

func TestProduction_Clamp(t *testing.T) {
	t.Parallel()

	c := New(factors.MustDefaultTables())
	tests := []struct {
		name string
		eps  model.Endpoints
	}{
		{"zero", endpoints(0, 0, 0)},
		{"huge", endpoints(1e6, 1e3, 1e12)},
		{"empty", model.Endpoints{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := c.Production(tt.eps, model.ProductionMethodology())
			assert.GreaterOrEqual(t, s.Value, 0.0)
			assert.LessOrEqual(t, s.Value, 1.0)
			assert.GreaterOrEqual(t, s.Range.Low, 0.0)
			assert.LessOrEqual(t, s.Range.High, 1.0)
		})
	}

	s := c.Production(endpoints(1e6, 1e3, 1e12), model.ProductionMethodology())
	assert.InDelta(t, 1.0, s.Value, 1e-12)
}

func TestProduction_FallbackNormalizationAndEqualWeights(t *testing.T) {
	t.Parallel()

	c := New(factors.MustDefaultTables())
	eps := model.Endpoints{
		model.HumanHealth: {Value: 2.2e-2},
	}
	m := model.ProductionMethodology().WithOverrides(model.WeightingEqual, "")
	s := c.Production(eps, m)
	assert.InDelta(t, 0.333/2, s.Value, 1e-9)
	assert.Contains(t, s.Methodology, "EqualWeights weighting")
}

func TestProduction_Deterministic(t *testing.T) {
	t.Parallel()

	c := New(factors.MustDefaultTables())
	eps := endpoints(1.3e-2, 2.2e-9, 3100)
	first := c.Production(eps, model.ProductionMethodology())
	for range 20 {
		assert.Equal(t, first, c.Production(eps, model.ProductionMethodology()))
	}
}

func TestProcessing(t *testing.T) {
	t.Parallel()

	c := New(factors.MustDefaultTables())
	eps := model.Endpoints{
		model.HumanHealth:      {Value: 0, Range: uncertainty.Range{}},
		model.ResourceScarcity: {Value: 125, Range: uncertainty.Relative(125, 0.7, 1.5)},
	}
	s := c.Processing(eps)

	assert.InDelta(t, 0.5, s.Value, 1e-12, "raw 50 sits on the midpoint")
	assert.Equal(t, processingUnit, s.Unit)
	assert.Equal(t, processingMethodology, s.Methodology)
	assert.Less(t, s.Range.Low, s.Value)
	assert.Greater(t, s.Range.High, s.Value)
	assert.InDelta(t, 0.6, s.Weights[model.HumanHealth], 1e-12)
	assert.NotContains(t, s.Weights, model.EcosystemQuality)
}

func TestLogistic(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.5, Logistic(50), 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(5)), Logistic(0), 1e-12)
	for _, raw := range []float64{-1e9, -10, 0, 49, 51, 1e9} {
		v := Logistic(raw)
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}
	assert.Less(t, Logistic(10), Logistic(20))
}
