package endpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/model"
)

func TestAggregate_Production(t *testing.T) {
	t.Parallel()

	tb := factors.MustDefaultTables()
	ms := model.Midpoints{
		model.GlobalWarming:     {Value: 2},
		model.WaterScarcity:     {Value: 10},
		model.ParticulateMatter: {Value: 0.001},
		model.LandUse:           {Value: 3},
		model.BiodiversityLoss:  {Value: 100},
		model.FossilDepletion:   {Value: 4},
	}
	eps := Aggregate(ms, tb.Endpoints(model.KindSimple))
	require.Len(t, eps, 3)

	hh := eps[model.HumanHealth]
	assert.InDelta(t, 2*2.5e-7+10*1.2e-7+0.001*1e-6, hh.Value, 1e-18)
	assert.Equal(t, "DALY per kg", hh.Unit)
	assert.InDelta(t, hh.Value*0.5, hh.Range.Low, 1e-18)
	assert.InDelta(t, hh.Value*2, hh.Range.High, 1e-18)
	require.NotNil(t, hh.Normalization)
	assert.InDelta(t, 5.2e-2, *hh.Normalization, 1e-12)
	require.NotNil(t, hh.Regional)
	assert.InDelta(t, 1.5, *hh.Regional, 1e-12)

	eq := eps[model.EcosystemQuality]
	assert.InDelta(t, 2*1.2e-14+3*2.1e-10+100*1.5e-12, eq.Value, 1e-20)

	rs := eps[model.ResourceScarcity]
	assert.InDelta(t, 10*0.18+4*0.055, rs.Value, 1e-12)
	assert.InDelta(t, rs.Value*1.5, rs.Range.High, 1e-12)
}

func TestAggregate_Processing(t *testing.T) {
	t.Parallel()

	tb := factors.MustDefaultTables()
	ms := model.Midpoints{
		model.GlobalWarming:     {Value: 1000},
		model.AirPollution:      {Value: 5},
		model.EnergyConsumption: {Value: 20000},
		model.WaterScarcity:     {Value: 300},
	}
	eps := Aggregate(ms, tb.Endpoints(model.KindProcessing))
	require.Len(t, eps, 2)
	assert.NotContains(t, eps, model.EcosystemQuality)
	assert.InDelta(t, 1000*2.5e-7+5*1e-6, eps[model.HumanHealth].Value, 1e-15)
	assert.InDelta(t, 20000*0.08+300*0.18, eps[model.ResourceScarcity].Value, 1e-9)
	assert.Equal(t, "USD", eps[model.ResourceScarcity].Unit)
}

func TestAggregate_MissingMidpoints(t *testing.T) {
	t.Parallel()

	defs := []factors.EndpointDefinition{{
		Category:      model.HumanHealth,
		Unit:          "DALY",
		Contributions: map[model.Category]float64{model.GlobalWarming: 1},
		Range:         [2]float64{0.5, 2},
	}}
	eps := Aggregate(model.Midpoints{}, defs)
	hh := eps[model.HumanHealth]
	assert.Zero(t, hh.Value)
	assert.Nil(t, hh.Normalization)
	assert.Nil(t, hh.Regional)
}
