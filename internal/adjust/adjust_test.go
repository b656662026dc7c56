package adjust

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/uncertainty"
)

func mid(v float64) model.Midpoint {
	return model.Midpoint{Value: v, Range: uncertainty.Relative(v, 0.8, 1.2), Quality: 0.8, Sources: []string{"base"}}
}

func TestItemMultiplier(t *testing.T) {
	t.Parallel()

	tb := factors.MustDefaultTables()
	tests := []struct {
		name string
		item model.FoodItem
		cat  model.Category
		want float64
	}{
		{"plain", model.FoodItem{Category: model.FoodLegumes}, model.GlobalWarming, 1.0},
		{"cereal methane", model.FoodItem{Category: model.FoodCereals}, model.GlobalWarming, 1.2},
		{"methane only on warming", model.FoodItem{Category: model.FoodCereals}, model.LandUse, 1.0},
		{"tropical soil", model.FoodItem{Category: model.FoodLegumes}, model.SoilDegradation, 1.3},
		{"wet season", model.FoodItem{Category: model.FoodLegumes, SeasonalFactor: model.SeasonWet}, model.LandUse, 1.5},
		{"all three", model.FoodItem{
			Category:         model.FoodMeat,
			SeasonalFactor:   model.SeasonDry,
			ProductionSystem: model.SystemExtensive,
		}, model.GlobalWarming, 1.2 * 0.7 * 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, ItemMultiplier(tb, tt.item, tt.cat), 1e-12)
		})
	}
}

func TestWaterScarcity(t *testing.T) {
	t.Parallel()

	ms := model.Midpoints{model.WaterConsumption: mid(10)}
	out := WaterScarcity(ms, 20)

	ws := out[model.WaterScarcity]
	assert.InDelta(t, 200.0, ws.Value, 1e-12)
	assert.InDelta(t, 160.0, ws.Range.Low, 1e-9)
	assert.InDelta(t, 0.8, ws.Quality, 1e-12)
	assert.Equal(t, []string{"AWARE regional factor: 20"}, ws.Sources)
	assert.InDelta(t, 10.0, out[model.WaterConsumption].Value, 1e-12, "consumption untouched")
	_, ok := ms[model.WaterScarcity]
	assert.False(t, ok, "input not mutated")

	assert.NotContains(t, WaterScarcity(model.Midpoints{}, 20), model.WaterScarcity)
}

func TestManagement(t *testing.T) {
	t.Parallel()

	base := model.Midpoints{
		model.GlobalWarming:            mid(100),
		model.SoilDegradation:          mid(100),
		model.FreshwaterEutrophication: mid(100),
		model.WaterConsumption:         mid(100),
		model.BiodiversityLoss:         mid(100),
	}

	assert.Equal(t, base, Management(base, nil))

	p := &model.ManagementPractices{
		Soil: model.SoilManagement{UsesCompost: true, ConservationPractices: []string{"Mulching", "Cover crops", "No-till"}},
		Fertilization: model.FertilizationPractice{
			SoilTestBased: true, FollowsNutrientPlan: true,
		},
		Water: model.WaterManagement{IrrigationSystem: "Drip irrigation", ConservationPractices: []string{"Rainwater harvesting"}},
		Pest:  model.PestManagement{UsesIPM: true},
	}
	out := Management(base, p)

	assert.InDelta(t, 100*0.92*0.8, out[model.GlobalWarming].Value, 1e-9)
	assert.InDelta(t, 100*0.85*0.8, out[model.SoilDegradation].Value, 1e-9)
	assert.InDelta(t, 100*0.7*0.9, out[model.FreshwaterEutrophication].Value, 1e-9)
	assert.InDelta(t, 70.0, out[model.WaterConsumption].Value, 1e-9)
	assert.InDelta(t, 100*0.9*0.9, out[model.BiodiversityLoss].Value, 1e-9)
	assert.NotContains(t, out, model.MarineEutrophication, "absent categories are not created")
	assert.Contains(t, out[model.SoilDegradation].Sources, "Conservation practices: 3")

	for c, m := range out {
		assert.True(t, m.Range.Contains(m.Value), "%s range follows value", c)
	}
	assert.InDelta(t, 100.0, base[model.GlobalWarming].Value, 1e-12, "input not mutated")
}

func TestManagement_PoorPractices(t *testing.T) {
	t.Parallel()

	p := &model.ManagementPractices{
		Pest: model.PestManagement{Pesticides: make([]model.PesticideApplication, 6)},
	}
	out := Management(model.Midpoints{model.GlobalWarming: mid(10), model.BiodiversityLoss: mid(10)}, p)
	assert.InDelta(t, 12.0, out[model.GlobalWarming].Value, 1e-9)
	assert.InDelta(t, 12.0, out[model.BiodiversityLoss].Value, 1e-9)
}

func TestIrrigationEfficiency(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.5, IrrigationEfficiency(""), 1e-12)
	assert.InDelta(t, 0.7, IrrigationEfficiency("Micro-sprinkler"), 1e-12)
	assert.InDelta(t, 0.85, IrrigationEfficiency("Sprinkler"), 1e-12)
	assert.InDelta(t, 1.0, IrrigationEfficiency("Flood irrigation"), 1e-12)
	assert.InDelta(t, 0.9, IrrigationEfficiency("Bucket"), 1e-12)
}

func TestFacilityMultiplier(t *testing.T) {
	t.Parallel()

	f := model.FacilityProfile{CapacityTPD: 5, EstablishedYear: 1990, LocationType: model.LocationRural}
	ops := model.DefaultOperations()
	ops.Equipment.Age = model.EquipmentOld
	ops.Equipment.Maintenance = model.MaintenanceAnnual
	ops.Energy.RenewablePct = 50
	ops.Water.ConservationMeasures = []string{"a", "b", "c", "d", "e", "f", "g"}

	general := 1.2 * 1.2 * 1.1 * 1.15 * 1.1
	assert.InDelta(t, general, FacilityMultiplier(f, ops, model.AirPollution, 2024), 1e-9)
	assert.InDelta(t, general*0.6, FacilityMultiplier(f, ops, model.EnergyConsumption, 2024), 1e-9)
	assert.InDelta(t, general*0.7, FacilityMultiplier(f, ops, model.WaterConsumption, 2024), 1e-9, "conservation floors at 0.7")

	f = model.FacilityProfile{CapacityTPD: 50, EstablishedYear: 2021, LocationType: model.LocationIndustrial}
	ops = model.DefaultOperations()
	assert.InDelta(t, 0.9*0.95, FacilityMultiplier(f, ops, model.LandUse, 2024), 1e-9)

	f.EstablishedYear = 0
	assert.InDelta(t, 0.95, FacilityMultiplier(f, ops, model.LandUse, 2024), 1e-9, "unknown age is neutral")
}

func TestFacilityAndRecycling(t *testing.T) {
	t.Parallel()

	f := model.FacilityProfile{CapacityTPD: 50, LocationType: model.LocationUrban}
	ops := model.DefaultOperations()
	out := Facility(model.Midpoints{model.SolidWasteGeneration: mid(100)}, f, ops, 2024)
	assert.InDelta(t, 100.0, out[model.SolidWasteGeneration].Value, 1e-9)

	rec := Recycling(out, 7)
	require.Contains(t, rec, model.SolidWasteGeneration)
	assert.InDelta(t, 50.0, rec[model.SolidWasteGeneration].Value, 1e-9)
	assert.InDelta(t, 80.0, Recycling(out, 2)[model.SolidWasteGeneration].Value, 1e-9)
	assert.InDelta(t, 100.0, Recycling(out, 0)[model.SolidWasteGeneration].Value, 1e-9)
}
