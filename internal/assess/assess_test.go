package assess

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lca-cli/internal/characterize"
	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/inventory"
	"github.com/sells-group/lca-cli/internal/model"
)

func ha(v float64) *float64 { return &v }

func newEngine(t *testing.T) *Engine {
	t.Helper()
	repo, err := factors.NewSeeded()
	require.NoError(t, err)
	return NewEngine(factors.MustDefaultTables(), repo)
}

func simpleGhana() *model.ProductionAssessment {
	return &model.ProductionAssessment{
		Kind:        model.KindSimple,
		CompanyName: "Accra Greens",
		Country:     model.CountryGhana,
		Foods: []model.FoodItem{
			{Name: "Rice", QuantityKg: 100, Category: model.FoodCereals, CropType: "Rice"},
			{Name: "Tomato", QuantityKg: 50, Category: model.FoodVegetables},
		},
	}
}

func millAssessment() *model.ProcessingAssessment {
	return &model.ProcessingAssessment{
		Country: model.CountryGhana,
		Facility: model.FacilityProfile{
			FacilityName: "Tema Mill",
			CompanyName:  "Tema Grain Co",
			FacilityType: model.FacilityMill,
			CapacityTPD:  10,
			HoursPerDay:  8,
			DaysPerYear:  300,
			LocationType: model.LocationPeriUrban,
		},
		Operations: model.DefaultOperations(),
		Products: []model.ProcessedProduct{{
			Name:         "Maize flour",
			ProductType:  model.ProductFlourMaize,
			AnnualTonnes: 1500,
			Steps: []model.ProcessingStep{
				{Name: "Cleaning", EnergyIntensity: 10, WaterUsage: 200},
				{Name: "Milling", EnergyIntensity: 40},
			},
			Packaging: model.DefaultPackaging(),
		}},
	}
}

func TestRun_SimpleProduction(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	a := simpleGhana()
	r, err := e.Run(context.Background(), NewProduction(a))
	require.NoError(t, err)

	assert.NotEmpty(t, r.RunID)
	assert.Equal(t, model.KindSimple, r.Kind)
	assert.Equal(t, "Accra Greens", r.Subject)
	assert.Equal(t, model.ProductionMethodology(), r.Methodology)

	require.Contains(t, r.Breakdown, "Rice (100kg)")
	require.Contains(t, r.Breakdown, "Tomato (50kg)")
	assert.NotContains(t, r.Breakdown["Rice (100kg)"], model.WaterScarcity)

	// No inventory data, so every breakdown category comes from the items.
	for _, cat := range characterize.BreakdownCategories() {
		sum := r.Breakdown["Rice (100kg)"][cat].Value + r.Breakdown["Tomato (50kg)"][cat].Value
		assert.InDelta(t, sum/150, r.Midpoints[cat].Value, 1e-9, string(cat))
		assert.Equal(t, cat.Unit()+" per kg", r.Midpoints[cat].Unit)
	}

	aware := e.Tables().AWARE(model.KindSimple, model.CountryGhana, false)
	assert.InDelta(t, r.Midpoints[model.WaterConsumption].Value*aware, r.Midpoints[model.WaterScarcity].Value, 1e-9)

	assert.Len(t, r.Endpoints, len(model.EndpointCategories()))
	assert.GreaterOrEqual(t, r.SingleScore.Value, 0.0)
	assert.LessOrEqual(t, r.SingleScore.Value, 1.0)

	require.NotNil(t, r.Sensitivity)
	require.Len(t, r.Sensitivity.Parameters, 2)
	assert.Equal(t, "Rice carbon footprint", r.Sensitivity.Parameters[0].Name)
	assert.InDelta(t, 100.0/150*100, r.Sensitivity.Parameters[0].Influence, 1e-9)

	require.NotNil(t, r.Comparative)
	require.Len(t, r.Comparative.Benchmarks, 1)
	b := r.Comparative.Benchmarks[0]
	assert.Equal(t, "Global average diet", b.Name)
	assert.Equal(t, model.PerformanceExcellent, b.Performance)
	assert.Nil(t, r.Recommendations)
	assert.Nil(t, r.Benchmarking)
}

func TestRun_ComprehensiveProduction(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	a := &model.ProductionAssessment{
		Kind:        model.KindComprehensive,
		CompanyName: "Tamale Farms",
		Country:     model.CountryGhana,
		Region:      "Northern",
		Foods: []model.FoodItem{
			{Name: "Maize", QuantityKg: 2000, Category: model.FoodCereals, AreaHa: ha(2)},
		},
	}
	r, err := e.Run(context.Background(), NewProduction(a, "input: sample warning"))
	require.NoError(t, err)

	assert.Equal(t, "input: sample warning", r.DataQuality.Warnings[0])
	assert.Contains(t, r.DataQuality.Warnings, inventory.WarnEnergyEstimated)

	require.NotNil(t, r.Comparative)
	require.Len(t, r.Comparative.Regional, 1)
	assert.Equal(t, "Ghana sustainable farming average", r.Comparative.Regional[0].Region)
	assert.Equal(t, "Sustainable farming practices", r.Comparative.Benchmarks[0].Name)

	names := make([]string, 0, len(r.Comparative.BestPractices))
	for _, bp := range r.Comparative.BestPractices {
		names = append(names, bp.Name)
	}
	assert.Contains(t, names, "Intercrop with legumes")
	assert.NotContains(t, names, "Improve livestock feed efficiency")

	aware := e.Tables().AWARE(model.KindComprehensive, model.CountryGhana, true)
	assert.InDelta(t, r.Midpoints[model.WaterConsumption].Value*aware, r.Midpoints[model.WaterScarcity].Value, 1e-9)
}

func TestRun_Processing(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	a := millAssessment()
	r, err := e.Run(context.Background(), NewProcessing(a))
	require.NoError(t, err)

	assert.Equal(t, model.KindProcessing, r.Kind)
	assert.Equal(t, "Tema Grain Co", r.Subject)
	require.Contains(t, r.Breakdown, "Maize flour (1500 tonnes/year)")
	assert.Len(t, r.Midpoints, len(model.ProcessingCategories()))
	assert.Nil(t, r.Sensitivity)
	assert.Nil(t, r.Comparative)

	require.NotEmpty(t, r.Recommendations)
	assert.Equal(t, "Implement energy-efficient equipment", r.Recommendations[0].Title)
	for _, rec := range r.Recommendations {
		assert.Equal(t, model.PriorityMedium, rec.Priority)
	}

	require.NotNil(t, r.Benchmarking)
	assert.Equal(t, "Mill (Medium capacity, Ghana)", r.Benchmarking.Reference)
	require.Len(t, r.Benchmarking.Intensities, 2)
	energy := r.Benchmarking.Intensities[0]
	assert.Equal(t, "kWh/t", energy.Unit)
	assert.InDelta(t, r.Midpoints[model.EnergyConsumption].Value/1500, energy.Value, 1e-9)
	assert.Equal(t, Rate(energy.Value, 45, 65, 90), energy.Performance)

	assert.Greater(t, r.SingleScore.Value, 0.0)
	assert.Less(t, r.SingleScore.Value, 1.0)
}

func TestRun_Deterministic(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	first, err := e.Run(context.Background(), NewProcessing(millAssessment()))
	require.NoError(t, err)
	second, err := e.Run(context.Background(), NewProcessing(millAssessment()))
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	first.RunID, second.RunID = "", ""
	assert.Equal(t, first, second)
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newEngine(t).Run(ctx, NewProduction(simpleGhana()))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ReferenceYear(t *testing.T) {
	t.Parallel()

	repo, err := factors.NewSeeded()
	require.NoError(t, err)
	tb := factors.MustDefaultTables()

	a := millAssessment()
	a.Facility.EstablishedYear = 2000
	older, err := NewEngine(tb, repo, WithReferenceYear(2040)).Run(context.Background(), NewProcessing(a))
	require.NoError(t, err)
	newer, err := NewEngine(tb, repo, WithReferenceYear(2004)).Run(context.Background(), NewProcessing(a))
	require.NoError(t, err)

	assert.Greater(t, older.Midpoints[model.EnergyConsumption].Value, newer.Midpoints[model.EnergyConsumption].Value)
}

func TestSensitivity(t *testing.T) {
	t.Parallel()

	foods := []model.FoodItem{
		{Name: "Salt", QuantityKg: 1},
		{Name: "A", QuantityKg: 10},
		{Name: "B", QuantityKg: 30},
		{Name: "C", QuantityKg: 20},
		{Name: "D", QuantityKg: 15},
		{Name: "E", QuantityKg: 12},
		{Name: "F", QuantityKg: 12},
	}
	s := Sensitivity(foods)
	require.Len(t, s.Parameters, 5)
	assert.Equal(t, "B carbon footprint", s.Parameters[0].Name)
	assert.Equal(t, "E carbon footprint", s.Parameters[3].Name)
	assert.Equal(t, "F carbon footprint", s.Parameters[4].Name)
	assert.Len(t, s.Scenarios, 2)

	assert.Empty(t, Sensitivity(nil).Parameters)
}

func TestSimpleComparison(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		gw   float64
		want model.PerformanceCategory
	}{
		{"excellent", 1000, model.PerformanceExcellent},
		{"good", 2000, model.PerformanceGood},
		{"below average", 3000, model.PerformanceBelowAverage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := SimpleComparison(model.Midpoints{model.GlobalWarming: {Value: tt.gw}})
			require.Len(t, c.Benchmarks, 1)
			assert.Equal(t, tt.want, c.Benchmarks[0].Performance)
			assert.InDelta(t, (tt.gw-2000)/2000*100, c.Benchmarks[0].DifferencePct, 1e-9)
		})
	}
}

func TestComprehensiveComparison_Livestock(t *testing.T) {
	t.Parallel()

	a := &model.ProductionAssessment{
		Country: model.CountryNigeria,
		Foods:   []model.FoodItem{{Name: "Goat", QuantityKg: 10, Category: model.FoodMeat}},
	}
	c := ComprehensiveComparison(a, model.Midpoints{model.GlobalWarming: {Value: 1300}})
	assert.Equal(t, model.PerformanceGood, c.Benchmarks[0].Performance)
	assert.Equal(t, "Nigeria sustainable farming average", c.Regional[0].Region)
	require.Len(t, c.BestPractices, 4)
	assert.Equal(t, "Improve livestock feed efficiency", c.BestPractices[3].Name)
}

func TestRecommendations(t *testing.T) {
	t.Parallel()

	high := model.Midpoints{
		model.EnergyConsumption:    {Value: 5000},
		model.WaterConsumption:     {Value: 800},
		model.SolidWasteGeneration: {Value: 2000},
	}
	diesel := model.DefaultOperations()
	diesel.Energy.PrimarySource = model.EnergyDiesel
	diesel.Waste.Disposal = model.DisposalComposting
	diesel.Equipment.Age = model.EquipmentOld

	tests := []struct {
		name   string
		totals model.Midpoints
		ops    model.ProcessingOperations
		want   []string
	}{
		{
			name:   "grid landfill",
			totals: high,
			ops:    model.DefaultOperations(),
			want: []string{
				"Implement energy-efficient equipment",
				"Install water recycling system",
				"Implement composting or anaerobic digestion",
			},
		},
		{
			name:   "diesel composting old equipment",
			totals: high,
			ops:    diesel,
			want: []string{
				"Switch to grid electricity or solar power",
				"Install water recycling system",
				"Increase waste reduction and recycling",
				"Equipment modernization program",
			},
		},
		{
			name:   "below thresholds",
			totals: model.Midpoints{model.EnergyConsumption: {Value: 1000}},
			ops:    model.DefaultOperations(),
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			recs := Recommendations(tt.totals, tt.ops)
			titles := make([]string, 0, len(recs))
			for _, r := range recs {
				titles = append(titles, r.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    float64
		want model.PerformanceCategory
	}{
		{45, model.PerformanceExcellent},
		{60, model.PerformanceGood},
		{75, model.PerformanceAverage},
		{90, model.PerformanceBelowAverage},
		{91, model.PerformancePoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Rate(tt.v, 45, 65, 90), "%v", tt.v)
	}
}

func TestBenchmark_NoReference(t *testing.T) {
	t.Parallel()

	tb := factors.MustDefaultTables()
	a := millAssessment()
	a.Country = model.CountryNigeria
	assert.Nil(t, Benchmark(tb, a, model.Midpoints{}))

	a = millAssessment()
	a.Products = nil
	assert.Nil(t, Benchmark(tb, a, model.Midpoints{}))
}
