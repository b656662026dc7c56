package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/model"
)

func ha(v float64) *float64 { return &v }

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	repo, err := factors.NewSeeded()
	require.NoError(t, err)
	return NewBuilder(factors.MustDefaultTables(), repo)
}

func farm(foods ...model.FoodItem) *model.ProductionAssessment {
	return &model.ProductionAssessment{
		Kind:        model.KindComprehensive,
		CompanyName: "Tamale Growers",
		Country:     model.CountryGhana,
		Foods:       foods,
		Practices:   &model.ManagementPractices{},
	}
}

func TestInventory_Add(t *testing.T) {
	t.Parallel()

	inv := New()
	inv.Add(Flow{Substance: CO2, Compartment: Air, Quantity: 1, Provenance: []string{"a"}, Measures: Measures{DieselLitres: 2}})
	inv.Add(Flow{Substance: CO2, Compartment: Air, Quantity: 2, Provenance: []string{"a"}, Measures: Measures{DieselLitres: 3}})
	inv.Add(Flow{Substance: CO2, Compartment: Water, Quantity: 5})

	assert.Equal(t, 2, inv.Len())
	f, ok := inv.Get(CO2, Air)
	require.True(t, ok)
	assert.InDelta(t, 3.0, f.Quantity, 1e-12)
	assert.Equal(t, "a, a", f.Source(), "provenance is not deduplicated")
	assert.InDelta(t, 8.0, inv.Quantity(CO2), 1e-12)
	assert.InDelta(t, 5.0, inv.Measure(DieselLitres), 1e-12)

	_, ok = inv.Get(CH4, Air)
	assert.False(t, ok)
}

func TestInventory_AddCopies(t *testing.T) {
	t.Parallel()

	prov := []string{"x"}
	inv := New()
	inv.Add(Flow{Substance: CO2, Compartment: Air, Quantity: 1, Provenance: prov})
	inv.Add(Flow{Substance: CO2, Compartment: Air, Quantity: 1, Provenance: []string{"y"}})
	assert.Equal(t, []string{"x"}, prov)
}

func TestNitrogenFraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ, ratio string
		want       float64
	}{
		{"Urea", "", 0.46},
		{"Diammonium Phosphate (DAP)", "", 0.18},
		{"NPK Compound", "20-10-10", 0.20},
		{"NPK", "bad", 0.15},
		{"Ammonium Sulfate", "", 0.21},
		{"CAN", "", 0.27},
		{"Poultry manure", "", 0.10},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, NitrogenFraction(tt.typ, tt.ratio), 1e-12)
		})
	}
	assert.InDelta(t, 1.2, ProductionFactor("urea"), 1e-12)
	assert.InDelta(t, 1.5, ProductionFactor("NPK"), 1e-12)
	assert.InDelta(t, 1.0, ProductionFactor("DAP"), 1e-12)
}

func TestProduction_FertilizerN2O(t *testing.T) {
	t.Parallel()

	a := farm(model.FoodItem{Name: "Maize", QuantityKg: 5000, Category: model.FoodCereals, AreaHa: ha(10)})
	a.Practices.Fertilization = model.FertilizationPractice{
		UsesFertilizers: true,
		Applications:    []model.FertilizerApplication{{Type: "Urea", RateKgHa: 100, Applications: 1}},
	}

	res := newBuilder(t).Production(a)
	inv := res.Inventory

	// 460 kg N applied -> 4.6 kg N2O-N -> 7.229 kg N2O.
	direct, ok := inv.Get(N2ODirect, Air)
	require.True(t, ok)
	assert.InDelta(t, 7.229, direct.Quantity, 1e-3)
	assert.InDelta(t, 460.0, direct.Measures[NitrogenKg], 1e-9)

	indirect, ok := inv.Get(N2OIndirect, Air)
	require.True(t, ok)
	assert.InDelta(t, 7.229*0.2, indirect.Quantity, 1e-3)

	nitrate, ok := inv.Get(Nitrate, Water)
	require.True(t, ok)
	assert.InDelta(t, 460*0.2*62.0/14.0, nitrate.Quantity, 1e-9)

	co2, ok := inv.Get(CO2, Air)
	require.True(t, ok)
	assert.Contains(t, co2.Source(), "Production and transport of Urea")
	assert.InDelta(t, 1000.0, inv.Measure(FertilizerKg), 1e-9)
}

func TestProduction_NPKMinerals(t *testing.T) {
	t.Parallel()

	a := farm(model.FoodItem{Name: "Cassava", QuantityKg: 1000, Category: model.FoodRoots, AreaHa: ha(2)})
	a.Practices.Fertilization = model.FertilizationPractice{
		UsesFertilizers: true,
		Applications:    []model.FertilizerApplication{{Type: "NPK", NPKRatio: "15-15-15", RateKgHa: 50, Applications: 2}},
	}

	inv := newBuilder(t).Production(a).Inventory
	p, ok := inv.Get(PhosphateRock, Resource)
	require.True(t, ok)
	assert.InDelta(t, 200*0.15*0.3, p.Quantity, 1e-9)
	k, ok := inv.Get(Potash, Resource)
	require.True(t, ok)
	assert.InDelta(t, 200*0.15*0.2, k.Quantity, 1e-9)
}

func TestProduction_FertilizerWithoutArea(t *testing.T) {
	t.Parallel()

	a := farm(model.FoodItem{Name: "Maize", QuantityKg: 100, Category: model.FoodCereals})
	a.Practices.Fertilization = model.FertilizationPractice{
		UsesFertilizers: true,
		Applications:    []model.FertilizerApplication{{Type: "Urea", RateKgHa: 100, Applications: 1}},
	}

	res := newBuilder(t).Production(a)
	assert.Contains(t, res.Warnings, WarnNoFertilizerArea)
	assert.Zero(t, res.Inventory.Len())
}

func TestProduction_RiceMethane(t *testing.T) {
	t.Parallel()

	a := farm(
		model.FoodItem{Name: "Paddy Rice", QuantityKg: 3000, Category: model.FoodCereals, AreaHa: ha(2)},
		model.FoodItem{Name: "Rice without area", QuantityKg: 10, Category: model.FoodCereals},
	)
	inv := newBuilder(t).Production(a).Inventory

	ch4, ok := inv.Get(CH4, Air)
	require.True(t, ok)
	assert.InDelta(t, 400.0, ch4.Quantity, 1e-9)

	land, ok := inv.Get(LandOccupation, Resource)
	require.True(t, ok)
	assert.InDelta(t, 20000.0, land.Quantity, 1e-9)
}

func TestProduction_EstimatedEnergy(t *testing.T) {
	t.Parallel()

	a := farm(model.FoodItem{Name: "Maize", QuantityKg: 5000, Category: model.FoodCereals, AreaHa: ha(5)})
	res := newBuilder(t).Production(a)

	assert.Contains(t, res.Warnings, WarnEnergyEstimated)
	co2, ok := res.Inventory.Get(CO2, Air)
	require.True(t, ok)
	assert.InDelta(t, 400*2.68+1000*0.45, co2.Quantity, 1e-9)
	assert.Contains(t, co2.Source(), "ESTIMATED")
	assert.InDelta(t, 400.0, res.Inventory.Measure(DieselLitres), 1e-9)
	assert.InDelta(t, 1000.0, res.Inventory.Measure(ElectricityKWh), 1e-9)
}

func TestProduction_MeteredEnergy(t *testing.T) {
	t.Parallel()

	a := farm(model.FoodItem{Name: "Maize", QuantityKg: 5000, Category: model.FoodCereals, AreaHa: ha(5)})
	a.Country = model.CountryNigeria
	a.Equipment = &model.EquipmentEnergy{
		Fuel: []model.FuelUsage{
			{Type: "Diesel", MonthlyConsumption: 50},
			{Type: "Petrol/Gasoline", MonthlyConsumption: 10},
			{Type: "Kerosene", MonthlyConsumption: 1},
		},
		Energy: []model.EnergyUsage{
			{Type: "Grid Electricity", MonthlyConsumption: 100, PrimaryUse: "Irrigation"},
			{Type: "Solar", MonthlyConsumption: 100},
		},
	}
	res := newBuilder(t).Production(a)

	assert.NotContains(t, res.Warnings, WarnEnergyEstimated)
	inv := res.Inventory
	assert.InDelta(t, 600.0, inv.Measure(DieselLitres), 1e-9)
	assert.InDelta(t, 120.0, inv.Measure(PetrolLitres), 1e-9)
	assert.InDelta(t, 12.0, inv.Measure(OtherFuelLitres), 1e-9)
	assert.InDelta(t, 1200.0, inv.Measure(ElectricityKWh), 1e-9, "solar is not grid")

	co2, _ := inv.Get(CO2, Air)
	assert.InDelta(t, 600*2.68+120*2.31+12*2.5+1200*0.58, co2.Quantity, 1e-9)
	assert.Contains(t, co2.Source(), "Diesel consumption: 50 L/month (600.0 L/year)")
}

func TestProduction_PesticideAndIrrigation(t *testing.T) {
	t.Parallel()

	a := farm(model.FoodItem{Name: "Tomato", QuantityKg: 800, Category: model.FoodVegetables, AreaHa: ha(1.5)})
	a.Practices.Pest.Pesticides = []model.PesticideApplication{{Type: "Insecticide", ActiveIngredient: "Lambda-cyhalothrin", Rate: 0.5, Applications: 4}}
	a.Practices.Water.IrrigationSystem = "Drip irrigation"

	inv := newBuilder(t).Production(a).Inventory
	p, ok := inv.Get(CO2Eq, Air)
	require.True(t, ok)
	assert.InDelta(t, 20.0, p.Quantity, 1e-9)
	assert.Equal(t, "Production of Insecticide pesticide (Lambda-cyhalothrin)", p.Source())

	w, ok := inv.Get(WaterUse, Resource)
	require.True(t, ok)
	assert.InDelta(t, 4500.0, w.Quantity, 1e-9)
}

func TestFuelClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fuel   string
		want   Measure
		kgPerL float64
	}{
		{"Diesel", DieselLitres, dieselKgCO2PerL},
		{" diesel ", DieselLitres, dieselKgCO2PerL},
		{"Petrol/Gasoline", PetrolLitres, petrolKgCO2PerL},
		{"Gasoline", PetrolLitres, petrolKgCO2PerL},
		{"Biodiesel", OtherFuelLitres, otherKgCO2PerL},
		{"Bio-diesel B20", OtherFuelLitres, otherKgCO2PerL},
		{"Tractor diesel", DieselLitres, dieselKgCO2PerL},
		{"Premium petrol", PetrolLitres, petrolKgCO2PerL},
		{"Kerosene", OtherFuelLitres, otherKgCO2PerL},
	}
	for _, tt := range tests {
		m, k := fuelClass(tt.fuel)
		assert.Equal(t, tt.want, m, tt.fuel)
		assert.InDelta(t, tt.kgPerL, k, 1e-12, tt.fuel)
	}
}

func TestIrrigationPerHa(t *testing.T) {
	t.Parallel()

	assert.Zero(t, IrrigationPerHa(""))
	assert.Zero(t, IrrigationPerHa("None (Rainfed)"))
	assert.InDelta(t, 5000.0, IrrigationPerHa("Sprinkler System"), 1e-12)
	assert.InDelta(t, 8000.0, IrrigationPerHa("Furrow irrigation"), 1e-12)
	assert.InDelta(t, 4000.0, IrrigationPerHa("Bucket"), 1e-12)
}

func facility() *model.ProcessingAssessment {
	ef := 5.0
	return &model.ProcessingAssessment{
		Facility: model.FacilityProfile{
			FacilityName: "Kumasi Mill",
			FacilityType: model.FacilityMill,
			CapacityTPD:  10,
			DaysPerYear:  300,
			LocationType: model.LocationPeriUrban,
		},
		Operations: model.DefaultOperations(),
		Country:    model.CountryGhana,
		Products: []model.ProcessedProduct{
			{
				Name:         "Maize flour",
				ProductType:  model.ProductFlourMaize,
				AnnualTonnes: 1500,
				Steps: []model.ProcessingStep{
					{Name: "Cleaning", EnergyIntensity: 10, WaterUsage: 200, EmissionsFactor: &ef},
					{Name: "Milling", EnergyIntensity: 40, WaterUsage: 0},
				},
			},
			{Name: "Rice", ProductType: model.ProductRice, AnnualTonnes: 1500},
		},
	}
}

func TestProcessing_FromSteps(t *testing.T) {
	t.Parallel()

	a := facility()
	inv := newBuilder(t).Processing(a, a.Products[0]).Inventory

	e, ok := inv.Get(ProcessEnergy, Resource)
	require.True(t, ok)
	assert.InDelta(t, 50*1.2*1500, e.Quantity, 1e-6)

	// Grid electricity at 0.45 plus 5 kg/t step emissions.
	co2, _ := inv.Get(CO2, Air)
	assert.InDelta(t, 50*1.2*1500*0.45, co2.Quantity, 1e-6)
	steps, _ := inv.Get(CO2Eq, Air)
	assert.InDelta(t, 7500.0, steps.Quantity, 1e-9)

	// 1500 t of a 3000 t/yr capacity.
	waste, _ := inv.Get(WasteEmissions, Air)
	assert.InDelta(t, 100*365*0.7*0.5*0.5, waste.Quantity, 1e-6)
	solid, _ := inv.Get(SolidWaste, Soil)
	assert.InDelta(t, 100*300*0.5, solid.Quantity, 1e-6)

	water, _ := inv.Get(WaterUse, Resource)
	assert.InDelta(t, 200*1.3/1000*1500, water.Quantity, 1e-9)
	ww, _ := inv.Get(Wastewater, Water)
	assert.InDelta(t, water.Quantity*0.8*0.8, ww.Quantity, 1e-9)
}

func TestWaterEfficiency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		measures int
		want     float64
	}{
		{0, 1.0},
		{1, 0.9},
		{2, 0.9},
		{3, 0.8},
		{4, 0.8},
		{5, 0.7},
		{9, 0.7},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, WaterEfficiency(tt.measures), 1e-12, "%d measures", tt.measures)
	}
}

func TestProcessing_WaterConservation(t *testing.T) {
	t.Parallel()

	a := facility()
	a.Operations.Water.ConservationMeasures = []string{"Rainwater harvesting", "Recycling", "Drip cleaning"}
	a.Products = []model.ProcessedProduct{{
		Name:         "Parboiled rice",
		ProductType:  model.ProductRice,
		AnnualTonnes: 100,
		Steps:        []model.ProcessingStep{{Name: "Washing", WaterUsage: 1000}},
	}}
	b := newBuilder(t)

	wpt, fromSteps := b.WaterPerTonne(a, a.Products[0])
	assert.True(t, fromSteps)
	assert.InDelta(t, 1.04, wpt, 1e-12)

	inv := b.Processing(a, a.Products[0]).Inventory
	water, _ := inv.Get(WaterUse, Resource)
	assert.InDelta(t, 104.0, water.Quantity, 1e-9)
	ww, _ := inv.Get(Wastewater, Water)
	assert.InDelta(t, 104.0*0.8*0.8, ww.Quantity, 1e-9)
}

func TestProcessing_FactorFallbackAndDiesel(t *testing.T) {
	t.Parallel()

	a := facility()
	a.Operations.Energy.PrimarySource = model.EnergyDiesel
	a.Operations.Waste.Disposal = model.DisposalDigestion
	b := newBuilder(t)

	ept, fromSteps := b.EnergyPerTonne(a, a.Products[1])
	assert.False(t, fromSteps)
	assert.Positive(t, ept)

	inv := b.Processing(a, a.Products[1]).Inventory
	assert.InDelta(t, 500*12*0.5, inv.Measure(DieselLitres), 1e-9, "half the output")
	waste, _ := inv.Get(WasteEmissions, Air)
	assert.Negative(t, waste.Quantity, "digestion is a credit")
}
