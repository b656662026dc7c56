package factors

import (
	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/uncertainty"
)

const defaultYear = 2024

// productionDefaultOrder is the column order of productionDefaults rows.
var productionDefaultOrder = []model.Category{
	model.GlobalWarming,
	model.WaterConsumption,
	model.LandUse,
	model.TerrestrialAcidification,
	model.FreshwaterEutrophication,
	model.MarineEutrophication,
	model.BiodiversityLoss,
	model.SoilDegradation,
	model.ParticulateMatter,
	model.PhotochemicalOxidation,
	model.FossilDepletion,
	model.MineralDepletion,
}

// productionDefaults holds per-kg estimates by food category. Categories not
// listed fall back to the Cereals row.
var productionDefaults = map[model.FoodCategory][]float64{
	model.FoodCereals:    {1.4, 1.6, 2.8, 0.012, 0.003, 0.008, 0.6, 0.15, 0.008, 0.004, 0.02, 0.001},
	model.FoodLegumes:    {1.0, 4.0, 2.5, 0.008, 0.002, 0.005, 0.4, 0.08, 0.006, 0.003, 0.015, 0.0008},
	model.FoodVegetables: {0.5, 0.4, 0.3, 0.004, 0.001, 0.003, 0.2, 0.05, 0.003, 0.002, 0.008, 0.0004},
	model.FoodFruits:     {0.6, 0.8, 0.4, 0.005, 0.001, 0.004, 0.3, 0.06, 0.004, 0.002, 0.01, 0.0005},
	model.FoodMeat:       {25.0, 15.0, 20.0, 0.2, 0.05, 0.15, 8.0, 2.5, 0.15, 0.08, 0.4, 0.02},
	model.FoodPoultry:    {6.0, 4.0, 7.0, 0.08, 0.02, 0.06, 2.5, 0.8, 0.05, 0.03, 0.15, 0.008},
	model.FoodFish:       {4.0, 0.005, 3.0, 0.03, 0.008, 0.15, 1.5, 0.2, 0.025, 0.015, 0.08, 0.003},
	model.FoodDairy:      {3.2, 5.0, 4.0, 0.04, 0.01, 0.03, 1.8, 0.6, 0.03, 0.02, 0.08, 0.004},
	model.FoodRoots:      {0.3, 0.6, 1.0, 0.002, 0.0005, 0.002, 0.15, 0.03, 0.002, 0.001, 0.005, 0.0002},
}

// unknownImpactDefault applies to impacts with no column in the default tables.
const unknownImpactDefault = 0.1

type productionDefaultKey struct {
	category model.FoodCategory
	impact   model.Category
}

// productionDefaultTable flattens productionDefaults into tuple keys.
var productionDefaultTable = func() map[productionDefaultKey]float64 {
	out := make(map[productionDefaultKey]float64, len(productionDefaults)*len(productionDefaultOrder))
	for cat, row := range productionDefaults {
		for i, impact := range productionDefaultOrder {
			out[productionDefaultKey{cat, impact}] = row[i]
		}
	}
	return out
}()

// ProductionDefault returns the built-in per-kg estimate for a food
// category and impact.
func ProductionDefault(category model.FoodCategory, impact model.Category) float64 {
	if v, ok := productionDefaultTable[productionDefaultKey{category, impact}]; ok {
		return v
	}
	if v, ok := productionDefaultTable[productionDefaultKey{model.FoodCereals, impact}]; ok {
		return v
	}
	return unknownImpactDefault
}

type processingDefaultKey struct {
	facility model.FacilityType
	product  model.ProductType
	impact   model.Category
}

// processingDefaults are per-tonne estimates for common facility/product pairs.
var processingDefaults = map[processingDefaultKey]float64{
	{model.FacilityMill, model.ProductFlourMaize, model.GlobalWarming}:     0.15,
	{model.FacilityMill, model.ProductFlourMaize, model.EnergyConsumption}: 80,
	{model.FacilityMill, model.ProductFlourMaize, model.WaterConsumption}:  2,

	{model.FacilityMill, model.ProductRice, model.GlobalWarming}:     0.25,
	{model.FacilityMill, model.ProductRice, model.EnergyConsumption}: 120,
	{model.FacilityMill, model.ProductRice, model.WaterConsumption}:  4,

	{model.FacilityPalmOilMill, model.ProductPalmOil, model.GlobalWarming}:     0.6,
	{model.FacilityPalmOilMill, model.ProductPalmOil, model.EnergyConsumption}: 200,
	{model.FacilityPalmOilMill, model.ProductPalmOil, model.WaterConsumption}:  8,

	{model.FacilityCassavaProcessing, model.ProductFlourCassava, model.GlobalWarming}:     0.1,
	{model.FacilityCassavaProcessing, model.ProductFlourCassava, model.EnergyConsumption}: 60,
	{model.FacilityCassavaProcessing, model.ProductFlourCassava, model.WaterConsumption}:  3,

	{model.FacilityBakery, model.ProductBakedGoods, model.GlobalWarming}:     0.8,
	{model.FacilityBakery, model.ProductBakedGoods, model.EnergyConsumption}: 300,
	{model.FacilityBakery, model.ProductBakedGoods, model.WaterConsumption}:  1.5,

	{model.FacilityFishProcessing, model.ProductFish, model.GlobalWarming}:     1.2,
	{model.FacilityFishProcessing, model.ProductFish, model.EnergyConsumption}: 400,
	{model.FacilityFishProcessing, model.ProductFish, model.WaterConsumption}:  10,
}

// processingImpactDefaults apply when no facility/product pair matches.
var processingImpactDefaults = map[model.Category]float64{
	model.GlobalWarming:        0.5,
	model.EnergyConsumption:    150,
	model.WaterConsumption:     3,
	model.SolidWasteGeneration: 50,
	model.WastewaterGeneration: 2,
}

// ProcessingDefault returns the built-in per-tonne estimate.
func ProcessingDefault(facility model.FacilityType, product model.ProductType, impact model.Category) float64 {
	if v, ok := processingDefaults[processingDefaultKey{facility, product, impact}]; ok {
		return v
	}
	if v, ok := processingImpactDefaults[impact]; ok {
		return v
	}
	return unknownImpactDefault
}

// defaultFactor wraps a default value with the worst pedigree and a
// [0.5x, 2x] range.
func defaultFactor(scope Scope, group string, country model.Country, item string, impact model.Category, value float64) Factor {
	unit := impact.Unit()
	if scope == ScopeProcessing {
		unit = impact.ProcessingUnit()
	}
	return Factor{
		Scope:      scope,
		Group:      group,
		Country:    country,
		Item:       item,
		Impact:     impact,
		Value:      value,
		Unit:       unit,
		Confidence: model.ConfidenceVeryLow,
		Source:     DefaultSource,
		Year:       defaultYear,
		Range:      uncertainty.Relative(value, 0.5, 2.0),
		Pedigree:   uncertainty.Worst(),
	}
}
