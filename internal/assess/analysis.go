package assess

import (
	"sort"

	"github.com/sells-group/lca-cli/internal/model"
)

const (
	maxInfluential       = 5
	influentialMinKg     = 1.0
	parameterUncertainty = 50.0
	parameterImprovement = 30.0
)

// Sensitivity ranks food items above 1 kg by their share of total mass
// and attaches the two standard scenarios.
func Sensitivity(foods []model.FoodItem) *model.SensitivityAnalysis {
	var total float64
	for _, f := range foods {
		total += f.QuantityKg
	}
	params := []model.InfluentialParameter{}
	for _, f := range foods {
		if f.QuantityKg <= influentialMinKg || total <= 0 {
			continue
		}
		params = append(params, model.InfluentialParameter{
			Name:                 f.Name + " carbon footprint",
			Influence:            f.QuantityKg / total * 100,
			Uncertainty:          parameterUncertainty,
			ImprovementPotential: parameterImprovement,
		})
	}
	sort.SliceStable(params, func(i, j int) bool {
		return params[i].Influence > params[j].Influence
	})
	if len(params) > maxInfluential {
		params = params[:maxInfluential]
	}

	return &model.SensitivityAnalysis{
		Parameters: params,
		Scenarios: []model.Scenario{
			{
				Name:        "Best available technology",
				Description: "Using most efficient production systems",
				Changes: map[model.Category]float64{
					model.GlobalWarming:    -30,
					model.WaterConsumption: -25,
				},
			},
			{
				Name:        "Climate adaptation",
				Description: "Drought-resistant varieties and water-efficient practices",
				Changes: map[model.Category]float64{
					model.WaterScarcity:    -40,
					model.BiodiversityLoss: -20,
				},
			},
		},
	}
}

func compare(name string, value, benchmark, excellentBelow, goodBelow float64) model.BenchmarkComparison {
	perf := model.PerformanceBelowAverage
	switch {
	case value < excellentBelow:
		perf = model.PerformanceExcellent
	case value < goodBelow:
		perf = model.PerformanceGood
	}
	return model.BenchmarkComparison{
		Name:           name,
		BenchmarkValue: benchmark,
		YourValue:      value,
		DifferencePct:  (value - benchmark) / benchmark * 100,
		Performance:    perf,
	}
}

// SimpleComparison compares annual warming with a global average diet
// and a West African reference.
func SimpleComparison(totals model.Midpoints) *model.ComparativeAnalysis {
	out := &model.ComparativeAnalysis{Benchmarks: []model.BenchmarkComparison{}}
	if gw, ok := totals[model.GlobalWarming]; ok {
		out.Benchmarks = append(out.Benchmarks, compare("Global average diet", gw.Value, 2000, 1500, 2500))
	}
	out.Regional = []model.RegionalComparison{{
		Region: "West Africa average",
		Ratios: map[model.Category]float64{
			model.GlobalWarming:    1.2,
			model.WaterConsumption: 0.9,
		},
	}}
	out.BestPractices = []model.BestPractice{
		{
			Name:        "Increase legume consumption",
			Description: "Replace 25% of cereal consumption with legumes",
			Reductions:  map[model.Category]float64{model.GlobalWarming: 15, model.LandUse: 10},
			Difficulty:  model.DifficultyLow,
			Cost:        model.CostNone,
		},
		{
			Name:        "Improved livestock management",
			Description: "Implement rotational grazing and feed supplements",
			Reductions:  map[model.Category]float64{model.GlobalWarming: 25, model.BiodiversityLoss: 20},
			Difficulty:  model.DifficultyMedium,
			Cost:        model.CostMedium,
		},
	}
	return out
}

// ComprehensiveComparison compares a farm with sustainable-farming
// references for its country and suggests practices that fit its products.
func ComprehensiveComparison(a *model.ProductionAssessment, totals model.Midpoints) *model.ComparativeAnalysis {
	out := &model.ComparativeAnalysis{Benchmarks: []model.BenchmarkComparison{}}
	if gw, ok := totals[model.GlobalWarming]; ok {
		out.Benchmarks = append(out.Benchmarks, compare("Sustainable farming practices", gw.Value, 1500, 1200, 1800))
	}

	region := "West Africa"
	if a.Country.IsWestAfrican() {
		region = string(a.Country)
	}
	out.Regional = []model.RegionalComparison{{
		Region: region + " sustainable farming average",
		Ratios: map[model.Category]float64{
			model.GlobalWarming:    1.1,
			model.WaterConsumption: 0.9,
			model.SoilDegradation:  1.2,
			model.BiodiversityLoss: 0.8,
		},
	}}

	out.BestPractices = []model.BestPractice{
		{
			Name:        "Implement conservation agriculture",
			Description: "Adopt no-till farming, cover crops, and crop rotation",
			Reductions: map[model.Category]float64{
				model.GlobalWarming: 20, model.SoilDegradation: 40, model.WaterConsumption: 15,
			},
			Difficulty: model.DifficultyMedium,
			Cost:       model.CostLow,
		},
		{
			Name:        "Optimize fertilizer application",
			Description: "Use soil testing and precision application techniques",
			Reductions: map[model.Category]float64{
				model.GlobalWarming: 25, model.FreshwaterEutrophication: 35, model.MarineEutrophication: 30,
			},
			Difficulty: model.DifficultyLow,
			Cost:       model.CostNone,
		},
		{
			Name:        "Install efficient irrigation systems",
			Description: "Upgrade to drip irrigation or micro-sprinklers",
			Reductions: map[model.Category]float64{
				model.WaterConsumption: 40, model.WaterScarcity: 40,
			},
			Difficulty: model.DifficultyHigh,
			Cost:       model.CostHigh,
		},
	}
	if hasCategory(a.Foods, model.FoodMeat, model.FoodDairy) {
		out.BestPractices = append(out.BestPractices, model.BestPractice{
			Name:        "Improve livestock feed efficiency",
			Description: "Use high-quality feed supplements and pasture management",
			Reductions: map[model.Category]float64{
				model.GlobalWarming: 30, model.LandUse: 25, model.WaterConsumption: 20,
			},
			Difficulty: model.DifficultyMedium,
			Cost:       model.CostMedium,
		})
	}
	if hasCategory(a.Foods, model.FoodCereals) {
		out.BestPractices = append(out.BestPractices, model.BestPractice{
			Name:        "Intercrop with legumes",
			Description: "Plant legumes between cereal rows to fix nitrogen naturally",
			Reductions: map[model.Category]float64{
				model.GlobalWarming: 15, model.SoilDegradation: 20, model.FreshwaterEutrophication: 25,
			},
			Difficulty: model.DifficultyLow,
			Cost:       model.CostNone,
		})
	}
	return out
}

func hasCategory(foods []model.FoodItem, cats ...model.FoodCategory) bool {
	for _, f := range foods {
		for _, c := range cats {
			if f.Category == c {
				return true
			}
		}
	}
	return false
}

// Recommendation categories for facility improvements.
const (
	RecEnergyEfficiency = "EnergyEfficiency"
	RecWaterManagement  = "WaterManagement"
	RecPostHarvest      = "PostHarvest"
	RecSystemDesign     = "SystemDesign"
)

const (
	highEnergyKWh    = 1000.0
	highWaterM3      = 500.0
	highSolidWasteKg = 1000.0
)

// Recommendations suggests facility improvements from annual totals and
// the operating record.
func Recommendations(totals model.Midpoints, ops model.ProcessingOperations) []model.Recommendation {
	recs := []model.Recommendation{}
	add := func(r model.Recommendation) {
		r.Priority = model.PriorityMedium
		recs = append(recs, r)
	}

	if totals[model.EnergyConsumption].Value > highEnergyKWh {
		if ops.Energy.PrimarySource == model.EnergyDiesel {
			add(model.Recommendation{
				Category:      RecEnergyEfficiency,
				Title:         "Switch to grid electricity or solar power",
				Description:   "Reduce reliance on diesel generators by connecting to the grid or installing solar panels",
				Savings:       map[model.Category]float64{model.GlobalWarming: 40, model.EnergyConsumption: 20},
				Difficulty:    model.DifficultyMedium,
				Cost:          model.CostHigh,
				PaybackMonths: 24,
			})
		} else {
			add(model.Recommendation{
				Category:      RecEnergyEfficiency,
				Title:         "Implement energy-efficient equipment",
				Description:   "Upgrade to energy-efficient motors, LED lighting, and optimize equipment operation",
				Savings:       map[model.Category]float64{model.EnergyConsumption: 25, model.GlobalWarming: 20},
				Difficulty:    model.DifficultyMedium,
				Cost:          model.CostMedium,
				PaybackMonths: 18,
			})
		}
	}

	if totals[model.WaterConsumption].Value > highWaterM3 {
		add(model.Recommendation{
			Category:      RecWaterManagement,
			Title:         "Install water recycling system",
			Description:   "Implement water treatment and recycling for process water reuse",
			Savings:       map[model.Category]float64{model.WaterConsumption: 40, model.WaterScarcity: 40},
			Difficulty:    model.DifficultyHigh,
			Cost:          model.CostHigh,
			PaybackMonths: 36,
		})
	}

	if totals[model.SolidWasteGeneration].Value > highSolidWasteKg {
		if ops.Waste.Disposal == model.DisposalLandfill {
			add(model.Recommendation{
				Category:      RecPostHarvest,
				Title:         "Implement composting or anaerobic digestion",
				Description:   "Convert organic waste to compost or biogas instead of landfilling",
				Savings:       map[model.Category]float64{model.GlobalWarming: 60, model.SolidWasteGeneration: 80},
				Difficulty:    model.DifficultyMedium,
				Cost:          model.CostMedium,
				PaybackMonths: 24,
			})
		} else {
			add(model.Recommendation{
				Category:      RecPostHarvest,
				Title:         "Increase waste reduction and recycling",
				Description:   "Implement waste minimization practices and expand recycling programs",
				Savings:       map[model.Category]float64{model.SolidWasteGeneration: 30},
				Difficulty:    model.DifficultyLow,
				Cost:          model.CostLow,
				PaybackMonths: 12,
			})
		}
	}

	if ops.Equipment.Age.IsAging() {
		add(model.Recommendation{
			Category:      RecSystemDesign,
			Title:         "Equipment modernization program",
			Description:   "Develop a phased approach to replace old equipment with energy-efficient alternatives",
			Savings:       map[model.Category]float64{model.EnergyConsumption: 35, model.GlobalWarming: 25},
			Difficulty:    model.DifficultyHigh,
			Cost:          model.CostHigh,
			PaybackMonths: 48,
		})
	}
	return recs
}

// Rate places a per-tonne intensity on a best/average/worst scale.
func Rate(v, best, average, worst float64) model.PerformanceCategory {
	switch {
	case v <= best:
		return model.PerformanceExcellent
	case v <= average:
		return model.PerformanceGood
	case v <= (average+worst)/2:
		return model.PerformanceAverage
	case v <= worst:
		return model.PerformanceBelowAverage
	default:
		return model.PerformancePoor
	}
}
