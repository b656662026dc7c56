// Package adjust applies the multiplicative context adjustments to midpoint
// results: climate, season, production system, regional water scarcity,
// management practices and facility conditions.
package adjust

import (
	"fmt"
	"strings"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/model"
)

// ItemMultiplier is the combined climate, seasonal and production-system
// multiplier for one category of one food item.
func ItemMultiplier(t *factors.Tables, item model.FoodItem, c model.Category) float64 {
	k := 1.0
	switch c {
	case model.GlobalWarming:
		k *= t.MethaneFactor(item.Category)
	case model.SoilDegradation:
		k *= t.TropicalDecomposition()
	}
	k *= t.Seasonal(item.SeasonalFactor)
	k *= t.SystemMultiplier(item.ProductionSystem)
	return k
}

// WaterScarcity derives the water-scarcity midpoint from water consumption
// with a regional AWARE factor. Water consumption itself is unchanged.
func WaterScarcity(ms model.Midpoints, factor float64) model.Midpoints {
	out := ms.Clone()
	wc, ok := out[model.WaterConsumption]
	if !ok {
		return out
	}
	out[model.WaterScarcity] = model.Midpoint{
		Value:   wc.Value * factor,
		Unit:    model.WaterScarcity.Unit(),
		Range:   wc.Range.Scale(factor),
		Quality: wc.Quality,
		Sources: []string{fmt.Sprintf("AWARE regional factor: %g", factor)},
	}
	return out
}

// Management adjusts one item's midpoints for its farm management
// practices. A nil practices record leaves the midpoints unchanged.
func Management(ms model.Midpoints, p *model.ManagementPractices) model.Midpoints {
	out := ms.Clone()
	if p == nil {
		return out
	}
	scale := func(c model.Category, k float64, note string) {
		if m, ok := out[c]; ok {
			out[c] = m.Scale(k, note)
		}
	}

	conservation := len(p.Soil.ConservationPractices)
	scale(model.SoilDegradation, soilConservation(conservation),
		fmt.Sprintf("Conservation practices: %d", conservation))

	if p.Soil.UsesCompost {
		scale(model.GlobalWarming, 0.92, "Compost use")
	}
	scale(model.GlobalWarming, fertilizerPlanning(p.Fertilization), "")

	eutro := 1.3
	if p.Fertilization.FollowsNutrientPlan {
		eutro = 0.7
	}
	scale(model.FreshwaterEutrophication, eutro, "")
	scale(model.MarineEutrophication, eutro, "")

	irr := IrrigationEfficiency(p.Water.IrrigationSystem)
	scale(model.WaterConsumption, irr, "")
	scale(model.WaterScarcity, irr, "")

	if len(p.Water.ConservationPractices) > 0 {
		scale(model.SoilDegradation, 0.8, "")
	}

	scale(model.BiodiversityLoss, pesticidePressure(len(p.Pest.Pesticides)), "")
	if p.Pest.UsesIPM {
		for _, c := range []model.Category{
			model.BiodiversityLoss, model.TerrestrialAcidification,
			model.FreshwaterEutrophication, model.MarineEutrophication,
		} {
			scale(c, 0.9, "")
		}
	}
	return out
}

func soilConservation(n int) float64 {
	switch {
	case n > 2:
		return 0.85
	case n > 0:
		return 0.92
	default:
		return 1.0
	}
}

func fertilizerPlanning(f model.FertilizationPractice) float64 {
	switch {
	case f.SoilTestBased && f.FollowsNutrientPlan:
		return 0.8
	case f.SoilTestBased || f.FollowsNutrientPlan:
		return 0.9
	default:
		return 1.2
	}
}

// IrrigationEfficiency is the water multiplier of an irrigation system.
// Rainfed farms score lowest.
func IrrigationEfficiency(system string) float64 {
	s := strings.ToLower(strings.TrimSpace(system))
	switch {
	case s == "", strings.Contains(s, "none"), strings.Contains(s, "rainfed"):
		return 0.5
	case strings.Contains(s, "drip"), strings.Contains(s, "micro"):
		return 0.7
	case strings.Contains(s, "sprinkler"):
		return 0.85
	case strings.Contains(s, "flood"), strings.Contains(s, "furrow"):
		return 1.0
	default:
		return 0.9
	}
}

func pesticidePressure(n int) float64 {
	switch {
	case n == 0:
		return 0.9
	case n <= 2:
		return 0.95
	case n <= 5:
		return 1.0
	default:
		return 1.2
	}
}
