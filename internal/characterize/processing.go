package characterize

import (
	"math"

	"go.uber.org/zap"

	"github.com/sells-group/lca-cli/internal/inventory"
	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/uncertainty"
)

const (
	processingQuality = 0.7
	processingSource  = "Processing calculations"
)

// Product characterizes one product line's annual inventory. Energy, water,
// wastewater, solid waste and warming come from the inventory; the other
// categories are processing factor x annual tonnes. Water scarcity is left
// to the regional step on totals.
func (c *Characterizer) Product(inv *inventory.Inventory, a *model.ProcessingAssessment, p model.ProcessedProduct) model.Midpoints {
	ms := make(model.Midpoints)
	computed := func(cat model.Category, v float64, sources []string) {
		if len(sources) == 0 {
			sources = []string{processingSource}
		}
		ms[cat] = model.Midpoint{
			Value:   v,
			Unit:    cat.ProcessingUnit(),
			Range:   uncertainty.Relative(v, 0.7, 1.3),
			Quality: processingQuality,
			Sources: sources,
		}
	}
	flow := func(sub string, comp inventory.Compartment) (float64, []string) {
		f, ok := inv.Get(sub, comp)
		if !ok {
			return 0, nil
		}
		return f.Quantity, f.Provenance
	}

	gw, gwSources := globalWarming(inv)
	computed(model.GlobalWarming, math.Max(gw, 0), gwSources)
	v, src := flow(inventory.ProcessEnergy, inventory.Resource)
	computed(model.EnergyConsumption, v, src)
	v, src = flow(inventory.WaterUse, inventory.Resource)
	computed(model.WaterConsumption, v, src)
	v, src = flow(inventory.Wastewater, inventory.Water)
	computed(model.WastewaterGeneration, v, src)
	v, src = flow(inventory.SolidWaste, inventory.Soil)
	computed(model.SolidWasteGeneration, v, src)

	for _, cat := range model.ProcessingCategories() {
		if _, done := ms[cat]; done || cat == model.WaterScarcity {
			continue
		}
		res := c.repo.ResolveProcessing(a.Facility.FacilityType, p.ProductType, a.Country, cat)
		if res.IsDefault() {
			zap.L().Warn("factors: default factor used",
				zap.String("product", p.Name),
				zap.String("impact", string(cat)),
				zap.Float64("value", res.Factor.Value),
			)
		}
		f := res.Factor
		v := f.Value * p.AnnualTonnes
		ms[cat] = model.Midpoint{
			Value:   v,
			Unit:    cat.ProcessingUnit(),
			Range:   uncertainty.Expand(v, f.Range.Scale(p.AnnualTonnes), f.Pedigree.UncertaintyFactor()),
			Quality: f.Pedigree.Quality(),
			Sources: []string{f.Source},
		}
	}
	return ms
}

// Sum adds product midpoints into facility totals over the given categories.
func Sum(categories []model.Category, unit func(model.Category) string, parts ...model.Midpoints) model.Midpoints {
	out := make(model.Midpoints, len(categories))
	for _, cat := range categories {
		total := model.Midpoint{Unit: unit(cat), Sources: []string{}}
		for _, ms := range parts {
			if m, ok := ms[cat]; ok {
				total = total.Add(m)
			}
		}
		out[cat] = total
	}
	return out
}
