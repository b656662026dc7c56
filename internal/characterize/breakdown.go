package characterize

import (
	"go.uber.org/zap"

	"github.com/sells-group/lca-cli/internal/adjust"
	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/uncertainty"
)

// BreakdownCategories are the production categories computed per item.
// Water scarcity is derived from water consumption on totals instead.
func BreakdownCategories() []model.Category {
	out := make([]model.Category, 0, len(model.ProductionCategories()))
	for _, c := range model.ProductionCategories() {
		if c != model.WaterScarcity {
			out = append(out, c)
		}
	}
	return out
}

// Item computes one food item's absolute midpoints from resolved impact
// factors. Each category is factor x climate, seasonal and system
// multipliers x quantity, then management practices when present.
func (c *Characterizer) Item(item model.FoodItem, country model.Country, practices *model.ManagementPractices) model.Midpoints {
	log := zap.L().With(zap.String("item", item.Name), zap.String("category", string(item.Category)))
	ms := make(model.Midpoints)
	for _, cat := range BreakdownCategories() {
		res := c.repo.Resolve(item.Category, country, item.CropType, cat)
		if res.IsDefault() {
			log.Warn("factors: default factor used",
				zap.String("impact", string(cat)),
				zap.Float64("value", res.Factor.Value),
			)
		}
		f := res.Factor
		k := adjust.ItemMultiplier(c.tables, item, cat) * item.QuantityKg
		v := f.Value * k
		ms[cat] = model.Midpoint{
			Value:   v,
			Unit:    cat.Unit(),
			Range:   uncertainty.Expand(v, f.Range.Scale(k), f.Pedigree.UncertaintyFactor()),
			Quality: f.Pedigree.Quality(),
			Sources: []string{f.Source},
		}
	}
	if practices != nil {
		ms = adjust.Management(ms, practices)
	}
	return ms
}

// Merge adds the item midpoints into every total the inventory left at
// zero, so each category is counted through exactly one path.
func Merge(totals model.Midpoints, items ...model.Midpoints) model.Midpoints {
	out := totals.Clone()
	for cat, total := range totals {
		if total.Value != 0 {
			continue
		}
		merged := total
		for _, ms := range items {
			if m, ok := ms[cat]; ok {
				merged = merged.Add(m)
			}
		}
		out[cat] = merged
	}
	return out
}

// PerKg divides every midpoint by the total production mass. Units gain a
// " per kg" suffix. A non-positive mass leaves the midpoints unchanged.
func PerKg(ms model.Midpoints, totalKg float64) model.Midpoints {
	out := ms.Clone()
	if totalKg <= 0 {
		return out
	}
	for cat, m := range out {
		m = m.Scale(1/totalKg, "")
		m.Unit = cat.Unit() + " per kg"
		out[cat] = m
	}
	return out
}
