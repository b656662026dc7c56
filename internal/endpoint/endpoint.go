// Package endpoint aggregates midpoint indicators into damage-level
// endpoints (human health, ecosystem quality, resource scarcity).
package endpoint

import (
	"slices"

	"go.uber.org/zap"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/model"
)

// Aggregate computes every defined endpoint as the sum of midpoint value x
// contribution factor, summed in a fixed order. Midpoints missing from ms
// contribute nothing. The range is the definition's relative band around
// the value.
func Aggregate(ms model.Midpoints, defs []factors.EndpointDefinition) model.Endpoints {
	out := make(model.Endpoints, len(defs))
	for _, d := range defs {
		cats := make([]model.Category, 0, len(d.Contributions))
		for cat := range d.Contributions {
			cats = append(cats, cat)
		}
		slices.Sort(cats)

		var v float64
		for _, cat := range cats {
			if m, ok := ms[cat]; ok {
				v += m.Value * d.Contributions[cat]
			}
		}
		e := model.Endpoint{
			Value: v,
			Unit:  d.Unit,
			Range: d.RangeFor(v),
		}
		if d.Normalization > 0 {
			e.Normalization = ptr(d.Normalization)
		}
		if d.Regional > 0 {
			e.Regional = ptr(d.Regional)
		}
		out[d.Category] = e
	}
	zap.L().Debug("endpoint: aggregated", zap.Int("endpoints", len(out)))
	return out
}

func ptr(v float64) *float64 { return &v }
