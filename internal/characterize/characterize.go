// Package characterize converts inventories and impact factors into midpoint
// indicators.
package characterize

import (
	"fmt"
	"strings"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/inventory"
	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/uncertainty"
)

// GWP100 characterization factors, IPCC AR6.
const (
	GWPCO2 = 1.0
	GWPN2O = 273.0
	GWPCH4 = 28.0
)

const baseQuality = 0.8

// Characterizer holds the shared, read-only reference data.
type Characterizer struct {
	tables *factors.Tables
	repo   *factors.Repository
}

// New returns a Characterizer.
func New(tables *factors.Tables, repo *factors.Repository) *Characterizer {
	return &Characterizer{tables: tables, repo: repo}
}

func zero(c model.Category) model.Midpoint {
	return model.Midpoint{Unit: c.Unit(), Quality: baseQuality, Sources: []string{}}
}

func relative(c model.Category, v, lo, hi, quality float64, sources []string) model.Midpoint {
	if sources == nil {
		sources = []string{}
	}
	return model.Midpoint{
		Value:   v,
		Unit:    c.Unit(),
		Range:   uncertainty.Relative(v, lo, hi),
		Quality: quality,
		Sources: sources,
	}
}

// globalWarming sums the CO2-equivalent of every greenhouse-gas flow.
func globalWarming(inv *inventory.Inventory) (float64, []string) {
	var total float64
	var sources []string
	for _, f := range inv.Flows() {
		switch {
		case f.Substance == inventory.CO2, f.Substance == inventory.CO2Eq, f.Substance == inventory.WasteEmissions:
			total += f.Quantity * GWPCO2
			sources = append(sources, fmt.Sprintf("%s: %.2f kg CO2", f.Source(), f.Quantity))
		case strings.Contains(f.Substance, "N2O"):
			co2 := f.Quantity * GWPN2O
			total += co2
			sources = append(sources, fmt.Sprintf("%s: %.2f kg N2O (%.2f kg CO2-eq)", f.Source(), f.Quantity, co2))
		case f.Substance == inventory.CH4:
			co2 := f.Quantity * GWPCH4
			total += co2
			sources = append(sources, fmt.Sprintf("%s: %.2f kg CH4 (%.2f kg CO2-eq)", f.Source(), f.Quantity, co2))
		}
	}
	return total, sources
}
