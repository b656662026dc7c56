package assess

import (
	"fmt"
	"strconv"

	"github.com/sells-group/lca-cli/internal/characterize"
	"github.com/sells-group/lca-cli/internal/model"
)

// ProductionActivity is a simple or comprehensive farm assessment.
// Warnings carries anomalies found while parsing the input.
type ProductionActivity struct {
	Assessment *model.ProductionAssessment
	Warnings   []string
}

var _ Assessable = (*ProductionActivity)(nil)

// NewProduction wraps a parsed farm assessment.
func NewProduction(a *model.ProductionAssessment, warnings ...string) *ProductionActivity {
	return &ProductionActivity{Assessment: a, Warnings: warnings}
}

func (p *ProductionActivity) Kind() model.AssessmentKind {
	if p.Assessment.Kind == "" {
		return model.KindSimple
	}
	return p.Assessment.Kind
}

func (p *ProductionActivity) Subject() string { return p.Assessment.CompanyName }

func (p *ProductionActivity) Location() Location {
	return Location{Country: p.Assessment.Country, Northern: p.Assessment.IsNorthern()}
}

func (p *ProductionActivity) Methodology() model.Methodology {
	if p.Assessment.Methodology.FunctionalUnit == "" {
		return model.ProductionMethodology()
	}
	return p.Assessment.Methodology
}

// ItemLabel keys a food item in the breakdown: "{name} ({qty}kg)".
func ItemLabel(f model.FoodItem) string {
	return fmt.Sprintf("%s (%skg)", f.Name, strconv.FormatFloat(f.QuantityKg, 'f', -1, 64))
}

// Characterize builds the farm inventory, characterizes it, and fills
// categories the inventory left at zero from the per-item factor path.
func (p *ProductionActivity) Characterize(e *Engine) Characterized {
	a := p.Assessment
	res := e.builder.Production(a)
	totals := e.chars.Production(res.Inventory, a)

	breakdown := make(map[string]model.Midpoints, len(a.Foods))
	items := make([]model.Midpoints, 0, len(a.Foods))
	for _, f := range a.Foods {
		ms := e.chars.Item(f, a.Country, a.Practices)
		items = append(items, ms)
		label := ItemLabel(f)
		if prev, ok := breakdown[label]; ok {
			ms = addMidpoints(prev, ms)
		}
		breakdown[label] = ms
	}

	warnings := append([]string{}, p.Warnings...)
	warnings = append(warnings, res.Warnings...)
	return Characterized{
		Totals:    characterize.Merge(totals, items...),
		Breakdown: breakdown,
		Warnings:  warnings,
	}
}

// Finalize divides the totals by the total production mass.
func (p *ProductionActivity) Finalize(totals model.Midpoints) model.Midpoints {
	return characterize.PerKg(totals, p.Assessment.TotalQuantityKg())
}

func (p *ProductionActivity) Score(e *Engine, eps model.Endpoints) model.SingleScore {
	return e.composer.Production(eps, p.Methodology())
}

func (p *ProductionActivity) DataQuality(e *Engine) model.DataQuality {
	return e.quality.Production(p.Assessment, model.ProductionCategories())
}

// Analyze adds the sensitivity and comparative analyses. Benchmarks
// compare absolute annual warming.
func (p *ProductionActivity) Analyze(_ *Engine, totals model.Midpoints, r *model.Results) {
	r.Sensitivity = Sensitivity(p.Assessment.Foods)
	if p.Kind() == model.KindComprehensive {
		r.Comparative = ComprehensiveComparison(p.Assessment, totals)
	} else {
		r.Comparative = SimpleComparison(totals)
	}
}

func addMidpoints(a, b model.Midpoints) model.Midpoints {
	out := a.Clone()
	for cat, m := range b {
		if prev, ok := out[cat]; ok {
			out[cat] = prev.Add(m)
		} else {
			out[cat] = m
		}
	}
	return out
}
