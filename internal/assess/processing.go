package assess

import (
	"fmt"
	"strconv"

	"github.com/sells-group/lca-cli/internal/adjust"
	"github.com/sells-group/lca-cli/internal/characterize"
	"github.com/sells-group/lca-cli/internal/model"
)

// ProcessingActivity is a facility assessment.
type ProcessingActivity struct {
	Assessment *model.ProcessingAssessment
	Warnings   []string
}

var _ Assessable = (*ProcessingActivity)(nil)

// NewProcessing wraps a parsed facility assessment.
func NewProcessing(a *model.ProcessingAssessment, warnings ...string) *ProcessingActivity {
	return &ProcessingActivity{Assessment: a, Warnings: warnings}
}

func (p *ProcessingActivity) Kind() model.AssessmentKind { return model.KindProcessing }

func (p *ProcessingActivity) Subject() string {
	if p.Assessment.Facility.CompanyName != "" {
		return p.Assessment.Facility.CompanyName
	}
	return p.Assessment.Facility.FacilityName
}

func (p *ProcessingActivity) Location() Location {
	return Location{Country: p.Assessment.Country}
}

func (p *ProcessingActivity) Methodology() model.Methodology {
	if p.Assessment.Methodology.FunctionalUnit == "" {
		return model.ProcessingMethodology()
	}
	return p.Assessment.Methodology
}

// ProductLabel keys a product in the breakdown: "{name} ({t} tonnes/year)".
func ProductLabel(p model.ProcessedProduct) string {
	return fmt.Sprintf("%s (%s tonnes/year)", p.Name, strconv.FormatFloat(p.AnnualTonnes, 'f', -1, 64))
}

// Characterize computes each product line with the facility adjustments
// applied, then sums the lines and applies recycling to the total.
func (p *ProcessingActivity) Characterize(e *Engine) Characterized {
	a := p.Assessment
	warnings := append([]string{}, p.Warnings...)
	breakdown := make(map[string]model.Midpoints, len(a.Products))
	parts := make([]model.Midpoints, 0, len(a.Products))

	for _, prod := range a.Products {
		res := e.builder.Processing(a, prod)
		warnings = append(warnings, res.Warnings...)

		ms := e.chars.Product(res.Inventory, a, prod)
		ms = adjust.Facility(ms, a.Facility, a.Operations, e.referenceYear)
		parts = append(parts, ms)

		label := ProductLabel(prod)
		if prev, ok := breakdown[label]; ok {
			ms = addMidpoints(prev, ms)
		}
		breakdown[label] = ms
	}

	totals := characterize.Sum(model.ProcessingCategories(), model.Category.ProcessingUnit, parts...)
	totals = adjust.Recycling(totals, len(a.Operations.Waste.RecyclingPrograms))
	return Characterized{Totals: totals, Breakdown: breakdown, Warnings: warnings}
}

// Finalize keeps facility results as annual totals.
func (p *ProcessingActivity) Finalize(totals model.Midpoints) model.Midpoints {
	return totals.Clone()
}

func (p *ProcessingActivity) Score(e *Engine, eps model.Endpoints) model.SingleScore {
	return e.composer.Processing(eps)
}

func (p *ProcessingActivity) DataQuality(e *Engine) model.DataQuality {
	return e.quality.Processing(p.Assessment)
}

// Analyze adds improvement recommendations and, when a reference exists
// for the facility class, intensity benchmarking.
func (p *ProcessingActivity) Analyze(e *Engine, totals model.Midpoints, r *model.Results) {
	r.Recommendations = Recommendations(totals, p.Assessment.Operations)
	r.Benchmarking = Benchmark(e.tables, p.Assessment, totals)
}
