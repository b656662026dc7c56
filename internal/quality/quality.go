// Package quality scores how trustworthy an assessment's inputs are: the
// pedigree of the factors it resolved, where they came from and what is
// missing.
package quality

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/model"
)

// Recommendation texts.
const (
	RecCollectPrimaryData  = "Consider collecting primary data for major food items"
	RecPrioritizeUncertain = "Prioritize data improvement for most uncertain factors"
	RecEnergyMonitoring    = "Consider implementing energy monitoring systems for better data quality"
	RecWaterMonitoring     = "Regular water consumption monitoring recommended"
)

const (
	lowQualityThreshold = 0.5
	primaryDataBelow    = 0.6
	meatWarningKg       = 20.0

	temporal          = 0.8
	geographicLocal   = 0.7
	geographicForeign = 0.4
	technological     = 0.6
)

// Assessor evaluates data quality against a factor repository.
type Assessor struct {
	repo *factors.Repository
}

// New returns an Assessor.
func New(repo *factors.Repository) *Assessor {
	return &Assessor{repo: repo}
}

// SourceType classifies a factor source by its citation text.
func SourceType(source string) model.DataSource {
	switch {
	case strings.Contains(source, "Ghana"), strings.Contains(source, "Nigeria"):
		return model.SourceCountrySpecific
	case strings.Contains(source, "Africa"):
		return model.SourceRegional
	default:
		return model.SourceGlobal
	}
}

// Production scores a farm assessment over the given impact categories.
// Default factors are excluded from the average and reported as data gaps.
// Water scarcity is derived from water consumption, so a stored factor for
// it is scored but its absence is not a gap.
func (q *Assessor) Production(a *model.ProductionAssessment, categories []model.Category) model.DataQuality {
	var (
		scores   []float64
		counts   = make(map[model.DataSource]int)
		warnings []string
		gaps     []string
	)
	expected := 0
	for _, cat := range categories {
		if cat != model.WaterScarcity {
			expected++
		}
	}
	for _, food := range a.Foods {
		missing := 0
		for _, cat := range categories {
			res := q.repo.Resolve(food.Category, a.Country, food.CropType, cat)
			if res.IsDefault() {
				if cat != model.WaterScarcity {
					missing++
				}
				continue
			}
			f := res.Factor
			pq := f.Pedigree.Quality()
			scores = append(scores, pq)
			counts[SourceType(f.Source)]++
			if pq < lowQualityThreshold {
				warnings = append(warnings, fmt.Sprintf("Low data quality for %s %s: %s", food.Name, cat, f.Source))
			}
		}
		if missing > 0 {
			gaps = append(gaps, fmt.Sprintf("No specific impact factors for %s: default estimates used for %d of %d categories",
				food.Name, missing, expected))
		}
	}

	overall := mean(scores)

	var recs []string
	if overall < primaryDataBelow {
		recs = append(recs, RecCollectPrimaryData)
	}
	if len(warnings) > len(a.Foods)/2 {
		recs = append(recs, RecPrioritizeUncertain)
	}

	var meat float64
	for _, food := range a.Foods {
		if food.Category == model.FoodMeat {
			meat += food.QuantityKg
		}
	}
	if meat > meatWarningKg {
		warnings = append(warnings, fmt.Sprintf(
			"High meat consumption detected: %.1fkg. Consider reducing meat intake for environmental and health benefits.", meat))
	}
	warnings = append(warnings, gaps...)

	geo := geographicForeign
	if a.Country.IsWestAfrican() {
		geo = geographicLocal
	}

	dq := model.DataQuality{
		Confidence:               model.BandConfidence(overall),
		SourceMix:                sourceMix(counts, overall, a.Country),
		RegionalAdaptation:       true,
		Completeness:             overall,
		TemporalRepresentative:   temporal,
		GeographicRepresentative: geo,
		TechRepresentative:       technological,
		Warnings:                 nonNil(warnings),
		Recommendations:          nonNil(recs),
	}
	zap.L().Debug("quality: production assessed",
		zap.Float64("overall", overall),
		zap.String("confidence", string(dq.Confidence)),
		zap.Int("warnings", len(dq.Warnings)),
	)
	return dq
}

// Processing scores a facility assessment from the completeness of its
// product records.
func (q *Assessor) Processing(a *model.ProcessingAssessment) model.DataQuality {
	var warnings []string
	for _, p := range a.Products {
		if len(p.Steps) == 0 {
			warnings = append(warnings, fmt.Sprintf("No processing steps defined for %s", p.Name))
		}
		if len(p.RawMaterials) == 0 {
			warnings = append(warnings, fmt.Sprintf("No raw material inputs defined for %s", p.Name))
		}
	}

	confidence := model.ConfidenceMedium
	if len(warnings) > len(a.Products) {
		confidence = model.ConfidenceLow
	}

	return model.DataQuality{
		Confidence: confidence,
		SourceMix: []model.DataSourceContribution{
			{Source: model.SourceEstimated, Percentage: 60, Quality: 0.6},
			{Source: model.SourceGlobal, Percentage: 40, Quality: 0.5},
		},
		RegionalAdaptation:       true,
		Completeness:             0.7,
		TemporalRepresentative:   temporal,
		GeographicRepresentative: 0.6,
		TechRepresentative:       0.7,
		Warnings:                 nonNil(warnings),
		Recommendations:          []string{RecEnergyMonitoring, RecWaterMonitoring},
	}
}

// sourceMix reports each source type's share of the resolved factors in a
// fixed order. Every entry carries the overall quality.
func sourceMix(counts map[model.DataSource]int, overall float64, country model.Country) []model.DataSourceContribution {
	var total int
	for _, n := range counts {
		total += n
	}
	out := []model.DataSourceContribution{}
	if total == 0 {
		return out
	}
	for _, src := range []model.DataSource{model.SourceCountrySpecific, model.SourceRegional, model.SourceGlobal} {
		n := counts[src]
		if n == 0 {
			continue
		}
		c := model.DataSourceContribution{
			Source:     src,
			Percentage: float64(n) / float64(total) * 100,
			Quality:    overall,
		}
		switch src {
		case model.SourceCountrySpecific:
			c.Detail = string(country)
		case model.SourceRegional:
			c.Detail = "West Africa"
		}
		out = append(out, c)
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
