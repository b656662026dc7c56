// Package score composes endpoint results into a single dimensionless
// score in [0,1].
package score

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/uncertainty"
)

const (
	productionUnit = "Environmental Impact Score (0-1 scale, 1.0 = 2× reference impact)"
	processingUnit = "Processing Environmental Impact Index (0-1, lower is better)"

	processingMethodology = "Processing-adapted African LCA methodology"

	// A raw score of displayScale maps to the top of the display scale.
	displayScale = 2.0

	sigmoidSlope    = 0.1
	sigmoidMidpoint = 50.0
)

// Composer weights and normalizes endpoints using the reference tables.
type Composer struct {
	tables *factors.Tables
}

// New returns a Composer.
func New(tables *factors.Tables) *Composer {
	return &Composer{tables: tables}
}

// Production scores a farm assessment: raw = sum(value / norm x weight),
// where norm is the endpoint's own reference or the table fallback. The
// displayed value is raw/2 clamped to [0,1].
func (c *Composer) Production(eps model.Endpoints, m model.Methodology) model.SingleScore {
	weights := c.tables.Weights(m.WeightingMethod)

	var raw, variance float64
	for _, cat := range model.EndpointCategories() {
		e, ok := eps[cat]
		w, weighted := weights[cat]
		if !ok || !weighted {
			continue
		}
		norm := c.tables.NormalizationFallback(cat)
		if e.Normalization != nil && *e.Normalization > 0 {
			norm = *e.Normalization
		}
		if norm <= 0 {
			norm = 1
		}
		raw += e.Value / norm * w
		s := e.Range.Sigma() / norm * w
		variance += s * s
	}
	sigma := math.Sqrt(variance)

	norm, weighting := m.NormalizationMethod, m.WeightingMethod
	if norm == "" {
		norm = model.NormalizationNone
	}
	if weighting == "" {
		weighting = model.WeightingNone
	}

	out := model.SingleScore{
		Value: clamp01(raw / displayScale),
		Unit:  productionUnit,
		Range: uncertainty.Range{
			Low:  clamp01((raw - 2*sigma) / displayScale),
			High: clamp01((raw + 2*sigma) / displayScale),
		},
		Weights:     weights,
		Methodology: fmt.Sprintf("ISO 14044 compliant: %s normalization with %s weighting. Raw score: %.3f person-equiv.",
			norm, weighting, raw),
	}
	zap.L().Debug("score: production",
		zap.Float64("raw", raw),
		zap.Float64("sigma", sigma),
		zap.Float64("score", out.Value),
	)
	return out
}

// Processing scores a facility: raw = sum(value x weight) with the fixed
// facility weights and no normalization, mapped through a logistic curve
// centred on 50.
func (c *Composer) Processing(eps model.Endpoints) model.SingleScore {
	weights := c.tables.ProcessingWeights()

	var raw, variance float64
	for _, cat := range model.EndpointCategories() {
		e, ok := eps[cat]
		w, weighted := weights[cat]
		if !ok || !weighted {
			continue
		}
		raw += e.Value * w
		s := e.Range.Sigma() * w
		variance += s * s
	}
	sigma := math.Sqrt(variance)

	out := model.SingleScore{
		Value: Logistic(raw),
		Unit:  processingUnit,
		Range: uncertainty.Range{
			Low:  Logistic(raw - 2*sigma),
			High: Logistic(raw + 2*sigma),
		},
		Weights:     weights,
		Methodology: processingMethodology,
	}
	zap.L().Debug("score: processing",
		zap.Float64("raw", raw),
		zap.Float64("sigma", sigma),
		zap.Float64("score", out.Value),
	)
	return out
}

// Logistic maps a raw facility score into (0,1).
func Logistic(raw float64) float64 {
	return 1 / (1 + math.Exp(-sigmoidSlope*(raw-sigmoidMidpoint)))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
