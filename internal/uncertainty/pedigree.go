// Package uncertainty converts data-pedigree scores into uncertainty
// multipliers and propagates ~95% ranges through sums and scaling.
package uncertainty

import (
	"math"

	"github.com/rotisserie/eris"
)

// Pedigree rates a data point on five ordinal axes, 1 (best) to 5 (worst).
type Pedigree struct {
	Reliability              int `json:"reliability" yaml:"reliability"`
	Completeness             int `json:"completeness" yaml:"completeness"`
	TemporalCorrelation      int `json:"temporal_correlation" yaml:"temporal_correlation"`
	GeographicalCorrelation  int `json:"geographical_correlation" yaml:"geographical_correlation"`
	TechnologicalCorrelation int `json:"technological_correlation" yaml:"technological_correlation"`
}

// pedigreeFactors holds the basic uncertainty factor per axis (row) and score (column).
var pedigreeFactors = [5][5]float64{
	{1.00, 1.05, 1.10, 1.20, 1.50},
	{1.00, 1.02, 1.05, 1.10, 1.20},
	{1.00, 1.03, 1.10, 1.20, 1.50},
	{1.00, 1.01, 1.02, 1.10, 1.50},
	{1.00, 1.05, 1.20, 1.50, 2.00},
}

// Worst returns the pedigree used for unsourced default estimates.
func Worst() Pedigree {
	return Pedigree{5, 5, 5, 5, 5}
}

// Best returns a pedigree with every axis at 1.
func Best() Pedigree {
	return Pedigree{1, 1, 1, 1, 1}
}

// NewPedigree builds a pedigree from five axis scores in matrix order.
func NewPedigree(r, c, t, g, tech int) Pedigree {
	return Pedigree{
		Reliability:              r,
		Completeness:             c,
		TemporalCorrelation:      t,
		GeographicalCorrelation:  g,
		TechnologicalCorrelation: tech,
	}
}

func (p Pedigree) axes() [5]int {
	return [5]int{
		p.Reliability,
		p.Completeness,
		p.TemporalCorrelation,
		p.GeographicalCorrelation,
		p.TechnologicalCorrelation,
	}
}

// Validate reports an error if any axis lies outside 1..5.
func (p Pedigree) Validate() error {
	for i, v := range p.axes() {
		if v < 1 || v > 5 {
			return eris.Errorf("uncertainty: pedigree axis %d out of range: %d", i+1, v)
		}
	}
	return nil
}

// clampAxis treats unset or out-of-range axes as worst.
func clampAxis(v int) int {
	if v < 1 || v > 5 {
		return 5
	}
	return v
}

// UncertaintyFactor returns the geometric standard deviation implied by the
// pedigree: exp(sqrt(sum(ln(f_i)^2))).
func (p Pedigree) UncertaintyFactor() float64 {
	var variance float64
	for i, v := range p.axes() {
		f := pedigreeFactors[i][clampAxis(v)-1]
		l := math.Log(f)
		variance += l * l
	}
	return math.Exp(math.Sqrt(variance))
}

// Quality maps the pedigree to [0,1]: 1 when every axis is 1, 0 when every axis is 5.
func (p Pedigree) Quality() float64 {
	sum := 0
	for _, v := range p.axes() {
		sum += clampAxis(v)
	}
	return 1 - float64(sum-5)/20
}

// IsWorst reports whether every axis sits at 5.
func (p Pedigree) IsWorst() bool {
	for _, v := range p.axes() {
		if clampAxis(v) != 5 {
			return false
		}
	}
	return true
}
