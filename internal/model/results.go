package model

import "github.com/sells-group/lca-cli/internal/uncertainty"

// Midpoint is a characterized impact category result.
type Midpoint struct {
	Value   float64           `json:"value" yaml:"value"`
	Unit    string            `json:"unit" yaml:"unit"`
	Range   uncertainty.Range `json:"uncertainty_range" yaml:"uncertainty_range"`
	Quality float64           `json:"data_quality_score" yaml:"data_quality_score"`
	Sources []string          `json:"contributing_sources" yaml:"contributing_sources"`
}

// Add folds other into m: values sum, ranges combine as independent
// variances, quality is value-weighted and sources are appended.
func (m Midpoint) Add(other Midpoint) Midpoint {
	sum := m.Value + other.Value
	out := Midpoint{
		Value:   sum,
		Unit:    m.Unit,
		Range:   uncertainty.Combine(sum, m.Range, other.Range),
		Quality: m.Quality,
		Sources: append(append([]string{}, m.Sources...), other.Sources...),
	}
	if out.Unit == "" {
		out.Unit = other.Unit
	}
	if sum > 0 {
		out.Quality = (m.Quality*m.Value + other.Quality*other.Value) / sum
	}
	return out
}

// Scale multiplies value and range by k and appends an optional source note.
func (m Midpoint) Scale(k float64, note string) Midpoint {
	m.Value *= k
	m.Range = m.Range.Scale(k)
	m.Sources = append([]string{}, m.Sources...)
	if note != "" {
		m.Sources = append(m.Sources, note)
	}
	return m
}

// Midpoints maps category to result.
type Midpoints map[Category]Midpoint

// Clone returns a deep copy.
func (ms Midpoints) Clone() Midpoints {
	out := make(Midpoints, len(ms))
	for k, v := range ms {
		v.Sources = append([]string{}, v.Sources...)
		out[k] = v
	}
	return out
}

// Endpoint is a damage-level result.
type Endpoint struct {
	Value         float64           `json:"value" yaml:"value"`
	Unit          string            `json:"unit" yaml:"unit"`
	Range         uncertainty.Range `json:"uncertainty_range" yaml:"uncertainty_range"`
	Normalization *float64          `json:"normalization_factor,omitempty" yaml:"normalization_factor,omitempty"`
	Regional      *float64          `json:"regional_adaptation_factor,omitempty" yaml:"regional_adaptation_factor,omitempty"`
}

// Endpoints maps endpoint category to result.
type Endpoints map[EndpointCategory]Endpoint

// SingleScore is the aggregate, dimensionless result.
type SingleScore struct {
	Value       float64                      `json:"value" yaml:"value"`
	Unit        string                       `json:"unit" yaml:"unit"`
	Range       uncertainty.Range            `json:"uncertainty_range" yaml:"uncertainty_range"`
	Weights     map[EndpointCategory]float64 `json:"weighting_factors" yaml:"weighting_factors"`
	Methodology string                       `json:"methodology" yaml:"methodology"`
}

// DataSource classifies where a factor came from.
type DataSource string

const (
	SourceCountrySpecific DataSource = "Country-specific"
	SourceRegional        DataSource = "Regional"
	SourceGlobal          DataSource = "Global"
	SourceEstimated       DataSource = "Estimated"
)

// DataSourceContribution is the share of factors from one source type.
type DataSourceContribution struct {
	Source     DataSource `json:"source_type" yaml:"source_type"`
	Detail     string     `json:"detail,omitempty" yaml:"detail,omitempty"`
	Percentage float64    `json:"percentage" yaml:"percentage"`
	Quality    float64    `json:"quality_score" yaml:"quality_score"`
}

// DataQuality summarises how trustworthy the result is.
type DataQuality struct {
	Confidence               ConfidenceLevel          `json:"overall_confidence" yaml:"overall_confidence"`
	SourceMix                []DataSourceContribution `json:"data_source_mix" yaml:"data_source_mix"`
	RegionalAdaptation       bool                     `json:"regional_adaptation" yaml:"regional_adaptation"`
	Completeness             float64                  `json:"completeness_score" yaml:"completeness_score"`
	TemporalRepresentative   float64                  `json:"temporal_representativeness" yaml:"temporal_representativeness"`
	GeographicRepresentative float64                  `json:"geographical_representativeness" yaml:"geographical_representativeness"`
	TechRepresentative       float64                  `json:"technological_representativeness" yaml:"technological_representativeness"`
	Warnings                 []string                 `json:"warnings" yaml:"warnings"`
	Recommendations          []string                 `json:"recommendations" yaml:"recommendations"`
}

// InfluentialParameter ranks an input by its share of the result.
type InfluentialParameter struct {
	Name                 string  `json:"parameter_name" yaml:"parameter_name"`
	Influence            float64 `json:"influence_percentage" yaml:"influence_percentage"`
	Uncertainty          float64 `json:"uncertainty_contribution" yaml:"uncertainty_contribution"`
	ImprovementPotential float64 `json:"improvement_potential" yaml:"improvement_potential"`
}

// Scenario is a what-if adjustment and its expected effect, in percent.
type Scenario struct {
	Name        string               `json:"scenario_name" yaml:"scenario_name"`
	Description string               `json:"description" yaml:"description"`
	Changes     map[Category]float64 `json:"impact_changes" yaml:"impact_changes"`
}

// SensitivityAnalysis lists dominant inputs and scenarios.
type SensitivityAnalysis struct {
	Parameters []InfluentialParameter `json:"most_influential_parameters" yaml:"most_influential_parameters"`
	Scenarios  []Scenario             `json:"scenario_analysis" yaml:"scenario_analysis"`
}

// PerformanceCategory rates a result against a benchmark.
type PerformanceCategory string

const (
	PerformanceExcellent    PerformanceCategory = "Excellent"
	PerformanceGood         PerformanceCategory = "Good"
	PerformanceAverage      PerformanceCategory = "Average"
	PerformanceBelowAverage PerformanceCategory = "BelowAverage"
	PerformancePoor         PerformanceCategory = "Poor"
)

// DifficultyLevel rates how hard a practice is to adopt.
type DifficultyLevel string

const (
	DifficultyLow    DifficultyLevel = "Low"
	DifficultyMedium DifficultyLevel = "Medium"
	DifficultyHigh   DifficultyLevel = "High"
)

// CostCategory rates what a practice costs.
type CostCategory string

const (
	CostNone   CostCategory = "NoCost"
	CostLow    CostCategory = "LowCost"
	CostMedium CostCategory = "MediumCost"
	CostHigh   CostCategory = "HighCost"
)

// BestPractice is a suggested change and its expected reductions, in percent.
type BestPractice struct {
	Name        string               `json:"practice_name" yaml:"practice_name"`
	Description string               `json:"description" yaml:"description"`
	Reductions  map[Category]float64 `json:"potential_impact_reduction" yaml:"potential_impact_reduction"`
	Difficulty  DifficultyLevel      `json:"implementation_difficulty" yaml:"implementation_difficulty"`
	Cost        CostCategory         `json:"cost_category" yaml:"cost_category"`
}

// BenchmarkComparison places the result against one reference.
type BenchmarkComparison struct {
	Name           string              `json:"benchmark_name" yaml:"benchmark_name"`
	BenchmarkValue float64             `json:"benchmark_value" yaml:"benchmark_value"`
	YourValue      float64             `json:"your_value" yaml:"your_value"`
	DifferencePct  float64             `json:"percentage_difference" yaml:"percentage_difference"`
	Performance    PerformanceCategory `json:"performance_category" yaml:"performance_category"`
}

// RegionalComparison expresses results as ratios of a regional reference.
type RegionalComparison struct {
	Region string               `json:"region_name" yaml:"region_name"`
	Ratios map[Category]float64 `json:"impact_ratios" yaml:"impact_ratios"`
}

// ComparativeAnalysis groups benchmark, regional and best-practice comparisons.
type ComparativeAnalysis struct {
	Benchmarks    []BenchmarkComparison `json:"benchmark_comparison" yaml:"benchmark_comparison"`
	Regional      []RegionalComparison  `json:"regional_comparison" yaml:"regional_comparison"`
	BestPractices []BestPractice        `json:"best_practices" yaml:"best_practices"`
}

// Priority orders recommendations.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Recommendation is an actionable improvement for a facility.
type Recommendation struct {
	Category      string               `json:"category" yaml:"category"`
	Title         string               `json:"title" yaml:"title"`
	Description   string               `json:"description" yaml:"description"`
	Savings       map[Category]float64 `json:"potential_impact_reduction" yaml:"potential_impact_reduction"`
	Difficulty    DifficultyLevel      `json:"implementation_difficulty" yaml:"implementation_difficulty"`
	Cost          CostCategory         `json:"cost_category" yaml:"cost_category"`
	PaybackMonths float64              `json:"payback_period_months,omitempty" yaml:"payback_period_months,omitempty"`
	Priority      Priority             `json:"priority" yaml:"priority"`
}

// IntensityBenchmark compares a per-tonne intensity with best/average/worst practice.
type IntensityBenchmark struct {
	Metric      string              `json:"metric" yaml:"metric"`
	Unit        string              `json:"unit" yaml:"unit"`
	Value       float64             `json:"value" yaml:"value"`
	Best        float64             `json:"best_practice" yaml:"best_practice"`
	Average     float64             `json:"industry_average" yaml:"industry_average"`
	Worst       float64             `json:"worst_practice" yaml:"worst_practice"`
	Performance PerformanceCategory `json:"performance_category" yaml:"performance_category"`
}

// Benchmarking is the facility benchmark outcome.
type Benchmarking struct {
	Reference   string               `json:"reference" yaml:"reference"`
	Intensities []IntensityBenchmark `json:"intensities" yaml:"intensities"`
}

// Results is the full output of one assessment run.
type Results struct {
	RunID       string               `json:"run_id" yaml:"run_id"`
	Kind        AssessmentKind       `json:"assessment_kind" yaml:"assessment_kind"`
	Subject     string               `json:"subject" yaml:"subject"`
	Country     Country              `json:"country" yaml:"country"`
	Methodology Methodology          `json:"methodology" yaml:"methodology"`
	Midpoints   Midpoints            `json:"midpoint_impacts" yaml:"midpoint_impacts"`
	Endpoints   Endpoints            `json:"endpoint_impacts" yaml:"endpoint_impacts"`
	SingleScore SingleScore          `json:"single_score" yaml:"single_score"`
	DataQuality DataQuality          `json:"data_quality" yaml:"data_quality"`
	Breakdown   map[string]Midpoints `json:"breakdown_by_item" yaml:"breakdown_by_item"`

	Sensitivity     *SensitivityAnalysis `json:"sensitivity_analysis,omitempty" yaml:"sensitivity_analysis,omitempty"`
	Comparative     *ComparativeAnalysis `json:"comparative_analysis,omitempty" yaml:"comparative_analysis,omitempty"`
	Recommendations []Recommendation     `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	Benchmarking    *Benchmarking        `json:"benchmarking,omitempty" yaml:"benchmarking,omitempty"`
}
