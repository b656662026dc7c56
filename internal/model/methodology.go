package model

import "strings"

// WeightingMethod selects the endpoint weighting set.
type WeightingMethod string

const (
	WeightingAfricanPriorities WeightingMethod = "AfricanPriorities"
	WeightingEqual             WeightingMethod = "EqualWeights"
	WeightingExpertJudgment    WeightingMethod = "ExpertJudgment"
	WeightingSocialPreferences WeightingMethod = "SocialPreferences"
	WeightingNone              WeightingMethod = "None"
)

// ParseWeightingMethod parses a weighting method name.
func ParseWeightingMethod(s string) (WeightingMethod, error) {
	return parseEnum("weighting method", s, []WeightingMethod{
		WeightingAfricanPriorities, WeightingEqual, WeightingExpertJudgment,
		WeightingSocialPreferences, WeightingNone,
	})
}

// NormalizationMethod names the normalization reference set.
type NormalizationMethod string

const (
	NormalizationAfrican  NormalizationMethod = "AfricanContext"
	NormalizationGlobal   NormalizationMethod = "GlobalContext"
	NormalizationEuropean NormalizationMethod = "EuropeanContext"
	NormalizationNone     NormalizationMethod = "None"
)

// ParseNormalizationMethod parses a normalization method name.
func ParseNormalizationMethod(s string) (NormalizationMethod, error) {
	return parseEnum("normalization method", s, []NormalizationMethod{
		NormalizationAfrican, NormalizationGlobal, NormalizationEuropean, NormalizationNone,
	})
}

// SystemBoundary is the life-cycle scope of an assessment.
type SystemBoundary string

const (
	BoundaryCradleToGate SystemBoundary = "CradleToGate"
	BoundaryGateToGate   SystemBoundary = "GateToGate"
)

// Methodology restates the choices an assessment was computed under.
type Methodology struct {
	FunctionalUnit         string              `json:"functional_unit" yaml:"functional_unit"`
	SystemBoundary         SystemBoundary      `json:"system_boundary" yaml:"system_boundary"`
	AllocationMethod       string              `json:"allocation_method" yaml:"allocation_method"`
	CharacterizationMethod string              `json:"characterization_method" yaml:"characterization_method"`
	NormalizationMethod    NormalizationMethod `json:"normalization_method" yaml:"normalization_method"`
	WeightingMethod        WeightingMethod     `json:"weighting_method" yaml:"weighting_method"`
}

// ProductionMethodology is the default for farm assessments.
func ProductionMethodology() Methodology {
	return Methodology{
		FunctionalUnit:         "1 kg product",
		SystemBoundary:         BoundaryCradleToGate,
		AllocationMethod:       "Mass",
		CharacterizationMethod: "IpccAr6",
		NormalizationMethod:    NormalizationAfrican,
		WeightingMethod:        WeightingAfricanPriorities,
	}
}

// ProcessingMethodology is the default for facility assessments.
func ProcessingMethodology() Methodology {
	m := ProductionMethodology()
	m.FunctionalUnit = "1 tonne product"
	m.SystemBoundary = BoundaryGateToGate
	return m
}

// WithOverrides applies non-empty weighting and normalization choices.
func (m Methodology) WithOverrides(w WeightingMethod, n NormalizationMethod) Methodology {
	if strings.TrimSpace(string(w)) != "" {
		m.WeightingMethod = w
	}
	if strings.TrimSpace(string(n)) != "" {
		m.NormalizationMethod = n
	}
	return m
}
