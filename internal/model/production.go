package model

import "strings"

// FoodItem is one produced food line in a farm assessment.
type FoodItem struct {
	ID               string           `json:"id" yaml:"id"`
	Name             string           `json:"name" yaml:"name"`
	QuantityKg       float64          `json:"quantity_kg" yaml:"quantity_kg"`
	Category         FoodCategory     `json:"category" yaml:"category"`
	CropType         string           `json:"crop_type,omitempty" yaml:"crop_type,omitempty"`
	OriginCountry    string           `json:"origin_country,omitempty" yaml:"origin_country,omitempty"`
	ProductionSystem ProductionSystem `json:"production_system,omitempty" yaml:"production_system,omitempty"`
	SeasonalFactor   SeasonalFactor   `json:"seasonal_factor,omitempty" yaml:"seasonal_factor,omitempty"`

	Variety               string          `json:"variety,omitempty" yaml:"variety,omitempty"`
	AreaHa                *float64        `json:"area_allocated,omitempty" yaml:"area_allocated,omitempty"`
	CroppingPattern       CroppingPattern `json:"cropping_pattern,omitempty" yaml:"cropping_pattern,omitempty"`
	IntercroppingPartners []string        `json:"intercropping_partners,omitempty" yaml:"intercropping_partners,omitempty"`
	PostHarvestLossPct    *float64        `json:"post_harvest_losses,omitempty" yaml:"post_harvest_losses,omitempty"`
}

// Area returns the allocated hectares, or 0 when unknown.
func (f FoodItem) Area() float64 {
	if f.AreaHa == nil || *f.AreaHa < 0 {
		return 0
	}
	return *f.AreaHa
}

// IsRice reports whether the item is paddy rice by name.
func (f FoodItem) IsRice() bool {
	return strings.Contains(strings.ToLower(f.Name), "rice")
}

// FarmProfile describes the farm behind a comprehensive assessment.
type FarmProfile struct {
	FarmerName      string        `json:"farmer_name" yaml:"farmer_name"`
	FarmName        string        `json:"farm_name" yaml:"farm_name"`
	TotalFarmSizeHa float64       `json:"total_farm_size" yaml:"total_farm_size"`
	ExperienceYears int           `json:"farming_experience" yaml:"farming_experience"`
	FarmType        FarmType      `json:"farm_type" yaml:"farm_type"`
	FarmingSystem   FarmingSystem `json:"primary_farming_system" yaml:"primary_farming_system"`
	Certifications  []string      `json:"certifications,omitempty" yaml:"certifications,omitempty"`
	Programs        []string      `json:"participates_in_programs,omitempty" yaml:"participates_in_programs,omitempty"`
}

// ManagementPractices groups the farm's soil, fertilizer, water and pest choices.
type ManagementPractices struct {
	Soil          SoilManagement        `json:"soil_management" yaml:"soil_management"`
	Fertilization FertilizationPractice `json:"fertilization" yaml:"fertilization"`
	Water         WaterManagement       `json:"water_management" yaml:"water_management"`
	Pest          PestManagement        `json:"pest_management" yaml:"pest_management"`
}

type SoilManagement struct {
	SoilType              SoilType `json:"soil_type,omitempty" yaml:"soil_type,omitempty"`
	UsesCompost           bool     `json:"uses_compost" yaml:"uses_compost"`
	CompostSource         string   `json:"compost_source,omitempty" yaml:"compost_source,omitempty"`
	ConservationPractices []string `json:"conservation_practices,omitempty" yaml:"conservation_practices,omitempty"`
	SoilTestingFrequency  string   `json:"soil_testing_frequency,omitempty" yaml:"soil_testing_frequency,omitempty"`
}

type FertilizationPractice struct {
	UsesFertilizers     bool                    `json:"uses_fertilizers" yaml:"uses_fertilizers"`
	Applications        []FertilizerApplication `json:"fertilizer_applications,omitempty" yaml:"fertilizer_applications,omitempty"`
	SoilTestBased       bool                    `json:"soil_test_based" yaml:"soil_test_based"`
	FollowsNutrientPlan bool                    `json:"follows_nutrient_plan" yaml:"follows_nutrient_plan"`
}

// FertilizerApplication is one fertilizer product and how it is applied.
// Rate is kg per hectare per application.
type FertilizerApplication struct {
	Type         string  `json:"fertilizer_type" yaml:"fertilizer_type"`
	NPKRatio     string  `json:"npk_ratio,omitempty" yaml:"npk_ratio,omitempty"`
	RateKgHa     float64 `json:"application_rate" yaml:"application_rate"`
	Applications int     `json:"applications_per_season" yaml:"applications_per_season"`
	Cost         float64 `json:"cost,omitempty" yaml:"cost,omitempty"`
}

type WaterManagement struct {
	Sources               []string `json:"water_source,omitempty" yaml:"water_source,omitempty"`
	IrrigationSystem      string   `json:"irrigation_system,omitempty" yaml:"irrigation_system,omitempty"`
	ConservationPractices []string `json:"water_conservation_practices,omitempty" yaml:"water_conservation_practices,omitempty"`
}

type PestManagement struct {
	Approach            string                 `json:"management_approach" yaml:"management_approach"`
	UsesIPM             bool                   `json:"uses_ipm" yaml:"uses_ipm"`
	Pesticides          []PesticideApplication `json:"pesticides,omitempty" yaml:"pesticides,omitempty"`
	MonitoringFrequency string                 `json:"pest_monitoring_frequency,omitempty" yaml:"pest_monitoring_frequency,omitempty"`
}

// PesticideApplication rates are kg active ingredient per application.
type PesticideApplication struct {
	Type             string   `json:"pesticide_type" yaml:"pesticide_type"`
	ActiveIngredient string   `json:"active_ingredient" yaml:"active_ingredient"`
	Rate             float64  `json:"application_rate" yaml:"application_rate"`
	Applications     int      `json:"applications_per_season" yaml:"applications_per_season"`
	TargetPests      []string `json:"target_pests,omitempty" yaml:"target_pests,omitempty"`
}

// EquipmentEnergy is metered fuel and energy use on the farm.
type EquipmentEnergy struct {
	Equipment []FarmEquipment `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Energy    []EnergyUsage   `json:"energySources,omitempty" yaml:"energySources,omitempty"`
	Fuel      []FuelUsage     `json:"fuelConsumption,omitempty" yaml:"fuelConsumption,omitempty"`
}

// HasMeteredData reports whether any fuel or energy consumption was supplied.
func (e *EquipmentEnergy) HasMeteredData() bool {
	return e != nil && (len(e.Fuel) > 0 || len(e.Energy) > 0)
}

type FarmEquipment struct {
	Type           string  `json:"equipmentType" yaml:"equipmentType"`
	PowerSource    string  `json:"powerSource" yaml:"powerSource"`
	AgeYears       int     `json:"age" yaml:"age"`
	HoursPerYear   float64 `json:"hoursPerYear" yaml:"hoursPerYear"`
	FuelEfficiency float64 `json:"fuelEfficiency,omitempty" yaml:"fuelEfficiency,omitempty"`
}

// EnergyUsage is monthly kWh (or equivalent) from one source.
type EnergyUsage struct {
	Type               string  `json:"energyType" yaml:"energyType"`
	MonthlyConsumption float64 `json:"monthlyConsumption" yaml:"monthlyConsumption"`
	PrimaryUse         string  `json:"primaryUse" yaml:"primaryUse"`
	Cost               float64 `json:"cost,omitempty" yaml:"cost,omitempty"`
}

// FuelUsage is monthly litres of one fuel.
type FuelUsage struct {
	Type               string  `json:"fuelType" yaml:"fuelType"`
	MonthlyConsumption float64 `json:"monthlyConsumption" yaml:"monthlyConsumption"`
	PrimaryUse         string  `json:"primaryUse" yaml:"primaryUse"`
	Cost               float64 `json:"cost,omitempty" yaml:"cost,omitempty"`
}

// ProductionAssessment is a parsed simple or comprehensive farm assessment.
type ProductionAssessment struct {
	Kind        AssessmentKind       `json:"kind" yaml:"kind"`
	CompanyName string               `json:"company_name" yaml:"company_name"`
	Country     Country              `json:"country" yaml:"country"`
	Region      string               `json:"region,omitempty" yaml:"region,omitempty"`
	Foods       []FoodItem           `json:"foods" yaml:"foods"`
	Farm        *FarmProfile         `json:"farm_profile,omitempty" yaml:"farm_profile,omitempty"`
	Practices   *ManagementPractices `json:"management_practices,omitempty" yaml:"management_practices,omitempty"`
	Equipment   *EquipmentEnergy     `json:"equipment_energy,omitempty" yaml:"equipment_energy,omitempty"`
	Methodology Methodology          `json:"methodology" yaml:"methodology"`
}

// TotalQuantityKg sums every item's quantity.
func (a *ProductionAssessment) TotalQuantityKg() float64 {
	var total float64
	for _, f := range a.Foods {
		total += f.QuantityKg
	}
	return total
}

// TotalAreaHa sums allocated areas.
func (a *ProductionAssessment) TotalAreaHa() float64 {
	var total float64
	for _, f := range a.Foods {
		total += f.Area()
	}
	return total
}

// IsNorthern reports whether the region names a northern zone.
func (a *ProductionAssessment) IsNorthern() bool {
	return strings.Contains(strings.ToLower(a.Region), "north")
}
