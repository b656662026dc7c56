package model

// Country identifies the geography an assessment or factor applies to.
type Country string

const (
	CountryGhana   Country = "Ghana"
	CountryNigeria Country = "Nigeria"
	CountryGlobal  Country = "Global"
)

// AllCountries returns the supported countries.
func AllCountries() []Country {
	return []Country{CountryGhana, CountryNigeria, CountryGlobal}
}

// ParseCountry rejects anything outside AllCountries.
func ParseCountry(s string) (Country, error) {
	return parseEnum("country", s, AllCountries())
}

// IsWestAfrican reports whether the country has local reference data.
func (c Country) IsWestAfrican() bool {
	return c == CountryGhana || c == CountryNigeria
}

// FoodCategory is the broad category of a produced food.
type FoodCategory string

const (
	FoodCereals    FoodCategory = "Cereals"
	FoodLegumes    FoodCategory = "Legumes"
	FoodVegetables FoodCategory = "Vegetables"
	FoodFruits     FoodCategory = "Fruits"
	FoodMeat       FoodCategory = "Meat"
	FoodPoultry    FoodCategory = "Poultry"
	FoodFish       FoodCategory = "Fish"
	FoodDairy      FoodCategory = "Dairy"
	FoodEggs       FoodCategory = "Eggs"
	FoodOils       FoodCategory = "Oils"
	FoodNuts       FoodCategory = "Nuts"
	FoodRoots      FoodCategory = "Roots"
	FoodOther      FoodCategory = "Other"
)

// AllFoodCategories returns every food category.
func AllFoodCategories() []FoodCategory {
	return []FoodCategory{
		FoodCereals, FoodLegumes, FoodVegetables, FoodFruits, FoodMeat, FoodPoultry,
		FoodFish, FoodDairy, FoodEggs, FoodOils, FoodNuts, FoodRoots, FoodOther,
	}
}

// ParseFoodCategory parses a food category name.
func ParseFoodCategory(s string) (FoodCategory, error) {
	return parseEnum("food category", s, AllFoodCategories())
}

// ProductionSystem describes how an item was produced.
type ProductionSystem string

const (
	SystemIntensive    ProductionSystem = "Intensive"
	SystemExtensive    ProductionSystem = "Extensive"
	SystemSmallholder  ProductionSystem = "Smallholder"
	SystemAgroforestry ProductionSystem = "Agroforestry"
	SystemIrrigated    ProductionSystem = "Irrigated"
	SystemRainfed      ProductionSystem = "Rainfed"
	SystemOrganic      ProductionSystem = "Organic"
	SystemConventional ProductionSystem = "Conventional"
)

// ParseProductionSystem parses an optional production system.
func ParseProductionSystem(s string) (ProductionSystem, error) {
	return parseOptional("production system", s, []ProductionSystem{
		SystemIntensive, SystemExtensive, SystemSmallholder, SystemAgroforestry,
		SystemIrrigated, SystemRainfed, SystemOrganic, SystemConventional,
	}, "")
}

// SeasonalFactor tags the season an item was produced in.
type SeasonalFactor string

const (
	SeasonWet       SeasonalFactor = "WetSeason"
	SeasonDry       SeasonalFactor = "DrySeason"
	SeasonYearRound SeasonalFactor = "YearRound"
)

// ParseSeasonalFactor parses an optional season tag.
func ParseSeasonalFactor(s string) (SeasonalFactor, error) {
	return parseOptional("seasonal factor", s, []SeasonalFactor{SeasonWet, SeasonDry, SeasonYearRound}, "")
}

// CroppingPattern describes field layout.
type CroppingPattern string

const (
	PatternMonoculture   CroppingPattern = "Monoculture"
	PatternIntercropping CroppingPattern = "Intercropping"
	PatternRelay         CroppingPattern = "RelayCropping"
	PatternAgroforestry  CroppingPattern = "Agroforestry"
	PatternRotation      CroppingPattern = "CropRotation"
)

// ParseCroppingPattern parses an optional cropping pattern.
func ParseCroppingPattern(s string) (CroppingPattern, error) {
	return parseOptional("cropping pattern", s, []CroppingPattern{
		PatternMonoculture, PatternIntercropping, PatternRelay, PatternAgroforestry, PatternRotation,
	}, "")
}

// FarmType classifies the farm by scale and organisation.
type FarmType string

const (
	FarmSmallholder    FarmType = "Smallholder"
	FarmSmallScale     FarmType = "SmallScale"
	FarmMediumScale    FarmType = "MediumScale"
	FarmCommercial     FarmType = "Commercial"
	FarmCooperative    FarmType = "Cooperative"
	FarmMixedLivestock FarmType = "MixedLivestock"
)

// ParseFarmType parses a farm type, defaulting to Smallholder.
func ParseFarmType(s string) (FarmType, error) {
	return parseOptional("farm type", s, []FarmType{
		FarmSmallholder, FarmSmallScale, FarmMediumScale, FarmCommercial, FarmCooperative, FarmMixedLivestock,
	}, FarmSmallholder)
}

// FarmingSystem is the farm's primary orientation.
type FarmingSystem string

const (
	FarmingSubsistence    FarmingSystem = "Subsistence"
	FarmingSemiCommercial FarmingSystem = "SemiCommercial"
	FarmingCommercial     FarmingSystem = "Commercial"
	FarmingOrganic        FarmingSystem = "Organic"
	FarmingAgroecological FarmingSystem = "Agroecological"
	FarmingConventional   FarmingSystem = "Conventional"
	FarmingIntegrated     FarmingSystem = "IntegratedFarming"
)

// ParseFarmingSystem parses a farming system, defaulting to Subsistence.
func ParseFarmingSystem(s string) (FarmingSystem, error) {
	return parseOptional("farming system", s, []FarmingSystem{
		FarmingSubsistence, FarmingSemiCommercial, FarmingCommercial, FarmingOrganic,
		FarmingAgroecological, FarmingConventional, FarmingIntegrated,
	}, FarmingSubsistence)
}

// SoilType is the dominant soil texture.
type SoilType string

const (
	SoilSandy     SoilType = "Sandy"
	SoilClay      SoilType = "Clay"
	SoilLoam      SoilType = "Loam"
	SoilSandyLoam SoilType = "SandyLoam"
	SoilClayLoam  SoilType = "ClayLoam"
	SoilSiltLoam  SoilType = "SiltLoam"
	SoilLateritic SoilType = "Lateritic"
	SoilVolcanic  SoilType = "Volcanic"
)

// ParseSoilType parses an optional soil type.
func ParseSoilType(s string) (SoilType, error) {
	return parseOptional("soil type", s, []SoilType{
		SoilSandy, SoilClay, SoilLoam, SoilSandyLoam, SoilClayLoam, SoilSiltLoam, SoilLateritic, SoilVolcanic,
	}, "")
}

// ConfidenceLevel bands data quality.
type ConfidenceLevel string

const (
	ConfidenceHigh    ConfidenceLevel = "High"
	ConfidenceMedium  ConfidenceLevel = "Medium"
	ConfidenceLow     ConfidenceLevel = "Low"
	ConfidenceVeryLow ConfidenceLevel = "VeryLow"
)

// ParseConfidenceLevel parses a confidence label.
func ParseConfidenceLevel(s string) (ConfidenceLevel, error) {
	return parseEnum("confidence level", s, []ConfidenceLevel{
		ConfidenceHigh, ConfidenceMedium, ConfidenceLow, ConfidenceVeryLow,
	})
}

// BandConfidence maps an overall quality score to a confidence level.
func BandConfidence(q float64) ConfidenceLevel {
	switch {
	case q > 0.7:
		return ConfidenceHigh
	case q > 0.5:
		return ConfidenceMedium
	case q > 0.3:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// AssessmentKind distinguishes the three supported input documents.
type AssessmentKind string

const (
	KindSimple        AssessmentKind = "simple"
	KindComprehensive AssessmentKind = "comprehensive"
	KindProcessing    AssessmentKind = "processing"
)
