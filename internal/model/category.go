package model

// Category is a midpoint impact category.
type Category string

const (
	GlobalWarming            Category = "Global warming"
	WaterConsumption         Category = "Water consumption"
	WaterScarcity            Category = "Water scarcity"
	LandUse                  Category = "Land use"
	BiodiversityLoss         Category = "Biodiversity loss"
	SoilDegradation          Category = "Soil degradation"
	TerrestrialAcidification Category = "Terrestrial acidification"
	FreshwaterEutrophication Category = "Freshwater eutrophication"
	MarineEutrophication     Category = "Marine eutrophication"
	FossilDepletion          Category = "Fossil depletion"
	MineralDepletion         Category = "Mineral depletion"
	ParticulateMatter        Category = "Particulate matter formation"
	PhotochemicalOxidation   Category = "Photochemical oxidation"
	EnergyConsumption        Category = "Energy consumption"
	WastewaterGeneration     Category = "Wastewater generation"
	SolidWasteGeneration     Category = "Solid waste generation"
	AirPollution             Category = "Air pollution"
	RawMaterialDepletion     Category = "Raw material depletion"
)

// ProductionCategories lists the categories reported for farm assessments, in report order.
func ProductionCategories() []Category {
	return []Category{
		GlobalWarming, WaterConsumption, WaterScarcity, LandUse, BiodiversityLoss, SoilDegradation,
		TerrestrialAcidification, FreshwaterEutrophication, MarineEutrophication, FossilDepletion,
		MineralDepletion, ParticulateMatter, PhotochemicalOxidation,
	}
}

// ProcessingCategories lists the categories reported for processing facilities, in report order.
func ProcessingCategories() []Category {
	return []Category{
		GlobalWarming, EnergyConsumption, WaterConsumption, WaterScarcity, WastewaterGeneration,
		SolidWasteGeneration, AirPollution, LandUse, TerrestrialAcidification, FreshwaterEutrophication,
		MarineEutrophication, FossilDepletion, ParticulateMatter, RawMaterialDepletion,
	}
}

var categoryUnits = map[Category]string{
	GlobalWarming:            "kg CO2-eq",
	WaterConsumption:         "m3",
	WaterScarcity:            "m3 H2O-eq",
	LandUse:                  "m2a crop-eq",
	BiodiversityLoss:         "MSA*m2*yr",
	SoilDegradation:          "kg soil-eq",
	TerrestrialAcidification: "kg SO2-eq",
	FreshwaterEutrophication: "kg P-eq",
	MarineEutrophication:     "kg N-eq",
	FossilDepletion:          "kg oil-eq",
	MineralDepletion:         "kg Fe-eq",
	ParticulateMatter:        "PM2.5-eq",
	PhotochemicalOxidation:   "kg NMVOC-eq",
	EnergyConsumption:        "kWh",
	WastewaterGeneration:     "m3",
	SolidWasteGeneration:     "kg",
	AirPollution:             "kg PM2.5-eq",
	RawMaterialDepletion:     "kg",
}

// processingUnits overrides units that differ for facilities.
var processingUnits = map[Category]string{
	LandUse: "m2a",
}

// Unit returns the absolute unit of the category.
func (c Category) Unit() string {
	if u, ok := categoryUnits[c]; ok {
		return u
	}
	return "Unknown"
}

// ProcessingUnit returns the unit used in facility assessments.
func (c Category) ProcessingUnit() string {
	if u, ok := processingUnits[c]; ok {
		return u
	}
	return c.Unit()
}

// ParseCategory accepts any known midpoint category name.
func ParseCategory(s string) (Category, error) {
	all := make([]Category, 0, len(categoryUnits))
	for c := range categoryUnits {
		all = append(all, c)
	}
	return parseEnum("impact category", s, all)
}

// EndpointCategory is a damage-level aggregation.
type EndpointCategory string

const (
	HumanHealth      EndpointCategory = "Human Health"
	EcosystemQuality EndpointCategory = "Ecosystem Quality"
	ResourceScarcity EndpointCategory = "Resource Scarcity"
)

// EndpointCategories returns the endpoints in report order.
func EndpointCategories() []EndpointCategory {
	return []EndpointCategory{HumanHealth, EcosystemQuality, ResourceScarcity}
}
