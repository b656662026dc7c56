package model

import "strings"

// FacilityType is the kind of processing plant.
type FacilityType string

const (
	FacilityMill                FacilityType = "Mill"
	FacilityBakery              FacilityType = "Bakery"
	FacilityCassavaProcessing   FacilityType = "CassavaProcessing"
	FacilityRiceProcessing      FacilityType = "RiceProcessing"
	FacilityPalmOilMill         FacilityType = "PalmOilMill"
	FacilityCocoaProcessing     FacilityType = "CocoaProcessing"
	FacilityFishProcessing      FacilityType = "FishProcessing"
	FacilityMeatProcessing      FacilityType = "MeatProcessing"
	FacilityDairyProcessing     FacilityType = "DairyProcessing"
	FacilityFruitProcessing     FacilityType = "FruitProcessing"
	FacilityVegetableProcessing FacilityType = "VegetableProcessing"
	FacilityGeneral             FacilityType = "General"
)

// ParseFacilityType parses a facility type, defaulting to General.
// The historical "CassivaProcessing" spelling is accepted.
func ParseFacilityType(s string) (FacilityType, error) {
	if strings.EqualFold(strings.TrimSpace(s), "CassivaProcessing") {
		return FacilityCassavaProcessing, nil
	}
	return parseOptional("facility type", s, []FacilityType{
		FacilityMill, FacilityBakery, FacilityCassavaProcessing, FacilityRiceProcessing,
		FacilityPalmOilMill, FacilityCocoaProcessing, FacilityFishProcessing, FacilityMeatProcessing,
		FacilityDairyProcessing, FacilityFruitProcessing, FacilityVegetableProcessing, FacilityGeneral,
	}, FacilityGeneral)
}

// LocationType is the facility's setting.
type LocationType string

const (
	LocationUrban      LocationType = "Urban"
	LocationPeriUrban  LocationType = "PeriUrban"
	LocationRural      LocationType = "Rural"
	LocationIndustrial LocationType = "Industrial"
)

// ParseLocationType parses a location type, defaulting to Rural.
func ParseLocationType(s string) (LocationType, error) {
	return parseOptional("location type", s, []LocationType{
		LocationUrban, LocationPeriUrban, LocationRural, LocationIndustrial,
	}, LocationRural)
}

// EnergySource is a facility's energy supply.
type EnergySource string

const (
	EnergyGrid       EnergySource = "GridElectricity"
	EnergyDiesel     EnergySource = "DieselGenerator"
	EnergySolar      EnergySource = "SolarPower"
	EnergyBiomass    EnergySource = "Biomass"
	EnergyLPG        EnergySource = "LPG"
	EnergyNaturalGas EnergySource = "NaturalGas"
	EnergyHydro      EnergySource = "HydroElectricity"
	EnergyWind       EnergySource = "WindPower"
	EnergyMixed      EnergySource = "Mixed"
)

// ParseEnergySource parses an energy source, defaulting to grid electricity.
func ParseEnergySource(s string) (EnergySource, error) {
	return parseOptional("energy source", s, []EnergySource{
		EnergyGrid, EnergyDiesel, EnergySolar, EnergyBiomass, EnergyLPG,
		EnergyNaturalGas, EnergyHydro, EnergyWind, EnergyMixed,
	}, EnergyGrid)
}

type WaterTreatment string

const (
	WaterTreatmentNone          WaterTreatment = "None"
	WaterTreatmentFiltration    WaterTreatment = "BasicFiltration"
	WaterTreatmentChemical      WaterTreatment = "ChemicalTreatment"
	WaterTreatmentOsmosis       WaterTreatment = "ReverseOsmosis"
	WaterTreatmentComprehensive WaterTreatment = "Comprehensive"
)

// ParseWaterTreatment defaults to BasicFiltration.
func ParseWaterTreatment(s string) (WaterTreatment, error) {
	return parseOptional("water treatment", s, []WaterTreatment{
		WaterTreatmentNone, WaterTreatmentFiltration, WaterTreatmentChemical,
		WaterTreatmentOsmosis, WaterTreatmentComprehensive,
	}, WaterTreatmentFiltration)
}

type WastewaterTreatment string

const (
	WastewaterNone          WastewaterTreatment = "None"
	WastewaterSedimentation WastewaterTreatment = "BasicSedimentation"
	WastewaterBiological    WastewaterTreatment = "BiologicalTreatment"
	WastewaterChemical      WastewaterTreatment = "ChemicalTreatment"
	WastewaterAdvanced      WastewaterTreatment = "Advanced"
)

// ParseWastewaterTreatment defaults to BasicSedimentation.
func ParseWastewaterTreatment(s string) (WastewaterTreatment, error) {
	return parseOptional("wastewater treatment", s, []WastewaterTreatment{
		WastewaterNone, WastewaterSedimentation, WastewaterBiological, WastewaterChemical, WastewaterAdvanced,
	}, WastewaterSedimentation)
}

type WasteDisposal string

const (
	DisposalLandfill     WasteDisposal = "Landfill"
	DisposalIncineration WasteDisposal = "Incineration"
	DisposalComposting   WasteDisposal = "Composting"
	DisposalDigestion    WasteDisposal = "AnaerobicDigestion"
	DisposalRecycling    WasteDisposal = "Recycling"
	DisposalMixed        WasteDisposal = "Mixed"
)

// ParseWasteDisposal defaults to Landfill.
func ParseWasteDisposal(s string) (WasteDisposal, error) {
	return parseOptional("waste disposal method", s, []WasteDisposal{
		DisposalLandfill, DisposalIncineration, DisposalComposting, DisposalDigestion, DisposalRecycling, DisposalMixed,
	}, DisposalLandfill)
}

type TransportMode string

const (
	TransportTruck TransportMode = "Truck"
	TransportRail  TransportMode = "Rail"
	TransportShip  TransportMode = "Ship"
	TransportMixed TransportMode = "Mixed"
)

// ParseTransportMode defaults to Truck.
func ParseTransportMode(s string) (TransportMode, error) {
	return parseOptional("transport mode", s, []TransportMode{
		TransportTruck, TransportRail, TransportShip, TransportMixed,
	}, TransportTruck)
}

// EquipmentAge bands: New <2y, Recent 2-5y, Mature 5-10y, Old 10-20y, VeryOld >20y.
type EquipmentAge string

const (
	EquipmentNew     EquipmentAge = "New"
	EquipmentRecent  EquipmentAge = "Recent"
	EquipmentMature  EquipmentAge = "Mature"
	EquipmentOld     EquipmentAge = "Old"
	EquipmentVeryOld EquipmentAge = "VeryOld"
)

// ParseEquipmentAge defaults to Mature.
func ParseEquipmentAge(s string) (EquipmentAge, error) {
	return parseOptional("equipment age", s, []EquipmentAge{
		EquipmentNew, EquipmentRecent, EquipmentMature, EquipmentOld, EquipmentVeryOld,
	}, EquipmentMature)
}

// IsAging reports whether the equipment is due for replacement.
func (a EquipmentAge) IsAging() bool {
	return a == EquipmentOld || a == EquipmentVeryOld
}

type MaintenanceFrequency string

const (
	MaintenanceDaily     MaintenanceFrequency = "Daily"
	MaintenanceWeekly    MaintenanceFrequency = "Weekly"
	MaintenanceMonthly   MaintenanceFrequency = "Monthly"
	MaintenanceQuarterly MaintenanceFrequency = "Quarterly"
	MaintenanceBiannual  MaintenanceFrequency = "Biannual"
	MaintenanceAnnual    MaintenanceFrequency = "Annual"
	MaintenanceIrregular MaintenanceFrequency = "Irregular"
)

// ParseMaintenanceFrequency defaults to Monthly.
func ParseMaintenanceFrequency(s string) (MaintenanceFrequency, error) {
	return parseOptional("maintenance frequency", s, []MaintenanceFrequency{
		MaintenanceDaily, MaintenanceWeekly, MaintenanceMonthly, MaintenanceQuarterly,
		MaintenanceBiannual, MaintenanceAnnual, MaintenanceIrregular,
	}, MaintenanceMonthly)
}

type AutomationLevel string

const (
	AutomationManual AutomationLevel = "Manual"
	AutomationSemi   AutomationLevel = "SemiAutomated"
	AutomationHighly AutomationLevel = "HighlyAutomated"
	AutomationFully  AutomationLevel = "FullyAutomated"
)

// ParseAutomationLevel defaults to SemiAutomated.
func ParseAutomationLevel(s string) (AutomationLevel, error) {
	return parseOptional("automation level", s, []AutomationLevel{
		AutomationManual, AutomationSemi, AutomationHighly, AutomationFully,
	}, AutomationSemi)
}

// ProductType is a processed product. Unrecognised labels map to
// ProductOther; the raw label is kept on the product.
type ProductType string

const (
	ProductFlourMaize    ProductType = "FlourMaize"
	ProductFlourWheat    ProductType = "FlourWheat"
	ProductFlourCassava  ProductType = "FlourCassava"
	ProductFlourPlantain ProductType = "FlourPlantain"
	ProductRice          ProductType = "RiceProcessed"
	ProductPalmOil       ProductType = "PalmOil"
	ProductCocoaPowder   ProductType = "CocoaPowder"
	ProductCocoaButter   ProductType = "CocoaButter"
	ProductBakedGoods    ProductType = "BakedGoods"
	ProductFish          ProductType = "ProcessedFish"
	ProductMeat          ProductType = "ProcessedMeat"
	ProductDairy         ProductType = "Dairy"
	ProductFruitJuice    ProductType = "FruitJuice"
	ProductDriedFruits   ProductType = "DriedFruits"
	ProductOther         ProductType = "Other"
)

// ParseProductType never fails on a non-empty label.
func ParseProductType(s string) (ProductType, error) {
	if strings.TrimSpace(s) == "" {
		return "", NewParseError("product_type", "missing product_type")
	}
	pt, err := parseEnum("product type", s, []ProductType{
		ProductFlourMaize, ProductFlourWheat, ProductFlourCassava, ProductFlourPlantain, ProductRice,
		ProductPalmOil, ProductCocoaPowder, ProductCocoaButter, ProductBakedGoods, ProductFish,
		ProductMeat, ProductDairy, ProductFruitJuice, ProductDriedFruits, ProductOther,
	})
	if err != nil {
		return ProductOther, nil
	}
	return pt, nil
}

type PackagingMaterial string

const (
	PackagingPlasticBag    PackagingMaterial = "PlasticBag"
	PackagingPaperBag      PackagingMaterial = "PaperBag"
	PackagingJute          PackagingMaterial = "Jute"
	PackagingPolypropylene PackagingMaterial = "Polypropylene"
	PackagingCardboard     PackagingMaterial = "Cardboard"
	PackagingMetal         PackagingMaterial = "Metal"
	PackagingGlass         PackagingMaterial = "Glass"
	PackagingComposite     PackagingMaterial = "Composite"
)

// ParsePackagingMaterial defaults to PlasticBag.
func ParsePackagingMaterial(s string) (PackagingMaterial, error) {
	return parseOptional("packaging material", s, []PackagingMaterial{
		PackagingPlasticBag, PackagingPaperBag, PackagingJute, PackagingPolypropylene,
		PackagingCardboard, PackagingMetal, PackagingGlass, PackagingComposite,
	}, PackagingPlasticBag)
}

type QualityGrade string

const (
	GradePremium    QualityGrade = "Premium"
	GradeStandard   QualityGrade = "Standard"
	GradeBasic      QualityGrade = "Basic"
	GradeIndustrial QualityGrade = "Industrial"
)

// ParseQualityGrade falls back to Standard for empty or unknown grades.
func ParseQualityGrade(s string) QualityGrade {
	g, err := parseOptional("quality grade", s, []QualityGrade{
		GradePremium, GradeStandard, GradeBasic, GradeIndustrial,
	}, GradeStandard)
	if err != nil {
		return GradeStandard
	}
	return g
}

type MarketDestination string

const (
	MarketLocal    MarketDestination = "Local"
	MarketRegional MarketDestination = "Regional"
	MarketNational MarketDestination = "National"
	MarketExport   MarketDestination = "Export"
	MarketMixed    MarketDestination = "Mixed"
)

// ParseMarketDestination falls back to Local for empty or unknown values.
func ParseMarketDestination(s string) MarketDestination {
	m, err := parseOptional("market destination", s, []MarketDestination{
		MarketLocal, MarketRegional, MarketNational, MarketExport, MarketMixed,
	}, MarketLocal)
	if err != nil {
		return MarketLocal
	}
	return m
}

// CapacityRange bands daily throughput in tonnes.
type CapacityRange string

const (
	CapacitySmall     CapacityRange = "Small"
	CapacityMedium    CapacityRange = "Medium"
	CapacityLarge     CapacityRange = "Large"
	CapacityVeryLarge CapacityRange = "VeryLarge"
)

// BandCapacity classifies tonnes per day: <10 Small, <100 Medium, <1000 Large.
func BandCapacity(tonnesPerDay float64) CapacityRange {
	switch {
	case tonnesPerDay < 10:
		return CapacitySmall
	case tonnesPerDay < 100:
		return CapacityMedium
	case tonnesPerDay < 1000:
		return CapacityLarge
	default:
		return CapacityVeryLarge
	}
}

// FacilityProfile describes a processing plant.
type FacilityProfile struct {
	FacilityName    string       `json:"facility_name" yaml:"facility_name"`
	CompanyName     string       `json:"company_name" yaml:"company_name"`
	FacilityType    FacilityType `json:"facility_type" yaml:"facility_type"`
	CapacityTPD     float64      `json:"processing_capacity" yaml:"processing_capacity"`
	HoursPerDay     float64      `json:"operational_hours_per_day" yaml:"operational_hours_per_day"`
	DaysPerYear     int          `json:"operational_days_per_year" yaml:"operational_days_per_year"`
	EstablishedYear int          `json:"established_year,omitempty" yaml:"established_year,omitempty"`
	Certifications  []string     `json:"certifications,omitempty" yaml:"certifications,omitempty"`
	EmployeeCount   int          `json:"employee_count,omitempty" yaml:"employee_count,omitempty"`
	FacilitySizeM2  float64      `json:"facility_size,omitempty" yaml:"facility_size,omitempty"`
	LocationType    LocationType `json:"location_type" yaml:"location_type"`
}

// AnnualCapacity is the tonnes the facility can process per year.
func (f FacilityProfile) AnnualCapacity() float64 {
	return f.CapacityTPD * float64(f.DaysPerYear)
}

// ProcessingOperations holds the facility-wide operating records.
type ProcessingOperations struct {
	Energy    EnergyManagement    `json:"energy_management" yaml:"energy_management"`
	Water     FacilityWater       `json:"water_management" yaml:"water_management"`
	Waste     WasteManagement     `json:"waste_management" yaml:"waste_management"`
	Sourcing  RawMaterialSourcing `json:"raw_material_sourcing" yaml:"raw_material_sourcing"`
	Equipment EquipmentEfficiency `json:"equipment_efficiency" yaml:"equipment_efficiency"`
}

type EnergyManagement struct {
	PrimarySource      EnergySource   `json:"primary_energy_source" yaml:"primary_energy_source"`
	SecondarySources   []EnergySource `json:"secondary_energy_sources,omitempty" yaml:"secondary_energy_sources,omitempty"`
	MonthlyElectricity float64        `json:"monthly_electricity_consumption" yaml:"monthly_electricity_consumption"`
	MonthlyFuelLitres  float64        `json:"monthly_fuel_consumption" yaml:"monthly_fuel_consumption"`
	FuelType           string         `json:"fuel_type,omitempty" yaml:"fuel_type,omitempty"`
	RenewablePct       float64        `json:"renewable_energy_percentage" yaml:"renewable_energy_percentage"`
	EfficiencyMeasures []string       `json:"energy_efficiency_measures,omitempty" yaml:"energy_efficiency_measures,omitempty"`
	BackupGenerator    bool           `json:"backup_generator" yaml:"backup_generator"`
}

type FacilityWater struct {
	Sources              []string            `json:"water_source,omitempty" yaml:"water_source,omitempty"`
	MonthlyConsumption   float64             `json:"monthly_water_consumption" yaml:"monthly_water_consumption"`
	Treatment            WaterTreatment      `json:"water_treatment" yaml:"water_treatment"`
	ConservationMeasures []string            `json:"water_conservation_measures,omitempty" yaml:"water_conservation_measures,omitempty"`
	WastewaterTreatment  WastewaterTreatment `json:"wastewater_treatment" yaml:"wastewater_treatment"`
}

type WasteManagement struct {
	SolidWasteKgPerDay float64                `json:"solid_waste_generation" yaml:"solid_waste_generation"`
	OrganicPct         float64                `json:"organic_waste_percentage" yaml:"organic_waste_percentage"`
	Disposal           WasteDisposal          `json:"waste_disposal_method" yaml:"waste_disposal_method"`
	RecyclingPrograms  []string               `json:"recycling_programs,omitempty" yaml:"recycling_programs,omitempty"`
	Byproducts         []ByproductUtilization `json:"byproduct_utilization,omitempty" yaml:"byproduct_utilization,omitempty"`
}

type ByproductUtilization struct {
	Name        string  `json:"byproduct_name" yaml:"byproduct_name"`
	Method      string  `json:"utilization_method" yaml:"utilization_method"`
	UtilizedPct float64 `json:"percentage_utilized" yaml:"percentage_utilized"`
}

type RawMaterialSourcing struct {
	LocalPct            float64          `json:"local_sourcing_percentage" yaml:"local_sourcing_percentage"`
	TransportDistanceKm float64          `json:"average_transport_distance" yaml:"average_transport_distance"`
	TransportMode       TransportMode    `json:"transport_mode" yaml:"transport_mode"`
	SupplierPractices   []string         `json:"supplier_sustainability_practices,omitempty" yaml:"supplier_sustainability_practices,omitempty"`
	SeasonalVariation   bool             `json:"seasonal_variation" yaml:"seasonal_variation"`
	Storage             StoragePractices `json:"storage_practices" yaml:"storage_practices"`
}

type StoragePractices struct {
	StorageType    string   `json:"storage_type" yaml:"storage_type"`
	ClimateControl bool     `json:"climate_control" yaml:"climate_control"`
	PestControl    []string `json:"pest_control_methods,omitempty" yaml:"pest_control_methods,omitempty"`
	StorageLossPct float64  `json:"storage_loss_percentage" yaml:"storage_loss_percentage"`
}

type EquipmentEfficiency struct {
	Age            EquipmentAge         `json:"equipment_age" yaml:"equipment_age"`
	Maintenance    MaintenanceFrequency `json:"maintenance_frequency" yaml:"maintenance_frequency"`
	Automation     AutomationLevel      `json:"automation_level" yaml:"automation_level"`
	UtilizationPct float64              `json:"equipment_utilization_rate" yaml:"equipment_utilization_rate"`
	Modernization  []string             `json:"modernization_investments,omitempty" yaml:"modernization_investments,omitempty"`
}

// DefaultOperations returns the operating record assumed for anything the
// input leaves out.
func DefaultOperations() ProcessingOperations {
	return ProcessingOperations{
		Energy: EnergyManagement{
			PrimarySource:      EnergyGrid,
			MonthlyElectricity: 10000,
			MonthlyFuelLitres:  500,
			FuelType:           "Diesel",
			BackupGenerator:    true,
		},
		Water: FacilityWater{
			Sources:             []string{"Municipal"},
			MonthlyConsumption:  1000,
			Treatment:           WaterTreatmentFiltration,
			WastewaterTreatment: WastewaterSedimentation,
		},
		Waste: WasteManagement{
			SolidWasteKgPerDay: 100,
			OrganicPct:         70,
			Disposal:           DisposalLandfill,
		},
		Sourcing: RawMaterialSourcing{
			LocalPct:            80,
			TransportDistanceKm: 50,
			TransportMode:       TransportTruck,
			SeasonalVariation:   true,
			Storage: StoragePractices{
				StorageType:    "Warehouse",
				StorageLossPct: 5,
			},
		},
		Equipment: EquipmentEfficiency{
			Age:            EquipmentMature,
			Maintenance:    MaintenanceMonthly,
			Automation:     AutomationSemi,
			UtilizationPct: 75,
		},
	}
}

// ProcessedProduct is one product line of a facility. AnnualTonnes is
// tonnes of output per year.
type ProcessedProduct struct {
	ID           string             `json:"id" yaml:"id"`
	Name         string             `json:"name" yaml:"name"`
	ProductType  ProductType        `json:"product_type" yaml:"product_type"`
	ProductLabel string             `json:"product_label,omitempty" yaml:"product_label,omitempty"`
	AnnualTonnes float64            `json:"annual_production" yaml:"annual_production"`
	RawMaterials []RawMaterialInput `json:"raw_material_inputs,omitempty" yaml:"raw_material_inputs,omitempty"`
	Steps        []ProcessingStep   `json:"processing_steps,omitempty" yaml:"processing_steps,omitempty"`
	Packaging    PackagingInfo      `json:"packaging" yaml:"packaging"`
	QualityGrade QualityGrade       `json:"quality_grade" yaml:"quality_grade"`
	Market       MarketDestination  `json:"market_destination" yaml:"market_destination"`
}

// StepEnergyPerTonne sums the kWh/t of every processing step.
func (p ProcessedProduct) StepEnergyPerTonne() float64 {
	var total float64
	for _, s := range p.Steps {
		total += s.EnergyIntensity
	}
	return total
}

// StepWaterPerTonne sums the litres/t of every processing step.
func (p ProcessedProduct) StepWaterPerTonne() float64 {
	var total float64
	for _, s := range p.Steps {
		total += s.WaterUsage
	}
	return total
}

// StepEmissions sums step emission factors in kg CO2-eq per tonne.
func (p ProcessedProduct) StepEmissions() float64 {
	var total float64
	for _, s := range p.Steps {
		if s.EmissionsFactor != nil {
			total += *s.EmissionsFactor
		}
	}
	return total
}

type RawMaterialInput struct {
	Name                 string   `json:"material_name" yaml:"material_name"`
	KgPerTonneOutput     float64  `json:"quantity_per_tonne_output" yaml:"quantity_per_tonne_output"`
	SourceLocation       string   `json:"source_location,omitempty" yaml:"source_location,omitempty"`
	QualityRequirements  []string `json:"quality_requirements,omitempty" yaml:"quality_requirements,omitempty"`
	SeasonalAvailability bool     `json:"seasonal_availability" yaml:"seasonal_availability"`
}

// ProcessingStep energy is kWh/t, water litres/t and emissions kg CO2-eq/t.
type ProcessingStep struct {
	Name            string   `json:"step_name" yaml:"step_name"`
	EnergyIntensity float64  `json:"energy_intensity" yaml:"energy_intensity"`
	WaterUsage      float64  `json:"water_usage" yaml:"water_usage"`
	DurationHours   float64  `json:"duration" yaml:"duration"`
	YieldPct        float64  `json:"yield_efficiency" yaml:"yield_efficiency"`
	EmissionsFactor *float64 `json:"emissions_factor,omitempty" yaml:"emissions_factor,omitempty"`
}

type PackagingInfo struct {
	Material        PackagingMaterial `json:"packaging_material" yaml:"packaging_material"`
	PackageSizeKg   float64           `json:"package_size" yaml:"package_size"`
	WeightPerUnitKg float64           `json:"packaging_weight_per_unit" yaml:"packaging_weight_per_unit"`
	Recyclable      bool              `json:"recyclable" yaml:"recyclable"`
}

// DefaultPackaging is a 50 kg plastic sack.
func DefaultPackaging() PackagingInfo {
	return PackagingInfo{Material: PackagingPlasticBag, PackageSizeKg: 50, WeightPerUnitKg: 0.1}
}

// ProcessingAssessment is a parsed facility assessment.
type ProcessingAssessment struct {
	Facility    FacilityProfile      `json:"facility_profile" yaml:"facility_profile"`
	Operations  ProcessingOperations `json:"processing_operations" yaml:"processing_operations"`
	Products    []ProcessedProduct   `json:"processed_products" yaml:"processed_products"`
	Country     Country              `json:"country" yaml:"country"`
	Region      string               `json:"region,omitempty" yaml:"region,omitempty"`
	Methodology Methodology          `json:"methodology" yaml:"methodology"`
}

// TotalTonnes sums annual output across products.
func (a *ProcessingAssessment) TotalTonnes() float64 {
	var total float64
	for _, p := range a.Products {
		total += p.AnnualTonnes
	}
	return total
}
