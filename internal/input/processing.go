package input

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"

	"github.com/sells-group/lca-cli/internal/model"
)

const defaultYieldPct = 95.0

func defaultFacility() model.FacilityProfile {
	return model.FacilityProfile{
		FacilityType: model.FacilityGeneral,
		HoursPerDay:  8,
		DaysPerYear:  250,
		LocationType: model.LocationRural,
	}
}

type stepDoc struct {
	Name            string   `json:"step_name"`
	EnergyIntensity float64  `json:"energy_intensity"`
	WaterUsage      float64  `json:"water_usage"`
	DurationHours   float64  `json:"duration"`
	YieldPct        *float64 `json:"yield_efficiency"`
	EmissionsFactor *float64 `json:"emissions_factor"`
}

// productDoc accepts the id/product_id and name/product_name aliases.
type productDoc struct {
	ID           string                   `json:"id"`
	ProductID    string                   `json:"product_id"`
	Name         string                   `json:"name"`
	ProductName  string                   `json:"product_name"`
	ProductType  string                   `json:"product_type"`
	AnnualTonnes *float64                 `json:"annual_production"`
	RawMaterials []model.RawMaterialInput `json:"raw_material_inputs"`
	Steps        []stepDoc                `json:"processing_steps"`
	Packaging    json.RawMessage          `json:"packaging"`
	QualityGrade string                   `json:"quality_grade"`
	Market       string                   `json:"market_destination"`
}

func (d productDoc) product() (model.ProcessedProduct, error) {
	name := firstOf(d.Name, d.ProductName)
	if name == "" {
		return model.ProcessedProduct{}, model.NewParseError("name", "missing product name")
	}
	pt, err := model.ParseProductType(d.ProductType)
	if err != nil {
		return model.ProcessedProduct{}, err
	}
	if d.AnnualTonnes == nil {
		return model.ProcessedProduct{}, model.NewParseError("annual_production", "missing annual_production for "+name)
	}
	if *d.AnnualTonnes <= 0 {
		return model.ProcessedProduct{}, &model.ParseError{
			Field: "annual_production",
			Value: fmt.Sprint(*d.AnnualTonnes),
			Msg:   fmt.Sprintf("annual production must be positive: %s (%g t)", name, *d.AnnualTonnes),
		}
	}

	pkg := model.DefaultPackaging()
	if len(d.Packaging) > 0 && string(d.Packaging) != "null" {
		if err := json.Unmarshal(d.Packaging, &pkg); err != nil {
			return model.ProcessedProduct{}, model.NewParseError("packaging", "invalid packaging: "+err.Error())
		}
	}
	if pkg.Material, err = model.ParsePackagingMaterial(string(pkg.Material)); err != nil {
		return model.ProcessedProduct{}, err
	}

	steps := make([]model.ProcessingStep, 0, len(d.Steps))
	for _, s := range d.Steps {
		y := defaultYieldPct
		if s.YieldPct != nil {
			y = *s.YieldPct
		}
		steps = append(steps, model.ProcessingStep{
			Name:            s.Name,
			EnergyIntensity: s.EnergyIntensity,
			WaterUsage:      s.WaterUsage,
			DurationHours:   s.DurationHours,
			YieldPct:        y,
			EmissionsFactor: s.EmissionsFactor,
		})
	}

	var label string
	if pt == model.ProductOther {
		label = d.ProductType
	}
	return model.ProcessedProduct{
		ID:           firstOf(d.ID, d.ProductID),
		Name:         name,
		ProductType:  pt,
		ProductLabel: label,
		AnnualTonnes: *d.AnnualTonnes,
		RawMaterials: d.RawMaterials,
		Steps:        steps,
		Packaging:    pkg,
		QualityGrade: model.ParseQualityGrade(d.QualityGrade),
		Market:       model.ParseMarketDestination(d.Market),
	}, nil
}

func parseProcessing(data []byte) (*model.ProcessingAssessment, []string, error) {
	countryName, err := requireString(data, "country")
	if err != nil {
		return nil, nil, err
	}
	country, err := model.ParseCountry(countryName)
	if err != nil {
		return nil, nil, eris.Wrap(err, "input: processing")
	}

	if !gjson.GetBytes(data, "facility_profile").IsObject() {
		return nil, nil, eris.Wrap(model.NewParseError("facility_profile", "missing facility_profile"), "input: processing")
	}
	facility := defaultFacility()
	if err := decodeField(data, "facility_profile", &facility); err != nil {
		return nil, nil, err
	}
	if err := validateFacility(&facility); err != nil {
		return nil, nil, eris.Wrap(err, "input: facility profile")
	}

	ops := model.DefaultOperations()
	if err := decodeField(data, "processing_operations", &ops); err != nil {
		return nil, nil, err
	}
	if err := validateOperations(&ops); err != nil {
		return nil, nil, eris.Wrap(err, "input: processing operations")
	}

	productsRaw := gjson.GetBytes(data, "processed_products")
	if !productsRaw.IsArray() {
		return nil, nil, eris.Wrap(model.NewParseError("processed_products", "missing or invalid processed_products array"), "input: processing")
	}
	var docs []productDoc
	if err := json.Unmarshal([]byte(productsRaw.Raw), &docs); err != nil {
		return nil, nil, eris.Wrap(model.NewParseError("processed_products", "invalid processed_products: "+err.Error()), "input: processing")
	}

	a := &model.ProcessingAssessment{
		Facility:   facility,
		Operations: ops,
		Products:   make([]model.ProcessedProduct, 0, len(docs)),
		Country:    country,
		Region:     gjson.GetBytes(data, "region").String(),
	}
	for i, d := range docs {
		p, err := d.product()
		if err != nil {
			return nil, nil, eris.Wrapf(err, "input: product %d", i)
		}
		a.Products = append(a.Products, p)
	}
	if a.Methodology, err = parseMethodology(data, model.ProcessingMethodology()); err != nil {
		return nil, nil, err
	}

	var warnings []string
	if capacity := facility.AnnualCapacity(); capacity > 0 && a.TotalTonnes() > capacity {
		warnings = append(warnings, fmt.Sprintf(
			"Annual production %.0f t exceeds facility capacity %.0f t", a.TotalTonnes(), capacity))
	}
	return a, warnings, nil
}

func validateFacility(f *model.FacilityProfile) error {
	var err error
	if f.FacilityType, err = model.ParseFacilityType(string(f.FacilityType)); err != nil {
		return err
	}
	if f.LocationType, err = model.ParseLocationType(string(f.LocationType)); err != nil {
		return err
	}
	name := firstOf(f.CompanyName, f.FacilityName)
	if strings.TrimSpace(name) == "" {
		return model.NewParseError("company_name", "facility needs a company_name or facility_name")
	}
	return ValidateCompanyName(name)
}

func validateOperations(ops *model.ProcessingOperations) error {
	var err error
	e := &ops.Energy
	if e.PrimarySource, err = model.ParseEnergySource(string(e.PrimarySource)); err != nil {
		return err
	}
	for i, s := range e.SecondarySources {
		if e.SecondarySources[i], err = model.ParseEnergySource(string(s)); err != nil {
			return err
		}
	}
	w := &ops.Water
	if w.Treatment, err = model.ParseWaterTreatment(string(w.Treatment)); err != nil {
		return err
	}
	if w.WastewaterTreatment, err = model.ParseWastewaterTreatment(string(w.WastewaterTreatment)); err != nil {
		return err
	}
	if ops.Waste.Disposal, err = model.ParseWasteDisposal(string(ops.Waste.Disposal)); err != nil {
		return err
	}
	if ops.Sourcing.TransportMode, err = model.ParseTransportMode(string(ops.Sourcing.TransportMode)); err != nil {
		return err
	}
	eq := &ops.Equipment
	if eq.Age, err = model.ParseEquipmentAge(string(eq.Age)); err != nil {
		return err
	}
	if eq.Maintenance, err = model.ParseMaintenanceFrequency(string(eq.Maintenance)); err != nil {
		return err
	}
	if eq.Automation, err = model.ParseAutomationLevel(string(eq.Automation)); err != nil {
		return err
	}
	return nil
}
