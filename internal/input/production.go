package input

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"

	"github.com/sells-group/lca-cli/internal/model"
)

const (
	maxCompanyNameLen = 200
	highQuantityKg    = 10000.0
	defaultPestPolicy = "IntegratedIPM"
)

// foodDoc accepts both the simple and the farm field names.
type foodDoc struct {
	ID                    string   `json:"id"`
	CropID                string   `json:"crop_id"`
	Name                  string   `json:"name"`
	CropName              string   `json:"crop_name"`
	QuantityKg            *float64 `json:"quantity_kg"`
	AnnualProduction      *float64 `json:"annual_production"`
	Category              string   `json:"category"`
	CropType              string   `json:"crop_type"`
	Variety               string   `json:"variety"`
	OriginCountry         string   `json:"origin_country"`
	ProductionSystem      string   `json:"production_system"`
	SeasonalFactor        string   `json:"seasonal_factor"`
	AreaHa                *float64 `json:"area_allocated"`
	CroppingPattern       string   `json:"cropping_pattern"`
	IntercroppingPartners []string `json:"intercropping_partners"`
	PostHarvestLossPct    *float64 `json:"post_harvest_losses"`
}

func firstOf(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ValidateCompanyName requires a non-blank name of at most 200 characters.
func ValidateCompanyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return model.NewParseError("company_name", "company name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxCompanyNameLen {
		return &model.ParseError{
			Field: "company_name",
			Value: name,
			Msg:   fmt.Sprintf("company name too long (max %d characters)", maxCompanyNameLen),
		}
	}
	return nil
}

// ValidateQuantity rejects non-positive quantities and returns a warning
// for implausibly large ones.
func ValidateQuantity(name string, kg float64) (string, error) {
	if kg <= 0 {
		return "", &model.ParseError{
			Field: "quantity_kg",
			Value: fmt.Sprint(kg),
			Msg:   fmt.Sprintf("food quantity must be positive: %s (%g kg)", name, kg),
		}
	}
	if kg > highQuantityKg {
		return fmt.Sprintf("Food quantity seems unusually high (>10 tons): %s (%g kg)", name, kg), nil
	}
	return "", nil
}

// nonNegative rejects a negative rate or consumption reading.
func nonNegative(field, what string, v float64) error {
	if v < 0 {
		return &model.ParseError{
			Field: field,
			Value: fmt.Sprint(v),
			Msg:   fmt.Sprintf("%s cannot be negative: %g", what, v),
		}
	}
	return nil
}

func validatePractices(mp *model.ManagementPractices) error {
	for _, f := range mp.Fertilization.Applications {
		if err := nonNegative("application_rate", "fertilizer application rate for "+f.Type, f.RateKgHa); err != nil {
			return err
		}
	}
	for _, p := range mp.Pest.Pesticides {
		if err := nonNegative("application_rate", "pesticide application rate for "+p.Type, p.Rate); err != nil {
			return err
		}
	}
	return nil
}

func validateEquipment(ee *model.EquipmentEnergy) error {
	for _, f := range ee.Fuel {
		if err := nonNegative("monthlyConsumption", "monthly consumption of "+f.Type, f.MonthlyConsumption); err != nil {
			return err
		}
	}
	for _, e := range ee.Energy {
		if err := nonNegative("monthlyConsumption", "monthly consumption of "+e.Type, e.MonthlyConsumption); err != nil {
			return err
		}
	}
	return nil
}

func (d foodDoc) item(country model.Country) (model.FoodItem, string, error) {
	name := firstOf(d.CropName, d.Name)
	if name == "" {
		return model.FoodItem{}, "", model.NewParseError("name", "missing food name")
	}
	qty := d.AnnualProduction
	if qty == nil {
		qty = d.QuantityKg
	}
	if qty == nil {
		return model.FoodItem{}, "", model.NewParseError("quantity_kg", "missing or invalid quantity for "+name)
	}
	warning, err := ValidateQuantity(name, *qty)
	if err != nil {
		return model.FoodItem{}, "", err
	}
	if strings.TrimSpace(d.Category) == "" {
		return model.FoodItem{}, "", model.NewParseError("category", "missing food category for "+name)
	}
	cat, err := model.ParseFoodCategory(d.Category)
	if err != nil {
		return model.FoodItem{}, "", err
	}
	system, err := model.ParseProductionSystem(d.ProductionSystem)
	if err != nil {
		return model.FoodItem{}, "", err
	}
	season, err := model.ParseSeasonalFactor(d.SeasonalFactor)
	if err != nil {
		return model.FoodItem{}, "", err
	}
	pattern, err := model.ParseCroppingPattern(d.CroppingPattern)
	if err != nil {
		return model.FoodItem{}, "", err
	}

	origin := d.OriginCountry
	if origin == "" {
		origin = string(country)
	}
	return model.FoodItem{
		ID:                    firstOf(d.CropID, d.ID),
		Name:                  name,
		QuantityKg:            *qty,
		Category:              cat,
		CropType:              firstOf(d.Variety, d.CropType),
		OriginCountry:         origin,
		ProductionSystem:      system,
		SeasonalFactor:        season,
		Variety:               d.Variety,
		AreaHa:                d.AreaHa,
		CroppingPattern:       pattern,
		IntercroppingPartners: d.IntercroppingPartners,
		PostHarvestLossPct:    d.PostHarvestLossPct,
	}, warning, nil
}

func parseProduction(data []byte, kind model.AssessmentKind) (*model.ProductionAssessment, []string, error) {
	company, err := requireString(data, "company_name")
	if err != nil {
		return nil, nil, err
	}
	if err := ValidateCompanyName(company); err != nil {
		return nil, nil, eris.Wrap(err, "input: production")
	}
	countryName, err := requireString(data, "country")
	if err != nil {
		return nil, nil, err
	}
	country, err := model.ParseCountry(countryName)
	if err != nil {
		return nil, nil, eris.Wrap(err, "input: production")
	}

	foodsRaw := gjson.GetBytes(data, "foods")
	if !foodsRaw.IsArray() {
		return nil, nil, eris.Wrap(model.NewParseError("foods", "missing or invalid foods array"), "input: production")
	}
	var docs []foodDoc
	if err := json.Unmarshal([]byte(foodsRaw.Raw), &docs); err != nil {
		return nil, nil, eris.Wrap(model.NewParseError("foods", "invalid foods array: "+err.Error()), "input: production")
	}

	a := &model.ProductionAssessment{
		Kind:        kind,
		CompanyName: company,
		Country:     country,
		Region:      gjson.GetBytes(data, "region").String(),
		Foods:       make([]model.FoodItem, 0, len(docs)),
	}
	var warnings []string
	for i, d := range docs {
		item, warning, err := d.item(country)
		if err != nil {
			return nil, nil, eris.Wrapf(err, "input: food %d", i)
		}
		if warning != "" {
			warnings = append(warnings, warning)
		}
		a.Foods = append(a.Foods, item)
	}

	if a.Methodology, err = parseMethodology(data, model.ProductionMethodology()); err != nil {
		return nil, nil, err
	}
	if kind == model.KindComprehensive {
		if err := parseFarm(data, a); err != nil {
			return nil, nil, err
		}
	}
	if err := parseEquipment(data, a); err != nil {
		return nil, nil, err
	}
	return a, warnings, nil
}

func parseFarm(data []byte, a *model.ProductionAssessment) error {
	if gjson.GetBytes(data, "farm_profile").IsObject() {
		fp := &model.FarmProfile{}
		if err := decodeField(data, "farm_profile", fp); err != nil {
			return err
		}
		var err error
		if fp.FarmType, err = model.ParseFarmType(string(fp.FarmType)); err != nil {
			return eris.Wrap(err, "input: farm profile")
		}
		if fp.FarmingSystem, err = model.ParseFarmingSystem(string(fp.FarmingSystem)); err != nil {
			return eris.Wrap(err, "input: farm profile")
		}
		a.Farm = fp
	}

	if !gjson.GetBytes(data, "management_practices").IsObject() {
		return nil
	}
	mp := &model.ManagementPractices{}
	if err := decodeField(data, "management_practices", mp); err != nil {
		return err
	}
	// Compost use may be nested under compost_use.
	if cu := gjson.GetBytes(data, "management_practices.soil_management.compost_use"); cu.IsObject() {
		mp.Soil.UsesCompost = cu.Get("uses_compost").Bool()
		if src := cu.Get("compost_source"); src.Exists() {
			mp.Soil.CompostSource = src.String()
		}
	}
	soil, err := model.ParseSoilType(string(mp.Soil.SoilType))
	if err != nil {
		return eris.Wrap(err, "input: management practices")
	}
	mp.Soil.SoilType = soil
	if mp.Pest.Approach == "" {
		mp.Pest.Approach = defaultPestPolicy
	}
	if err := validatePractices(mp); err != nil {
		return eris.Wrap(err, "input: management practices")
	}
	a.Practices = mp
	return nil
}

func parseEquipment(data []byte, a *model.ProductionAssessment) error {
	key := "equipment_energy"
	if !gjson.GetBytes(data, key).Exists() {
		key = "equipmentEnergy"
	}
	if !gjson.GetBytes(data, key).IsObject() {
		return nil
	}
	ee := &model.EquipmentEnergy{}
	if err := decodeField(data, key, ee); err != nil {
		return err
	}
	if err := validateEquipment(ee); err != nil {
		return eris.Wrap(err, "input: equipment energy")
	}
	a.Equipment = ee
	return nil
}
