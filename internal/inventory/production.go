package inventory

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/model"
)

// IPCC 2019 defaults.
const (
	directN2OFactor   = 0.01
	volatilizedFrac   = 0.20
	leachedFrac       = 0.20
	n2oPerN           = 44.0 / 28.0
	nitratePerN       = 62.0 / 14.0
	phosphateRockPerP = 0.3
	potashPerK        = 0.2
	pesticideCO2PerKg = 10.0
	riceCH4PerHa      = 200.0
	m2PerHa           = 10000.0

	dieselKgCO2PerL = 2.68
	petrolKgCO2PerL = 2.31
	otherKgCO2PerL  = 2.5

	estimatedDieselLPerHa  = 80.0
	estimatedElectricKWhHa = 200.0
)

// Warnings raised while building an inventory.
const (
	WarnNoFertilizerArea = "No area allocated to food items; fertilizer emissions skipped"
	WarnEnergyEstimated  = "No metered fuel or electricity data; energy use ESTIMATED from farm area"
)

// Builder turns activity records into inventories. It is safe for
// concurrent use; it holds only read-only reference data.
type Builder struct {
	tables *factors.Tables
	repo   *factors.Repository
}

// NewBuilder returns a Builder over the given reference data.
func NewBuilder(tables *factors.Tables, repo *factors.Repository) *Builder {
	return &Builder{tables: tables, repo: repo}
}

// Result is an inventory with the warnings raised building it.
type Result struct {
	Inventory *Inventory
	Warnings  []string
}

func (r *Result) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	zap.L().Warn("inventory: "+msg)
}

// Production builds the farm inventory of a production assessment.
func (b *Builder) Production(a *model.ProductionAssessment) Result {
	res := Result{Inventory: New()}
	area := a.TotalAreaHa()

	if a.Practices != nil {
		b.fertilizers(&res, a.Practices.Fertilization, area)
	}
	b.energy(&res, a, area)
	if a.Practices != nil {
		pesticides(res.Inventory, a.Practices.Pest)
		irrigation(res.Inventory, a.Practices.Water, area)
	}
	for _, f := range a.Foods {
		if f.IsRice() && f.Area() > 0 {
			res.Inventory.Add(Flow{
				Substance:   CH4,
				Compartment: Air,
				Quantity:    f.Area() * riceCH4PerHa,
				Unit:        unitKg,
				Provenance:  []string{fmt.Sprintf("Methane emissions from rice cultivation (%g ha)", f.Area())},
				Measures:    Measures{AreaHa: f.Area()},
			})
		}
	}
	if area > 0 {
		res.Inventory.Add(Flow{
			Substance:   LandOccupation,
			Compartment: Resource,
			Quantity:    area * m2PerHa,
			Unit:        "m2*year",
			Provenance:  []string{"Agricultural land occupation"},
			Measures:    Measures{AreaHa: area},
		})
	}

	zap.L().Debug("inventory: production built",
		zap.String("company", a.CompanyName),
		zap.Int("flows", res.Inventory.Len()),
		zap.Int("warnings", len(res.Warnings)),
	)
	return res
}

func (b *Builder) fertilizers(res *Result, fp model.FertilizationPractice, area float64) {
	if !fp.UsesFertilizers || len(fp.Applications) == 0 {
		return
	}
	if area <= 0 {
		res.warn(WarnNoFertilizerArea)
		return
	}
	inv := res.Inventory
	for _, app := range fp.Applications {
		apps := float64(app.Applications)
		totalKg := app.RateKgHa * area * apps
		n := app.RateKgHa * NitrogenFraction(app.Type, app.NPKRatio) * area * apps

		inv.Add(Flow{
			Substance:   N2ODirect,
			Compartment: Air,
			Quantity:    n * directN2OFactor * n2oPerN,
			Unit:        unitKg,
			Provenance:  []string{fmt.Sprintf("Direct N2O emissions from %s application", app.Type)},
			Measures:    Measures{NitrogenKg: n},
		})
		inv.Add(Flow{
			Substance:   CO2,
			Compartment: Air,
			Quantity:    totalKg * ProductionFactor(app.Type),
			Unit:        unitKg,
			Provenance:  []string{fmt.Sprintf("Production and transport of %s", app.Type)},
			Measures:    Measures{FertilizerKg: totalKg},
		})
		if isNPK(app.Type) {
			if parts, ok := npkParts(app.NPKRatio); ok {
				inv.Add(Flow{
					Substance:   PhosphateRock,
					Compartment: Resource,
					Quantity:    totalKg * parts[1] / 100 * phosphateRockPerP,
					Unit:        "kg Fe-eq",
					Provenance:  []string{fmt.Sprintf("Phosphate mining for %s production", app.Type)},
				})
				inv.Add(Flow{
					Substance:   Potash,
					Compartment: Resource,
					Quantity:    totalKg * parts[2] / 100 * potashPerK,
					Unit:        "kg Fe-eq",
					Provenance:  []string{fmt.Sprintf("Potash mining for %s production", app.Type)},
				})
			}
		}
		inv.Add(Flow{
			Substance:   N2OIndirect,
			Compartment: Air,
			Quantity:    n * volatilizedFrac * directN2OFactor * n2oPerN,
			Unit:        unitKg,
			Provenance:  []string{fmt.Sprintf("Indirect N2O emissions from %s (volatilization/leaching)", app.Type)},
		})
		inv.Add(Flow{
			Substance:   Nitrate,
			Compartment: Water,
			Quantity:    n * leachedFrac * nitratePerN,
			Unit:        unitKg,
			Provenance:  []string{fmt.Sprintf("Nitrate leaching from %s application", app.Type)},
		})
	}
}

type fuelEntry struct {
	measure Measure
	kgPerL  float64
}

// Exact fuel names; anything else falls back to substring matching.
var fuelNames = map[string]fuelEntry{
	"diesel":          {DieselLitres, dieselKgCO2PerL},
	"petrol":          {PetrolLitres, petrolKgCO2PerL},
	"gasoline":        {PetrolLitres, petrolKgCO2PerL},
	"petrol/gasoline": {PetrolLitres, petrolKgCO2PerL},
	"biodiesel":       {OtherFuelLitres, otherKgCO2PerL},
	"kerosene":        {OtherFuelLitres, otherKgCO2PerL},
	"lpg":             {OtherFuelLitres, otherKgCO2PerL},
}

func fuelClass(typ string) (Measure, float64) {
	t := strings.ToLower(strings.TrimSpace(typ))
	if e, ok := fuelNames[t]; ok {
		return e.measure, e.kgPerL
	}
	switch {
	case strings.HasPrefix(t, "bio"):
		return OtherFuelLitres, otherKgCO2PerL
	case strings.Contains(t, "diesel"):
		return DieselLitres, dieselKgCO2PerL
	case strings.Contains(t, "petrol"), strings.Contains(t, "gasoline"):
		return PetrolLitres, petrolKgCO2PerL
	default:
		return OtherFuelLitres, otherKgCO2PerL
	}
}

func isGridElectricity(typ string) bool {
	t := strings.ToLower(typ)
	return strings.Contains(t, "electricity") || strings.Contains(t, "grid")
}

func (b *Builder) energy(res *Result, a *model.ProductionAssessment, area float64) {
	inv := res.Inventory
	grid := b.tables.GridFactor(a.Country)

	if a.Equipment.HasMeteredData() {
		for _, fu := range a.Equipment.Fuel {
			annual := fu.MonthlyConsumption * 12
			m, kgPerL := fuelClass(fu.Type)
			inv.Add(Flow{
				Substance:   CO2,
				Compartment: Air,
				Quantity:    annual * kgPerL,
				Unit:        unitKg,
				Provenance:  []string{fmt.Sprintf("%s consumption: %g L/month (%.1f L/year)",
					fu.Type, fu.MonthlyConsumption, annual)},
				Measures: Measures{m: annual},
			})
		}
		for _, e := range a.Equipment.Energy {
			if !isGridElectricity(e.Type) {
				continue
			}
			annual := e.MonthlyConsumption * 12
			inv.Add(Flow{
				Substance:   CO2,
				Compartment: Air,
				Quantity:    annual * grid,
				Unit:        unitKg,
				Provenance:  []string{fmt.Sprintf("%s consumption: %g kWh/month (%.1f kWh/year) for %s",
					e.Type, e.MonthlyConsumption, annual, e.PrimaryUse)},
				Measures: Measures{ElectricityKWh: annual},
			})
		}
		return
	}

	if area <= 0 {
		return
	}
	res.warn(WarnEnergyEstimated)
	litres := area * estimatedDieselLPerHa
	kwh := area * estimatedElectricKWhHa
	inv.Add(Flow{
		Substance:   CO2,
		Compartment: Air,
		Quantity:    litres * dieselKgCO2PerL,
		Unit:        unitKg,
		Provenance:  []string{fmt.Sprintf("Diesel consumption for farm operations (ESTIMATED: %.0f L/year based on %g ha)",
			litres, area)},
		Measures: Measures{DieselLitres: litres, Estimated: 1},
	})
	inv.Add(Flow{
		Substance:   CO2,
		Compartment: Air,
		Quantity:    kwh * grid,
		Unit:        unitKg,
		Provenance:  []string{fmt.Sprintf("Grid electricity (ESTIMATED: %.0f kWh/year based on %g ha)",
			kwh, area)},
		Measures: Measures{ElectricityKWh: kwh, Estimated: 1},
	})
}

func pesticides(inv *Inventory, pm model.PestManagement) {
	for _, p := range pm.Pesticides {
		kg := p.Rate * float64(p.Applications)
		inv.Add(Flow{
			Substance:   CO2Eq,
			Compartment: Air,
			Quantity:    kg * pesticideCO2PerKg,
			Unit:        "kg CO2-eq",
			Provenance:  []string{fmt.Sprintf("Production of %s pesticide (%s)", p.Type, p.ActiveIngredient)},
			Measures:    Measures{PesticideKg: kg},
		})
	}
}

// IrrigationPerHa is annual irrigation water in m3 per hectare for a
// system description.
func IrrigationPerHa(system string) float64 {
	s := strings.ToLower(strings.TrimSpace(system))
	switch {
	case s == "", strings.Contains(s, "none"), strings.Contains(s, "rainfed"):
		return 0
	case strings.Contains(s, "drip"):
		return 3000
	case strings.Contains(s, "sprinkler"):
		return 5000
	case strings.Contains(s, "flood"), strings.Contains(s, "furrow"):
		return 8000
	default:
		return 4000
	}
}

func irrigation(inv *Inventory, wm model.WaterManagement, area float64) {
	m3 := IrrigationPerHa(wm.IrrigationSystem) * area
	if m3 <= 0 {
		return
	}
	system := wm.IrrigationSystem
	if system == "" {
		system = "Unknown"
	}
	inv.Add(Flow{
		Substance:   WaterUse,
		Compartment: Resource,
		Quantity:    m3,
		Unit:        unitM3,
		Provenance:  []string{fmt.Sprintf("Irrigation water (%s)", system)},
	})
}
