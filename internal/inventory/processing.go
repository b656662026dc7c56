package inventory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/lca-cli/internal/model"
)

const (
	waterOverhead     = 1.3
	wastewaterShare   = 0.8
	daysPerYearWaste  = 365.0
	litresPerM3       = 1000.0
	stepsSourceFormat = "%s processing steps (%d)"
)

// kg CO2-eq per kg organic waste; anaerobic digestion is a credit.
var wasteDisposalFactors = map[model.WasteDisposal]float64{
	model.DisposalLandfill:   0.5,
	model.DisposalComposting: 0.1,
	model.DisposalDigestion:  -0.2,
}

var wastewaterTreatmentFactors = map[model.WastewaterTreatment]float64{
	model.WastewaterNone:          1.0,
	model.WastewaterSedimentation: 0.8,
	model.WastewaterBiological:    0.6,
	model.WastewaterChemical:      0.5,
	model.WastewaterAdvanced:      0.3,
}

// EnergyPerTonne is kWh per tonne of product: step energy times the
// facility overhead, or the processing factor when no steps are recorded.
func (b *Builder) EnergyPerTonne(a *model.ProcessingAssessment, p model.ProcessedProduct) (float64, bool) {
	if len(p.Steps) > 0 {
		return p.StepEnergyPerTonne() * b.tables.EnergyOverhead(a.Facility.FacilityType), true
	}
	res := b.repo.ResolveProcessing(a.Facility.FacilityType, p.ProductType, a.Country, model.EnergyConsumption)
	return res.Factor.Value, false
}

// WaterEfficiency discounts step water by the number of conservation
// measures a facility reports.
func WaterEfficiency(measures int) float64 {
	switch {
	case measures <= 0:
		return 1.0
	case measures <= 2:
		return 0.9
	case measures <= 4:
		return 0.8
	default:
		return 0.7
	}
}

// WaterPerTonne is m3 of process water per tonne of product. Step water
// gains the cooling and cleaning overhead and the conservation discount.
func (b *Builder) WaterPerTonne(a *model.ProcessingAssessment, p model.ProcessedProduct) (float64, bool) {
	if len(p.Steps) > 0 {
		eff := WaterEfficiency(len(a.Operations.Water.ConservationMeasures))
		return p.StepWaterPerTonne() * waterOverhead * eff / litresPerM3, true
	}
	res := b.repo.ResolveProcessing(a.Facility.FacilityType, p.ProductType, a.Country, model.WaterConsumption)
	return res.Factor.Value, false
}

// Processing builds the annual inventory of one product line. Facility-wide
// fuel is allocated by the product's share of output; solid waste by its
// share of annual capacity.
func (b *Builder) Processing(a *model.ProcessingAssessment, p model.ProcessedProduct) Result {
	res := Result{Inventory: New()}
	inv := res.Inventory
	ops := a.Operations
	tonnes := p.AnnualTonnes

	ept, fromSteps := b.EnergyPerTonne(a, p)
	kwh := ept * tonnes
	energySource := "processing factor"
	if fromSteps {
		energySource = fmt.Sprintf(stepsSourceFormat, p.Name, len(p.Steps))
	}
	inv.Add(Flow{
		Substance:   ProcessEnergy,
		Compartment: Resource,
		Quantity:    kwh,
		Unit:        "kWh",
		Provenance:  []string{fmt.Sprintf("Process energy from %s: %.1f kWh/t", energySource, ept)},
		Measures:    Measures{ElectricityKWh: kwh},
	})

	if ops.Energy.PrimarySource == model.EnergyDiesel {
		litres := ops.Energy.MonthlyFuelLitres * 12 * outputShare(a, p)
		inv.Add(Flow{
			Substance:   CO2,
			Compartment: Air,
			Quantity:    litres * dieselKgCO2PerL,
			Unit:        unitKg,
			Provenance:  []string{fmt.Sprintf("Diesel generator fuel: %.1f L/year allocated", litres)},
			Measures:    Measures{DieselLitres: litres},
		})
	} else {
		f := b.tables.ProcessEnergyFactor(ops.Energy.PrimarySource, a.Country)
		inv.Add(Flow{
			Substance:   CO2,
			Compartment: Air,
			Quantity:    kwh * f,
			Unit:        unitKg,
			Provenance:  []string{fmt.Sprintf("%s: %.1f kWh at %.2f kg CO2/kWh", ops.Energy.PrimarySource, kwh, f)},
		})
	}

	if e := p.StepEmissions(); e > 0 {
		inv.Add(Flow{
			Substance:   CO2Eq,
			Compartment: Air,
			Quantity:    e * tonnes,
			Unit:        "kg CO2-eq",
			Provenance:  []string{fmt.Sprintf("Process emissions: %.2f kg CO2-eq/t", e)},
		})
	}

	alloc := capacityShare(a, p)
	w := ops.Waste
	if f, ok := wasteDisposalFactors[w.Disposal]; ok {
		organic := w.SolidWasteKgPerDay * daysPerYearWaste * w.OrganicPct / 100 * alloc
		inv.Add(Flow{
			Substance:   WasteEmissions,
			Compartment: Air,
			Quantity:    organic * f,
			Unit:        "kg CO2-eq",
			Provenance:  []string{fmt.Sprintf("Organic waste to %s: %.1f kg/year", w.Disposal, organic)},
		})
	}
	if solid := w.SolidWasteKgPerDay * float64(a.Facility.DaysPerYear) * alloc; solid > 0 {
		inv.Add(Flow{
			Substance:   SolidWaste,
			Compartment: Soil,
			Quantity:    solid,
			Unit:        unitKg,
			Provenance:  []string{fmt.Sprintf("Solid waste allocated to %s", p.Name)},
		})
	}

	wpt, _ := b.WaterPerTonne(a, p)
	water := wpt * tonnes
	if water > 0 {
		inv.Add(Flow{
			Substance:   WaterUse,
			Compartment: Resource,
			Quantity:    water,
			Unit:        unitM3,
			Provenance:  []string{fmt.Sprintf("Process water for %s", p.Name)},
		})
		treat, ok := wastewaterTreatmentFactors[ops.Water.WastewaterTreatment]
		if !ok {
			treat = 1
		}
		inv.Add(Flow{
			Substance:   Wastewater,
			Compartment: Water,
			Quantity:    water * wastewaterShare * treat,
			Unit:        unitM3,
			Provenance:  []string{fmt.Sprintf("Wastewater after %s treatment", ops.Water.WastewaterTreatment)},
		})
	}

	zap.L().Debug("inventory: processing built",
		zap.String("product", p.Name),
		zap.Float64("tonnes", tonnes),
		zap.Int("flows", inv.Len()),
	)
	return res
}

func outputShare(a *model.ProcessingAssessment, p model.ProcessedProduct) float64 {
	total := a.TotalTonnes()
	if total <= 0 {
		return 0
	}
	return p.AnnualTonnes / total
}

// capacityShare falls back to the output share when capacity is unknown.
func capacityShare(a *model.ProcessingAssessment, p model.ProcessedProduct) float64 {
	capacity := a.Facility.AnnualCapacity()
	if capacity <= 0 {
		return outputShare(a, p)
	}
	return p.AnnualTonnes / capacity
}
