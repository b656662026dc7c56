// Package inventory builds the life-cycle inventory: the elementary flows
// (emissions and resource uses) attributable to a farm or a facility product.
package inventory

import "strings"

// Compartment is where a flow enters or leaves the environment.
type Compartment string

const (
	Air      Compartment = "Air"
	Water    Compartment = "Water"
	Soil     Compartment = "Soil"
	Resource Compartment = "Resource"
)

// Substance names used by the builders.
const (
	N2ODirect      = "Dinitrogen monoxide (N2O)"
	N2OIndirect    = "Dinitrogen monoxide (N2O) - indirect"
	CO2            = "Carbon dioxide (CO2)"
	CO2Eq          = "Carbon dioxide (CO2) equivalent"
	CH4            = "Methane (CH4)"
	WaterUse       = "Water"
	Nitrate        = "Nitrate (NO3-)"
	PhosphateRock  = "Phosphate rock"
	Potash         = "Potash"
	LandOccupation = "Land occupation, annual crop"
	ProcessEnergy  = "Energy, process"
	WasteEmissions = "Organic waste treatment (CO2-eq)"
	Wastewater     = "Wastewater"
	SolidWaste     = "Solid waste"
	unitKg         = "kg"
	unitM3         = "m3"
)

// Measure names a structured quantity carried alongside a flow so later
// stages never re-derive numbers from provenance text.
type Measure string

const (
	DieselLitres    Measure = "diesel_l"
	PetrolLitres    Measure = "petrol_l"
	OtherFuelLitres Measure = "other_fuel_l"
	ElectricityKWh  Measure = "electricity_kwh"
	FertilizerKg    Measure = "fertilizer_kg"
	NitrogenKg      Measure = "nitrogen_kg"
	PesticideKg     Measure = "pesticide_kg"
	AreaHa          Measure = "area_ha"
	Estimated       Measure = "estimated"
)

// Measures maps a measure to its quantity.
type Measures map[Measure]float64

// Flow is one elementary flow.
type Flow struct {
	Substance   string      `json:"substance" yaml:"substance"`
	Compartment Compartment `json:"compartment" yaml:"compartment"`
	Quantity    float64     `json:"quantity" yaml:"quantity"`
	Unit        string      `json:"unit" yaml:"unit"`
	Provenance  []string    `json:"provenance" yaml:"provenance"`
	Measures    Measures    `json:"measures,omitempty" yaml:"measures,omitempty"`
}

// Source joins the provenance entries.
func (f Flow) Source() string {
	return strings.Join(f.Provenance, ", ")
}

type flowKey struct {
	substance   string
	compartment Compartment
}

// Inventory aggregates flows by (substance, compartment). Quantities and
// measures sum; provenance entries are appended, duplicates included.
type Inventory struct {
	flows map[flowKey]*Flow
	order []flowKey
}

// New returns an empty inventory.
func New() *Inventory {
	return &Inventory{flows: make(map[flowKey]*Flow)}
}

// Add folds f into the inventory.
func (inv *Inventory) Add(f Flow) {
	k := flowKey{f.Substance, f.Compartment}
	existing, ok := inv.flows[k]
	if !ok {
		cp := f
		cp.Provenance = append([]string(nil), f.Provenance...)
		cp.Measures = make(Measures, len(f.Measures))
		for m, v := range f.Measures {
			cp.Measures[m] = v
		}
		inv.flows[k] = &cp
		inv.order = append(inv.order, k)
		return
	}
	existing.Quantity += f.Quantity
	existing.Provenance = append(existing.Provenance, f.Provenance...)
	for m, v := range f.Measures {
		existing.Measures[m] += v
	}
}

// Len returns the number of distinct flows.
func (inv *Inventory) Len() int {
	return len(inv.flows)
}

// Flows returns copies of the flows in insertion order.
func (inv *Inventory) Flows() []Flow {
	out := make([]Flow, 0, len(inv.order))
	for _, k := range inv.order {
		out = append(out, *inv.flows[k])
	}
	return out
}

// Get returns the flow for a substance in a compartment.
func (inv *Inventory) Get(substance string, c Compartment) (Flow, bool) {
	f, ok := inv.flows[flowKey{substance, c}]
	if !ok {
		return Flow{}, false
	}
	return *f, true
}

// Quantity sums a substance across compartments.
func (inv *Inventory) Quantity(substance string) float64 {
	var total float64
	for _, k := range inv.order {
		if k.substance == substance {
			total += inv.flows[k].Quantity
		}
	}
	return total
}

// Measure sums a structured measure across every flow.
func (inv *Inventory) Measure(m Measure) float64 {
	var total float64
	for _, k := range inv.order {
		total += inv.flows[k].Measures[m]
	}
	return total
}
