package adjust

import (
	"fmt"
	"math"

	"github.com/sells-group/lca-cli/internal/model"
)

var locationFactors = map[model.LocationType]float64{
	model.LocationIndustrial: 0.95,
	model.LocationUrban:      1.0,
	model.LocationPeriUrban:  1.05,
	model.LocationRural:      1.1,
}

var equipmentFactors = map[model.EquipmentAge]float64{
	model.EquipmentNew:     0.9,
	model.EquipmentRecent:  0.95,
	model.EquipmentMature:  1.0,
	model.EquipmentOld:     1.15,
	model.EquipmentVeryOld: 1.3,
}

var maintenanceFactors = map[model.MaintenanceFrequency]float64{
	model.MaintenanceDaily:     0.95,
	model.MaintenanceWeekly:    0.95,
	model.MaintenanceMonthly:   1.0,
	model.MaintenanceQuarterly: 1.05,
}

func scaleFactor(tonnesPerDay float64) float64 {
	switch {
	case tonnesPerDay < 10:
		return 1.2
	case tonnesPerDay < 100:
		return 1.0
	case tonnesPerDay < 1000:
		return 0.9
	default:
		return 0.8
	}
}

// ageFactor is 1 when the establishment year is unknown.
func ageFactor(established, referenceYear int) float64 {
	if established <= 0 {
		return 1.0
	}
	switch age := referenceYear - established; {
	case age <= 5:
		return 0.9
	case age <= 15:
		return 1.0
	case age <= 30:
		return 1.1
	default:
		return 1.2
	}
}

func lookup[K comparable](m map[K]float64, k K, fallback float64) float64 {
	if v, ok := m[k]; ok {
		return v
	}
	return fallback
}

// FacilityMultiplier is the facility-wide multiplier for one category:
// scale, age, location, equipment and maintenance, then renewable share on
// energy and warming, and conservation measures on water.
func FacilityMultiplier(f model.FacilityProfile, ops model.ProcessingOperations, c model.Category, referenceYear int) float64 {
	k := scaleFactor(f.CapacityTPD) *
		ageFactor(f.EstablishedYear, referenceYear) *
		lookup(locationFactors, f.LocationType, 1.0) *
		lookup(equipmentFactors, ops.Equipment.Age, 1.0) *
		lookup(maintenanceFactors, ops.Equipment.Maintenance, 1.1)

	switch c {
	case model.EnergyConsumption, model.GlobalWarming:
		k *= 1 - ops.Energy.RenewablePct/100*0.8
	case model.WaterConsumption, model.WaterScarcity:
		k *= math.Max(1-float64(len(ops.Water.ConservationMeasures))*0.05, 0.7)
	}
	return k
}

// Facility applies FacilityMultiplier to every category of a product.
func Facility(ms model.Midpoints, f model.FacilityProfile, ops model.ProcessingOperations, referenceYear int) model.Midpoints {
	out := ms.Clone()
	for c, m := range out {
		out[c] = m.Scale(FacilityMultiplier(f, ops, c, referenceYear), "")
	}
	return out
}

// Recycling reduces solid waste by 10% per recycling program, to at most half.
func Recycling(ms model.Midpoints, programs int) model.Midpoints {
	out := ms.Clone()
	if m, ok := out[model.SolidWasteGeneration]; ok && programs > 0 {
		k := math.Max(1-0.1*float64(programs), 0.5)
		out[model.SolidWasteGeneration] = m.Scale(k, fmt.Sprintf("Recycling programs: %d", programs))
	}
	return out
}
