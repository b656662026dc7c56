package characterize

import (
	"fmt"
	"strings"

	"github.com/sells-group/lca-cli/internal/inventory"
	"github.com/sells-group/lca-cli/internal/model"
)

// Mean species abundance loss by production system.
var msaLoss = map[model.ProductionSystem]float64{
	model.SystemIntensive:    0.30,
	model.SystemOrganic:      0.10,
	model.SystemAgroforestry: 0.05,
	model.SystemExtensive:    0.20,
}

const (
	defaultMSALoss      = 0.25
	erosionTPerHa       = 10.0
	socLossKgPerHa      = 500.0
	compactionKgPerHa   = 100.0
	nh3Volatilized      = 0.20
	nh3PerN             = 17.0 / 14.0
	nh3ToSO2            = 1.88
	noxPerLitre         = 0.02
	noxToSO2            = 0.70
	pm25PerDieselLitre  = 0.0001
	secondaryPM         = 1.2
	nmvocPerDieselLitre = 0.0005
	nmvocPerPetrolLitre = 0.002
	oilPerDieselLitre   = 0.85
	oilPerPetrolLitre   = 0.83
	marineShare         = 0.5
	nPerNitrate         = 14.0 / 62.0
	freshwaterPerNO3    = 0.01
)

// Production characterizes a farm inventory into absolute (whole-farm)
// midpoints. Every production category is present; categories the
// inventory cannot inform are zero.
func (c *Characterizer) Production(inv *inventory.Inventory, a *model.ProductionAssessment) model.Midpoints {
	ms := make(model.Midpoints)
	for _, cat := range model.ProductionCategories() {
		ms[cat] = zero(cat)
	}

	gw, sources := globalWarming(inv)
	ms[model.GlobalWarming] = relative(model.GlobalWarming, gw, 0.8, 1.2, baseQuality, sources)

	if w, ok := inv.Get(inventory.WaterUse, inventory.Resource); ok {
		ms[model.WaterConsumption] = relative(model.WaterConsumption, w.Quantity, 0.8, 1.2, baseQuality, w.Provenance)
	}
	if l, ok := inv.Get(inventory.LandOccupation, inventory.Resource); ok {
		ms[model.LandUse] = relative(model.LandUse, l.Quantity/10000, 0.8, 1.2, baseQuality, l.Provenance)
	}
	nitrate := inv.Quantity(inventory.Nitrate)
	if nitrate > 0 {
		ms[model.FreshwaterEutrophication] = relative(model.FreshwaterEutrophication, nitrate*freshwaterPerNO3, 0.8, 1.2, baseQuality,
			[]string{fmt.Sprintf("Nitrate leaching: %.2f kg NO3-", nitrate)})
	}

	if a.TotalAreaHa() > 0 {
		ms[model.BiodiversityLoss] = biodiversity(a)
	}
	if a.Practices != nil {
		ms[model.SoilDegradation] = soilDegradation(a.Practices.Soil, a.TotalAreaHa())
	}

	marine := nitrate * marineShare * nPerNitrate
	ms[model.MarineEutrophication] = relative(model.MarineEutrophication, marine, 0.5, 1.5, 0.65,
		sourceIf(marine > 0, "N runoff from nitrate leaching: %.1f kg N", marine))

	diesel := inv.Measure(inventory.DieselLitres)
	petrol := inv.Measure(inventory.PetrolLitres)

	ms[model.TerrestrialAcidification] = acidification(a.Practices, diesel+petrol)

	pm := diesel * pm25PerDieselLitre * secondaryPM
	ms[model.ParticulateMatter] = relative(model.ParticulateMatter, pm, 0.5, 1.5, 0.6,
		sourceIf(pm > 0, "PM2.5 from diesel: %.3f kg", pm))

	nmvoc := diesel*nmvocPerDieselLitre + petrol*nmvocPerPetrolLitre
	ms[model.PhotochemicalOxidation] = relative(model.PhotochemicalOxidation, nmvoc, 0.5, 1.5, 0.65,
		sourceIf(nmvoc > 0, "NMVOC from fuel: %.3f kg", nmvoc))

	oil := diesel*oilPerDieselLitre + petrol*oilPerPetrolLitre
	ms[model.FossilDepletion] = relative(model.FossilDepletion, oil, 0.9, 1.1, 0.85,
		sourceIf(oil > 0, "Fossil fuel depletion: %.1f kg oil-eq", oil))

	ms[model.MineralDepletion] = mineralDepletion(inv)
	return ms
}

func sourceIf(ok bool, format string, args ...any) []string {
	if !ok {
		return nil
	}
	return []string{fmt.Sprintf(format, args...)}
}

func conservationDiscount(p *model.ManagementPractices) float64 {
	if p == nil {
		return 1.0
	}
	switch n := len(p.Soil.ConservationPractices); {
	case n > 2:
		return 0.8
	case n > 0:
		return 0.9
	default:
		return 1.0
	}
}

func biodiversity(a *model.ProductionAssessment) model.Midpoint {
	discount := conservationDiscount(a.Practices)
	var total float64
	var sources []string
	for _, f := range a.Foods {
		if f.Area() <= 0 {
			continue
		}
		loss, ok := msaLoss[f.ProductionSystem]
		if !ok {
			loss = defaultMSALoss
		}
		v := loss * discount * f.Area() * 10000
		total += v
		system := f.ProductionSystem
		if system == "" {
			system = model.SystemConventional
		}
		sources = append(sources, fmt.Sprintf("%s: %.0f m2*yr (production system: %s)", f.Name, v, system))
	}
	return relative(model.BiodiversityLoss, total, 0.5, 1.5, 0.6, sources)
}

func erosionFactor(practices []string) float64 {
	has := func(subs ...string) bool {
		for _, p := range practices {
			lp := strings.ToLower(p)
			for _, s := range subs {
				if strings.Contains(lp, s) {
					return true
				}
			}
		}
		return false
	}
	switch {
	case has("no-till", "minimum"):
		return 0.3
	case has("contour", "terrac"):
		return 0.5
	case len(practices) > 0:
		return 0.7
	default:
		return 1.0
	}
}

func soilDegradation(s model.SoilManagement, area float64) model.Midpoint {
	cf := erosionFactor(s.ConservationPractices)
	erosion := erosionTPerHa * area * cf * 1000
	total := erosion
	sources := []string{fmt.Sprintf("Soil erosion: %.1f t/ha x %.1f ha x %.2f conservation factor = %.0f kg",
		erosionTPerHa, area, cf, erosion)}
	if s.UsesCompost {
		sources = append(sources, "Compost use: reduces soil degradation")
	} else {
		soc := area * socLossKgPerHa
		total += soc
		sources = append(sources, fmt.Sprintf("Soil organic carbon loss: %.0f kg", soc))
	}
	total += area * compactionKgPerHa
	return relative(model.SoilDegradation, total, 0.6, 1.4, 0.7, sources)
}

// AppliedNitrogenPerHa sums rate x N fraction x applications over every
// fertilizer application; it is not scaled by area.
func AppliedNitrogenPerHa(fp model.FertilizationPractice) float64 {
	if !fp.UsesFertilizers {
		return 0
	}
	var n float64
	for _, app := range fp.Applications {
		n += app.RateKgHa * inventory.NitrogenFraction(app.Type, app.NPKRatio) * float64(app.Applications)
	}
	return n
}

func acidification(p *model.ManagementPractices, fuelLitres float64) model.Midpoint {
	var so2 float64
	var sources []string
	if p != nil {
		if n := AppliedNitrogenPerHa(p.Fertilization); n > 0 {
			nh3 := n * nh3Volatilized * nh3PerN
			eq := nh3 * nh3ToSO2
			so2 += eq
			sources = append(sources, fmt.Sprintf("NH3 volatilization: %.1f kg NH3 (%.1f kg SO2-eq)", nh3, eq))
		}
	}
	if fuelLitres > 0 {
		nox := fuelLitres * noxPerLitre
		eq := nox * noxToSO2
		so2 += eq
		sources = append(sources, fmt.Sprintf("NOx from fuel: %.1f kg NOx (%.1f kg SO2-eq)", nox, eq))
	}
	return relative(model.TerrestrialAcidification, so2, 0.6, 1.4, 0.7, sources)
}

func mineralDepletion(inv *inventory.Inventory) model.Midpoint {
	var fe float64
	var sources []string
	for _, sub := range []string{inventory.PhosphateRock, inventory.Potash} {
		if f, ok := inv.Get(sub, inventory.Resource); ok {
			fe += f.Quantity
			sources = append(sources, fmt.Sprintf("%s: %.1f %s", f.Source(), f.Quantity, f.Unit))
		}
	}
	quality := 0.7
	if fe > 0 {
		quality = 0.75
	}
	return relative(model.MineralDepletion, fe, 0.7, 1.3, quality, sources)
}
