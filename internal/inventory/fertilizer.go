package inventory

import (
	"strconv"
	"strings"
)

type fertilizerKind int

const (
	fertOther fertilizerKind = iota
	fertUrea
	fertDAP
	fertNPK
	fertAmmoniumSulfate
	fertCAN
)

var fertilizerNames = map[string]fertilizerKind{
	"urea":                           fertUrea,
	"dap":                            fertDAP,
	"diammonium phosphate (dap)":     fertDAP,
	"diammonium phosphate":           fertDAP,
	"npk":                            fertNPK,
	"npk compound":                   fertNPK,
	"ammonium sulfate":               fertAmmoniumSulfate,
	"can":                            fertCAN,
	"calcium ammonium nitrate":       fertCAN,
	"calcium ammonium nitrate (can)": fertCAN,
}

var nitrogenFractions = map[fertilizerKind]float64{
	fertUrea:            0.46,
	fertDAP:             0.18,
	fertNPK:             0.15,
	fertAmmoniumSulfate: 0.21,
	fertCAN:             0.27,
	fertOther:           0.10,
}

// Production and transport emissions, kg CO2 per kg product.
var productionCO2 = map[fertilizerKind]float64{
	fertUrea: 1.2,
	fertNPK:  1.5,
}

func classifyFertilizer(typ string) fertilizerKind {
	return fertilizerNames[strings.ToLower(strings.TrimSpace(typ))]
}

// npkParts parses an "N-P-K" ratio such as "15-15-15".
func npkParts(ratio string) ([3]float64, bool) {
	var out [3]float64
	parts := strings.Split(strings.TrimSpace(ratio), "-")
	if len(parts) != 3 {
		return out, false
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 {
			return out, false
		}
		out[i] = v
	}
	return out, true
}

// NitrogenFraction is the mass fraction of N in a fertilizer product. NPK
// blends use the first component of their ratio when one is given.
func NitrogenFraction(typ, npkRatio string) float64 {
	kind := classifyFertilizer(typ)
	if kind == fertNPK {
		if parts, ok := npkParts(npkRatio); ok {
			return parts[0] / 100
		}
	}
	return nitrogenFractions[kind]
}

// ProductionFactor is kg CO2 emitted producing one kg of the fertilizer.
func ProductionFactor(typ string) float64 {
	if v, ok := productionCO2[classifyFertilizer(typ)]; ok {
		return v
	}
	return 1.0
}

func isNPK(typ string) bool {
	return classifyFertilizer(typ) == fertNPK
}
