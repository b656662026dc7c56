package factors

import (
	"bytes"
	"embed"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/uncertainty"
)

//go:embed seeds/*.yaml
var seedFS embed.FS

type awareRule struct {
	Country  model.Country `yaml:"country"`
	Northern bool          `yaml:"northern"`
	Factor   float64       `yaml:"factor"`
}

type awareTable struct {
	Default    float64     `yaml:"default"`
	Production []awareRule `yaml:"production"`
	Processing []awareRule `yaml:"processing"`
}

type climateTable struct {
	MethaneFactor         float64              `yaml:"methane_emission_factor"`
	MethaneCategories     []model.FoodCategory `yaml:"methane_categories"`
	TropicalDecomposition float64              `yaml:"tropical_decomposition_factor"`
}

type countryTable struct {
	Default   float64                   `yaml:"default"`
	Countries map[model.Country]float64 `yaml:"countries"`
}

type overheadTable struct {
	Default    float64                        `yaml:"default"`
	Facilities map[model.FacilityType]float64 `yaml:"facilities"`
}

// EndpointDefinition aggregates midpoints into one damage category.
type EndpointDefinition struct {
	Category      model.EndpointCategory     `yaml:"category"`
	Unit          string                     `yaml:"unit"`
	Contributions map[model.Category]float64 `yaml:"contributions"`
	Range         [2]float64                 `yaml:"range"`
	Normalization float64                    `yaml:"normalization"`
	Regional      float64                    `yaml:"regional_adaptation"`
}

type sourceTable struct {
	Default float64                        `yaml:"default"`
	Sources map[model.EnergySource]float64 `yaml:"sources"`
}

type endpointTable struct {
	Production []EndpointDefinition `yaml:"production"`
	Processing []EndpointDefinition `yaml:"processing"`
}

// Intensity is a best/average/worst triple for one benchmark metric.
type Intensity struct {
	Best    float64 `yaml:"best"`
	Average float64 `yaml:"average"`
	Worst   float64 `yaml:"worst"`
}

// Benchmark is the reference performance of a facility class, per tonne.
type Benchmark struct {
	Facility model.FacilityType  `yaml:"facility"`
	Capacity model.CapacityRange `yaml:"capacity"`
	Country  model.Country       `yaml:"country"`
	Energy   Intensity           `yaml:"energy"`
	Water    Intensity           `yaml:"water"`
}

type weights map[model.EndpointCategory]float64

type tablesDoc struct {
	AWARE             awareTable                         `yaml:"aware"`
	Climate           climateTable                       `yaml:"climate"`
	Seasonal          map[model.SeasonalFactor]float64   `yaml:"seasonal"`
	Systems           map[model.ProductionSystem]float64 `yaml:"production_systems"`
	Grid              countryTable                       `yaml:"grid_emissions"`
	Overhead          overheadTable                      `yaml:"energy_overhead"`
	FacilityEnergy    sourceTable                        `yaml:"facility_energy"`
	Endpoints         endpointTable                      `yaml:"endpoints"`
	Weighting         map[model.WeightingMethod]weights  `yaml:"weighting"`
	ProcessingWeights weights                            `yaml:"processing_weights"`
	NormFallback      map[model.EndpointCategory]float64 `yaml:"normalization_fallback"`
	Benchmarks        []Benchmark                        `yaml:"benchmarks"`
}

// Tables is the immutable reference configuration handed to the pipeline.
// Build it with LoadTables; the zero value is not usable.
type Tables struct {
	doc tablesDoc
}

// LoadTables reads the embedded tables and, when overridePath is set,
// overlays the YAML file at that path. Maps merge key by key; lists in the
// override replace the embedded lists.
func LoadTables(overridePath string) (*Tables, error) {
	raw, err := seedFS.ReadFile("seeds/tables.yaml")
	if err != nil {
		return nil, eris.Wrap(err, "factors: read embedded tables")
	}
	var doc tablesDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, eris.Wrap(err, "factors: parse embedded tables")
	}
	if overridePath != "" {
		data, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, eris.Wrapf(err, "factors: read tables override %s", overridePath)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, eris.Wrapf(err, "factors: parse tables override %s", overridePath)
		}
	}
	t := &Tables{doc: doc}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustDefaultTables returns the embedded tables and panics if they are broken.
func MustDefaultTables() *Tables {
	t, err := LoadTables("")
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tables) validate() error {
	if t.doc.AWARE.Default <= 0 {
		return eris.New("factors: aware default must be positive")
	}
	if len(t.doc.Endpoints.Production) == 0 || len(t.doc.Endpoints.Processing) == 0 {
		return eris.New("factors: endpoint definitions missing")
	}
	for m, w := range t.doc.Weighting {
		var sum float64
		for _, v := range w {
			sum += v
		}
		if sum < 0.99 || sum > 1.01 {
			return eris.Errorf("factors: weighting %s sums to %.3f", m, sum)
		}
	}
	return nil
}

// AWARE returns the water-scarcity multiplier for a location.
func (t *Tables) AWARE(kind model.AssessmentKind, country model.Country, northern bool) float64 {
	rules := t.doc.AWARE.Production
	if kind == model.KindProcessing {
		rules = t.doc.AWARE.Processing
	}
	for _, r := range rules {
		if r.Country != country {
			continue
		}
		if r.Northern && !northern {
			continue
		}
		return r.Factor
	}
	return t.doc.AWARE.Default
}

// MethaneFactor is the climate multiplier on global warming for a food
// category, or 1 when the category is not methane-intensive.
func (t *Tables) MethaneFactor(c model.FoodCategory) float64 {
	for _, m := range t.doc.Climate.MethaneCategories {
		if m == c {
			return t.doc.Climate.MethaneFactor
		}
	}
	return 1
}

// TropicalDecomposition is the climate multiplier on soil degradation.
func (t *Tables) TropicalDecomposition() float64 {
	return t.doc.Climate.TropicalDecomposition
}

// Seasonal returns the multiplier for a season tag, 1 when untagged.
func (t *Tables) Seasonal(s model.SeasonalFactor) float64 {
	if v, ok := t.doc.Seasonal[s]; ok {
		return v
	}
	return 1
}

// SystemMultiplier returns the production-system multiplier, 1 when unlisted.
func (t *Tables) SystemMultiplier(p model.ProductionSystem) float64 {
	if v, ok := t.doc.Systems[p]; ok {
		return v
	}
	return 1
}

// GridFactor is kg CO2 per kWh of grid electricity.
func (t *Tables) GridFactor(c model.Country) float64 {
	if v, ok := t.doc.Grid.Countries[c]; ok {
		return v
	}
	return t.doc.Grid.Default
}

// EnergyOverhead is the facility-wide multiplier on step energy.
func (t *Tables) EnergyOverhead(f model.FacilityType) float64 {
	if v, ok := t.doc.Overhead.Facilities[f]; ok {
		return v
	}
	return t.doc.Overhead.Default
}

// ProcessEnergyFactor is kg CO2 per kWh of facility energy from a primary
// source. Grid electricity uses the country grid factor.
func (t *Tables) ProcessEnergyFactor(src model.EnergySource, c model.Country) float64 {
	if src == model.EnergyGrid {
		return t.GridFactor(c)
	}
	if v, ok := t.doc.FacilityEnergy.Sources[src]; ok {
		return v
	}
	return t.doc.FacilityEnergy.Default
}

// Endpoints returns the endpoint definitions for an assessment kind.
func (t *Tables) Endpoints(kind model.AssessmentKind) []EndpointDefinition {
	if kind == model.KindProcessing {
		return t.doc.Endpoints.Processing
	}
	return t.doc.Endpoints.Production
}

// Weights returns the endpoint weights of a method, falling back to equal weights.
func (t *Tables) Weights(m model.WeightingMethod) map[model.EndpointCategory]float64 {
	w, ok := t.doc.Weighting[m]
	if !ok {
		w = t.doc.Weighting[model.WeightingEqual]
	}
	return copyWeights(w)
}

// ProcessingWeights returns the fixed facility weighting.
func (t *Tables) ProcessingWeights() map[model.EndpointCategory]float64 {
	return copyWeights(t.doc.ProcessingWeights)
}

// NormalizationFallback is used when an endpoint carries no reference of its own.
func (t *Tables) NormalizationFallback(c model.EndpointCategory) float64 {
	return t.doc.NormFallback[c]
}

// Benchmark finds the reference for a facility class.
func (t *Tables) Benchmark(f model.FacilityType, c model.CapacityRange, country model.Country) (Benchmark, bool) {
	for _, b := range t.doc.Benchmarks {
		if b.Facility == f && b.Capacity == c && b.Country == country {
			return b, true
		}
	}
	return Benchmark{}, false
}

// RangeFor converts a definition's relative range into absolute bounds.
func (d EndpointDefinition) RangeFor(v float64) uncertainty.Range {
	return uncertainty.Relative(v, d.Range[0], d.Range[1])
}

func copyWeights(w weights) map[model.EndpointCategory]float64 {
	out := make(map[model.EndpointCategory]float64, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}
