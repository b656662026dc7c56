package factors

import (
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/uncertainty"
)

type seedRecord struct {
	Category   string     `yaml:"category"`
	Facility   string     `yaml:"facility"`
	Crop       string     `yaml:"crop"`
	Product    string     `yaml:"product"`
	Country    string     `yaml:"country"`
	Impact     string     `yaml:"impact"`
	Value      float64    `yaml:"value"`
	Unit       string     `yaml:"unit"`
	Confidence string     `yaml:"confidence"`
	Source     string     `yaml:"source"`
	Year       int        `yaml:"year"`
	Range      [2]float64 `yaml:"range"`
	Pedigree   [5]int     `yaml:"pedigree"`
}

type seedFile struct {
	Factors []seedRecord `yaml:"factors"`
}

// Seeds returns the embedded production and processing factors.
func Seeds() ([]Factor, error) {
	var out []Factor
	for _, s := range []struct {
		path  string
		scope Scope
	}{
		{"seeds/production.yaml", ScopeProduction},
		{"seeds/processing.yaml", ScopeProcessing},
	} {
		fs, err := readSeed(s.path, s.scope)
		if err != nil {
			return nil, err
		}
		out = append(out, fs...)
	}
	return out, nil
}

// NewSeeded returns a repository loaded with the embedded factors.
func NewSeeded() (*Repository, error) {
	fs, err := Seeds()
	if err != nil {
		return nil, err
	}
	return New(fs...), nil
}

func readSeed(path string, scope Scope) ([]Factor, error) {
	raw, err := seedFS.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "factors: read seed %s", path)
	}
	var doc seedFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, eris.Wrapf(err, "factors: parse seed %s", path)
	}
	out := make([]Factor, 0, len(doc.Factors))
	for i, rec := range doc.Factors {
		f, err := rec.factor(scope)
		if err != nil {
			return nil, eris.Wrapf(err, "factors: seed %s entry %d", path, i)
		}
		out = append(out, f)
	}
	return out, nil
}

func (rec seedRecord) factor(scope Scope) (Factor, error) {
	group, item := rec.Category, rec.Crop
	if scope == ScopeProcessing {
		group, item = rec.Facility, rec.Product
	}
	fields := Fields{
		Scope:      scope,
		Group:      group,
		Country:    rec.Country,
		Item:       item,
		Impact:     rec.Impact,
		Value:      rec.Value,
		Unit:       rec.Unit,
		Confidence: rec.Confidence,
		Source:     rec.Source,
		Year:       rec.Year,
		Range:      uncertainty.Range{Low: rec.Range[0], High: rec.Range[1]},
		Pedigree:   uncertainty.NewPedigree(rec.Pedigree[0], rec.Pedigree[1], rec.Pedigree[2], rec.Pedigree[3], rec.Pedigree[4]),
	}
	return fields.Build()
}

// Fields are the loosely-typed parts of a factor as read from a file.
type Fields struct {
	Scope      Scope
	Group      string
	Country    string
	Item       string
	Impact     string
	Value      float64
	Unit       string
	Confidence string
	Source     string
	Year       int
	Range      uncertainty.Range
	Pedigree   uncertainty.Pedigree
}

// Build validates the fields and returns a Factor. Group must be a known
// food category (production) or facility type (processing).
func (f Fields) Build() (Factor, error) {
	scope := f.Scope
	if scope == "" {
		scope = ScopeProduction
	}
	country, err := model.ParseCountry(f.Country)
	if err != nil {
		return Factor{}, err
	}
	impact, err := model.ParseCategory(f.Impact)
	if err != nil {
		return Factor{}, err
	}
	group := f.Group
	item := f.Item
	switch scope {
	case ScopeProduction:
		c, err := model.ParseFoodCategory(group)
		if err != nil {
			return Factor{}, err
		}
		group = string(c)
	case ScopeProcessing:
		ft, err := model.ParseFacilityType(group)
		if err != nil {
			return Factor{}, err
		}
		group = string(ft)
		if item != "" {
			pt, err := model.ParseProductType(item)
			if err != nil {
				return Factor{}, err
			}
			item = string(pt)
		}
	default:
		return Factor{}, eris.Errorf("factors: unknown scope %q", scope)
	}
	conf := model.ConfidenceMedium
	if f.Confidence != "" {
		if conf, err = model.ParseConfidenceLevel(f.Confidence); err != nil {
			return Factor{}, err
		}
	}
	if err := f.Pedigree.Validate(); err != nil {
		return Factor{}, err
	}
	if f.Value < 0 {
		return Factor{}, eris.Errorf("factors: negative value %g", f.Value)
	}
	unit := f.Unit
	if unit == "" {
		unit = impact.Unit()
	}
	return Factor{
		Scope:      scope,
		Group:      group,
		Country:    country,
		Item:       item,
		Impact:     impact,
		Value:      f.Value,
		Unit:       unit,
		Confidence: conf,
		Source:     f.Source,
		Year:       f.Year,
		Range:      f.Range.ClampLow(),
		Pedigree:   f.Pedigree,
	}, nil
}
