package factors

import (
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/lca-cli/internal/model"
)

// Repository is a keyed set of impact factors. Load it fully before sharing
// it; lookups never mutate it, so concurrent readers are safe.
type Repository struct {
	factors map[Key]Factor
}

// New returns a repository holding fs.
func New(fs ...Factor) *Repository {
	r := &Repository{factors: make(map[Key]Factor, len(fs))}
	r.Load(fs)
	return r
}

// Load inserts factors by key. A later factor with the same key replaces an
// earlier one. It returns the repository size after loading.
func (r *Repository) Load(fs []Factor) int {
	for _, f := range fs {
		r.factors[f.Key()] = f
	}
	zap.L().Debug("factors: loaded",
		zap.Int("incoming", len(fs)),
		zap.Int("total", len(r.factors)),
	)
	return len(r.factors)
}

// Len returns the number of distinct factors.
func (r *Repository) Len() int {
	return len(r.factors)
}

// Lookup matches a key exactly.
func (r *Repository) Lookup(k Key) (Factor, bool) {
	f, ok := r.factors[k]
	return f, ok
}

// Resolve finds a production factor. It tries country+crop, country,
// Global+crop and Global in that order, then the built-in default table.
func (r *Repository) Resolve(category model.FoodCategory, country model.Country, crop string, impact model.Category) Resolution {
	group := string(category)
	steps := []struct {
		country model.Country
		item    string
		level   Level
	}{
		{country, crop, LevelCountryItem},
		{country, "", LevelCountry},
		{model.CountryGlobal, crop, LevelGlobalItem},
		{model.CountryGlobal, "", LevelGlobal},
	}
	for _, s := range steps {
		if s.level == LevelCountryItem || s.level == LevelGlobalItem {
			if normalize(crop) == "" {
				continue
			}
		}
		if f, ok := r.Lookup(NewKey(ScopeProduction, group, s.country, s.item, impact)); ok {
			return Resolution{Factor: f, Level: s.level}
		}
	}
	v := ProductionDefault(category, impact)
	return Resolution{
		Factor: defaultFactor(ScopeProduction, group, country, crop, impact, v),
		Level:  LevelDefault,
	}
}

// ResolveProcessing finds a per-tonne facility factor: country first, then
// Global, then the built-in processing defaults.
func (r *Repository) ResolveProcessing(facility model.FacilityType, product model.ProductType, country model.Country, impact model.Category) Resolution {
	group, item := string(facility), string(product)
	if f, ok := r.Lookup(NewKey(ScopeProcessing, group, country, item, impact)); ok {
		return Resolution{Factor: f, Level: LevelCountryItem}
	}
	if f, ok := r.Lookup(NewKey(ScopeProcessing, group, model.CountryGlobal, item, impact)); ok {
		return Resolution{Factor: f, Level: LevelGlobalItem}
	}
	v := ProcessingDefault(facility, product, impact)
	return Resolution{
		Factor: defaultFactor(ScopeProcessing, group, country, item, impact, v),
		Level:  LevelDefault,
	}
}

// Filter selects factors for listing and export.
type Filter struct {
	Scope   Scope
	Country model.Country
	Group   string
}

// All returns the factors matching f, sorted by key.
func (r *Repository) All(f Filter) []Factor {
	var out []Factor
	for _, fac := range r.factors {
		if f.Scope != "" && fac.Scope != f.Scope {
			continue
		}
		if f.Country != "" && normalize(string(fac.Country)) != normalize(string(f.Country)) {
			continue
		}
		if f.Group != "" && normalize(fac.Group) != normalize(f.Group) {
			continue
		}
		out = append(out, fac)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key().String() < out[j].Key().String()
	})
	return out
}
