// Package factors holds impact factors and the reference tables the
// assessment pipeline reads: a keyed factor repository with hierarchical
// fallback, built-in default estimates, and embedded seed data.
package factors

import (
	"fmt"
	"strings"

	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/uncertainty"
)

// Scope separates farm factors (per kg) from facility factors (per tonne).
type Scope string

const (
	ScopeProduction Scope = "production"
	ScopeProcessing Scope = "processing"
)

// DefaultSource marks factors that came from the built-in default table.
const DefaultSource = "Default estimate - high uncertainty"

// Factor is one characterized impact per unit of activity. For production
// factors Group is the food category and Item the crop; for processing
// factors Group is the facility type and Item the product type.
type Factor struct {
	Scope      Scope                 `json:"scope" yaml:"scope"`
	Group      string                `json:"group" yaml:"group"`
	Country    model.Country         `json:"country" yaml:"country"`
	Item       string                `json:"item,omitempty" yaml:"item,omitempty"`
	Impact     model.Category        `json:"impact" yaml:"impact"`
	Value      float64               `json:"value" yaml:"value"`
	Unit       string                `json:"unit" yaml:"unit"`
	Confidence model.ConfidenceLevel `json:"confidence" yaml:"confidence"`
	Source     string                `json:"source" yaml:"source"`
	Year       int                   `json:"year" yaml:"year"`
	Range      uncertainty.Range     `json:"uncertainty_range" yaml:"uncertainty_range"`
	Pedigree   uncertainty.Pedigree  `json:"pedigree" yaml:"pedigree"`
}

// Key returns the repository key of the factor.
func (f Factor) Key() Key {
	return NewKey(f.Scope, f.Group, f.Country, f.Item, f.Impact)
}

// IsDefault reports whether the factor is a built-in default estimate.
func (f Factor) IsDefault() bool {
	return strings.Contains(f.Source, "Default estimate")
}

// Key identifies a factor. Group and Item compare case-insensitively; an
// empty Item matches "any crop" (or "any product").
type Key struct {
	Scope   Scope
	Group   string
	Country model.Country
	Item    string
	Impact  model.Category
}

// NewKey builds a normalized key.
func NewKey(scope Scope, group string, country model.Country, item string, impact model.Category) Key {
	return Key{
		Scope:   scope,
		Group:   normalize(group),
		Country: model.Country(normalize(string(country))),
		Item:    normalize(item),
		Impact:  model.Category(normalize(string(impact))),
	}
}

func (k Key) String() string {
	if k.Item == "" {
		return fmt.Sprintf("%s_%s_%s_%s", k.Scope, k.Group, k.Country, k.Impact)
	}
	return fmt.Sprintf("%s_%s_%s_%s_%s", k.Scope, k.Group, k.Country, k.Item, k.Impact)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Level records which rung of the lookup hierarchy produced a factor.
type Level int

const (
	LevelCountryItem Level = iota + 1
	LevelCountry
	LevelGlobalItem
	LevelGlobal
	LevelDefault
)

func (l Level) String() string {
	switch l {
	case LevelCountryItem:
		return "country+item"
	case LevelCountry:
		return "country"
	case LevelGlobalItem:
		return "global+item"
	case LevelGlobal:
		return "global"
	case LevelDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of a hierarchical lookup.
type Resolution struct {
	Factor Factor
	Level  Level
}

// IsDefault reports whether every hierarchy level missed.
func (r Resolution) IsDefault() bool {
	return r.Level == LevelDefault
}
