// Package report renders assessment results as JSON, YAML, a text table or
// an XLSX workbook.
package report

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/lca-cli/internal/model"
)

// Format selects an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
	FormatXLSX  Format = "xlsx"
)

// ParseFormat matches s case-insensitively; "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "table":
		return FormatTable, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", eris.Errorf("report: unknown format %q", s)
	}
}

// Write encodes results to w. A single result is written as one document;
// several are written as a list. XLSX needs a file path, see WriteXLSX.
func Write(w io.Writer, f Format, rs []*model.Results) error {
	var doc any = rs
	if len(rs) == 1 {
		doc = rs[0]
	}
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(doc), "report: encode json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return eris.Wrap(err, "report: encode yaml")
		}
		return eris.Wrap(enc.Close(), "report: encode yaml")
	case FormatTable:
		return WriteTable(w, rs)
	case FormatXLSX:
		return eris.New("report: xlsx output requires --out")
	default:
		return eris.Errorf("report: unknown format %q", f)
	}
}

// midpointOrder lists the categories present in r, report order first and
// any others after, sorted.
func midpointOrder(r *model.Results) []model.Category {
	return orderedCategories(r.Midpoints, baseCategories(r.Kind))
}

func baseCategories(k model.AssessmentKind) []model.Category {
	if k == model.KindProcessing {
		return model.ProcessingCategories()
	}
	return model.ProductionCategories()
}

func orderedCategories(ms model.Midpoints, base []model.Category) []model.Category {
	seen := make(map[model.Category]bool, len(ms))
	out := make([]model.Category, 0, len(ms))
	for _, c := range base {
		if _, ok := ms[c]; ok {
			out = append(out, c)
			seen[c] = true
		}
	}
	var rest []model.Category
	for c := range ms {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(out, rest...)
}

func sortedItems(b map[string]model.Midpoints) []string {
	out := make([]string, 0, len(b))
	for k := range b {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
