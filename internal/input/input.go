// Package input parses assessment documents (JSON or YAML) into validated
// domain models. The assessment kind is detected from marker keys.
package input

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/lca-cli/internal/assess"
	"github.com/sells-group/lca-cli/internal/model"
)

// Format is the encoding of an input document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

var (
	processingMarkers    = []string{"facility_profile", "processing_operations", "processed_products"}
	comprehensiveMarkers = []string{"farm_profile", "management_practices"}
)

// DetectKind classifies a JSON document by its top-level marker keys.
func DetectKind(data []byte) model.AssessmentKind {
	has := func(keys []string) bool {
		for _, k := range keys {
			if gjson.GetBytes(data, k).Exists() {
				return true
			}
		}
		return false
	}
	switch {
	case has(processingMarkers):
		return model.KindProcessing
	case has(comprehensiveMarkers):
		return model.KindComprehensive
	default:
		return model.KindSimple
	}
}

// Document is a parsed assessment of one of the three kinds. Warnings
// holds implausible but accepted input.
type Document struct {
	Kind       model.AssessmentKind
	Production *model.ProductionAssessment
	Processing *model.ProcessingAssessment
	Warnings   []string
}

// Override applies weighting and normalization choices made outside the
// document. Empty values keep the document's own.
func (d *Document) Override(w model.WeightingMethod, n model.NormalizationMethod) {
	switch {
	case d.Production != nil:
		d.Production.Methodology = d.Production.Methodology.WithOverrides(w, n)
	case d.Processing != nil:
		d.Processing.Methodology = d.Processing.Methodology.WithOverrides(w, n)
	}
}

// Activity wraps the document for the assessment engine.
func (d *Document) Activity() assess.Assessable {
	if d.Processing != nil {
		return assess.NewProcessing(d.Processing, d.Warnings...)
	}
	return assess.NewProduction(d.Production, d.Warnings...)
}

// ReadFile reads and parses the document at path. A path of "-" reads
// standard input as JSON.
func ReadFile(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "input: read")
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "input: read %s", path)
	}

	doc, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, eris.Wrapf(err, "input: parse %s", path)
	}
	zap.L().Debug("input: parsed",
		zap.String("path", path),
		zap.String("kind", string(doc.Kind)),
		zap.Int("warnings", len(doc.Warnings)),
	)
	return doc, nil
}

// Parse decodes and validates one document.
func Parse(data []byte, f Format) (*Document, error) {
	if f == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}
	if !gjson.ValidBytes(data) {
		return nil, eris.Wrap(model.NewParseError("document", "invalid JSON document"), "input: decode")
	}

	switch kind := DetectKind(data); kind {
	case model.KindProcessing:
		a, warnings, err := parseProcessing(data)
		if err != nil {
			return nil, err
		}
		return &Document{Kind: kind, Processing: a, Warnings: warnings}, nil
	default:
		a, warnings, err := parseProduction(data, kind)
		if err != nil {
			return nil, err
		}
		return &Document{Kind: kind, Production: a, Warnings: warnings}, nil
	}
}

// yamlToJSON re-encodes a YAML document so one decoding path serves both
// formats.
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, eris.Wrap(model.NewParseError("document", err.Error()), "input: decode yaml")
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, eris.Wrap(err, "input: re-encode yaml")
	}
	return out, nil
}

// decodeField unmarshals the raw JSON at key into dst. A missing key
// leaves dst untouched, so dst may carry defaults.
func decodeField(data []byte, key string, dst any) error {
	r := gjson.GetBytes(data, key)
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	if err := json.Unmarshal([]byte(r.Raw), dst); err != nil {
		return eris.Wrap(model.NewParseError(key, "invalid "+key+": "+err.Error()), "input: decode")
	}
	return nil
}

// parseMethodology overlays a document methodology block on a preset and
// validates its enum fields.
func parseMethodology(data []byte, preset model.Methodology) (model.Methodology, error) {
	m := preset
	if err := decodeField(data, "methodology", &m); err != nil {
		return m, err
	}
	w, err := model.ParseWeightingMethod(string(m.WeightingMethod))
	if err != nil {
		return m, eris.Wrap(err, "input: methodology")
	}
	n, err := model.ParseNormalizationMethod(string(m.NormalizationMethod))
	if err != nil {
		return m, eris.Wrap(err, "input: methodology")
	}
	m.WeightingMethod, m.NormalizationMethod = w, n
	return m, nil
}

func requireString(data []byte, key string) (string, error) {
	r := gjson.GetBytes(data, key)
	if !r.Exists() || r.Type != gjson.String {
		return "", eris.Wrap(model.NewParseError(key, "missing "+key), "input: decode")
	}
	return r.String(), nil
}
