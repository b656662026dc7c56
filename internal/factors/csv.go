package factors

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/spf13/cast"

	"github.com/sells-group/lca-cli/internal/uncertainty"
)

// Record is the flat, string-typed row layout shared by the CSV and XLSX
// formats. Scope may be omitted and defaults to production; for processing
// rows Category holds the facility type and Crop the product type.
type Record struct {
	Scope                    string `csv:"scope,omitempty"`
	Category                 string `csv:"category"`
	Country                  string `csv:"country"`
	Crop                     string `csv:"crop"`
	Impact                   string `csv:"impact"`
	Value                    string `csv:"value"`
	Unit                     string `csv:"unit"`
	Confidence               string `csv:"confidence"`
	Source                   string `csv:"source"`
	Year                     string `csv:"year"`
	Low                      string `csv:"low"`
	High                     string `csv:"high"`
	Reliability              string `csv:"reliability"`
	Completeness             string `csv:"completeness"`
	TemporalCorrelation      string `csv:"temporal"`
	GeographicalCorrelation  string `csv:"geographical"`
	TechnologicalCorrelation string `csv:"technological"`
}

// Columns lists the header in file order.
var Columns = []string{
	"scope", "category", "country", "crop", "impact", "value", "unit", "confidence", "source",
	"year", "low", "high", "reliability", "completeness", "temporal", "geographical", "technological",
}

// pedigreeAxis parses one pedigree cell. Blank or malformed cells score 5.
func pedigreeAxis(s string) int {
	v, err := cast.ToIntE(strings.TrimSpace(s))
	if err != nil || v < 1 || v > 5 {
		return 5
	}
	return v
}

// Factor converts the row into a validated Factor.
func (r Record) Factor() (Factor, error) {
	value, err := cast.ToFloat64E(strings.TrimSpace(r.Value))
	if err != nil {
		return Factor{}, eris.Wrapf(err, "factors: value %q", r.Value)
	}
	low, err := cast.ToFloat64E(strings.TrimSpace(r.Low))
	if err != nil {
		return Factor{}, eris.Wrapf(err, "factors: low %q", r.Low)
	}
	high, err := cast.ToFloat64E(strings.TrimSpace(r.High))
	if err != nil {
		return Factor{}, eris.Wrapf(err, "factors: high %q", r.High)
	}
	year := defaultYear
	if strings.TrimSpace(r.Year) != "" {
		if year, err = cast.ToIntE(strings.TrimSpace(r.Year)); err != nil {
			return Factor{}, eris.Wrapf(err, "factors: year %q", r.Year)
		}
	}
	return Fields{
		Scope:      Scope(strings.ToLower(strings.TrimSpace(r.Scope))),
		Group:      r.Category,
		Country:    r.Country,
		Item:       strings.TrimSpace(r.Crop),
		Impact:     r.Impact,
		Value:      value,
		Unit:       r.Unit,
		Confidence: r.Confidence,
		Source:     r.Source,
		Year:       year,
		Range:      uncertainty.Range{Low: low, High: high},
		Pedigree: uncertainty.NewPedigree(
			pedigreeAxis(r.Reliability),
			pedigreeAxis(r.Completeness),
			pedigreeAxis(r.TemporalCorrelation),
			pedigreeAxis(r.GeographicalCorrelation),
			pedigreeAxis(r.TechnologicalCorrelation),
		),
	}.Build()
}

// RecordOf flattens a factor for export.
func RecordOf(f Factor) Record {
	return Record{
		Scope:                    string(f.Scope),
		Category:                 f.Group,
		Country:                  string(f.Country),
		Crop:                     f.Item,
		Impact:                   string(f.Impact),
		Value:                    cast.ToString(f.Value),
		Unit:                     f.Unit,
		Confidence:               string(f.Confidence),
		Source:                   f.Source,
		Year:                     cast.ToString(f.Year),
		Low:                      cast.ToString(f.Range.Low),
		High:                     cast.ToString(f.Range.High),
		Reliability:              cast.ToString(f.Pedigree.Reliability),
		Completeness:             cast.ToString(f.Pedigree.Completeness),
		TemporalCorrelation:      cast.ToString(f.Pedigree.TemporalCorrelation),
		GeographicalCorrelation:  cast.ToString(f.Pedigree.GeographicalCorrelation),
		TechnologicalCorrelation: cast.ToString(f.Pedigree.TechnologicalCorrelation),
	}
}

// ReadCSV decodes factors from a CSV stream with a header row. The first
// invalid row aborts the read; the error names its line.
func ReadCSV(ctx context.Context, r io.Reader) ([]Factor, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, eris.Wrap(err, "csv: read header")
	}

	var out []Factor
	for line := 2; ; line++ {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "csv: context cancelled")
		}
		var rec Record
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrapf(err, "csv: decode line %d", line)
		}
		f, err := rec.Factor()
		if err != nil {
			return nil, eris.Wrapf(err, "csv: line %d", line)
		}
		out = append(out, f)
	}
	return out, nil
}

// WriteCSV encodes factors with a header row.
func WriteCSV(w io.Writer, fs []Factor) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if len(fs) == 0 {
		if err := enc.EncodeHeader(Record{}); err != nil {
			return eris.Wrap(err, "csv: write header")
		}
	}
	for _, f := range fs {
		if err := enc.Encode(RecordOf(f)); err != nil {
			return eris.Wrap(err, "csv: write row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "csv: flush")
}
