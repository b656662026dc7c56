package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/lca-cli/internal/model"
)

var xlsxSheets = []struct {
	name   string
	header []string
}{
	{"summary", []string{"run_id", "subject", "kind", "country", "single_score", "unit", "low", "high", "confidence"}},
	{"midpoints", []string{"run_id", "subject", "category", "value", "unit", "low", "high", "quality"}},
	{"endpoints", []string{"run_id", "subject", "endpoint", "value", "unit"}},
	{"breakdown", []string{"run_id", "subject", "item", "category", "value", "unit"}},
}

// WriteXLSX saves results to a workbook with summary, midpoint, endpoint
// and breakdown sheets.
func WriteXLSX(path string, rs []*model.Results) error {
	file := xlsx.NewFile()
	sheets := make(map[string]*xlsx.Sheet, len(xlsxSheets))
	for _, s := range xlsxSheets {
		sheet, err := file.AddSheet(s.name)
		if err != nil {
			return eris.Wrapf(err, "xlsx: add sheet %s", s.name)
		}
		addStrings(sheet.AddRow(), s.header...)
		sheets[s.name] = sheet
	}

	for _, r := range rs {
		row := sheets["summary"].AddRow()
		addStrings(row, r.RunID, r.Subject, string(r.Kind), string(r.Country))
		row.AddCell().SetFloat(r.SingleScore.Value)
		addStrings(row, r.SingleScore.Unit)
		row.AddCell().SetFloat(r.SingleScore.Range.Low)
		row.AddCell().SetFloat(r.SingleScore.Range.High)
		addStrings(row, string(r.DataQuality.Confidence))

		for _, c := range midpointOrder(r) {
			m := r.Midpoints[c]
			row := sheets["midpoints"].AddRow()
			addStrings(row, r.RunID, r.Subject, string(c))
			row.AddCell().SetFloat(m.Value)
			addStrings(row, m.Unit)
			row.AddCell().SetFloat(m.Range.Low)
			row.AddCell().SetFloat(m.Range.High)
			row.AddCell().SetFloat(m.Quality)
		}

		for _, e := range model.EndpointCategories() {
			ep, ok := r.Endpoints[e]
			if !ok {
				continue
			}
			row := sheets["endpoints"].AddRow()
			addStrings(row, r.RunID, r.Subject, string(e))
			row.AddCell().SetFloat(ep.Value)
			addStrings(row, ep.Unit)
		}

		for _, item := range sortedItems(r.Breakdown) {
			ms := r.Breakdown[item]
			for _, c := range orderedCategories(ms, baseCategories(r.Kind)) {
				row := sheets["breakdown"].AddRow()
				addStrings(row, r.RunID, r.Subject, item, string(c))
				row.AddCell().SetFloat(ms[c].Value)
				addStrings(row, ms[c].Unit)
			}
		}
	}

	if err := file.Save(path); err != nil {
		return eris.Wrap(err, "xlsx: save")
	}
	return nil
}

func addStrings(row *xlsx.Row, vals ...string) {
	for _, v := range vals {
		row.AddCell().SetString(v)
	}
}
