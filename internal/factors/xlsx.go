package factors

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions selects the sheet holding factor rows.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX reads factors from a workbook whose first row is a header with
// the same column names as the CSV format. Blank rows are skipped.
func ReadXLSX(path string, opts XLSXOptions) ([]Factor, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, nil
	}

	header := rowToStrings(sheet.Rows[0])
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"category", "country", "impact", "value", "low", "high"} {
		if _, ok := index[required]; !ok {
			return nil, eris.Errorf("xlsx: missing column %q", required)
		}
	}

	var out []Factor
	for i, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if isBlank(cells) {
			continue
		}
		cell := func(name string) string {
			j, ok := index[name]
			if !ok || j >= len(cells) {
				return ""
			}
			return cells[j]
		}
		rec := Record{
			Scope:                    cell("scope"),
			Category:                 cell("category"),
			Country:                  cell("country"),
			Crop:                     cell("crop"),
			Impact:                   cell("impact"),
			Value:                    cell("value"),
			Unit:                     cell("unit"),
			Confidence:               cell("confidence"),
			Source:                   cell("source"),
			Year:                     cell("year"),
			Low:                      cell("low"),
			High:                     cell("high"),
			Reliability:              cell("reliability"),
			Completeness:             cell("completeness"),
			TemporalCorrelation:      cell("temporal"),
			GeographicalCorrelation:  cell("geographical"),
			TechnologicalCorrelation: cell("technological"),
		}
		fac, err := rec.Factor()
		if err != nil {
			return nil, eris.Wrapf(err, "xlsx: row %d", i+2)
		}
		out = append(out, fac)
	}
	return out, nil
}

// WriteXLSX saves factors to a single-sheet workbook.
func WriteXLSX(path string, fs []Factor) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("factors")
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}
	head := sheet.AddRow()
	for _, c := range Columns {
		head.AddCell().SetString(c)
	}
	for _, f := range fs {
		rec := RecordOf(f)
		row := sheet.AddRow()
		for _, v := range []string{
			rec.Scope, rec.Category, rec.Country, rec.Crop, rec.Impact,
		} {
			row.AddCell().SetString(v)
		}
		row.AddCell().SetFloat(f.Value)
		for _, v := range []string{rec.Unit, rec.Confidence, rec.Source} {
			row.AddCell().SetString(v)
		}
		row.AddCell().SetInt(f.Year)
		row.AddCell().SetFloat(f.Range.Low)
		row.AddCell().SetFloat(f.Range.High)
		for _, v := range []int{
			f.Pedigree.Reliability, f.Pedigree.Completeness, f.Pedigree.TemporalCorrelation,
			f.Pedigree.GeographicalCorrelation, f.Pedigree.TechnologicalCorrelation,
		} {
			row.AddCell().SetInt(v)
		}
	}
	if err := file.Save(path); err != nil {
		return eris.Wrap(err, "xlsx: save")
	}
	return nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
