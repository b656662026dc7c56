package factors

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/uncertainty"
)

const sampleCSV = `category,country,crop,impact,value,unit,confidence,source,year,low,high,reliability,completeness,temporal,geographical,technological
Cereals,Ghana,Sorghum,Global warming,0.55,kg CO2-eq,Medium,Field survey 2024,2024,0.4,0.7,2,3,,x,2
Roots,Nigeria,,Water consumption,0.5,m3,High,Basin study,2023,0.4,0.6,1,1,1,1,1
`

func TestReadCSV(t *testing.T) {
	t.Parallel()

	fs, err := ReadCSV(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, fs, 2)

	assert.Equal(t, ScopeProduction, fs[0].Scope)
	assert.Equal(t, "Cereals", fs[0].Group)
	assert.Equal(t, "Sorghum", fs[0].Item)
	assert.Equal(t, model.GlobalWarming, fs[0].Impact)
	assert.InDelta(t, 0.55, fs[0].Value, 1e-12)
	assert.Equal(t, uncertainty.NewPedigree(2, 3, 5, 5, 2), fs[0].Pedigree, "blank and malformed axes score 5")

	assert.Empty(t, fs[1].Item)
	assert.Equal(t, model.ConfidenceHigh, fs[1].Confidence)
	assert.Equal(t, 2023, fs[1].Year)
}

func TestReadCSV_Errors(t *testing.T) {
	t.Parallel()

	header := "category,country,crop,impact,value,unit,confidence,source,year,low,high\n"
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"unknown country", "Cereals,Togo,,Global warming,1,u,High,s,2024,0,2\n", "unknown country: Togo"},
		{"unknown category", "Candy,Ghana,,Global warming,1,u,High,s,2024,0,2\n", "unknown food category: Candy"},
		{"unknown impact", "Cereals,Ghana,,Noise,1,u,High,s,2024,0,2\n", "unknown impact category: Noise"},
		{"bad value", "Cereals,Ghana,,Global warming,abc,u,High,s,2024,0,2\n", "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadCSV(context.Background(), strings.NewReader(header+tt.row))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadCSV_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadCSV(ctx, strings.NewReader(sampleCSV))
	assert.Error(t, err)
}

func TestWriteCSV_ReadBack(t *testing.T) {
	t.Parallel()

	seeds, err := Seeds()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, seeds))
	assert.True(t, strings.HasPrefix(buf.String(), strings.Join(Columns, ",")))

	back, err := ReadCSV(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, seeds, back)
}

func TestWriteCSV_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, strings.Join(Columns, ",")+"\n", buf.String())
}

func TestXLSX_RoundTrip(t *testing.T) {
	t.Parallel()

	seeds, err := Seeds()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "factors.xlsx")
	require.NoError(t, WriteXLSX(path, seeds))

	back, err := ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, back, len(seeds))
	for i := range seeds {
		assert.Equal(t, seeds[i].Key(), back[i].Key())
		assert.InDelta(t, seeds[i].Value, back[i].Value, 1e-9)
		assert.Equal(t, seeds[i].Pedigree, back[i].Pedigree)
	}
}

func TestReadXLSX_MissingColumn(t *testing.T) {
	t.Parallel()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, cells := range [][]string{{"category", "country"}, {"Cereals", "Ghana"}} {
		row := sheet.AddRow()
		for _, c := range cells {
			row.AddCell().SetString(c)
		}
	}
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, f.Save(path))

	_, err = ReadXLSX(path, XLSXOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")

	_, err = ReadXLSX(path, XLSXOptions{SheetName: "nope"})
	assert.Error(t, err)
}

func TestReadFile_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(context.Background(), "factors.json")
	assert.Error(t, err)
}

func TestBuild_FileOverridesSeed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "override.csv")
	var buf bytes.Buffer
	f := prodFactor(model.CountryGhana, "Rice", 1.9, "local survey")
	require.NoError(t, WriteCSV(&buf, []Factor{f}))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	repo, err := Build(context.Background(), path)
	require.NoError(t, err)
	res := repo.Resolve(model.FoodCereals, model.CountryGhana, "Rice", model.GlobalWarming)
	assert.Equal(t, "local survey", res.Factor.Source)
}
