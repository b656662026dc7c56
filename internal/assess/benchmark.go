package assess

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/model"
)

// Benchmark compares the facility's energy and water intensity per tonne
// with the reference for its type, capacity band and country. It returns
// nil when no reference exists or nothing was produced.
func Benchmark(t *factors.Tables, a *model.ProcessingAssessment, totals model.Midpoints) *model.Benchmarking {
	band := model.BandCapacity(a.Facility.CapacityTPD)
	ref, ok := t.Benchmark(a.Facility.FacilityType, band, a.Country)
	tonnes := a.TotalTonnes()
	if !ok || tonnes <= 0 {
		zap.L().Debug("assess: no facility benchmark",
			zap.String("facility", string(a.Facility.FacilityType)),
			zap.String("capacity", string(band)),
			zap.String("country", string(a.Country)),
		)
		return nil
	}

	intensity := func(metric, unit string, cat model.Category, ref factors.Intensity) model.IntensityBenchmark {
		v := totals[cat].Value / tonnes
		return model.IntensityBenchmark{
			Metric:      metric,
			Unit:        unit,
			Value:       v,
			Best:        ref.Best,
			Average:     ref.Average,
			Worst:       ref.Worst,
			Performance: Rate(v, ref.Best, ref.Average, ref.Worst),
		}
	}
	return &model.Benchmarking{
		Reference: fmt.Sprintf("%s (%s capacity, %s)", ref.Facility, ref.Capacity, ref.Country),
		Intensities: []model.IntensityBenchmark{
			intensity("Energy intensity", "kWh/t", model.EnergyConsumption, ref.Energy),
			intensity("Water intensity", "m3/t", model.WaterConsumption, ref.Water),
		},
	}
}
