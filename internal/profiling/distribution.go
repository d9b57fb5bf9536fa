package profiling

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// describeValues computes count, mean, sample std, min, quartiles and max
func describeValues(name string, data []float64) ColumnSummary {
	summary := ColumnSummary{
		Column: name,
		Count:  len(data),
		Mean:   NaN(),
		Std:    NaN(),
		Min:    NaN(),
		Q25:    NaN(),
		Q50:    NaN(),
		Q75:    NaN(),
		Max:    NaN(),
	}
	if len(data) == 0 {
		return summary
	}

	if mean, err := stats.Mean(data); err == nil {
		summary.Mean = Stat(mean)
	}
	if len(data) > 1 {
		if std, err := stats.StandardDeviationSample(data); err == nil {
			summary.Std = Stat(std)
		}
	}
	if min, err := stats.Min(data); err == nil {
		summary.Min = Stat(min)
	}
	if max, err := stats.Max(data); err == nil {
		summary.Max = Stat(max)
	}
	if median, err := stats.Median(data); err == nil {
		summary.Q50 = Stat(median)
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	summary.Q25 = Stat(linearQuantile(sorted, 0.25))
	summary.Q75 = Stat(linearQuantile(sorted, 0.75))

	return summary
}

// linearQuantile interpolates between the two nearest ranks, h = (n-1)p
func linearQuantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := float64(n-1) * p
	lo := math.Floor(h)
	hi := math.Ceil(h)
	return sorted[int(lo)] + (h-lo)*(sorted[int(hi)]-sorted[int(lo)])
}
