package dataprocessing

import (
	"math"
	"sort"
)

// present drops NaN entries, which stand for missing cells. The result may
// share storage with values only when nothing was dropped.
func present(values []float64) []float64 {
	for i, v := range values {
		if math.IsNaN(v) {
			out := make([]float64, i, len(values))
			copy(out, values[:i])
			for _, w := range values[i+1:] {
				if !math.IsNaN(w) {
					out = append(out, w)
				}
			}
			return out
		}
	}
	return values
}

// median returns the middle value of the non-missing values, or the mean of
// the two middle values for an even count. values is not modified.
func median(values []float64) float64 {
	values = present(values)
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// sum skips missing values.
func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		if !math.IsNaN(v) {
			total += v
		}
	}
	return total
}

// mean averages the non-missing values.
func mean(values []float64) float64 {
	values = present(values)
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}
