// Package effect computes association-strength measures for contingency
// sub-tables. Effect size and significance are orthogonal: Cramér's V is
// reported for every comparison regardless of which hypothesis test produced
// the p-value.
package effect

import (
	"math"

	"posthoc/domain/table"
)

// CramersV computes Cramér's V for a contingency table from the uncorrected
// Pearson chi-square statistic: V = sqrt(chi2 / (n * min(r-1, c-1))),
// normalized to [0, 1]. Degenerate tables (empty, one row or column, or a zero
// marginal) yield 0.
func CramersV(t *table.Contingency) float64 {
	rows := t.Rows()
	cols := t.Cols()
	if rows < 2 || cols < 2 {
		return 0
	}

	total := float64(t.Total())
	if total == 0 {
		return 0
	}

	rowTotals := t.RowTotals()
	colTotals := t.ColTotals()

	chiSq := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			expected := float64(rowTotals[i]*colTotals[j]) / total
			if expected > 0 {
				observed := float64(t.Counts[i][j])
				chiSq += (observed - expected) * (observed - expected) / expected
			}
		}
	}

	minDim := math.Min(float64(rows-1), float64(cols-1))
	v := math.Sqrt(chiSq / (total * minDim))
	if v > 1 {
		v = 1
	}
	return v
}
