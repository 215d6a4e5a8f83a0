package tests

import (
	"context"
	"fmt"
	"math"

	"posthoc/domain/table"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquareTest is the Pearson chi-square test of independence on a
// contingency sub-table. It is the default pairwise strategy.
type ChiSquareTest struct{}

// NewChiSquareTest creates a new chi-square strategy
func NewChiSquareTest() *ChiSquareTest {
	return &ChiSquareTest{}
}

// Name returns the strategy name
func (s *ChiSquareTest) Name() string {
	return "chi-square"
}

// Description returns a human-readable description
func (s *ChiSquareTest) Description() string {
	return "Pearson chi-square test of independence between population and category"
}

// Run computes the chi-square statistic against the independence expectation
// and its p-value from the chi-squared distribution. The "correct" option
// (default true) applies the Yates continuity correction on 2x2 tables only.
func (s *ChiSquareTest) Run(ctx context.Context, sub *table.Contingency, opts Options) (Result, error) {
	if err := checkMargins(sub); err != nil {
		return Result{}, err
	}

	rows := sub.Rows()
	cols := sub.Cols()
	total := float64(sub.Total())
	rowTotals := sub.RowTotals()
	colTotals := sub.ColTotals()

	yates := opts.Bool("correct", true) && rows == 2 && cols == 2

	chiSq := 0.0
	expected := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			exp := float64(rowTotals[i]*colTotals[j]) / total
			expected = append(expected, exp)

			diff := math.Abs(float64(sub.Counts[i][j]) - exp)
			if yates {
				// Yates: shrink each deviation by 0.5, never past zero.
				diff = math.Max(0, diff-0.5)
			}
			chiSq += diff * diff / exp
		}
	}

	df := (rows - 1) * (cols - 1)
	chiDist := distuv.ChiSquared{K: float64(df)}
	pValue := 1 - chiDist.CDF(chiSq)

	minExpected, _ := stats.Min(expected)

	return Result{
		Statistic: chiSq,
		PValue:    pValue,
		DF:        df,
		Metadata: map[string]interface{}{
			"min_expected":     minExpected,
			"low_expected":     minExpected < 5,
			"yates_correction": yates,
		},
	}, nil
}

// checkMargins rejects sub-tables the test cannot handle: fewer than two rows
// or columns, or a zero marginal total, which makes an expected count zero.
func checkMargins(sub *table.Contingency) error {
	if sub.Rows() < 2 || sub.Cols() < 2 {
		return fmt.Errorf("table must be at least 2x2, got %dx%d", sub.Rows(), sub.Cols())
	}
	if sub.Total() == 0 {
		return fmt.Errorf("table has no observations")
	}
	for i, rt := range sub.RowTotals() {
		if rt == 0 {
			return fmt.Errorf("row %q has zero total", sub.RowNames[i])
		}
	}
	for j, ct := range sub.ColTotals() {
		if ct == 0 {
			return fmt.Errorf("column %q has zero total", sub.ColNames[j])
		}
	}
	return nil
}
