package tests

import (
	"context"
	"fmt"
	"math"

	"posthoc/domain/table"
)

// defaultWorkspace caps the number of candidate tables the exact enumeration
// may visit before the strategy refuses the input.
const defaultWorkspace = 2e7

// FisherExactTest computes the exact two-sided p-value for a 2-row
// contingency sub-table: the classic hypergeometric test for 2x2 and the
// Freeman-Halton extension for 2xk, by full enumeration of tables with the
// observed margins. Probabilities are accumulated in log space.
type FisherExactTest struct{}

// NewFisherExactTest creates a new Fisher exact strategy
func NewFisherExactTest() *FisherExactTest {
	return &FisherExactTest{}
}

// Name returns the strategy name
func (s *FisherExactTest) Name() string {
	return "fisher"
}

// Description returns a human-readable description
func (s *FisherExactTest) Description() string {
	return "Fisher's exact test (Freeman-Halton for more than two categories)"
}

// Run enumerates every table sharing the sub-table's margins and sums the
// probabilities of those no more likely than the observed one. The "workspace"
// option bounds the enumeration size; tables too large for it are a strategy
// error rather than an open-ended computation.
func (s *FisherExactTest) Run(ctx context.Context, sub *table.Contingency, opts Options) (Result, error) {
	if err := checkMargins(sub); err != nil {
		return Result{}, err
	}
	if sub.Rows() != 2 {
		return Result{}, fmt.Errorf("fisher exact test requires a 2-row table, got %d rows", sub.Rows())
	}

	colTotals := sub.ColTotals()
	rowTotals := sub.RowTotals()
	r1 := rowTotals[0]
	n := sub.Total()
	cols := sub.Cols()

	workspace := float64(opts.Int("workspace", defaultWorkspace))
	bound := 1.0
	for j := 0; j < cols-1; j++ {
		bound *= float64(min(colTotals[j], r1) + 1)
		if bound > workspace {
			return Result{}, fmt.Errorf("table too large for exact enumeration (workspace %d exceeded)", int(workspace))
		}
	}

	// log P(table) = sum_j ln C(c_j, x_j) - ln C(n, r1), the multivariate
	// hypergeometric probability under fixed margins.
	logDenom := logChoose(n, r1)
	logPObs := -logDenom
	for j := 0; j < cols; j++ {
		logPObs += logChoose(colTotals[j], sub.Counts[0][j])
	}

	// Sum probabilities of all margin-preserving tables at most as likely as
	// the observed one. The tolerance absorbs log-space rounding.
	const tol = 1e-7
	pValue := 0.0
	var walk func(col, remaining int, logAcc float64)
	walk = func(col, remaining int, logAcc float64) {
		if col == cols-1 {
			if remaining <= colTotals[col] {
				logP := logAcc + logChoose(colTotals[col], remaining) - logDenom
				if logP <= logPObs+tol {
					pValue += math.Exp(logP)
				}
			}
			return
		}
		tailCapacity := 0
		for k := col + 1; k < cols; k++ {
			tailCapacity += colTotals[k]
		}
		lo := max(0, remaining-tailCapacity)
		hi := min(colTotals[col], remaining)
		for x := lo; x <= hi; x++ {
			walk(col+1, remaining-x, logAcc+logChoose(colTotals[col], x))
		}
	}
	walk(0, r1, 0)

	if pValue > 1 {
		pValue = 1
	}

	return Result{
		Statistic: math.Exp(logPObs), // probability of the observed table
		PValue:    pValue,
		DF:        0,
		Metadata: map[string]interface{}{
			"method": "exact enumeration",
		},
	}, nil
}

// logChoose returns ln C(n, k) via the log-gamma function.
func logChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	ln1, _ := math.Lgamma(float64(n + 1))
	lk, _ := math.Lgamma(float64(k + 1))
	lnk, _ := math.Lgamma(float64(n - k + 1))
	return ln1 - lk - lnk
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
