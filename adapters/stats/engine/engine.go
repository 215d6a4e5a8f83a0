// Package engine orchestrates post-hoc pairwise analysis of a contingency
// table: enumerate population pairs, run the selected test strategy on each
// 2-row sub-table, compute Cramér's V per pair, adjust the raw p-value vector
// for multiple comparisons, and assemble the ordered report.
package engine

import (
	"context"
	"math"
	"runtime"
	"strings"

	"posthoc/adapters/stats/correction"
	"posthoc/adapters/stats/effect"
	"posthoc/adapters/stats/tests"
	"posthoc/domain/core"
	"posthoc/domain/posthoc"
	"posthoc/domain/table"
	"posthoc/internal"
	"posthoc/internal/errors"

	"golang.org/x/sync/errgroup"
)

// DefaultDigits is the rounding precision applied to report values.
const DefaultDigits = 4

// Notifier receives the human-facing notice naming the correction method. It
// is a side channel separate from the returned report so the pure computation
// stays independently testable.
type Notifier interface {
	Notify(format string, args ...interface{})
}

// Params selects the test strategy, correction method and report shape for one
// analysis run. Zero values mean the documented defaults.
type Params struct {
	// Test names the pairwise strategy; default "chi-square". Resolved
	// case-insensitively against the registry, so "Fisher's exact" works.
	Test string `json:"test"`
	// TestOptions is forwarded verbatim to the selected strategy.
	TestOptions tests.Options `json:"test_options,omitempty"`
	// PopulationsInCols flips the orientation: the table is transposed once
	// before processing and all naming uses the transposed row labels.
	PopulationsInCols bool `json:"populations_in_cols"`
	// Correction names the adjustment method; default "fdr" (Benjamini-Hochberg).
	Correction string `json:"correction"`
	// Digits is the rounding precision for report values; default 4.
	Digits int `json:"digits"`
	// Parallel fans the independent pairwise computations out across workers.
	// The corrector still observes the complete raw vector before adjusting.
	Parallel bool `json:"parallel"`
}

// Engine runs post-hoc analyses. It holds no state across invocations.
type Engine struct {
	registry *tests.Registry
	notifier Notifier
	logger   *internal.Logger
}

// New creates an engine with an explicit strategy registry and notifier.
func New(registry *tests.Registry, notifier Notifier, logger *internal.Logger) *Engine {
	if registry == nil {
		registry = tests.NewRegistry()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if notifier == nil {
		notifier = logger
	}
	return &Engine{registry: registry, notifier: notifier, logger: logger}
}

// NewDefault creates an engine with the built-in strategies and the default
// logger as notice channel.
func NewDefault() *Engine {
	return New(nil, nil, nil)
}

// Registry exposes the strategy registry so callers can add their own tests.
func (e *Engine) Registry() *tests.Registry {
	return e.registry
}

// Run performs one post-hoc analysis. Strategy and correction names are
// validated before any sub-table is built; a strategy failure on any pair
// aborts the whole batch with no partial report and no notice.
func (e *Engine) Run(ctx context.Context, tbl *table.Contingency, params Params) (*posthoc.Report, error) {
	if tbl == nil {
		return nil, errors.InvalidInput("contingency table is required")
	}

	correctionName := params.Correction
	if correctionName == "" {
		correctionName = "fdr"
	}
	method, err := correction.Parse(correctionName)
	if err != nil {
		return nil, err
	}

	testName := params.Test
	if testName == "" {
		testName = "chi-square"
	}
	strategy, err := e.registry.Resolve(strings.ToLower(testName))
	if err != nil {
		return nil, err
	}

	if params.PopulationsInCols {
		tbl = tbl.Transpose()
	}

	digits := params.Digits
	if digits <= 0 {
		digits = DefaultDigits
	}

	comparisons := posthoc.Enumerate(tbl)
	e.logger.Debug("running %d pairwise %s tests on %d populations", len(comparisons), strategy.Name(), tbl.Rows())

	results, err := e.runPairwise(ctx, tbl, comparisons, strategy, params)
	if err != nil {
		return nil, err
	}

	// Barrier: the corrector needs the complete raw vector before producing
	// any adjusted value.
	rawPs := make([]float64, len(results))
	for i, r := range results {
		rawPs[i] = r.RawP
	}
	adjusted, err := correction.Adjust(rawPs, method)
	if err != nil {
		return nil, err
	}

	rows := make([]posthoc.Row, len(results))
	for i, r := range results {
		rows[i] = posthoc.Row{
			Label:     r.Comparison.Label,
			RawP:      round(r.RawP, digits),
			AdjustedP: round(adjusted[i], digits),
			CramersV:  round(r.CramersV, digits),
		}
	}

	e.notifier.Notify("Adjusted p-values used the %s method.", method)

	return &posthoc.Report{
		AnalysisID: core.NewAnalysisID(),
		Test:       strategy.Name(),
		Correction: string(method),
		Digits:     digits,
		Rows:       rows,
		CreatedAt:  core.Now(),
	}, nil
}

// runPairwise produces one PairwiseResult per comparison, in enumeration
// order. Pairs are independent, so the parallel path fans them out without
// coordination beyond the index-addressed result slice.
func (e *Engine) runPairwise(ctx context.Context, tbl *table.Contingency, comparisons []posthoc.Comparison, strategy tests.Strategy, params Params) ([]posthoc.PairwiseResult, error) {
	results := make([]posthoc.PairwiseResult, len(comparisons))

	runOne := func(ctx context.Context, idx int) error {
		cmp := comparisons[idx]
		sub, err := tbl.PairRows(cmp.I, cmp.J)
		if err != nil {
			return errors.WithCode(errors.CodeInvalidInput, err)
		}

		res, err := strategy.Run(ctx, sub, params.TestOptions)
		if err != nil {
			return errors.StrategyFailure(cmp.Label, err)
		}
		if res.PValue < 0 || res.PValue > 1 || math.IsNaN(res.PValue) {
			return errors.StrategyFailure(cmp.Label, errors.InvalidInput("strategy produced p-value outside [0,1]"))
		}

		results[idx] = posthoc.PairwiseResult{
			Comparison: cmp,
			RawP:       res.PValue,
			CramersV:   effect.CramersV(sub),
		}
		return nil
	}

	if !params.Parallel {
		for idx := range comparisons {
			if err := runOne(ctx, idx); err != nil {
				return nil, err
			}
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for idx := range comparisons {
		g.Go(func() error {
			return runOne(gctx, idx)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// round rounds to the configured number of decimal digits.
func round(x float64, digits int) float64 {
	scale := math.Pow10(digits)
	return math.Round(x*scale) / scale
}
