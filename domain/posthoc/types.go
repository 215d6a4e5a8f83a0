package posthoc

import (
	"fmt"

	"posthoc/domain/core"
	"posthoc/domain/table"
)

// Comparison is an unordered pair of population (row) indices, I < J, created
// once by enumeration and immutable afterwards.
type Comparison struct {
	I     int    `json:"i"`
	J     int    `json:"j"`
	Label string `json:"label"`
}

// Enumerate generates all n*(n-1)/2 comparisons for the table's rows in
// lexicographic index order: (0,1),(0,2),...,(1,2),... This order is the report
// row order contract. Fewer than 2 rows yields an empty slice, not an error.
func Enumerate(t *table.Contingency) []Comparison {
	n := t.Rows()
	if n < 2 {
		return nil
	}
	comparisons := make([]Comparison, 0, n*(n-1)/2)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			comparisons = append(comparisons, Comparison{
				I:     i,
				J:     j,
				Label: fmt.Sprintf("%s vs. %s", t.RowNames[i], t.RowNames[j]),
			})
		}
	}
	return comparisons
}

// PairwiseResult holds the per-comparison measurements before correction.
type PairwiseResult struct {
	Comparison Comparison `json:"comparison"`
	RawP       float64    `json:"raw_p"`
	CramersV   float64    `json:"cramers_v"`
}

// Row is one line of the final report: raw and adjusted p-values and the effect
// size, each rounded to the configured precision.
type Row struct {
	Label     string  `json:"comparison"`
	RawP      float64 `json:"raw_p"`
	AdjustedP float64 `json:"adj_p"`
	CramersV  float64 `json:"cramers_v"`
}

// Report is the ordered outcome of one post-hoc analysis run. Row order matches
// comparison enumeration order, not p-value magnitude.
type Report struct {
	AnalysisID core.AnalysisID `json:"analysis_id"`
	Test       string          `json:"test"`
	Correction string          `json:"correction"`
	Digits     int             `json:"digits"`
	Rows       []Row           `json:"rows"`
	CreatedAt  core.Timestamp  `json:"created_at"`
}

// Len returns the number of report rows.
func (r *Report) Len() int {
	return len(r.Rows)
}
