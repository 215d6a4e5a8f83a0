package table

import (
	"fmt"
)

// Contingency is a cross-tabulation of observation counts: populations as named
// rows, categories as named columns. Counts are non-negative integers and every
// row has the same number of columns.
type Contingency struct {
	RowNames []string `json:"row_names"`
	ColNames []string `json:"col_names"`
	Counts   [][]int  `json:"counts"`
}

// New validates and builds a Contingency from row names, column names and counts.
func New(rowNames, colNames []string, counts [][]int) (*Contingency, error) {
	if len(counts) != len(rowNames) {
		return nil, fmt.Errorf("row count mismatch: %d rows of counts, %d row names", len(counts), len(rowNames))
	}
	for i, row := range counts {
		if len(row) != len(colNames) {
			return nil, fmt.Errorf("row %q has %d columns, expected %d", rowNames[i], len(row), len(colNames))
		}
		for j, c := range row {
			if c < 0 {
				return nil, fmt.Errorf("negative count %d at [%q, %q]", c, rowNames[i], colNames[j])
			}
		}
	}
	return &Contingency{RowNames: rowNames, ColNames: colNames, Counts: counts}, nil
}

// MustNew builds a Contingency and panics on invalid input. Intended for tests
// and literal tables.
func MustNew(rowNames, colNames []string, counts [][]int) *Contingency {
	t, err := New(rowNames, colNames, counts)
	if err != nil {
		panic(err)
	}
	return t
}

// Rows returns the number of populations.
func (t *Contingency) Rows() int {
	return len(t.Counts)
}

// Cols returns the number of categories.
func (t *Contingency) Cols() int {
	return len(t.ColNames)
}

// Transpose returns a new table with rows and columns swapped. The receiver is
// not modified; callers flip orientation once at the boundary.
func (t *Contingency) Transpose() *Contingency {
	counts := make([][]int, t.Cols())
	for j := 0; j < t.Cols(); j++ {
		counts[j] = make([]int, t.Rows())
		for i := 0; i < t.Rows(); i++ {
			counts[j][i] = t.Counts[i][j]
		}
	}
	return &Contingency{
		RowNames: append([]string(nil), t.ColNames...),
		ColNames: append([]string(nil), t.RowNames...),
		Counts:   counts,
	}
}

// PairRows builds the 2-row sub-table restricted to rows i and j, all columns
// retained. Indices must be in range; the engine enumerates them from this table.
func (t *Contingency) PairRows(i, j int) (*Contingency, error) {
	if i < 0 || j < 0 || i >= t.Rows() || j >= t.Rows() {
		return nil, fmt.Errorf("row pair (%d, %d) out of range for %d rows", i, j, t.Rows())
	}
	return &Contingency{
		RowNames: []string{t.RowNames[i], t.RowNames[j]},
		ColNames: append([]string(nil), t.ColNames...),
		Counts: [][]int{
			append([]int(nil), t.Counts[i]...),
			append([]int(nil), t.Counts[j]...),
		},
	}, nil
}

// RowTotals returns the marginal total of each row.
func (t *Contingency) RowTotals() []int {
	totals := make([]int, t.Rows())
	for i, row := range t.Counts {
		for _, c := range row {
			totals[i] += c
		}
	}
	return totals
}

// ColTotals returns the marginal total of each column.
func (t *Contingency) ColTotals() []int {
	totals := make([]int, t.Cols())
	for _, row := range t.Counts {
		for j, c := range row {
			totals[j] += c
		}
	}
	return totals
}

// Total returns the grand total of all counts.
func (t *Contingency) Total() int {
	total := 0
	for _, row := range t.Counts {
		for _, c := range row {
			total += c
		}
	}
	return total
}
