package posthoc

import (
	"testing"

	"posthoc/domain/table"

	"github.com/stretchr/testify/assert"
)

func TestEnumerateLexicographicOrder(t *testing.T) {
	tbl := table.MustNew(
		[]string{"a", "b", "c", "d"},
		[]string{"x", "y"},
		[][]int{{1, 2}, {3, 4}, {5, 6}, {7, 8}},
	)

	comparisons := Enumerate(tbl)
	assert.Len(t, comparisons, 6)

	want := []Comparison{
		{I: 0, J: 1, Label: "a vs. b"},
		{I: 0, J: 2, Label: "a vs. c"},
		{I: 0, J: 3, Label: "a vs. d"},
		{I: 1, J: 2, Label: "b vs. c"},
		{I: 1, J: 3, Label: "b vs. d"},
		{I: 2, J: 3, Label: "c vs. d"},
	}
	assert.Equal(t, want, comparisons)
}

func TestEnumerateDegenerateInput(t *testing.T) {
	single := table.MustNew([]string{"only"}, []string{"x", "y"}, [][]int{{1, 2}})
	assert.Empty(t, Enumerate(single))
}
