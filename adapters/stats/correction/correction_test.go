package correction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posthoc/internal/errors"
)

// Reference values computed with the standard definitions of each procedure on
// the vector {0.01, 0.04, 0.03, 0.005}.
func TestAdjustReferenceVector(t *testing.T) {
	ps := []float64{0.01, 0.04, 0.03, 0.005}

	cases := []struct {
		method Method
		want   []float64
	}{
		{Bonferroni, []float64{0.04, 0.16, 0.12, 0.02}},
		{Holm, []float64{0.03, 0.06, 0.06, 0.02}},
		{Hochberg, []float64{0.03, 0.04, 0.04, 0.02}},
		{Hommel, []float64{0.03, 0.04, 0.04, 0.02}},
		{BH, []float64{0.02, 0.04, 0.04, 0.02}},
		{BY, []float64{0.0416666667, 0.0833333333, 0.0833333333, 0.0416666667}},
	}

	for _, tc := range cases {
		t.Run(string(tc.method), func(t *testing.T) {
			got, err := Adjust(ps, tc.method)
			require.NoError(t, err)
			require.Len(t, got, len(ps))
			for i := range tc.want {
				assert.InDelta(t, tc.want[i], got[i], 1e-9, "index %d", i)
			}
		})
	}
}

func TestAdjustedNeverBelowRaw(t *testing.T) {
	ps := []float64{0.2, 0.001, 0.8, 0.04, 0.04, 0.33, 0.97}

	for _, method := range Methods() {
		got, err := Adjust(ps, method)
		require.NoError(t, err, "method %s", method)
		for i, adj := range got {
			assert.GreaterOrEqual(t, adj, ps[i], "method %s index %d", method, i)
			assert.LessOrEqual(t, adj, 1.0, "method %s index %d", method, i)
		}
	}
}

func TestBHNoMoreConservativeThanBY(t *testing.T) {
	ps := []float64{0.003, 0.08, 0.02, 0.5, 0.11}

	bh, err := Adjust(ps, BH)
	require.NoError(t, err)
	by, err := Adjust(ps, BY)
	require.NoError(t, err)

	for i := range ps {
		assert.LessOrEqual(t, bh[i], by[i], "index %d", i)
	}
}

func TestAdjustPreservesInputOrder(t *testing.T) {
	ps := []float64{0.9, 0.001, 0.5}

	got, err := Adjust(ps, Holm)
	require.NoError(t, err)

	// Smallest raw p stays at index 1, largest at index 0.
	assert.InDelta(t, 0.003, got[1], 1e-12)
	assert.GreaterOrEqual(t, got[0], got[2])
}

func TestAdjustEdgeCases(t *testing.T) {
	got, err := Adjust(nil, BH)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Adjust([]float64{0.03}, Bonferroni)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.03}, got)
}

func TestParse(t *testing.T) {
	m, err := Parse("fdr")
	require.NoError(t, err)
	assert.Equal(t, BH, m)

	m, err = Parse("hommel")
	require.NoError(t, err)
	assert.Equal(t, Hommel, m)

	_, err = Parse("sidak")
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnknownCorrection, errors.GetCode(err))
}
