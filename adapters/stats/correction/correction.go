// Package correction adjusts vectors of raw p-values for multiple comparisons.
// The semantics match the standard definitions of each procedure; output order
// always equals input order, and for every method the adjusted value is at
// least the raw value.
package correction

import (
	"sort"

	"posthoc/internal/errors"
)

// Method identifies a multiple-comparison correction procedure.
type Method string

const (
	// Bonferroni controls the family-wise error rate by scaling every p-value
	// by the number of comparisons.
	Bonferroni Method = "bonferroni"
	// Holm is the step-down family-wise procedure.
	Holm Method = "holm"
	// Hochberg is the step-up family-wise procedure.
	Hochberg Method = "hochberg"
	// Hommel is Hommel's family-wise procedure.
	Hommel Method = "hommel"
	// BH is Benjamini-Hochberg false-discovery-rate control, valid under
	// independence or positive dependence. It is the engine default.
	BH Method = "BH"
	// BY is Benjamini-Yekutieli false-discovery-rate control, valid under
	// arbitrary dependence and element-wise at least as conservative as BH.
	BY Method = "BY"
)

// Parse resolves a method name, accepting the conventional aliases. Unknown
// names fail with an UnknownCorrection error.
func Parse(name string) (Method, error) {
	switch name {
	case "bonferroni":
		return Bonferroni, nil
	case "holm":
		return Holm, nil
	case "hochberg":
		return Hochberg, nil
	case "hommel":
		return Hommel, nil
	case "BH", "bh", "fdr":
		return BH, nil
	case "BY", "by":
		return BY, nil
	}
	return "", errors.UnknownCorrection(name)
}

// Methods lists every recognized method.
func Methods() []Method {
	return []Method{Bonferroni, Holm, Hochberg, Hommel, BH, BY}
}

// Adjust applies the method across the whole p-value vector and returns the
// adjusted vector in the same order. It never reorders its output relative to
// its input.
func Adjust(ps []float64, method Method) ([]float64, error) {
	n := len(ps)
	if n == 0 {
		return nil, nil
	}
	if n == 1 {
		switch method {
		case Bonferroni, Holm, Hochberg, Hommel, BH, BY:
			return []float64{clamp(ps[0])}, nil
		}
		return nil, errors.UnknownCorrection(string(method))
	}

	switch method {
	case Bonferroni:
		adjusted := make([]float64, n)
		for i, p := range ps {
			adjusted[i] = clamp(p * float64(n))
		}
		return adjusted, nil
	case Holm:
		return holm(ps), nil
	case Hochberg:
		return stepUp(ps, func(rank int) float64 { return float64(rank) }), nil
	case Hommel:
		return hommel(ps), nil
	case BH:
		return stepUp(ps, func(rank int) float64 { return float64(n) / float64(n-rank+1) }), nil
	case BY:
		q := 0.0
		for i := 1; i <= n; i++ {
			q += 1 / float64(i)
		}
		return stepUp(ps, func(rank int) float64 { return q * float64(n) / float64(n-rank+1) }), nil
	}
	return nil, errors.UnknownCorrection(string(method))
}

// holm is the step-down procedure: sort ascending, scale the k-th smallest by
// (n-k+1), enforce a running maximum, restore original order.
func holm(ps []float64) []float64 {
	n := len(ps)
	order := ascendingOrder(ps)

	adjusted := make([]float64, n)
	running := 0.0
	for k, idx := range order {
		v := clamp(float64(n-k) * ps[idx])
		if v > running {
			running = v
		}
		adjusted[idx] = running
	}
	return adjusted
}

// stepUp walks the p-values from largest to smallest, scaling the value at
// descending rank k (1-based) by multiplier(k) and enforcing a running
// minimum. Hochberg, BH and BY differ only in the multiplier.
func stepUp(ps []float64, multiplier func(rank int) float64) []float64 {
	n := len(ps)
	order := ascendingOrder(ps)

	adjusted := make([]float64, n)
	running := 1.0
	for k := 0; k < n; k++ {
		idx := order[n-1-k] // descending through the sorted values
		v := clamp(multiplier(k+1) * ps[idx])
		if v < running {
			running = v
		}
		adjusted[idx] = running
	}
	return adjusted
}

// hommel implements Hommel's procedure over the ascending-sorted vector, then
// restores original order. Adjusted values are never below the raw values.
func hommel(ps []float64) []float64 {
	n := len(ps)
	order := ascendingOrder(ps)
	p := make([]float64, n)
	for k, idx := range order {
		p[k] = ps[idx]
	}

	q := make([]float64, n)
	pa := make([]float64, n)
	minNP := 1.0
	for i := 0; i < n; i++ {
		if v := float64(n) * p[i] / float64(i+1); v < minNP {
			minNP = v
		}
	}
	for i := 0; i < n; i++ {
		q[i] = minNP
		pa[i] = minNP
	}

	for m := n - 1; m >= 2; m-- {
		cut := n - m + 1 // 1-based boundary between the two index blocks
		q1 := 1.0
		for i := cut; i < n; i++ {
			if v := float64(m) * p[i] / float64(i-cut+2); v < q1 {
				q1 = v
			}
		}
		for i := 0; i < cut; i++ {
			q[i] = minFloat(float64(m)*p[i], q1)
		}
		for i := cut; i < n; i++ {
			q[i] = q[cut-1]
		}
		for i := 0; i < n; i++ {
			if q[i] > pa[i] {
				pa[i] = q[i]
			}
		}
	}

	adjusted := make([]float64, n)
	for k, idx := range order {
		adjusted[idx] = clamp(maxFloat(pa[k], p[k]))
	}
	return adjusted
}

// ascendingOrder returns the indices of ps sorted by ascending p-value. Ties
// keep input order so the mapping back is stable.
func ascendingOrder(ps []float64) []int {
	order := make([]int, len(ps))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ps[order[a]] < ps[order[b]]
	})
	return order
}

func clamp(p float64) float64 {
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
