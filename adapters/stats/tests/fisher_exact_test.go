package tests

import (
	"context"
	"math"
	"testing"

	"posthoc/domain/table"
)

func TestFisherExact2x2TeaTasting(t *testing.T) {
	sub := table.MustNew(
		[]string{"a", "b"},
		[]string{"x", "y"},
		[][]int{{3, 1}, {1, 3}},
	)

	res, err := NewFisherExactTest().Run(context.Background(), sub, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Exact two-sided p: (1+16+16+1)/70
	if math.Abs(res.PValue-34.0/70.0) > 1e-9 {
		t.Fatalf("expected p = 34/70, got %.10f", res.PValue)
	}
}

func TestFisherExactBalancedTableIsOne(t *testing.T) {
	sub := table.MustNew(
		[]string{"a", "b"},
		[]string{"x", "y"},
		[][]int{{5, 5}, {5, 5}},
	)

	res, err := NewFisherExactTest().Run(context.Background(), sub, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// The observed table is the most probable one, so every margin-preserving
	// table counts toward the tail.
	if math.Abs(res.PValue-1.0) > 1e-9 {
		t.Fatalf("expected p = 1, got %.10f", res.PValue)
	}
}

func TestFisherExactFreemanHalton2x3(t *testing.T) {
	sub := table.MustNew(
		[]string{"Male", "Female"},
		[]string{"site1", "site2", "site3"},
		[][]int{{76, 32, 46}, {48, 23, 47}},
	)

	res, err := NewFisherExactTest().Run(context.Background(), sub, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.PValue <= 0 || res.PValue > 1 {
		t.Fatalf("p-value out of range: %v", res.PValue)
	}

	// The observed table is part of its own two-sided tail, so the p-value
	// is at least the observed-table probability.
	if res.Statistic <= 0 || res.Statistic > res.PValue {
		t.Fatalf("observed-table probability %v inconsistent with p %v", res.Statistic, res.PValue)
	}
}

func TestFisherExactWorkspaceGuard(t *testing.T) {
	sub := table.MustNew(
		[]string{"a", "b"},
		[]string{"x", "y", "z"},
		[][]int{{100, 120, 90}, {110, 95, 130}},
	)

	if _, err := NewFisherExactTest().Run(context.Background(), sub, Options{"workspace": 10}); err == nil {
		t.Fatalf("expected workspace guard to reject enumeration")
	}
}

func TestFisherExactRequiresTwoRows(t *testing.T) {
	sub := table.MustNew(
		[]string{"a", "b", "c"},
		[]string{"x", "y"},
		[][]int{{1, 2}, {3, 4}, {5, 6}},
	)

	if _, err := NewFisherExactTest().Run(context.Background(), sub, nil); err == nil {
		t.Fatalf("expected error for 3-row table")
	}
}
