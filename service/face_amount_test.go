package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgeFactor_FlatBelowPivot(t *testing.T) {
	for _, age := range []int{0, 1, 18, 29, 30} {
		assert.Equal(t, 1.0, AgeFactor(age), "age %d", age)
	}
}

func TestAgeFactor_MonotoneAbovePivot(t *testing.T) {
	prev := AgeFactor(30)
	for age := 31; age <= 100; age++ {
		f := AgeFactor(age)
		if f < prev {
			t.Fatalf("age factor decreased at %d: %v < %v", age, f, prev)
		}
		prev = f
	}
	assert.InDelta(t, 1.15, AgeFactor(45), 1e-12)
}

func TestTermFactor(t *testing.T) {
	tests := []struct {
		term int
		want float64
		ok   bool
	}{
		{6, 1.0, true},
		{8, 0.92, true},
		{12, 0.85, true},
		{20, 0.78, true},
		{10, 1.0, false},
	}
	for _, tt := range tests {
		got, ok := TermFactor(tt.term)
		assert.Equal(t, tt.want, got, "term %d", tt.term)
		assert.Equal(t, tt.ok, ok, "term %d", tt.term)
	}
}

func TestSuggestFaceAmount_WorkedExample(t *testing.T) {
	// unit premium 50 -> 200 units of 10,000
	got := SuggestFaceAmount(10000, 50, 30, 6)
	if got != 2_000_000 {
		t.Errorf("expected 2000000, got %d", got)
	}
}

func TestSuggestFaceAmount_AgeAndTerm(t *testing.T) {
	// unit = 50 * 1.15 / 0.78 = 73.72 -> floor(10000/73.72) = 135
	assert.Equal(t, int64(1_350_000), SuggestFaceAmount(10000, 50, 45, 20))
}

func TestSuggestFaceAmount_NonNegativeMultiple(t *testing.T) {
	budgets := []float64{-500, 0, 1, 49.99, 50, 123.45, 9999, 1e6, math.NaN(), math.Inf(1)}
	bases := []float64{0, 1e-15, 12.5, 50, 999}
	for _, b := range budgets {
		for _, base := range bases {
			for _, term := range []int{6, 8, 12, 20, 7} {
				got := SuggestFaceAmount(b, base, 40, term)
				if got < 0 || got%FaceUnit != 0 {
					t.Fatalf("budget=%v base=%v term=%d: got %d", b, base, term, got)
				}
			}
		}
	}
}

func TestSuggestFaceAmount_ZeroBaseDoesNotBlowUp(t *testing.T) {
	got := SuggestFaceAmount(1, 0, 30, 6)
	assert.Positive(t, got)
	assert.Zero(t, got%FaceUnit)
}
