package fastmath

import (
	"math"
	"testing"
)

func TestPow2(t *testing.T) {
	if Pow2(0) != 1 {
		t.Fatalf("Pow2(0) = %v, want exactly 1", Pow2(0))
	}
	for _, x := range []float64{-5, -1, -0.125, 0.0833, 1, 5} {
		want := math.Exp2(x)
		if got := Pow2(x); math.Abs(got-want)/want > 1e-3 {
			t.Fatalf("Pow2(%v) = %v, want %v", x, got, want)
		}
	}
}
