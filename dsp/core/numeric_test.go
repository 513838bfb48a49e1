package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name          string
		value, lo, hi float64
		want          float64
	}{
		{"inside", 0.5, 0, 1, 0.5},
		{"below", -1, 0, 1, 0},
		{"above", 2, 0, 1, 1},
		{"swapped bounds", 2, 1, 0, 1},
		{"nan", math.NaN(), -150, 150, -150},
		{"inf", math.Inf(1), -5, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.value, tt.lo, tt.hi); got != tt.want {
				t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", tt.value, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestIsFinitePositive(t *testing.T) {
	for v, want := range map[float64]bool{
		44100:        true,
		0:            false,
		-1:           false,
		math.Inf(1):  false,
		math.Inf(-1): false,
	} {
		if got := IsFinitePositive(v); got != want {
			t.Fatalf("IsFinitePositive(%v) = %v, want %v", v, got, want)
		}
	}

	if IsFinitePositive(math.NaN()) {
		t.Fatal("IsFinitePositive(NaN) = true")
	}
}

func TestLinearToDB(t *testing.T) {
	if got := LinearToDB(0.5); math.Abs(got+6.0206) > 1e-4 {
		t.Fatalf("LinearToDB(0.5) = %v, want -6.02", got)
	}

	if got := LinearToDB(1); got != 0 {
		t.Fatalf("LinearToDB(1) = %v, want 0", got)
	}

	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("LinearToDB(0) is not -Inf")
	}

	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("LinearToDB(-1) is not NaN")
	}
}
