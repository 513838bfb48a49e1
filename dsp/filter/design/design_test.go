package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-vocal/dsp/filter/biquad"
)

const rate = 44100.0

func TestCutoffIsHalfPower(t *testing.T) {
	tests := []struct {
		name   string
		c      biquad.Coefficients
		pass   float64
		stop   float64
		cutoff float64
	}{
		{"steam lowpass", Lowpass(5000, DefaultQ, rate), 50, 20000, 5000},
		{"huff highpass", Highpass(2000, DefaultQ, rate), 20000, 60, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.GainDB(tt.pass, rate); math.Abs(got) > 0.1 {
				t.Fatalf("passband = %v dB, want ~0", got)
			}

			if got := tt.c.GainDB(tt.cutoff, rate); math.Abs(got+3.0103) > 0.01 {
				t.Fatalf("cutoff = %v dB, want -3.01", got)
			}

			if got := tt.c.GainDB(tt.stop, rate); got > -30 {
				t.Fatalf("stopband = %v dB, want < -30", got)
			}
		})
	}
}

func TestOutOfRangeGivesZeroFilter(t *testing.T) {
	zero := biquad.Coefficients{}

	for _, f := range []float64{0, -1, rate / 2, rate, math.NaN(), math.Inf(1)} {
		if got := Lowpass(f, DefaultQ, rate); got != zero {
			t.Fatalf("Lowpass(%v) = %+v, want zero", f, got)
		}
	}

	if got := Highpass(1000, DefaultQ, 0); got != zero {
		t.Fatalf("Highpass at rate 0 = %+v, want zero", got)
	}
}

func TestBadQUsesButterworth(t *testing.T) {
	want := Highpass(1000, DefaultQ, rate)

	for _, q := range []float64{0, -2, math.NaN()} {
		if got := Highpass(1000, q, rate); got != want {
			t.Fatalf("Highpass(q=%v) = %+v, want %+v", q, got, want)
		}
	}
}
