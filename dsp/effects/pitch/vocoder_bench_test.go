package pitch

import (
	"math"
	"testing"
)

func BenchmarkVocoderShiftBlock(b *testing.B) {
	v, err := NewVocoder()
	if err != nil {
		b.Fatalf("NewVocoder() error = %v", err)
	}

	v.SetPitchScale(1.25)

	in := make([]float64, v.BlockSize())
	out := make([]float64, v.BlockSize())

	for i := range in {
		in[i] = 0.25 * math.Sin(2*math.Pi*220*float64(i)/48000)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		v.ShiftBlock(in, out)
	}
}

func BenchmarkVocoderShiftBlockFormant(b *testing.B) {
	v, err := NewVocoder()
	if err != nil {
		b.Fatalf("NewVocoder() error = %v", err)
	}

	v.SetPitchScale(1.1)
	v.SetFormantScale(0.8)

	in := make([]float64, v.BlockSize())
	out := make([]float64, v.BlockSize())

	for i := range in {
		in[i] = 0.25
	}

	b.ResetTimer()

	for range b.N {
		v.ShiftBlock(in, out)
	}
}
