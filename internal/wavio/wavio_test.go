package wavio

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-vocal/internal/testutil"
)

func TestRoundTrip(t *testing.T) {
	for _, bitDepth := range []int{16, 24} {
		in := &Audio{
			SampleRate: 48000,
			BitDepth:   bitDepth,
			Channels:   testutil.Planar(2, testutil.DeterministicSine(440, 48000, 0.8, 4800)),
		}
		in.Channels[1][10] = 1.5

		path := filepath.Join(t.TempDir(), "tone.wav")

		err := WriteFile(path, in)
		if err != nil {
			t.Fatalf("WriteFile(%d bit) error = %v", bitDepth, err)
		}

		out, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%d bit) error = %v", bitDepth, err)
		}

		if out.SampleRate != 48000 || out.BitDepth != bitDepth || len(out.Channels) != 2 {
			t.Fatalf("format = %d/%d/%d, want 48000/%d/2", out.SampleRate, out.BitDepth, len(out.Channels), bitDepth)
		}

		if out.Frames() != 4800 {
			t.Fatalf("Frames() = %d, want 4800", out.Frames())
		}

		if math.Abs(out.Duration()-0.1) > 1e-9 {
			t.Fatalf("Duration() = %v, want 0.1", out.Duration())
		}

		tol := 1.0 / math.Ldexp(1, bitDepth-2)

		for ch := range out.Channels {
			for i, x := range out.Channels[ch] {
				want := math.Max(-1, math.Min(1, float64(in.Channels[ch][i])))
				if math.Abs(float64(x)-want) > tol {
					t.Fatalf("%d bit: sample [%d][%d] = %v, want %v", bitDepth, ch, i, x, want)
				}
			}
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not a RIFF file")))
	if !errors.Is(err, ErrInvalidWAV) {
		t.Fatalf("Decode() error = %v, want %v", err, ErrInvalidWAV)
	}
}

func TestEncodeRejectsBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")

	tests := []struct {
		name string
		in   *Audio
	}{
		{"no channels", &Audio{SampleRate: 44100}},
		{"ragged", &Audio{SampleRate: 44100, Channels: [][]float32{make([]float32, 4), make([]float32, 3)}}},
		{"bit depth", &Audio{SampleRate: 44100, BitDepth: 12, Channels: [][]float32{make([]float32, 4)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := WriteFile(path, tt.in); err == nil {
				t.Fatal("WriteFile() error = nil, want error")
			}
		})
	}
}
