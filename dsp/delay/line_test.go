package delay

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-vocal/dsp/interp"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// --- construction and validation ---

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for size=0")
	}

	if _, err := New(3); err == nil {
		t.Fatal("expected error for size=3")
	}

	if _, err := ForDuration(math.NaN()); err == nil {
		t.Fatal("expected error for NaN duration")
	}
}

func TestNewDefaults(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	if d.Len() != 16 {
		t.Fatalf("Len: got %d want 16", d.Len())
	}

	if d.Mode() != interp.Hermite {
		t.Fatalf("default mode: got %v want Hermite", d.Mode())
	}
}

func TestForDurationCoversRequestedDelay(t *testing.T) {
	for _, mode := range []interp.Mode{interp.Linear, interp.Hermite} {
		d, err := ForDuration(44100, WithMode(mode))
		if err != nil {
			t.Fatal(err)
		}

		if d.MaxDelay() < 44100 {
			t.Fatalf("%v: MaxDelay() = %v, want >= 44100", mode, d.MaxDelay())
		}
	}
}

// --- integer Read/Write ---

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		d.Write(float64(i))
	}

	for delay := 0; delay < 8; delay++ {
		want := float64(7 - delay)
		if got := d.Read(delay); got != want {
			t.Fatalf("Read(%d) = %v, want %v", delay, got, want)
		}
	}
}

// --- fractional reads ---

func TestReadFractionalLinearRamp(t *testing.T) {
	for _, mode := range []interp.Mode{interp.Linear, interp.Hermite} {
		d, err := New(32, WithMode(mode))
		if err != nil {
			t.Fatal(err)
		}

		for i := 0; i < 32; i++ {
			d.Write(float64(i))
		}

		// A ramp is reproduced exactly by both kernels.
		got := d.ReadFractional(4.25)
		if !approxEqual(got, 31-4.25, 1e-12) {
			t.Fatalf("%v: ReadFractional(4.25) = %v, want %v", mode, got, 31-4.25)
		}
	}
}

func TestReadFractionalClamps(t *testing.T) {
	d, err := New(16, WithMode(interp.Linear))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 16; i++ {
		d.Write(float64(i))
	}

	if got, want := d.ReadFractional(-3), d.Read(0); got != want {
		t.Fatalf("negative delay: got %v want %v", got, want)
	}

	if got, want := d.ReadFractional(1e9), d.ReadFractional(d.MaxDelay()); got != want {
		t.Fatalf("huge delay: got %v want %v", got, want)
	}

	if got, want := d.ReadFractional(math.NaN()), d.Read(0); got != want {
		t.Fatalf("NaN delay: got %v want %v", got, want)
	}
}

func TestReset(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	d.Write(1)
	d.Write(2)
	d.Reset()

	for delay := 0; delay < 8; delay++ {
		if got := d.Read(delay); got != 0 {
			t.Fatalf("Read(%d) after Reset = %v, want 0", delay, got)
		}
	}
}
