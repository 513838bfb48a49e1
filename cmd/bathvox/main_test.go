package main

import (
	"testing"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/cwbudde/algo-vocal/dsp/vocalchain"
	"github.com/cwbudde/algo-vocal/internal/testutil"
	"github.com/cwbudde/algo-vocal/stats/level"
	"github.com/sirupsen/logrus"
)

func TestFormatLevel(t *testing.T) {
	got := formatLevel(level.Stats{RMSDB: -12.04, PeakDB: -6.02})
	if want := "RMS -12.0 dBFS, peak -6.0 dBFS"; got != want {
		t.Fatalf("formatLevel() = %q, want %q", got, want)
	}
}

func TestPadded(t *testing.T) {
	buf := testutil.Planar(2, testutil.DC(1, 10))

	out := padded(buf, 5)
	if len(out[0]) != 15 || out[1][9] != 1 || out[1][14] != 0 {
		t.Fatalf("padded() = %v", out)
	}

	if same := padded(buf, 0); &same[0][0] != &buf[0][0] {
		t.Fatal("padded(0) copied the buffer")
	}
}

func TestProcessBlocksMatchesSingleCall(t *testing.T) {
	setup := func() *vocalchain.Processor {
		proc, err := newProcessor(logrus.New(), 2, 5, "")
		if err != nil {
			t.Fatalf("newProcessor() error = %v", err)
		}

		proc.Prepare(44100, 128)
		proc.RubberDuckFM().SetEnabled(true)
		proc.RubberDuckFM().SetQuackIntensity(1)

		return proc
	}

	got := testutil.Planar(2, testutil.DeterministicSine(200, 44100, 0.5, 1000))
	want := testutil.Clone(got)

	processBlocks(setup(), got, 100)
	setup().Process(want)

	testutil.RequireEqual32(t, got, want)
}

func TestBestSIMD(t *testing.T) {
	if got := bestSIMD(cpu.Features{Architecture: "386"}); got != cpu.SIMDNone {
		t.Fatalf("bestSIMD(none) = %v, want %v", got, cpu.SIMDNone)
	}

	if got := bestSIMD(cpu.Features{HasSSE2: true, HasAVX2: true, Architecture: "amd64"}); got != cpu.SIMDAVX2 {
		t.Fatalf("bestSIMD(avx2) = %v, want %v", got, cpu.SIMDAVX2)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	if got := newLogger("debug").GetLevel(); got != logrus.DebugLevel {
		t.Fatalf("level = %v, want debug", got)
	}

	if got := newLogger("bogus").GetLevel(); got != logrus.InfoLevel {
		t.Fatalf("level = %v, want info", got)
	}
}
