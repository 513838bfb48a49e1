package host

import (
	"testing"

	"github.com/cwbudde/algo-vocal/dsp/vocalchain"
	"github.com/cwbudde/algo-vocal/internal/testutil"
)

func TestDuplexPassesDryAtZeroMix(t *testing.T) {
	proc := vocalchain.New(vocalchain.WithSeed(1))
	proc.Prepare(48000, 128)
	proc.EnableAll(true)
	proc.SetMasterMix(0)

	in := testutil.Planar(2, testutil.DeterministicSine(440, 48000, 0.5, 128))
	out := [][]float32{make([]float32, 128), make([]float32, 128)}

	Duplex(proc, in, out)
	testutil.RequireEqual32(t, out, in)
}

func TestDuplexSilencesMissingInputs(t *testing.T) {
	proc := vocalchain.New(vocalchain.WithSeed(1))
	proc.Prepare(48000, 64)

	in := testutil.Planar(1, testutil.DC(0.5, 64))
	out := [][]float32{make([]float32, 64), make([]float32, 64)}

	for i := range out[1] {
		out[1][i] = 1
	}

	Duplex(proc, in, out)

	for i := range out[1] {
		if out[1][i] != 0 {
			t.Fatalf("out[1][%d] = %v, want 0", i, out[1][i])
		}

		if out[0][i] != 0.5 {
			t.Fatalf("out[0][%d] = %v, want 0.5", i, out[0][i])
		}
	}
}
