package pitch

import "testing"

// identityEngine copies input to output with no latency.
type identityEngine struct {
	block  int
	pitch  float64
	resets int
}

func (e *identityEngine) SetPitchScale(scale float64) { e.pitch = scale }
func (e *identityEngine) SetFormantScale(float64) {}
func (e *identityEngine) BlockSize() int { return e.block }
func (e *identityEngine) Latency() int { return 0 }
func (e *identityEngine) ShiftBlock(in, out []float64) { copy(out, in) }
func (e *identityEngine) Reset() { e.resets++ }

func TestNewBlockAdapterValidation(t *testing.T) {
	if _, err := NewBlockAdapter(nil); err == nil {
		t.Fatal("expected error for nil engine")
	}
	if _, err := NewBlockAdapter(&identityEngine{block: 0}); err == nil {
		t.Fatal("expected error for zero block size")
	}
}

func TestBlockAdapterDelaysByEngineBlock(t *testing.T) {
	for _, hostBlock := range []int{1, 7, 64, 100, 512} {
		engine := &identityEngine{block: 64}
		a, err := NewBlockAdapter(engine)
		if err != nil {
			t.Fatal(err)
		}
		if a.Latency() != 64 {
			t.Fatalf("Latency() = %d, want 64", a.Latency())
		}

		const total = 2048
		out := make([]float32, 0, total)
		buf := make([]float32, hostBlock)
		for start := 0; start < total; start += hostBlock {
			n := min(hostBlock, total-start)
			for i := range n {
				buf[i] = float32(start + i + 1)
			}
			a.Process(buf[:n])
			out = append(out, buf[:n]...)
		}

		for i, v := range out {
			want := float32(0)
			if i >= 64 {
				want = float32(i - 64 + 1)
			}
			if v != want {
				t.Fatalf("host block %d: out[%d] = %v, want %v", hostBlock, i, v, want)
			}
		}
	}
}

func TestBlockAdapterFIFOOrderAndBounds(t *testing.T) {
	a, err := NewBlockAdapter(&identityEngine{block: 32})
	if err != nil {
		t.Fatal(err)
	}

	last := float32(0)
	next := float32(1)
	buf := make([]float32, 45)
	for range 200 {
		for i := range buf {
			buf[i] = next
			next++
		}
		a.Process(buf)

		if a.Available() > a.Capacity() {
			t.Fatalf("Available() = %d exceeds Capacity() = %d", a.Available(), a.Capacity())
		}
		for i, v := range buf {
			if v == 0 {
				continue
			}
			if v != last+1 {
				t.Fatalf("sample %d: provenance %v after %v", i, v, last)
			}
			last = v
		}
	}

	if _, over := a.Stats(); over != 0 {
		t.Fatalf("overruns = %d, want 0", over)
	}
}

func TestBlockAdapterReset(t *testing.T) {
	engine := &identityEngine{block: 16}
	a, err := NewBlockAdapter(engine)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 40)
	for i := range buf {
		buf[i] = 1
	}
	a.Process(buf)
	a.Reset()

	if a.Available() != 0 {
		t.Fatalf("Available() = %d after Reset, want 0", a.Available())
	}
	if engine.resets != 1 {
		t.Fatalf("engine resets = %d, want 1", engine.resets)
	}

	for i := range buf {
		buf[i] = 1
	}
	a.Process(buf[:16])
	for i, v := range buf[:16] {
		if v != 0 {
			t.Fatalf("out[%d] = %v after Reset, want startup silence", i, v)
		}
	}
}
