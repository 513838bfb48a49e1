package human

import (
	"math"

	"github.com/cwbudde/algo-vocal/dsp/effects/pitch"
)

// shiftBank holds one vocoder and FIFO adapter per channel. It is shared by
// the pitch and formant modules, which differ only in the scale they drive.
type shiftBank struct {
	adapters []*pitch.BlockAdapter
	active   bool
}

// neutralRange reports whether a search range leaves the signal untouched.
func neutralRange(low, high float64) bool {
	return math.Max(math.Abs(low), math.Abs(high)) <= 0
}

func (b *shiftBank) prepare(channels int) {
	b.adapters = b.adapters[:0]
	b.active = false

	for range channels {
		v, err := pitch.NewVocoder()
		if err != nil {
			b.adapters = nil
			return
		}

		a, err := pitch.NewBlockAdapter(v)
		if err != nil {
			b.adapters = nil
			return
		}

		b.adapters = append(b.adapters, a)
	}
}

func (b *shiftBank) ready() bool { return len(b.adapters) > 0 }

func (b *shiftBank) setScales(pitchScale, formantScale float64) {
	for _, a := range b.adapters {
		e := a.Engine()
		e.SetPitchScale(pitchScale)
		e.SetFormantScale(formantScale)
	}
}

func (b *shiftBank) processSample(ch int, x float32) float32 {
	return b.adapters[ch].ProcessSample(x)
}

func (b *shiftBank) latency() int {
	if len(b.adapters) == 0 {
		return 0
	}

	return b.adapters[0].Latency()
}

func (b *shiftBank) reset() {
	for _, a := range b.adapters {
		a.Reset()
	}

	b.active = false
}

// engage clears audio buffered before a bypass so it is not replayed.
func (b *shiftBank) engage() {
	if !b.active {
		b.reset()
		b.active = true
	}
}

func (b *shiftBank) bypass() { b.active = false }
