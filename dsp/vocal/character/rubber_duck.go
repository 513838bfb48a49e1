package character

import (
	"math"

	"github.com/cwbudde/algo-vocal/dsp/core"
	"github.com/cwbudde/algo-vocal/dsp/vocal"
)

// QuackMode selects the modulator rate and depth of RubberDuckFM.
type QuackMode int

const (
	// WetQuack modulates at 800 Hz with depth 0.3.
	WetQuack QuackMode = iota
	// AngryDuck modulates at 1200 Hz with depth 0.5.
	AngryDuck
	// SlowWobble modulates at 6 Hz with depth 0.4.
	SlowWobble
	// Cartoon modulates at 400 Hz with depth 0.35.
	Cartoon
)

// String returns the mode name.
func (q QuackMode) String() string {
	switch q {
	case AngryDuck:
		return "angry"
	case SlowWobble:
		return "wobble"
	case Cartoon:
		return "cartoon"
	default:
		return "wet"
	}
}

// ParseQuackMode maps a name from String back to a QuackMode.
func ParseQuackMode(name string) (QuackMode, bool) {
	for _, q := range []QuackMode{WetQuack, AngryDuck, SlowWobble, Cartoon} {
		if q.String() == name {
			return q, true
		}
	}

	return WetQuack, false
}

// Shape returns the modulator frequency in Hz and the depth.
func (q QuackMode) Shape() (freqHz, depth float64) {
	switch q {
	case AngryDuck:
		return 1200, 0.5
	case SlowWobble:
		return 6, 0.4
	case Cartoon:
		return 400, 0.35
	default:
		return 800, 0.3
	}
}

// RubberDuckFM multiplies the voice by 1 + sin(phase)·intensity·depth,
// with a fixed-rate sinusoidal modulator.
type RubberDuckFM struct {
	vocal.Base

	intensity core.Param
	mode      core.Param

	phase float64
}

// NewRubberDuckFM returns a disabled module prepared for the default format.
func NewRubberDuckFM(opts ...vocal.Option) *RubberDuckFM {
	m := &RubberDuckFM{}
	m.Init("RubberDuckFM", opts...)
	m.intensity.Init(0, 0, 1)
	m.mode.Init(float64(WetQuack), float64(WetQuack), float64(Cartoon))
	m.Prepare(core.DefaultSampleRate, core.DefaultBlockSize)

	return m
}

// SetQuackIntensity sets the modulation amount, clamped to [0, 1].
func (m *RubberDuckFM) SetQuackIntensity(v float64) { m.intensity.Store(v) }

// QuackIntensity returns the modulation amount.
func (m *RubberDuckFM) QuackIntensity() float64 { return m.intensity.Load() }

// SetQuackMode selects the modulator rate and depth.
func (m *RubberDuckFM) SetQuackMode(q QuackMode) { m.mode.Store(float64(q)) }

// QuackMode returns the active mode.
func (m *RubberDuckFM) QuackMode() QuackMode { return QuackMode(m.mode.Load()) }

// Prepare stores the format; the module has no buffers.
func (m *RubberDuckFM) Prepare(sampleRate float64, blockSize int) {
	m.SetFormat(sampleRate, blockSize)
	m.Reset()
}

// Process applies the quack in place.
func (m *RubberDuckFM) Process(buf [][]float32) {
	intensity := m.intensity.Load()
	if !m.Enabled() || intensity <= 0 {
		return
	}

	freq, depth := m.QuackMode().Shape()
	inc := 2 * math.Pi * freq / m.SampleRate()
	mix := m.Mix()
	channels := m.Channels(buf)

	for i := range vocal.Frames(buf) {
		gain := 1 + math.Sin(m.phase)*intensity*depth

		m.phase += inc
		if m.phase >= 2*math.Pi {
			m.phase -= 2 * math.Pi
		}

		for ch := range channels {
			x := float64(buf[ch][i])
			buf[ch][i] = float32(vocal.Blend(x, x*gain, mix))
		}
	}
}

// Reset rewinds the modulator.
func (m *RubberDuckFM) Reset() {
	m.phase = 0
}
