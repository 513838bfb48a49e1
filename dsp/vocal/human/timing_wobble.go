package human

import (
	"math"

	"github.com/cwbudde/algo-vocal/dsp/core"
	"github.com/cwbudde/algo-vocal/dsp/delay"
	"github.com/cwbudde/algo-vocal/dsp/vocal"
)

const (
	wobbleUpdateInterval = 256
	wobbleMaxSeconds     = 0.01
	wobbleSwingShare     = 0.5
	// wobbleStepSmoothing is the per-update smoothing; it is spread over
	// the update interval as a per-sample one-pole.
	wobbleStepSmoothing = 0.95
)

// TimingWobble delays the voice by a slowly wandering amount, producing
// micro-timing jitter plus a constant swing bias.
type TimingWobble struct {
	vocal.Base

	wobbleAmount core.Param
	swingFeel    core.Param

	lines   []*delay.Line
	counter int
	target  float64
	current float64
	coeff   float64

	currentDelay core.Gauge
}

// NewTimingWobble returns a disabled module prepared for the default
// format.
func NewTimingWobble(opts ...vocal.Option) *TimingWobble {
	m := &TimingWobble{}
	m.Init("TimingWobble", opts...)
	m.wobbleAmount.Init(0, 0, 1)
	m.swingFeel.Init(0, 0, 1)
	m.coeff = math.Pow(wobbleStepSmoothing, 1.0/wobbleUpdateInterval)
	m.Prepare(core.DefaultSampleRate, core.DefaultBlockSize)

	return m
}

// SetWobbleAmount sets the jitter depth, clamped to [0, 1] (1 = ±10 ms).
func (m *TimingWobble) SetWobbleAmount(v float64) { m.wobbleAmount.Store(v) }

// WobbleAmount returns the jitter depth.
func (m *TimingWobble) WobbleAmount() float64 { return m.wobbleAmount.Load() }

// SetSwingFeel sets the constant delay bias, clamped to [0, 1].
func (m *TimingWobble) SetSwingFeel(v float64) { m.swingFeel.Store(v) }

// SwingFeel returns the swing bias.
func (m *TimingWobble) SwingFeel() float64 { return m.swingFeel.Load() }

// CurrentDelay returns the delay, in samples, used for the last sample.
func (m *TimingWobble) CurrentDelay() float64 { return m.currentDelay.Load() }

// Capacity returns the largest delay, in samples, the lines can serve.
func (m *TimingWobble) Capacity() float64 {
	if len(m.lines) == 0 {
		return 0
	}

	return m.lines[0].MaxDelay()
}

// Prepare allocates one second of delay per channel.
func (m *TimingWobble) Prepare(sampleRate float64, blockSize int) {
	m.SetFormat(sampleRate, blockSize)

	m.lines = m.lines[:0]

	for range m.MaxChannels() {
		line, err := delay.ForDuration(m.SampleRate())
		if err != nil {
			m.lines = nil
			break
		}

		m.lines = append(m.lines, line)
	}

	m.Reset()
}

// Process applies the wobble in place.
func (m *TimingWobble) Process(buf [][]float32) {
	amount := m.wobbleAmount.Load()
	if !m.Enabled() || amount <= 0 || len(m.lines) == 0 {
		return
	}

	maxWobble := m.SampleRate() * wobbleMaxSeconds * amount
	swing := m.swingFeel.Load() * maxWobble * wobbleSwingShare
	limit := m.Capacity()
	mix := m.Mix()
	rng := m.Rand()
	channels := m.Channels(buf)

	for i := range vocal.Frames(buf) {
		if m.counter == 0 {
			m.target = math.Max(0, vocal.Bipolar(rng)*maxWobble+swing)
		}

		m.counter++
		if m.counter >= wobbleUpdateInterval {
			m.counter = 0
		}

		m.current = core.Clamp(m.coeff*m.current+(1-m.coeff)*m.target, 0, limit)

		for ch := range channels {
			x := float64(buf[ch][i])
			line := m.lines[ch]
			line.Write(x)
			buf[ch][i] = float32(vocal.Blend(x, line.ReadFractional(m.current), mix))
		}
	}

	m.currentDelay.Store(m.current)
}

// Reset clears the delay lines and the wobble state.
func (m *TimingWobble) Reset() {
	for _, line := range m.lines {
		line.Reset()
	}

	m.counter = 0
	m.target = 0
	m.current = 0
	m.currentDelay.Store(0)
	m.Reseed()
}
