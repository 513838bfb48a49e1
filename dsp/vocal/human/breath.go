package human

import (
	"math"

	"github.com/cwbudde/algo-vocal/dsp/core"
	"github.com/cwbudde/algo-vocal/dsp/filter/biquad"
	"github.com/cwbudde/algo-vocal/dsp/filter/design"
	"github.com/cwbudde/algo-vocal/dsp/vocal"
)

const (
	breathEnvelopeDecay = 0.999
	breathThreshold     = 0.01
	breathNoiseLevel    = 0.1
	huffCutoffHz        = 2000.0
	huffGain            = 2.0
)

// BreathNoiseEngine adds breath noise that follows the loudness of the
// voice. An envelope follower tracks |x|; above a small threshold, noise
// scaled by the envelope and the breath intensity is added. Huff mode
// high-passes the noise at 2 kHz and doubles it.
type BreathNoiseEngine struct {
	vocal.Base

	intensity core.Param
	huffMode  core.Flag

	envelope []float64
	huff     []biquad.Section
}

// NewBreathNoiseEngine returns a disabled module prepared for the default
// format.
func NewBreathNoiseEngine(opts ...vocal.Option) *BreathNoiseEngine {
	m := &BreathNoiseEngine{}
	m.Init("BreathNoiseEngine", opts...)
	m.intensity.Init(0, 0, 1)
	m.Prepare(core.DefaultSampleRate, core.DefaultBlockSize)

	return m
}

// SetBreathIntensity sets the noise amount, clamped to [0, 1].
func (m *BreathNoiseEngine) SetBreathIntensity(v float64) { m.intensity.Store(v) }

// BreathIntensity returns the noise amount.
func (m *BreathNoiseEngine) BreathIntensity() float64 { return m.intensity.Load() }

// SetHuffMode toggles the high-passed, louder breath texture.
func (m *BreathNoiseEngine) SetHuffMode(on bool) { m.huffMode.Store(on) }

// HuffMode reports whether huff mode is on.
func (m *BreathNoiseEngine) HuffMode() bool { return m.huffMode.Load() }

// Envelope returns the follower value of channel ch.
func (m *BreathNoiseEngine) Envelope(ch int) float64 {
	if ch < 0 || ch >= len(m.envelope) {
		return 0
	}

	return m.envelope[ch]
}

// Prepare sizes the per-channel followers and huff filters.
func (m *BreathNoiseEngine) Prepare(sampleRate float64, blockSize int) {
	m.SetFormat(sampleRate, blockSize)

	m.envelope = make([]float64, m.MaxChannels())
	m.huff = make([]biquad.Section, m.MaxChannels())

	coeffs := design.Highpass(huffCutoffHz, design.DefaultQ, m.SampleRate())
	for i := range m.huff {
		m.huff[i].SetCoefficients(coeffs)
	}

	m.Reset()
}

// Process adds breath noise in place.
func (m *BreathNoiseEngine) Process(buf [][]float32) {
	intensity := m.intensity.Load()
	mix := m.Mix()

	if !m.Enabled() || intensity <= 0 || mix <= 0 {
		return
	}

	huff := m.huffMode.Load()
	rng := m.Rand()
	channels := m.Channels(buf)

	for i := range vocal.Frames(buf) {
		for ch := range channels {
			x := float64(buf[ch][i])

			env := breathEnvelopeDecay*m.envelope[ch] + (1-breathEnvelopeDecay)*math.Abs(x)
			m.envelope[ch] = env

			if env <= breathThreshold {
				continue
			}

			noise := vocal.Bipolar(rng) * intensity * breathNoiseLevel * env
			if huff {
				noise = m.huff[ch].Process(noise) * huffGain
			}

			buf[ch][i] = float32(x + noise*mix)
		}
	}
}

// Reset clears the followers and filters.
func (m *BreathNoiseEngine) Reset() {
	clear(m.envelope)

	for i := range m.huff {
		m.huff[i].Reset()
	}

	m.Reseed()
}
