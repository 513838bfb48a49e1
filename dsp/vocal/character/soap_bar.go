package character

import (
	"math"

	"github.com/cwbudde/algo-vocal/dsp/core"
	"github.com/cwbudde/algo-vocal/dsp/delay"
	"github.com/cwbudde/algo-vocal/dsp/interp"
	"github.com/cwbudde/algo-vocal/dsp/vocal"
	"github.com/cwbudde/algo-vocal/dsp/window"
)

const (
	soapBufferSeconds = 2.0
	soapSlipChance    = 0.001
	soapMaxSlip       = 1000.0
	soapSlipSmoothing = 0.999
	soapTargetDecay   = 0.995
	soapBlurNear      = 2.0
	soapBlurFar       = 4.0
	soapSlipGrainMin  = 128
	soapWrapGrainMin  = 256
	soapGrainSpread   = 512
	soapDefaultGrain  = 512
)

// SoapBarGlitch is a granular delay that occasionally slips. A slip picks a
// new read offset of up to 1000 samples and a new grain size; the offset
// eases in and decays back toward zero while a raised-cosine grain window
// shapes the wet signal. Soapy blur mixes in two nearby reads.
type SoapBarGlitch struct {
	vocal.Base

	slipperiness core.Param
	blur         core.Param

	lines      []*delay.Line
	slip       float64
	targetSlip float64
	grainSize  int
	grainPhase float64

	slipAmount core.Gauge
	grainGauge core.Gauge
	readOffset core.Gauge
}

// NewSoapBarGlitch returns a disabled module prepared for the default
// format.
func NewSoapBarGlitch(opts ...vocal.Option) *SoapBarGlitch {
	m := &SoapBarGlitch{}
	m.Init("SoapBarGlitch", opts...)
	m.slipperiness.Init(0, 0, 1)
	m.blur.Init(0, 0, 1)
	m.Prepare(core.DefaultSampleRate, core.DefaultBlockSize)

	return m
}

// SetSlipperiness sets the slip probability scale, clamped to [0, 1].
func (m *SoapBarGlitch) SetSlipperiness(v float64) { m.slipperiness.Store(v) }

// Slipperiness returns the slip probability scale.
func (m *SoapBarGlitch) Slipperiness() float64 { return m.slipperiness.Load() }

// SetSoapyBlur sets the grain smear amount, clamped to [0, 1].
func (m *SoapBarGlitch) SetSoapyBlur(v float64) { m.blur.Store(v) }

// SoapyBlur returns the grain smear amount.
func (m *SoapBarGlitch) SoapyBlur() float64 { return m.blur.Load() }

// SlipAmount returns the signed slip offset after the last block.
func (m *SoapBarGlitch) SlipAmount() float64 { return m.slipAmount.Load() }

// GrainSize returns the grain length in samples after the last block.
func (m *SoapBarGlitch) GrainSize() int { return int(m.grainGauge.Load()) }

// ReadOffset returns the grain read offset, in samples, after the last block.
func (m *SoapBarGlitch) ReadOffset() float64 { return m.readOffset.Load() }

// MaxReadOffset returns the largest offset the grain reads use, leaving
// room for the far blur tap.
func (m *SoapBarGlitch) MaxReadOffset() float64 {
	if len(m.lines) == 0 {
		return 0
	}

	return m.lines[0].MaxDelay() - soapBlurFar
}

// Prepare allocates a two second grain buffer per channel.
func (m *SoapBarGlitch) Prepare(sampleRate float64, blockSize int) {
	m.SetFormat(sampleRate, blockSize)

	m.lines = m.lines[:0]

	for range m.MaxChannels() {
		line, err := delay.ForDuration(soapBufferSeconds*m.SampleRate(), delay.WithMode(interp.Linear))
		if err != nil {
			m.lines = nil
			break
		}

		m.lines = append(m.lines, line)
	}

	m.Reset()
}

// Process applies the glitch in place.
func (m *SoapBarGlitch) Process(buf [][]float32) {
	slipperiness := m.slipperiness.Load()
	if !m.Enabled() || slipperiness <= 0 || len(m.lines) == 0 {
		return
	}

	blur := m.blur.Load()
	mix := m.Mix()
	rng := m.Rand()
	channels := m.Channels(buf)
	limit := m.MaxReadOffset()
	offset := 1.0

	for i := range vocal.Frames(buf) {
		if rng.Float64() < slipperiness*soapSlipChance {
			m.targetSlip = vocal.Bipolar(rng) * soapMaxSlip
			m.grainSize = soapSlipGrainMin + rng.Intn(soapGrainSpread)
		}

		m.slip = soapSlipSmoothing*m.slip + (1-soapSlipSmoothing)*m.targetSlip
		m.targetSlip *= soapTargetDecay

		offset = math.Min(math.Abs(m.slip)+1, limit)
		shape := 0.5 + 0.5*window.At(window.TypeHann, m.grainPhase)

		m.grainPhase += 1 / float64(m.grainSize)
		if m.grainPhase >= 1 {
			m.grainPhase--
			m.grainSize = soapWrapGrainMin + rng.Intn(soapGrainSpread)
		}

		for ch := range channels {
			x := float64(buf[ch][i])
			line := m.lines[ch]
			line.Write(x)

			grain := line.ReadFractional(offset)
			if blur > 0 {
				near := line.ReadFractional(offset + soapBlurNear)
				far := line.ReadFractional(offset + soapBlurFar)
				grain = grain*(1-blur*0.5) + (near+far)*blur*0.25
			}

			buf[ch][i] = float32(vocal.Blend(x, grain*shape, mix))
		}
	}

	m.slipAmount.Store(m.slip)
	m.grainGauge.Store(float64(m.grainSize))
	m.readOffset.Store(offset)
}

// Reset clears the grain buffers and the slip state.
func (m *SoapBarGlitch) Reset() {
	for _, line := range m.lines {
		line.Reset()
	}

	m.slip = 0
	m.targetSlip = 0
	m.grainSize = soapDefaultGrain
	m.grainPhase = 0
	m.slipAmount.Store(0)
	m.grainGauge.Store(soapDefaultGrain)
	m.readOffset.Store(1)
	m.Reseed()
}
