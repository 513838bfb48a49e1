package human

import (
	"github.com/cwbudde/algo-vocal/dsp/core"
	"github.com/cwbudde/algo-vocal/dsp/vocal"
	"github.com/cwbudde/algo-vocal/dsp/vocal/internal/fastmath"
)

const maxFormantShift = 5.0

// FormantWhispers moves the vocal formants along the same LFO search as
// PitchDriftBrain while the pitch stays put. Shift values are in octaves;
// the applied formant scale is 2^shift.
type FormantWhispers struct {
	vocal.Base

	shiftLow  core.Param
	shiftHigh core.Param
	lfoSpeed  core.Param
	randomize core.Flag

	search vocal.Search
	bank   shiftBank

	lfoPhase     core.Gauge
	currentShift core.Gauge
	targetShift  core.Gauge
	formantScale core.Gauge
}

// NewFormantWhispers returns a disabled module prepared for the default
// format.
func NewFormantWhispers(opts ...vocal.Option) *FormantWhispers {
	m := &FormantWhispers{}
	m.Init("FormantWhispers", opts...)
	m.shiftLow.Init(0, -maxFormantShift, maxFormantShift)
	m.shiftHigh.Init(0, -maxFormantShift, maxFormantShift)
	m.lfoSpeed.Init(defaultLFOSpeed, 0, 1)
	m.randomize.Store(true)
	m.formantScale.Store(1)
	m.Prepare(core.DefaultSampleRate, core.DefaultBlockSize)

	return m
}

// SetShiftLow sets the lower shift bound, clamped to [-5, 5].
func (m *FormantWhispers) SetShiftLow(v float64) { m.shiftLow.Store(v) }

// SetShiftHigh sets the upper shift bound, clamped to [-5, 5].
func (m *FormantWhispers) SetShiftHigh(v float64) { m.shiftHigh.Store(v) }

// ShiftLow returns the lower shift bound.
func (m *FormantWhispers) ShiftLow() float64 { return m.shiftLow.Load() }

// ShiftHigh returns the upper shift bound.
func (m *FormantWhispers) ShiftHigh() float64 { return m.shiftHigh.Load() }

// SetLFOSpeed sets the normalized LFO speed in [0, 1] (0.1 to 5 Hz).
func (m *FormantWhispers) SetLFOSpeed(v float64) { m.lfoSpeed.Store(v) }

// LFOSpeed returns the normalized LFO speed.
func (m *FormantWhispers) LFOSpeed() float64 { return m.lfoSpeed.Load() }

// SetRandomizeMode chooses random targets (true) or the range boundaries.
func (m *FormantWhispers) SetRandomizeMode(on bool) { m.randomize.Store(on) }

// RandomizeMode reports whether targets are drawn at random.
func (m *FormantWhispers) RandomizeMode() bool { return m.randomize.Load() }

// LFOPhase returns the LFO phase in [0, 1) at the end of the last block.
func (m *FormantWhispers) LFOPhase() float64 { return m.lfoPhase.Load() }

// CurrentShift returns the eased shift at the end of the last block.
func (m *FormantWhispers) CurrentShift() float64 { return m.currentShift.Load() }

// TargetShift returns the target of the current half-cycle.
func (m *FormantWhispers) TargetShift() float64 { return m.targetShift.Load() }

// FormantScale returns the formant ratio applied to the last block.
func (m *FormantWhispers) FormantScale() float64 { return m.formantScale.Load() }

// Latency returns the shifting delay in samples, or 0 while the range is
// neutral and the module bypasses.
func (m *FormantWhispers) Latency() int {
	if neutralRange(m.shiftLow.Load(), m.shiftHigh.Load()) {
		return 0
	}

	return m.bank.latency()
}

// Prepare allocates one shifting engine per channel.
func (m *FormantWhispers) Prepare(sampleRate float64, blockSize int) {
	m.SetFormat(sampleRate, blockSize)
	m.bank.prepare(m.MaxChannels())
	m.Reset()
}

// Process applies the formant movement in place.
func (m *FormantWhispers) Process(buf [][]float32) {
	if !m.Enabled() {
		m.bank.bypass()
		return
	}

	low, high := m.shiftLow.Load(), m.shiftHigh.Load()
	if low > high {
		low, high = high, low
	}

	if neutralRange(low, high) || !m.bank.ready() {
		m.bank.bypass()
		m.formantScale.Store(1)
		return
	}

	m.bank.engage()

	scale := fastmath.Pow2(m.search.Value())
	m.bank.setScales(1, scale)
	m.formantScale.Store(scale)

	inc := vocal.LFORate(m.lfoSpeed.Load()) / m.SampleRate()
	randomize := m.randomize.Load()
	mix := m.Mix()
	channels := m.Channels(buf)
	rng := m.Rand()

	for i := range vocal.Frames(buf) {
		m.search.Advance(inc, low, high, randomize, rng)

		for ch := range channels {
			x := buf[ch][i]
			y := m.bank.processSample(ch, x)
			buf[ch][i] = float32(vocal.Blend(float64(x), float64(y), mix))
		}
	}

	m.lfoPhase.Store(m.search.Phase())
	m.currentShift.Store(m.search.Value())
	m.targetShift.Store(m.search.Target())
}

// Reset clears the search, the engines and the generator.
func (m *FormantWhispers) Reset() {
	m.search.Reset()
	m.bank.reset()
	m.Reseed()
	m.lfoPhase.Store(0)
	m.currentShift.Store(0)
	m.targetShift.Store(0)
	m.formantScale.Store(1)
}
