package human

import (
	"github.com/cwbudde/algo-vocal/dsp/core"
	"github.com/cwbudde/algo-vocal/dsp/vocal"
	"github.com/cwbudde/algo-vocal/dsp/vocal/internal/fastmath"
)

const (
	maxDriftCents      = 150.0
	legacyCentsPerUnit = 100.0
	defaultLFOSpeed    = 0.3
)

// PitchDriftBrain detunes the voice along an LFO-driven search between two
// cent boundaries, like a singer hunting for the note.
//
// The range is either symmetric (SetIntensity, ±100 cents at 1) or
// asymmetric (SetCentsLow/SetCentsHigh). The eased cent value is turned
// into a pitch ratio once per block and applied by a formant-preserving
// phase vocoder per channel.
type PitchDriftBrain struct {
	vocal.Base

	intensity  core.Param
	centsLow   core.Param
	centsHigh  core.Param
	asymmetric core.Flag
	lfoSpeed   core.Param
	randomize  core.Flag

	search vocal.Search
	bank   shiftBank

	lfoPhase     core.Gauge
	currentCents core.Gauge
	targetCents  core.Gauge
	pitchScale   core.Gauge
}

// NewPitchDriftBrain returns a disabled module prepared for the default
// format.
func NewPitchDriftBrain(opts ...vocal.Option) *PitchDriftBrain {
	m := &PitchDriftBrain{}
	m.Init("PitchDriftBrain", opts...)
	m.intensity.Init(0, 0, 1)
	m.centsLow.Init(0, -maxDriftCents, maxDriftCents)
	m.centsHigh.Init(0, -maxDriftCents, maxDriftCents)
	m.lfoSpeed.Init(defaultLFOSpeed, 0, 1)
	m.randomize.Store(true)
	m.pitchScale.Store(1)
	m.Prepare(core.DefaultSampleRate, core.DefaultBlockSize)

	return m
}

// SetIntensity selects the symmetric range ±100·v cents, v in [0, 1].
func (m *PitchDriftBrain) SetIntensity(v float64) {
	m.intensity.Store(v)
	m.asymmetric.Store(false)
}

// Intensity returns the symmetric-range intensity.
func (m *PitchDriftBrain) Intensity() float64 { return m.intensity.Load() }

// SetCentsLow sets the lower bound in cents, clamped to [-150, 150], and
// selects the asymmetric range.
func (m *PitchDriftBrain) SetCentsLow(v float64) {
	m.centsLow.Store(v)
	m.asymmetric.Store(true)
}

// SetCentsHigh sets the upper bound in cents, clamped to [-150, 150], and
// selects the asymmetric range.
func (m *PitchDriftBrain) SetCentsHigh(v float64) {
	m.centsHigh.Store(v)
	m.asymmetric.Store(true)
}

// CentsLow returns the asymmetric lower bound.
func (m *PitchDriftBrain) CentsLow() float64 { return m.centsLow.Load() }

// CentsHigh returns the asymmetric upper bound.
func (m *PitchDriftBrain) CentsHigh() float64 { return m.centsHigh.Load() }

// SetLFOSpeed sets the normalized LFO speed in [0, 1] (0.1 to 5 Hz).
func (m *PitchDriftBrain) SetLFOSpeed(v float64) { m.lfoSpeed.Store(v) }

// LFOSpeed returns the normalized LFO speed.
func (m *PitchDriftBrain) LFOSpeed() float64 { return m.lfoSpeed.Load() }

// SetRandomizeMode chooses random targets (true) or the range boundaries.
func (m *PitchDriftBrain) SetRandomizeMode(on bool) { m.randomize.Store(on) }

// RandomizeMode reports whether targets are drawn at random.
func (m *PitchDriftBrain) RandomizeMode() bool { return m.randomize.Load() }

// LFOPhase returns the LFO phase in [0, 1) at the end of the last block.
func (m *PitchDriftBrain) LFOPhase() float64 { return m.lfoPhase.Load() }

// CurrentCents returns the eased detune at the end of the last block.
func (m *PitchDriftBrain) CurrentCents() float64 { return m.currentCents.Load() }

// TargetCents returns the target of the current half-cycle.
func (m *PitchDriftBrain) TargetCents() float64 { return m.targetCents.Load() }

// PitchScale returns the pitch ratio applied to the last block.
func (m *PitchDriftBrain) PitchScale() float64 { return m.pitchScale.Load() }

// Latency returns the shifting delay in samples, or 0 while the range is
// neutral and the module bypasses.
func (m *PitchDriftBrain) Latency() int {
	if neutralRange(m.centsRange()) {
		return 0
	}

	return m.bank.latency()
}

func (m *PitchDriftBrain) centsRange() (low, high float64) {
	if !m.asymmetric.Load() {
		c := m.intensity.Load() * legacyCentsPerUnit
		return -c, c
	}

	low, high = m.centsLow.Load(), m.centsHigh.Load()
	if low > high {
		low, high = high, low
	}

	return low, high
}

// Prepare allocates one shifting engine per channel.
func (m *PitchDriftBrain) Prepare(sampleRate float64, blockSize int) {
	m.SetFormat(sampleRate, blockSize)
	m.bank.prepare(m.MaxChannels())
	m.Reset()
}

// Process applies the drift in place.
func (m *PitchDriftBrain) Process(buf [][]float32) {
	if !m.Enabled() {
		m.bank.bypass()
		return
	}

	low, high := m.centsRange()
	if neutralRange(low, high) || !m.bank.ready() {
		m.bank.bypass()
		m.pitchScale.Store(1)
		return
	}

	m.bank.engage()

	scale := fastmath.Pow2(m.search.Value() / 1200)
	m.bank.setScales(scale, 1)
	m.pitchScale.Store(scale)

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
	m.currentCents.Store(m.search.Value())
	m.targetCents.Store(m.search.Target())
}

// Reset clears the search, the engines and the generator.
func (m *PitchDriftBrain) Reset() {
	m.search.Reset()
	m.bank.reset()
	m.Reseed()
	m.lfoPhase.Store(0)
	m.currentCents.Store(0)
	m.targetCents.Store(0)
	m.pitchScale.Store(1)
}
