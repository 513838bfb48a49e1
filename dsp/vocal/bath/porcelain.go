package bath

import (
	"math"

	"github.com/cwbudde/algo-vocal/dsp/core"
	"github.com/cwbudde/algo-vocal/dsp/delay"
	"github.com/cwbudde/algo-vocal/dsp/vocal"
)

// NumReflections is the number of reflection taps.
const NumReflections = 8

// maxJitterMs is the largest tap perturbation, reached at tileScatter 1.
const maxJitterMs = 1.0

var (
	reflectionDelaysMs = [NumReflections]float64{5.3, 8.7, 12.1, 17.4, 23.8, 31.2, 42.5, 56.7}
	reflectionGains    = [NumReflections]float64{0.30, 0.25, 0.20, 0.18, 0.15, 0.12, 0.10, 0.08}
)

// PorcelainReflections is an eight-tap early-reflection network. Every
// sample each tap delay is jittered by up to ±tileScatter ms, and each tap
// gain is shaped by an edge-slap resonance whose sign alternates between
// even and odd taps.
type PorcelainReflections struct {
	vocal.Base

	tileScatter core.Param
	edgeSlap    core.Param

	lines  []*delay.Line
	jitter [NumReflections]float64

	peakDelay core.Gauge
}

// NewPorcelainReflections returns a disabled module prepared for the
// default format.
func NewPorcelainReflections(opts ...vocal.Option) *PorcelainReflections {
	m := &PorcelainReflections{}
	m.Init("PorcelainReflections", opts...)
	m.tileScatter.Init(0, 0, 1)
	m.edgeSlap.Init(0, 0, 1)
	m.Prepare(core.DefaultSampleRate, core.DefaultBlockSize)

	return m
}

// SetTileScatter sets the jitter and wet amount, clamped to [0, 1].
func (m *PorcelainReflections) SetTileScatter(v float64) { m.tileScatter.Store(v) }

// TileScatter returns the jitter and wet amount.
func (m *PorcelainReflections) TileScatter() float64 { return m.tileScatter.Load() }

// SetEdgeSlap sets the tap resonance depth, clamped to [0, 1].
func (m *PorcelainReflections) SetEdgeSlap(v float64) { m.edgeSlap.Store(v) }

// EdgeSlap returns the tap resonance depth.
func (m *PorcelainReflections) EdgeSlap() float64 { return m.edgeSlap.Load() }

// Capacity returns the largest read offset, in samples, the lines serve.
func (m *PorcelainReflections) Capacity() float64 {
	if len(m.lines) == 0 {
		return 0
	}

	return m.lines[0].MaxDelay()
}

// PeakDelay returns the largest tap offset used since the last Reset.
func (m *PorcelainReflections) PeakDelay() float64 { return m.peakDelay.Load() }

// TapDelay returns the offset in samples of tap r for a jitter value u in
// [-0.5, 0.5).
func TapDelay(r int, u, tileScatter, sampleRate float64) float64 {
	ms := reflectionDelaysMs[r] + u*tileScatter*2*maxJitterMs
	return ms / 1000 * sampleRate
}

// Resonance returns the gain factor of tap r for the given edge slap.
func Resonance(r int, edgeSlap float64) float64 {
	return 1 + edgeSlap*0.5*math.Sin(math.Pi*(float64(r)+0.5))
}

// Prepare allocates one delay line per channel, long enough for the last
// tap at full jitter.
func (m *PorcelainReflections) Prepare(sampleRate float64, blockSize int) {
	m.SetFormat(sampleRate, blockSize)

	longest := TapDelay(NumReflections-1, 0.5, 1, m.SampleRate())

	m.lines = m.lines[:0]

	for range m.MaxChannels() {
		line, err := delay.ForDuration(math.Ceil(longest) + 1)
		if err != nil {
			m.lines = nil
			break
		}

		m.lines = append(m.lines, line)
	}

	m.Reset()
}

// Process adds the reflections in place.
func (m *PorcelainReflections) Process(buf [][]float32) {
	scatter := m.tileScatter.Load()
	if !m.Enabled() || scatter <= 0 || len(m.lines) == 0 {
		return
	}

	sr := m.SampleRate()
	slap := m.edgeSlap.Load()
	mix := m.Mix()
	rng := m.Rand()
	channels := m.Channels(buf)
	limit := m.Capacity()
	peak := m.peakDelay.Load()

	var gains [NumReflections]float64
	for r := range gains {
		gains[r] = reflectionGains[r] * Resonance(r, slap)
	}

	for i := range vocal.Frames(buf) {
		for r := range m.jitter {
			d := min(TapDelay(r, rng.Float64()-0.5, scatter, sr), limit)
			m.jitter[r] = d
			peak = max(peak, d)
		}

		for ch := range channels {
			x := float64(buf[ch][i])
			line := m.lines[ch]
			line.Write(x)

			wet := 0.0
			for r, d := range m.jitter {
				wet += line.ReadFractional(d) * gains[r]
			}

			buf[ch][i] = float32(vocal.Blend(x, x+wet*scatter, mix))
		}
	}

	m.peakDelay.Store(peak)
}

// Reset clears the delay lines.
func (m *PorcelainReflections) Reset() {
	for _, line := range m.lines {
		line.Reset()
	}

	m.jitter = [NumReflections]float64{}
	m.peakDelay.Store(0)
	m.Reseed()
}
