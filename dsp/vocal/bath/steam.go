package bath

import (
	"math"

	"github.com/cwbudde/algo-vocal/dsp/core"
	"github.com/cwbudde/algo-vocal/dsp/filter/biquad"
	"github.com/cwbudde/algo-vocal/dsp/filter/design"
	"github.com/cwbudde/algo-vocal/dsp/vocal"
)

const (
	steamMaxCutoffHz   = 20000.0
	steamCutoffRangeHz = 15000.0
	steamMinCutoffHz   = 500.0
	steamNyquistShare  = 0.45
	steamSmoothing     = 0.9999
	fogThreshold       = 0.3
	fogLevel           = 0.01
)

// SteamModulator darkens the voice as the room steams up. The low-pass
// cutoff follows humidity directly, while the wet amount follows a slowly
// building steam intensity. Fog mode adds a faint noise floor once the
// steam is thick enough.
type SteamModulator struct {
	vocal.Base

	humidity core.Param
	fogMode  core.Flag

	filters []biquad.Section
	steam   float64
	cutoff  float64

	steamIntensity core.Gauge
	cutoffHz       core.Gauge
}

// NewSteamModulator returns a disabled module prepared for the default
// format.
func NewSteamModulator(opts ...vocal.Option) *SteamModulator {
	m := &SteamModulator{}
	m.Init("SteamModulator", opts...)
	m.humidity.Init(0, 0, 1)
	m.Prepare(core.DefaultSampleRate, core.DefaultBlockSize)

	return m
}

// SetHumidity sets the humidity, clamped to [0, 1].
func (m *SteamModulator) SetHumidity(v float64) { m.humidity.Store(v) }

// Humidity returns the humidity.
func (m *SteamModulator) Humidity() float64 { return m.humidity.Load() }

// SetFogMode toggles the fog noise floor.
func (m *SteamModulator) SetFogMode(on bool) { m.fogMode.Store(on) }

// FogMode reports whether fog mode is on.
func (m *SteamModulator) FogMode() bool { return m.fogMode.Load() }

// SteamIntensity returns the smoothed steam level after the last block.
func (m *SteamModulator) SteamIntensity() float64 { return m.steamIntensity.Load() }

// CutoffHz returns the low-pass cutoff used for the last block.
func (m *SteamModulator) CutoffHz() float64 { return m.cutoffHz.Load() }

// SteamCutoff returns the low-pass cutoff for a humidity at a sample rate.
func SteamCutoff(humidity, sampleRate float64) float64 {
	cutoff := math.Max(steamMinCutoffHz, steamMaxCutoffHz-humidity*steamCutoffRangeHz)
	return math.Min(cutoff, steamNyquistShare*sampleRate)
}

// Prepare sizes the per-channel filters.
func (m *SteamModulator) Prepare(sampleRate float64, blockSize int) {
	m.SetFormat(sampleRate, blockSize)
	m.filters = make([]biquad.Section, m.MaxChannels())
	m.Reset()
}

// Process filters in place.
func (m *SteamModulator) Process(buf [][]float32) {
	humidity := m.humidity.Load()
	if !m.Enabled() || humidity <= 0 {
		return
	}

	cutoff := SteamCutoff(humidity, m.SampleRate())
	if cutoff != m.cutoff {
		coeffs := design.Lowpass(cutoff, design.DefaultQ, m.SampleRate())
		for i := range m.filters {
			m.filters[i].SetCoefficients(coeffs)
		}

		m.cutoff = cutoff
	}

	fog := m.fogMode.Load()
	mix := m.Mix()
	rng := m.Rand()
	channels := m.Channels(buf)

	for i := range vocal.Frames(buf) {
		m.steam = steamSmoothing*m.steam + (1-steamSmoothing)*humidity
		wet := m.steam * mix

		for ch := range channels {
			x := float64(buf[ch][i])
			y := m.filters[ch].Process(x)

			if fog && m.steam > fogThreshold {
				y += vocal.Bipolar(rng) * fogLevel * m.steam
			}

			buf[ch][i] = float32(vocal.Blend(x, y, wet))
		}
	}

	m.steamIntensity.Store(m.steam)
	m.cutoffHz.Store(m.cutoff)
}

// Reset clears the filters and the steam build-up.
func (m *SteamModulator) Reset() {
	for i := range m.filters {
		m.filters[i].Reset()
	}

	m.steam = 0
	m.cutoff = 0
	m.steamIntensity.Store(0)
	m.cutoffHz.Store(0)
	m.Reseed()
}
