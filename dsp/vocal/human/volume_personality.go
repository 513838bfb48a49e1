package human

import (
	"github.com/cwbudde/algo-vocal/dsp/core"
	"github.com/cwbudde/algo-vocal/dsp/vocal"
)

const volumeSmoothing = 0.999

// Personality selects how restless VolumePersonality is.
type Personality int

const (
	// Wavering retargets every 512 samples with ±10% depth.
	Wavering Personality = iota
	// Nervous retargets every 256 samples with ±15% depth.
	Nervous
	// Confident retargets every 1024 samples with ±5% depth.
	Confident
	// TikTokCompression retargets every 128 samples with ±20% depth.
	TikTokCompression
)

// String returns the personality name.
func (p Personality) String() string {
	switch p {
	case Nervous:
		return "nervous"
	case Confident:
		return "confident"
	case TikTokCompression:
		return "tiktok"
	default:
		return "wavering"
	}
}

// ParsePersonality maps a name from String back to a Personality.
func ParsePersonality(name string) (Personality, bool) {
	for _, p := range []Personality{Wavering, Nervous, Confident, TikTokCompression} {
		if p.String() == name {
			return p, true
		}
	}

	return Wavering, false
}

func (p Personality) shape() (interval int, depth float64) {
	switch p {
	case Nervous:
		return 256, 0.15
	case Confident:
		return 1024, 0.05
	case TikTokCompression:
		return 128, 0.2
	default:
		return 512, 0.1
	}
}

// VolumePersonality applies a slow random-walk gain. A new target
// 1 + uniform(-1,1)·intensity·depth is drawn every interval samples and
// the gain eases toward it every sample.
type VolumePersonality struct {
	vocal.Base

	intensity   core.Param
	personality core.Param

	counter int
	gain    float64
	target  float64

	currentGain core.Gauge
}

// NewVolumePersonality returns a disabled module prepared for the default
// format.
func NewVolumePersonality(opts ...vocal.Option) *VolumePersonality {
	m := &VolumePersonality{}
	m.Init("VolumePersonality", opts...)
	m.intensity.Init(0, 0, 1)
	m.personality.Init(float64(Wavering), float64(Wavering), float64(TikTokCompression))
	m.Prepare(core.DefaultSampleRate, core.DefaultBlockSize)

	return m
}

// SetIntensity sets the gain wander amount, clamped to [0, 1].
func (m *VolumePersonality) SetIntensity(v float64) { m.intensity.Store(v) }

// Intensity returns the gain wander amount.
func (m *VolumePersonality) Intensity() float64 { return m.intensity.Load() }

// SetPersonality selects the retarget interval and depth.
func (m *VolumePersonality) SetPersonality(p Personality) { m.personality.Store(float64(p)) }

// Personality returns the active personality.
func (m *VolumePersonality) Personality() Personality {
	return Personality(m.personality.Load())
}

// CurrentGain returns the gain applied to the last sample.
func (m *VolumePersonality) CurrentGain() float64 { return m.currentGain.Load() }

// Prepare stores the format; the module has no buffers.
func (m *VolumePersonality) Prepare(sampleRate float64, blockSize int) {
	m.SetFormat(sampleRate, blockSize)
	m.Reset()
}

// Process applies the gain in place.
func (m *VolumePersonality) Process(buf [][]float32) {
	intensity := m.intensity.Load()
	if !m.Enabled() || intensity <= 0 {
		return
	}

	interval, depth := m.Personality().shape()
	mix := m.Mix()
	rng := m.Rand()
	channels := m.Channels(buf)

	for i := range vocal.Frames(buf) {
		m.gain = volumeSmoothing*m.gain + (1-volumeSmoothing)*m.target

		if m.counter%interval == 0 {
			m.target = 1 + vocal.Bipolar(rng)*intensity*depth
			m.counter = 0
		}

		m.counter++

		for ch := range channels {
			x := float64(buf[ch][i])
			buf[ch][i] = float32(vocal.Blend(x, x*m.gain, mix))
		}
	}

	m.currentGain.Store(m.gain)
}

// Reset returns the gain to unity.
func (m *VolumePersonality) Reset() {
	m.counter = 0
	m.gain = 1
	m.target = 1
	m.currentGain.Store(1)
	m.Reseed()
}
