package vocal

import (
	"math/rand"

	"github.com/cwbudde/algo-vocal/dsp/core"
)

// Module is one stage of the vocal chain.
//
// Prepare sizes all state for the given format and may be called again on
// format changes. Process transforms a channel-major buffer in place and
// never allocates. Reset clears transient state and keeps parameters.
type Module interface {
	Name() string
	Prepare(sampleRate float64, blockSize int)
	Process(buf [][]float32)
	Reset()
	Enabled() bool
	SetEnabled(enabled bool)
	Mix() float64
	SetMix(mix float64)
	Latency() int
}

// Base carries the state every module shares.
type Base struct {
	name     string
	channels int
	seed     int64

	enabled core.Flag
	mix     core.Param

	sampleRate float64
	blockSize  int

	rng *rand.Rand
}

// Init configures a Base in place: disabled, mix 1, default format. It is
// meant for construction time, before the module is shared.
func (b *Base) Init(name string, opts ...Option) {
	cfg := applyOptions(opts)

	b.name = name
	b.channels = cfg.channels
	b.seed = cfg.seed
	b.sampleRate = core.DefaultSampleRate
	b.blockSize = core.DefaultBlockSize
	b.rng = rand.New(rand.NewSource(cfg.seed))
	b.enabled.Store(false)
	b.mix.Init(1, 0, 1)
}

// Name returns the module name.
func (b *Base) Name() string { return b.name }

// Enabled reports whether the module processes audio.
func (b *Base) Enabled() bool { return b.enabled.Load() }

// SetEnabled toggles processing.
func (b *Base) SetEnabled(enabled bool) { b.enabled.Store(enabled) }

// Mix returns the wet/dry mix in [0, 1].
func (b *Base) Mix() float64 { return b.mix.Load() }

// SetMix sets the wet/dry mix, clamped to [0, 1].
func (b *Base) SetMix(mix float64) { b.mix.Store(mix) }

// Latency returns 0; shifting modules override it.
func (b *Base) Latency() int { return 0 }

// SampleRate returns the prepared sample rate.
func (b *Base) SampleRate() float64 { return b.sampleRate }

// BlockSize returns the prepared host block size.
func (b *Base) BlockSize() int { return b.blockSize }

// MaxChannels returns the number of channels the module processes.
func (b *Base) MaxChannels() int { return b.channels }

// Seed returns the generator seed.
func (b *Base) Seed() int64 { return b.seed }

// Rand returns the module's generator.
func (b *Base) Rand() *rand.Rand { return b.rng }

// SetFormat stores a sanitized sample rate and block size.
func (b *Base) SetFormat(sampleRate float64, blockSize int) {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(sampleRate),
		core.WithBlockSize(blockSize),
	)

	b.sampleRate = cfg.SampleRate
	b.blockSize = cfg.BlockSize
}

// Reseed restarts the generator from the configured seed.
func (b *Base) Reseed() {
	b.rng.Seed(b.seed)
}

// Channels returns how many channels of buf the module touches.
func (b *Base) Channels(buf [][]float32) int {
	return min(len(buf), b.channels)
}

// Frames returns the number of samples per channel in buf.
func Frames(buf [][]float32) int {
	if len(buf) == 0 {
		return 0
	}

	return len(buf[0])
}

// Blend returns dry*(1-mix) + wet*mix.
func Blend(dry, wet, mix float64) float64 {
	return dry*(1-mix) + wet*mix
}

// Bipolar returns a uniform value in [-1, 1).
func Bipolar(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}
