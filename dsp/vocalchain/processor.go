package vocalchain

import (
	"slices"

	"github.com/cwbudde/algo-vocal/dsp/core"
	"github.com/cwbudde/algo-vocal/dsp/vocal"
	"github.com/cwbudde/algo-vocal/dsp/vocal/bath"
	"github.com/cwbudde/algo-vocal/dsp/vocal/character"
	"github.com/cwbudde/algo-vocal/dsp/vocal/human"
	"github.com/sirupsen/logrus"
)

const defaultMasterMix = 0.5

// Processor owns one instance of every module and runs them in a fixed
// order: PitchDriftBrain, FormantWhispers, BreathNoiseEngine, TimingWobble,
// VolumePersonality, PorcelainReflections, SteamModulator, RubberDuckFM,
// SoapBarGlitch.
//
// Process is meant for the audio thread and never allocates or logs.
// Parameter setters on the modules and SetMasterMix may be called from
// another goroutine.
type Processor struct {
	log      logrus.FieldLogger
	channels int

	masterMix core.Param

	sampleRate float64
	blockSize  int

	pitch     *human.PitchDriftBrain
	formant   *human.FormantWhispers
	breath    *human.BreathNoiseEngine
	timing    *human.TimingWobble
	volume    *human.VolumePersonality
	porcelain *bath.PorcelainReflections
	steam     *bath.SteamModulator
	duck      *character.RubberDuckFM
	soap      *character.SoapBarGlitch

	modules []vocal.Module

	dry  [][]float32
	view [][]float32
}

// New builds a Processor prepared for 44.1 kHz and 512-sample blocks. All
// modules start disabled.
func New(opts ...Option) *Processor {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	moduleOpts := func(i int64) []vocal.Option {
		return []vocal.Option{vocal.WithSeed(cfg.seed + i), vocal.WithChannels(cfg.channels)}
	}

	p := &Processor{
		log:       cfg.logger,
		channels:  cfg.channels,
		pitch:     human.NewPitchDriftBrain(moduleOpts(0)...),
		formant:   human.NewFormantWhispers(moduleOpts(1)...),
		breath:    human.NewBreathNoiseEngine(moduleOpts(2)...),
		timing:    human.NewTimingWobble(moduleOpts(3)...),
		volume:    human.NewVolumePersonality(moduleOpts(4)...),
		porcelain: bath.NewPorcelainReflections(moduleOpts(5)...),
		steam:     bath.NewSteamModulator(moduleOpts(6)...),
		duck:      character.NewRubberDuckFM(moduleOpts(7)...),
		soap:      character.NewSoapBarGlitch(moduleOpts(8)...),
	}

	p.modules = []vocal.Module{
		p.pitch, p.formant, p.breath, p.timing, p.volume,
		p.porcelain, p.steam,
		p.duck, p.soap,
	}
	p.masterMix.Init(defaultMasterMix, 0, 1)
	p.Prepare(core.DefaultSampleRate, core.DefaultBlockSize)

	return p
}

// Modules returns the modules in processing order.
func (p *Processor) Modules() []vocal.Module { return slices.Clone(p.modules) }

// Lookup returns the module with the given name.
func (p *Processor) Lookup(name string) (vocal.Module, bool) {
	for _, m := range p.modules {
		if m.Name() == name {
			return m, true
		}
	}

	return nil, false
}

// PitchDriftBrain returns the pitch drift module.
func (p *Processor) PitchDriftBrain() *human.PitchDriftBrain { return p.pitch }

// FormantWhispers returns the formant module.
func (p *Processor) FormantWhispers() *human.FormantWhispers { return p.formant }

// BreathNoiseEngine returns the breath module.
func (p *Processor) BreathNoiseEngine() *human.BreathNoiseEngine { return p.breath }

// TimingWobble returns the timing module.
func (p *Processor) TimingWobble() *human.TimingWobble { return p.timing }

// VolumePersonality returns the volume module.
func (p *Processor) VolumePersonality() *human.VolumePersonality { return p.volume }

// PorcelainReflections returns the reflections module.
func (p *Processor) PorcelainReflections() *bath.PorcelainReflections { return p.porcelain }

// SteamModulator returns the steam module.
func (p *Processor) SteamModulator() *bath.SteamModulator { return p.steam }

// RubberDuckFM returns the quack module.
func (p *Processor) RubberDuckFM() *character.RubberDuckFM { return p.duck }

// SoapBarGlitch returns the glitch module.
func (p *Processor) SoapBarGlitch() *character.SoapBarGlitch { return p.soap }

// SetMasterMix sets the final wet/dry blend, clamped to [0, 1].
func (p *Processor) SetMasterMix(mix float64) { p.masterMix.Store(mix) }

// MasterMix returns the final wet/dry blend.
func (p *Processor) MasterMix() float64 { return p.masterMix.Load() }

// EnableAll enables or disables every module.
func (p *Processor) EnableAll(enabled bool) {
	for _, m := range p.modules {
		m.SetEnabled(enabled)
	}
}

// Channels returns the number of channels processed.
func (p *Processor) Channels() int { return p.channels }

// SampleRate returns the prepared sample rate.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// BlockSize returns the prepared block size.
func (p *Processor) BlockSize() int { return p.blockSize }

// Latency returns the summed latency of the enabled modules in samples.
func (p *Processor) Latency() int {
	total := 0

	for _, m := range p.modules {
		if m.Enabled() {
			total += m.Latency()
		}
	}

	return total
}

// Prepare sizes the dry buffer and prepares every module in order.
func (p *Processor) Prepare(sampleRate float64, blockSize int) {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(sampleRate),
		core.WithBlockSize(blockSize),
		core.WithChannels(p.channels),
	)

	p.sampleRate = cfg.SampleRate
	p.blockSize = cfg.BlockSize

	for _, m := range p.modules {
		m.Prepare(p.sampleRate, p.blockSize)
	}

	p.dry = make([][]float32, p.channels)
	for ch := range p.dry {
		p.dry[ch] = make([]float32, p.blockSize)
	}

	p.view = make([][]float32, p.channels)

	p.log.WithFields(logrus.Fields{
		"sample_rate": p.sampleRate,
		"block_size":  p.blockSize,
		"channels":    p.channels,
	}).Info("vocal processor prepared")
}

// Process runs the chain over buf in place. Buffers longer than the
// prepared block size are processed in sub-blocks; channels beyond the
// configured count are left untouched.
func (p *Processor) Process(buf [][]float32) {
	channels := min(len(buf), p.channels)
	n := vocal.Frames(buf)

	for pos := 0; pos < n; pos += p.blockSize {
		end := min(pos+p.blockSize, n)
		view := p.view[:channels]

		for ch := range view {
			view[ch] = buf[ch][pos:end]
		}

		p.processBlock(view)
	}
}

func (p *Processor) processBlock(buf [][]float32) {
	for ch, data := range buf {
		copy(p.dry[ch], data)
	}

	for _, m := range p.modules {
		m.Process(buf)
	}

	mix := p.masterMix.Load()

	switch mix {
	case 1:
		return
	case 0:
		for ch, data := range buf {
			copy(data, p.dry[ch][:len(data)])
		}

		return
	}

	for ch, data := range buf {
		dry := p.dry[ch]
		for i, wet := range data {
			data[i] = float32(vocal.Blend(float64(dry[i]), float64(wet), mix))
		}
	}
}

// Reset clears the transient state of every module.
func (p *Processor) Reset() {
	for _, m := range p.modules {
		m.Reset()
	}

	for _, d := range p.dry {
		clear(d)
	}

	p.log.Debug("vocal processor reset")
}
