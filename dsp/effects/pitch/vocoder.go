package pitch

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vocal/dsp/window"
)

const (
	defaultVocoderFrameSize = 1024
	minVocoderFrameSize     = 64
	vocoderOverlap          = 4
	defaultEnvelopeRadius   = 6
	envelopeFloor           = 1e-12

	// MinScale and MaxScale bound both the pitch and the formant scale.
	MinScale = 1.0 / 32
	MaxScale = 32.0
)

// VocoderOption configures a Vocoder.
type VocoderOption func(*vocoderConfig) error

type vocoderConfig struct {
	frameSize      int
	envelopeRadius int
}

// WithVocoderFrameSize sets the FFT frame size. It must be a power of two
// >= 64. The block size is a quarter of the frame size.
func WithVocoderFrameSize(size int) VocoderOption {
	return func(cfg *vocoderConfig) error {
		if size < minVocoderFrameSize || !isPowerOf2(size) {
			return fmt.Errorf("vocoder frame size must be power-of-two and >= %d: %d", minVocoderFrameSize, size)
		}

		cfg.frameSize = size

		return nil
	}
}

// WithEnvelopeRadius sets the half-width, in bins, of the moving average
// used to estimate the spectral envelope for formant shifting.
func WithEnvelopeRadius(bins int) VocoderOption {
	return func(cfg *vocoderConfig) error {
		if bins < 1 {
			return fmt.Errorf("vocoder envelope radius must be >= 1: %d", bins)
		}

		cfg.envelopeRadius = bins

		return nil
	}
}

// Vocoder is a streaming phase vocoder with independent pitch and formant
// scales.
//
// Each ShiftBlock call advances the analysis by one hop (a quarter frame).
// Pitch is moved by shifting bins and scaling their instantaneous
// frequencies; formants are moved by resampling a smoothed magnitude
// envelope. With both scales at 1 the input is reconstructed, delayed by
// Latency samples.
//
// Vocoder does not allocate after construction and is not thread-safe.
type Vocoder struct {
	frameSize int
	hop       int
	radius    int

	pitchScale   float64
	formantScale float64

	plan *algofft.Plan[complex128]

	windowCoeffs []float64
	olaGain      []float64
	omega        []float64
	prevPhase    []float64
	sumPhase     []float64

	inFrame   []float64
	outAccum  []float64
	windowed  []float64
	spectrum  []complex128
	timeFrame []complex128

	magnitudes  []float64
	instFreqs   []float64
	envelope    []float64
	fine        []float64
	prefix      []float64
	shiftedMag  []float64
	shiftedFreq []float64
}

// NewVocoder creates a Vocoder with neutral scales.
func NewVocoder(opts ...VocoderOption) (*Vocoder, error) {
	cfg := vocoderConfig{
		frameSize:      defaultVocoderFrameSize,
		envelopeRadius: defaultEnvelopeRadius,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	n := cfg.frameSize

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("vocoder: failed to create FFT plan: %w", err)
	}

	v := &Vocoder{
		frameSize:    n,
		hop:          n / vocoderOverlap,
		radius:       cfg.envelopeRadius,
		pitchScale:   1,
		formantScale: 1,
		plan:         plan,
		windowCoeffs: window.Generate(window.TypeHann, n, window.WithPeriodic()),
	}

	bins := n/2 + 1

	v.omega = make([]float64, bins)
	for k := range bins {
		v.omega[k] = 2 * math.Pi * float64(k) / float64(n)
	}

	v.olaGain = make([]float64, v.hop)
	for i := range v.hop {
		sum := 0.0
		for j := i; j < n; j += v.hop {
			sum += v.windowCoeffs[j] * v.windowCoeffs[j]
		}

		v.olaGain[i] = 1 / sum
	}

	v.prevPhase = make([]float64, bins)
	v.sumPhase = make([]float64, bins)
	v.inFrame = make([]float64, n)
	v.outAccum = make([]float64, n)
	v.windowed = make([]float64, n)
	v.spectrum = make([]complex128, n)
	v.timeFrame = make([]complex128, n)

	v.magnitudes = make([]float64, bins)
	v.instFreqs = make([]float64, bins)
	v.envelope = make([]float64, bins)
	v.fine = make([]float64, bins)
	v.prefix = make([]float64, bins+1)
	v.shiftedMag = make([]float64, bins)
	v.shiftedFreq = make([]float64, bins)

	return v, nil
}

// FrameSize returns the FFT frame size.
func (v *Vocoder) FrameSize() int { return v.frameSize }

// BlockSize returns the number of samples consumed and produced per call.
func (v *Vocoder) BlockSize() int { return v.hop }

// Latency returns the analysis-synthesis delay in samples.
func (v *Vocoder) Latency() int { return v.frameSize - v.hop }

// PitchScale returns the current pitch ratio.
func (v *Vocoder) PitchScale() float64 { return v.pitchScale }

// FormantScale returns the current formant ratio.
func (v *Vocoder) FormantScale() float64 { return v.formantScale }

// SetPitchScale sets the pitch ratio, clamped to [MinScale, MaxScale].
// Non-finite values are ignored.
func (v *Vocoder) SetPitchScale(scale float64) {
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return
	}

	v.pitchScale = math.Min(math.Max(scale, MinScale), MaxScale)
}

// SetFormantScale sets the formant ratio, clamped to [MinScale, MaxScale].
// Non-finite values are ignored.
func (v *Vocoder) SetFormantScale(scale float64) {
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return
	}

	v.formantScale = math.Min(math.Max(scale, MinScale), MaxScale)
}

// Reset clears the analysis history, phase tracking and overlap-add tail.
func (v *Vocoder) Reset() {
	clear(v.prevPhase)
	clear(v.sumPhase)
	clear(v.inFrame)
	clear(v.outAccum)
}

// ShiftBlock consumes BlockSize samples from in and writes BlockSize samples
// to out. Slices shorter than BlockSize leave the vocoder untouched.
func (v *Vocoder) ShiftBlock(in, out []float64) {
	hop := v.hop
	if len(in) < hop || len(out) < hop {
		return
	}

	n := v.frameSize

	copy(v.inFrame, v.inFrame[hop:])
	copy(v.inFrame[n-hop:], in[:hop])

	err := window.ApplyCoefficientsTo(v.windowed, v.inFrame, v.windowCoeffs)
	if err != nil {
		clear(out[:hop])
		return
	}

	for i, x := range v.windowed {
		v.spectrum[i] = complex(x, 0)
	}

	err = v.plan.Forward(v.spectrum, v.spectrum)
	if err != nil {
		clear(out[:hop])
		return
	}

	v.analyze()
	v.shiftBins()
	v.synthesize()

	err = v.plan.Inverse(v.timeFrame, v.spectrum)
	if err != nil {
		clear(out[:hop])
		return
	}

	for i := range n {
		v.outAccum[i] += real(v.timeFrame[i]) * v.windowCoeffs[i]
	}

	for i := range hop {
		out[i] = v.outAccum[i] * v.olaGain[i]
	}

	copy(v.outAccum, v.outAccum[hop:])
	clear(v.outAccum[n-hop:])
}

// analyze computes magnitudes and instantaneous frequencies (radians per
// sample) of the current frame.
func (v *Vocoder) analyze() {
	half := v.frameSize / 2
	hopF := float64(v.hop)

	for k := 0; k <= half; k++ {
		re := real(v.spectrum[k])
		im := imag(v.spectrum[k])
		v.magnitudes[k] = math.Hypot(re, im)
		phase := math.Atan2(im, re)

		delta := wrapPhase(phase - v.prevPhase[k] - v.omega[k]*hopF)

		v.instFreqs[k] = v.omega[k] + delta/hopF
		v.prevPhase[k] = phase
	}
}

func (v *Vocoder) shiftBins() {
	half := v.frameSize / 2
	pitch := v.pitchScale
	formant := v.formantScale

	if pitch == 1 && formant == 1 {
		copy(v.shiftedMag, v.magnitudes)
		copy(v.shiftedFreq, v.instFreqs)

		return
	}

	// Equal scales move the whole spectrum; the envelope is not needed.
	separate := pitch != formant
	if separate {
		v.estimateEnvelope()
	}

	source := v.magnitudes
	if separate {
		source = v.fine
	}

	for k := 0; k <= half; k++ {
		srcK := float64(k) / pitch
		if srcK > float64(half) {
			v.shiftedMag[k] = 0
			v.shiftedFreq[k] = v.omega[k]

			continue
		}

		mag := lerpBins(source, srcK)
		v.shiftedFreq[k] = lerpBins(v.instFreqs, srcK) * pitch

		if separate {
			envK := float64(k) / formant
			if envK > float64(half) {
				mag = 0
			} else {
				mag *= lerpBins(v.envelope, envK)
			}
		}

		v.shiftedMag[k] = mag
	}
}

// estimateEnvelope smooths the magnitudes with a centered moving average
// and splits them into envelope and fine structure.
func (v *Vocoder) estimateEnvelope() {
	bins := len(v.magnitudes)

	v.prefix[0] = 0
	for k, m := range v.magnitudes {
		v.prefix[k+1] = v.prefix[k] + m
	}

	for k := range bins {
		lo := max(k-v.radius, 0)
		hi := min(k+v.radius, bins-1)
		env := (v.prefix[hi+1] - v.prefix[lo]) / float64(hi-lo+1)
		v.envelope[k] = env

		if env > envelopeFloor {
			v.fine[k] = v.magnitudes[k] / env
		} else {
			v.fine[k] = 0
		}
	}
}

func (v *Vocoder) synthesize() {
	half := v.frameSize / 2
	hopF := float64(v.hop)

	for k := 0; k <= half; k++ {
		v.sumPhase[k] = wrapPhase(v.sumPhase[k] + v.shiftedFreq[k]*hopF)
		sin, cos := math.Sincos(v.sumPhase[k])
		v.spectrum[k] = complex(v.shiftedMag[k]*cos, v.shiftedMag[k]*sin)
	}

	// Mirror for a real-valued inverse transform.
	v.spectrum[0] = complex(real(v.spectrum[0]), 0)
	v.spectrum[half] = complex(real(v.spectrum[half]), 0)

	for k := 1; k < half; k++ {
		c := v.spectrum[k]
		v.spectrum[v.frameSize-k] = complex(real(c), -imag(c))
	}
}

func lerpBins(values []float64, pos float64) float64 {
	lo := int(pos)
	if lo >= len(values)-1 {
		return values[len(values)-1]
	}

	frac := pos - float64(lo)

	return values[lo]*(1-frac) + values[lo+1]*frac
}

func wrapPhase(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	return x - math.Pi
}

func isPowerOf2(v int) bool {
	return v > 0 && (v&(v-1)) == 0
}
