package design

import (
	"math"

	"github.com/cwbudde/algo-vocal/dsp/filter/biquad"
)

// DefaultQ is the Butterworth quality factor.
const DefaultQ = 1 / math.Sqrt2

// rbj holds the intermediate terms shared by the cookbook designs.
type rbj struct {
	cosW0 float64
	alpha float64
}

func prototype(freq, q, sampleRate float64) (rbj, bool) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return rbj{}, false
	}

	if !(freq > 0 && freq < sampleRate/2) {
		return rbj{}, false
	}

	if !(q > 0) || math.IsInf(q, 0) {
		q = DefaultQ
	}

	sin, cos := math.Sincos(2 * math.Pi * freq / sampleRate)

	return rbj{cosW0: cos, alpha: sin / (2 * q)}, true
}

// coefficients divides the numerator and the shared denominator
// 1+α, -2cos w0, 1-α by a0.
func (p rbj) coefficients(b0, b1, b2 float64) biquad.Coefficients {
	inv := 1 / (1 + p.alpha)

	return biquad.Coefficients{
		B0: b0 * inv,
		B1: b1 * inv,
		B2: b2 * inv,
		A1: -2 * p.cosW0 * inv,
		A2: (1 - p.alpha) * inv,
	}
}

// Lowpass designs a second-order lowpass at freq Hz. Frequencies outside
// (0, Nyquist) give the zero filter; a non-positive q falls back to DefaultQ.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	p, ok := prototype(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	b := 1 - p.cosW0

	return p.coefficients(b/2, b, b/2)
}

// Highpass designs a second-order highpass at freq Hz, with the same
// argument handling as Lowpass.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	p, ok := prototype(freq, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	b := 1 + p.cosW0

	return p.coefficients(b/2, -b, b/2)
}
