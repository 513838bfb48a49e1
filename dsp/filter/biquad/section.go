package biquad

import (
	"math"
	"math/cmplx"
)

// States below this magnitude are flushed to zero.
const denormalFloor = 1e-30

// Coefficients of
//
//	H(z) = (B0 + B1·z⁻¹ + B2·z⁻²) / (1 + A1·z⁻¹ + A2·z⁻²)
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Passthrough returns coefficients with unity response.
func Passthrough() Coefficients {
	return Coefficients{B0: 1}
}

// Response evaluates H at freqHz.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z1 := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// GainDB returns the magnitude response at freqHz in dB.
func (c Coefficients) GainDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// Section is a transposed direct form II biquad. The zero value has zero
// coefficients and outputs silence until SetCoefficients is called.
type Section struct {
	c      Coefficients
	s1, s2 float64
}

// NewSection returns a section with coefficients c and cleared state.
func NewSection(c Coefficients) *Section {
	return &Section{c: c}
}

// Coefficients returns the active coefficients.
func (s *Section) Coefficients() Coefficients { return s.c }

// SetCoefficients retunes the section. The state is kept so a cutoff can
// move between blocks without a click.
func (s *Section) SetCoefficients(c Coefficients) { s.c = c }

// Process filters one sample.
func (s *Section) Process(x float64) float64 {
	y := s.c.B0*x + s.s1
	s.s1 = s.c.B1*x - s.c.A1*y + s.s2
	s.s2 = s.c.B2*x - s.c.A2*y

	if math.Abs(s.s1) < denormalFloor {
		s.s1 = 0
	}

	if math.Abs(s.s2) < denormalFloor {
		s.s2 = 0
	}

	return y
}

// ProcessBlock filters buf in place.
func (s *Section) ProcessBlock(buf []float32) {
	for i, x := range buf {
		buf[i] = float32(s.Process(float64(x)))
	}
}

// Reset clears the state.
func (s *Section) Reset() {
	s.s1, s.s2 = 0, 0
}
