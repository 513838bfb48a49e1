package vocal

import (
	"math"
	"math/rand"
)

// Search is the LFO-driven target search shared by the pitch and formant
// modules.
//
// The LFO phase advances once per sample. Whenever sin(2π·phase) changes
// sign a new target is chosen: a uniform draw from [low, high] in
// randomize mode, otherwise high for the rising half-cycle and low for the
// falling one. The value eases from the previous target to the new one
// with a raised-cosine curve over the position inside the half-cycle, so
// it is always a convex combination of the two.
type Search struct {
	phase       float64
	wasPositive bool
	started     bool

	previous float64
	target   float64
	value    float64
}

// Advance returns the value for the current sample and moves the phase by
// inc cycles. low must not exceed high.
func (s *Search) Advance(inc, low, high float64, randomize bool, rng *rand.Rand) float64 {
	positive := s.phase < 0.5

	if !s.started || positive != s.wasPositive {
		s.previous = s.target

		switch {
		case randomize:
			s.target = low + rng.Float64()*(high-low)
		case positive:
			s.target = high
		default:
			s.target = low
		}

		s.wasPositive = positive
		s.started = true
	}

	pos := s.phase * 2
	if !positive {
		pos = (s.phase - 0.5) * 2
	}

	blend := 0.5 * (1 - math.Cos(math.Pi*pos))
	s.value = s.previous + (s.target-s.previous)*blend

	s.phase += inc
	if s.phase >= 1 {
		s.phase -= math.Floor(s.phase)
	}

	return s.value
}

// Phase returns the LFO phase in [0, 1).
func (s *Search) Phase() float64 { return s.phase }

// Value returns the last eased value.
func (s *Search) Value() float64 { return s.value }

// Target returns the target of the current half-cycle.
func (s *Search) Target() float64 { return s.target }

// Previous returns the target of the previous half-cycle.
func (s *Search) Previous() float64 { return s.previous }

// Reset returns the search to phase 0 with all values at 0.
func (s *Search) Reset() {
	*s = Search{}
}

// LFORate maps a normalized speed in [0, 1] to 0.1..5 Hz.
func LFORate(speed float64) float64 {
	return 0.1 + 4.9*speed
}
