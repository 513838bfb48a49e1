package core

import (
	"math"
	"sync/atomic"
)

// Param is a float64 parameter cell safe for one writer (control thread)
// and one reader (audio thread). Values are clamped on every store.
type Param struct {
	bits     atomic.Uint64
	min, max float64
}

// NewParam returns a Param clamped to [min, max] holding def.
func NewParam(def, min, max float64) *Param {
	p := &Param{}
	p.Init(def, min, max)
	return p
}

// Init sets the range and initial value. It is meant for construction
// time, before the cell is shared between threads.
func (p *Param) Init(def, min, max float64) {
	if min > max {
		min, max = max, min
	}
	p.min, p.max = min, max
	p.Store(def)
}

// Load returns the current value.
func (p *Param) Load() float64 {
	return math.Float64frombits(p.bits.Load())
}

// Store clamps v to the parameter range and publishes it.
func (p *Param) Store(v float64) {
	p.bits.Store(math.Float64bits(Clamp(v, p.min, p.max)))
}

// Range returns the inclusive parameter range.
func (p *Param) Range() (min, max float64) {
	return p.min, p.max
}

// Gauge is an unclamped float64 published by the audio thread for
// read-only polling (meters, visualizers).
type Gauge struct {
	bits atomic.Uint64
}

// Load returns the last published value.
func (g *Gauge) Load() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Store publishes v.
func (g *Gauge) Store(v float64) {
	g.bits.Store(math.Float64bits(v))
}

// Flag is a boolean parameter cell with the same threading contract as Param.
type Flag struct {
	v atomic.Bool
}

// Load returns the current value.
func (f *Flag) Load() bool { return f.v.Load() }

// Store publishes v.
func (f *Flag) Store(v bool) { f.v.Store(v) }
