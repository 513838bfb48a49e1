package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vocal/dsp/interp"
)

// Option configures a Line at construction time.
type Option func(*Line)

// WithMode selects the fractional interpolation algorithm.
func WithMode(mode interp.Mode) Option {
	return func(d *Line) {
		d.mode = mode
	}
}

// Line is a circular delay line. A delay of 0 reads the most recently
// written sample.
type Line struct {
	buffer   []float64
	writePos int
	mode     interp.Mode
}

// New returns a delay line of fixed size. The default interpolation is Hermite.
func New(size int, opts ...Option) (*Line, error) {
	if size < 4 {
		return nil, fmt.Errorf("delay size must be >= 4: %d", size)
	}

	d := &Line{buffer: make([]float64, size), mode: interp.Hermite}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	return d, nil
}

// ForDuration returns a line that can be read up to maxDelaySamples in the
// past with the given interpolation mode.
func ForDuration(maxDelaySamples float64, opts ...Option) (*Line, error) {
	if maxDelaySamples < 0 || math.IsNaN(maxDelaySamples) || math.IsInf(maxDelaySamples, 0) {
		return nil, fmt.Errorf("delay duration must be >= 0 and finite: %f", maxDelaySamples)
	}

	// Hermite needs one sample beyond the integer part plus one guard.
	return New(int(math.Ceil(maxDelaySamples))+4, opts...)
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Mode returns the interpolation mode.
func (d *Line) Mode() interp.Mode {
	return d.mode
}

// MaxDelay returns the largest fractional delay ReadFractional accepts
// without clamping.
func (d *Line) MaxDelay() float64 {
	if d.mode == interp.Linear {
		return float64(len(d.buffer) - 2)
	}

	return float64(len(d.buffer) - 3)
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples. The delay is wrapped into the
// buffer length.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	readPos := (d.writePos - 1 - delay) % size
	if readPos < 0 {
		readPos += size
	}
	return d.buffer[readPos]
}

// ReadFractional reads a fractional delay, clamped to [0, MaxDelay].
func (d *Line) ReadFractional(delay float64) float64 {
	if !(delay > 0) {
		delay = 0
	}
	if maxDelay := d.MaxDelay(); delay > maxDelay {
		delay = maxDelay
	}

	p := int(delay)
	t := delay - float64(p)

	if d.mode == interp.Linear {
		return interp.Linear2(t, d.Read(p), d.Read(p+1))
	}

	xm1 := d.Read(max(0, p-1))
	x0 := d.Read(p)
	x1 := d.Read(p + 1)
	x2 := d.Read(p + 2)
	return interp.Hermite4(t, xm1, x0, x1, x2)
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
