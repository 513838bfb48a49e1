package buffer

import "fmt"

// Ring is a fixed-capacity sample FIFO. Samples are read strictly in the
// order they were written and Available never exceeds Capacity.
//
// Ring does not allocate after construction and is not thread-safe: the
// producer and consumer are expected to run on the same audio thread.
type Ring struct {
	data      []float64
	read      int
	write     int
	available int

	underruns uint64
	overruns  uint64
}

// NewRing returns an empty ring holding up to capacity samples.
func NewRing(capacity int) (*Ring, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring capacity must be > 0: %d", capacity)
	}

	return &Ring{data: make([]float64, capacity)}, nil
}

// Capacity returns the maximum number of buffered samples.
func (r *Ring) Capacity() int { return len(r.data) }

// Available returns the number of samples ready to be read.
func (r *Ring) Available() int { return r.available }

// Free returns the number of samples that can be written without overrun.
func (r *Ring) Free() int { return len(r.data) - r.available }

// Write appends as many samples from src as fit and returns the count.
// A short write is recorded as an overrun; buffered data is never overwritten.
func (r *Ring) Write(src []float64) int {
	n := min(len(src), r.Free())
	if n < len(src) {
		r.overruns++
	}

	first := min(n, len(r.data)-r.write)
	copy(r.data[r.write:r.write+first], src[:first])
	copy(r.data[:n-first], src[first:n])

	r.write += n
	if r.write >= len(r.data) {
		r.write -= len(r.data)
	}

	r.available += n

	return n
}

// Read moves up to len(dst) samples into dst and returns the count.
// Reading fewer samples than requested is recorded as an underrun.
func (r *Ring) Read(dst []float64) int {
	n := min(len(dst), r.available)
	if n < len(dst) {
		r.underruns++
	}

	first := min(n, len(r.data)-r.read)
	copy(dst[:first], r.data[r.read:r.read+first])
	copy(dst[first:n], r.data[:n-first])

	r.read += n
	if r.read >= len(r.data) {
		r.read -= len(r.data)
	}

	r.available -= n

	return n
}

// Pop removes and returns the oldest sample. ok is false when the ring is
// empty, which is not counted as an underrun.
func (r *Ring) Pop() (v float64, ok bool) {
	if r.available == 0 {
		return 0, false
	}

	v = r.data[r.read]

	r.read++
	if r.read >= len(r.data) {
		r.read = 0
	}

	r.available--

	return v, true
}

// Reset discards buffered samples and clears the statistics.
func (r *Ring) Reset() {
	for i := range r.data {
		r.data[i] = 0
	}

	r.read = 0
	r.write = 0
	r.available = 0
	r.underruns = 0
	r.overruns = 0
}

// Stats returns the underrun and overrun counters.
func (r *Ring) Stats() (underruns, overruns uint64) {
	return r.underruns, r.overruns
}
