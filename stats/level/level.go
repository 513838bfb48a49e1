// Package level measures peak and RMS levels of planar float32 audio.
package level

import (
	"math"

	"github.com/cwbudde/algo-vocal/dsp/core"
)

// Stats holds level statistics over every sample seen.
type Stats struct {
	Samples       int
	Peak          float64
	PeakDB        float64
	RMS           float64
	RMSDB         float64
	CrestFactorDB float64 // 0 for silence
	Clipped       int     // samples with |x| >= 1
	NonFinite     int
}

// Meter accumulates Stats block by block. The zero value is ready to use.
type Meter struct {
	n         int
	sumSq     float64
	peak      float64
	clipped   int
	nonFinite int
}

// Update adds every channel of buf. Non-finite samples are counted but do
// not enter the peak or RMS.
func (m *Meter) Update(buf [][]float32) {
	for _, data := range buf {
		for _, v := range data {
			x := float64(v)
			if math.IsNaN(x) || math.IsInf(x, 0) {
				m.nonFinite++
				continue
			}

			m.n++
			m.sumSq += x * x

			a := math.Abs(x)
			if a > m.peak {
				m.peak = a
			}

			if a >= 1 {
				m.clipped++
			}
		}
	}
}

// Result returns the statistics so far.
func (m *Meter) Result() Stats {
	if m.n == 0 {
		return Stats{
			PeakDB:    math.Inf(-1),
			RMSDB:     math.Inf(-1),
			NonFinite: m.nonFinite,
		}
	}

	rms := math.Sqrt(m.sumSq / float64(m.n))

	crest := 0.0
	if rms > 0 {
		crest = core.LinearToDB(m.peak / rms)
	}

	return Stats{
		Samples:       m.n,
		Peak:          m.peak,
		PeakDB:        core.LinearToDB(m.peak),
		RMS:           rms,
		RMSDB:         core.LinearToDB(rms),
		CrestFactorDB: crest,
		Clipped:       m.clipped,
		NonFinite:     m.nonFinite,
	}
}

// Reset clears the accumulated data.
func (m *Meter) Reset() {
	*m = Meter{}
}

// Measure returns the statistics of buf in one call.
func Measure(buf [][]float32) Stats {
	var m Meter
	m.Update(buf)

	return m.Result()
}
