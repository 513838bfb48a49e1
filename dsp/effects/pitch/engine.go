package pitch

// Engine is a fixed-block pitch/formant shifting engine.
//
// ShiftBlock consumes exactly BlockSize samples from in and writes exactly
// BlockSize samples to out. Latency reports the delay, in samples, between
// a sample entering ShiftBlock and the same sample leaving it.
type Engine interface {
	SetPitchScale(scale float64)
	SetFormantScale(scale float64)
	BlockSize() int
	Latency() int
	ShiftBlock(in, out []float64)
	Reset()
}

var _ Engine = (*Vocoder)(nil)
