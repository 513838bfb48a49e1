package pitch

import (
	"fmt"

	"github.com/cwbudde/algo-vocal/dsp/buffer"
)

// fifoBlocks is the FIFO capacity in engine blocks.
const fifoBlocks = 4

// BlockAdapter runs an Engine with a fixed block size on host blocks of any
// length, for one channel.
//
// Input samples are staged until a full engine block is available; the
// engine output is queued in a FIFO that is drained one sample per input
// sample. Until the first engine block completes the adapter outputs
// silence, so the end-to-end delay is BlockSize plus the engine latency.
type BlockAdapter struct {
	engine Engine

	inStage  []float64
	outStage []float64
	fill     int

	fifo *buffer.Ring
}

// NewBlockAdapter wraps engine. The FIFO holds four engine blocks.
func NewBlockAdapter(engine Engine) (*BlockAdapter, error) {
	if engine == nil {
		return nil, fmt.Errorf("block adapter: engine must not be nil")
	}

	block := engine.BlockSize()
	if block <= 0 {
		return nil, fmt.Errorf("block adapter: engine block size must be > 0: %d", block)
	}

	fifo, err := buffer.NewRing(fifoBlocks * block)
	if err != nil {
		return nil, fmt.Errorf("block adapter: %w", err)
	}

	return &BlockAdapter{
		engine:   engine,
		inStage:  make([]float64, block),
		outStage: make([]float64, block),
		fifo:     fifo,
	}, nil
}

// Engine returns the wrapped engine.
func (a *BlockAdapter) Engine() Engine { return a.engine }

// Latency returns the total delay in samples from input to output.
func (a *BlockAdapter) Latency() int { return len(a.inStage) + a.engine.Latency() }

// Available returns the number of engine output samples queued in the FIFO.
func (a *BlockAdapter) Available() int { return a.fifo.Available() }

// Capacity returns the FIFO capacity in samples.
func (a *BlockAdapter) Capacity() int { return a.fifo.Capacity() }

// Stats returns the FIFO underrun and overrun counters.
func (a *BlockAdapter) Stats() (underruns, overruns uint64) { return a.fifo.Stats() }

// Process shifts buf in place.
func (a *BlockAdapter) Process(buf []float32) {
	for i, x := range buf {
		buf[i] = a.ProcessSample(x)
	}
}

// ProcessSample pushes one input sample and returns one output sample.
func (a *BlockAdapter) ProcessSample(x float32) float32 {
	y, _ := a.fifo.Pop()

	a.inStage[a.fill] = float64(x)
	a.fill++

	if a.fill == len(a.inStage) {
		a.engine.ShiftBlock(a.inStage, a.outStage)
		a.fifo.Write(a.outStage)
		a.fill = 0
	}

	return float32(y)
}

// Reset clears staging, the FIFO and the engine state.
func (a *BlockAdapter) Reset() {
	clear(a.inStage)
	clear(a.outStage)
	a.fill = 0
	a.fifo.Reset()
	a.engine.Reset()
}
