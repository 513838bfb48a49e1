// Package host runs a vocalchain.Processor on the default PortAudio input
// and output devices.
package host

import (
	"fmt"

	"github.com/cwbudde/algo-vocal/dsp/vocalchain"
	"github.com/gordonklaus/portaudio"
	"github.com/sirupsen/logrus"
)

// Config describes the duplex stream.
type Config struct {
	SampleRate float64
	BlockSize  int
	Channels   int
}

// Host owns a running duplex stream. The audio callback copies the input
// into the output buffers and processes them in place.
type Host struct {
	proc   *vocalchain.Processor
	stream *portaudio.Stream
	log    logrus.FieldLogger
}

// Open initializes PortAudio, prepares proc for cfg and opens a duplex
// stream on the default devices. The stream is not started.
func Open(proc *vocalchain.Processor, cfg Config, log logrus.FieldLogger) (*Host, error) {
	if cfg.Channels < 1 || cfg.BlockSize < 1 || cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("host: invalid config %+v", cfg)
	}

	err := portaudio.Initialize()
	if err != nil {
		return nil, fmt.Errorf("host: initialize PortAudio: %w", err)
	}

	proc.Prepare(cfg.SampleRate, cfg.BlockSize)

	h := &Host{proc: proc, log: log}

	h.stream, err = portaudio.OpenDefaultStream(cfg.Channels, cfg.Channels, cfg.SampleRate, cfg.BlockSize, h.callback)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("host: open stream: %w", err)
	}

	log.WithFields(logrus.Fields{
		"sample_rate": cfg.SampleRate,
		"block_size":  cfg.BlockSize,
		"channels":    cfg.Channels,
		"latency":     proc.Latency(),
	}).Info("duplex stream opened")

	return h, nil
}

// Start begins streaming.
func (h *Host) Start() error {
	err := h.stream.Start()
	if err != nil {
		return fmt.Errorf("host: start stream: %w", err)
	}

	h.log.Debug("duplex stream started")

	return nil
}

// Close stops the stream and releases PortAudio.
func (h *Host) Close() error {
	err := h.stream.Stop()
	if err != nil {
		h.log.WithError(err).Warn("stop stream")
	}

	err = h.stream.Close()
	if err != nil {
		return fmt.Errorf("host: close stream: %w", err)
	}

	err = portaudio.Terminate()
	if err != nil {
		return fmt.Errorf("host: terminate PortAudio: %w", err)
	}

	h.log.Info("duplex stream closed")

	return nil
}

func (h *Host) callback(in, out [][]float32) {
	Duplex(h.proc, in, out)
}

// Duplex copies in to out and runs proc over out. Output channels without
// a matching input channel are silenced.
func Duplex(proc *vocalchain.Processor, in, out [][]float32) {
	for ch := range out {
		if ch < len(in) {
			n := copy(out[ch], in[ch])
			clear(out[ch][n:])
		} else {
			clear(out[ch])
		}
	}

	proc.Process(out)
}
