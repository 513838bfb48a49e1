package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cwbudde/algo-vocal/dsp/vocalchain"
	"github.com/cwbudde/algo-vocal/internal/cli"
	"github.com/cwbudde/algo-vocal/internal/preset"
	"github.com/cwbudde/algo-vocal/internal/wavio"
	"github.com/cwbudde/algo-vocal/stats/level"
	"github.com/sirupsen/logrus"
)

// RenderCmd processes a WAV file offline.
type RenderCmd struct {
	In        string `arg:"" type:"existingfile" help:"Input WAV file."`
	Out       string `arg:"" type:"path" help:"Output WAV file."`
	Preset    string `short:"p" type:"existingfile" help:"YAML preset to apply."`
	BlockSize int    `default:"512" help:"Processing block size in samples."`
	Seed      int64  `help:"Random seed; 0 picks one from the clock."`
	BitDepth  int    `default:"16" help:"Output bit depth, 16 or 24."`
	Tail      bool   `help:"Append the processor latency as silence so the delayed tail is kept."`
}

// Run renders the file.
func (c *RenderCmd) Run(log *logrus.Logger) error {
	in, err := wavio.ReadFile(c.In)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"file":        c.In,
		"sample_rate": in.SampleRate,
		"channels":    len(in.Channels),
		"frames":      in.Frames(),
	}).Info("input decoded")

	proc, err := newProcessor(log, len(in.Channels), c.Seed, c.Preset)
	if err != nil {
		return err
	}

	proc.Prepare(float64(in.SampleRate), c.BlockSize)

	channels := in.Channels
	if c.Tail {
		channels = padded(channels, proc.Latency())
	}

	inLevel := level.Measure(channels)
	start := time.Now()

	processBlocks(proc, channels, c.BlockSize)

	log.WithFields(logrus.Fields{
		"elapsed": time.Since(start).Round(time.Millisecond),
		"latency": proc.Latency(),
	}).Debug("processing finished")

	outLevel := level.Measure(channels)
	if outLevel.Clipped > 0 {
		log.WithField("samples", outLevel.Clipped).Warn("output clipped")
	}

	out := &wavio.Audio{SampleRate: in.SampleRate, BitDepth: c.BitDepth, Channels: channels}

	err = wavio.WriteFile(c.Out, out)
	if err != nil {
		return err
	}

	fmt.Println(cli.Title("bathvox render"))
	cli.PrintKeyValues(os.Stdout,
		"Input", c.In,
		"Output", c.Out,
		"Duration", fmt.Sprintf("%.2f s", out.Duration()),
		"Input level", formatLevel(inLevel),
		"Output level", formatLevel(outLevel),
	)

	return nil
}

// newProcessor builds a processor for the given channel count and applies
// the preset at path, if any.
func newProcessor(log logrus.FieldLogger, channels int, seed int64, path string) (*vocalchain.Processor, error) {
	opts := []vocalchain.Option{
		vocalchain.WithLogger(log),
		vocalchain.WithChannels(channels),
	}
	if seed != 0 {
		opts = append(opts, vocalchain.WithSeed(seed))
	}

	proc := vocalchain.New(opts...)

	if path == "" {
		return proc, nil
	}

	p, err := preset.LoadFile(path)
	if err != nil {
		return nil, err
	}

	err = p.Apply(proc)
	if err != nil {
		return nil, fmt.Errorf("apply %s: %w", path, err)
	}

	log.WithFields(logrus.Fields{
		"preset":  path,
		"modules": p.ModuleNames(),
	}).Info("preset applied")

	return proc, nil
}

// processBlocks feeds buf to proc in host-sized blocks.
func processBlocks(proc *vocalchain.Processor, buf [][]float32, blockSize int) {
	if len(buf) == 0 || blockSize < 1 {
		return
	}

	n := len(buf[0])
	view := make([][]float32, len(buf))

	for pos := 0; pos < n; pos += blockSize {
		end := min(pos+blockSize, n)
		for ch := range buf {
			view[ch] = buf[ch][pos:end]
		}

		proc.Process(view)
	}
}

func padded(buf [][]float32, extra int) [][]float32 {
	if extra <= 0 {
		return buf
	}

	out := make([][]float32, len(buf))
	for ch, data := range buf {
		out[ch] = make([]float32, len(data)+extra)
		copy(out[ch], data)
	}

	return out
}

func formatLevel(s level.Stats) string {
	return fmt.Sprintf("RMS %.1f dBFS, peak %.1f dBFS", s.RMSDB, s.PeakDB)
}
