package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-vocal/internal/cli"
	"github.com/cwbudde/algo-vocal/internal/host"
	"github.com/sirupsen/logrus"
)

// LiveCmd processes the default input device in real time.
type LiveCmd struct {
	Preset     string  `short:"p" type:"existingfile" help:"YAML preset to apply."`
	SampleRate float64 `default:"44100" help:"Stream sample rate in Hz."`
	BlockSize  int     `default:"512" help:"Frames per callback."`
	Channels   int     `default:"2" help:"Input and output channel count."`
	Seed       int64   `help:"Random seed; 0 picks one from the clock."`
}

// Run streams until interrupted.
func (c *LiveCmd) Run(log *logrus.Logger) error {
	proc, err := newProcessor(log, c.Channels, c.Seed, c.Preset)
	if err != nil {
		return err
	}

	h, err := host.Open(proc, host.Config{
		SampleRate: c.SampleRate,
		BlockSize:  c.BlockSize,
		Channels:   c.Channels,
	}, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = h.Start()
	if err != nil {
		_ = h.Close()
		return err
	}

	fmt.Println(cli.Title("bathvox live"))
	cli.PrintKeyValues(os.Stdout,
		"Sample rate", fmt.Sprintf("%.0f Hz", c.SampleRate),
		"Block size", c.BlockSize,
		"Latency", fmt.Sprintf("%d samples", proc.Latency()),
		"Stop", "Ctrl+C",
	)

	<-ctx.Done()

	return h.Close()
}
