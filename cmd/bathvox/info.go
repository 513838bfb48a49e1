package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/cwbudde/algo-vocal/internal/cli"
	"github.com/sirupsen/logrus"
)

// InfoCmd prints the module chain and the SIMD level.
type InfoCmd struct {
	Preset     string  `short:"p" type:"existingfile" help:"YAML preset to apply before listing."`
	SampleRate float64 `default:"44100" help:"Sample rate used for the latency report."`
	BlockSize  int     `default:"512" help:"Block size used for the latency report."`
}

// Run prints the report.
func (c *InfoCmd) Run(log *logrus.Logger) error {
	proc, err := newProcessor(log, 2, 1, c.Preset)
	if err != nil {
		return err
	}

	proc.Prepare(c.SampleRate, c.BlockSize)

	rows := make([]cli.ModuleRow, 0, len(proc.Modules()))
	for _, m := range proc.Modules() {
		rows = append(rows, cli.ModuleRow{
			Name:    m.Name(),
			Enabled: m.Enabled(),
			Mix:     m.Mix(),
			Latency: m.Latency(),
		})
	}

	features := cpu.DetectFeatures()

	fmt.Println(cli.Title("bathvox " + version))
	fmt.Print(cli.ModuleTable(rows))
	fmt.Println()
	cli.PrintKeyValues(os.Stdout,
		"Master mix", fmt.Sprintf("%.2f", proc.MasterMix()),
		"Chain latency", fmt.Sprintf("%d samples (enabled modules)", proc.Latency()),
		"Architecture", features.Architecture,
		"SIMD", bestSIMD(features),
	)

	return nil
}

func bestSIMD(features cpu.Features) cpu.SIMDLevel {
	best := cpu.SIMDNone

	for _, level := range []cpu.SIMDLevel{cpu.SIMDSSE2, cpu.SIMDAVX2, cpu.SIMDNEON} {
		if cpu.Supports(features, level) {
			best = level
		}
	}

	return best
}
