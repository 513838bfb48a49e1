// Command bathvox runs the vocal processor offline on WAV files or live on
// the default audio devices.
//
// Usage:
//
//	bathvox render [flags] <in.wav> <out.wav>
//	bathvox live [flags]
//	bathvox info [flags]
//
// Examples:
//
//	bathvox render --preset steamy.yaml take1.wav take1-bath.wav
//	bathvox live --block-size 256 --channels 1
//	bathvox info --sample-rate 48000
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/cwbudde/algo-vocal/internal/cli"
	"github.com/sirupsen/logrus"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	LogLevel string           `help:"Log level (${enum})." default:"info" enum:"debug,info,warn,error"`
	Version  kong.VersionFlag `short:"v" help:"Show version information."`

	Render RenderCmd `cmd:"" help:"Process a WAV file."`
	Live   LiveCmd   `cmd:"" help:"Process the default input device to the default output device."`
	Info   InfoCmd   `cmd:"" help:"List modules, their latency and the SIMD level."`
}

func main() {
	args := &CLI{}
	ctx := kong.Parse(args,
		kong.Name("bathvox"),
		kong.Description("Bathroom vocal processor"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	log := newLogger(args.LogLevel)

	err := ctx.Run(log)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stderr
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	log.SetLevel(lvl)

	return log
}
