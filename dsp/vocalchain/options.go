package vocalchain

import (
	"io"
	"time"

	"github.com/cwbudde/algo-vocal/dsp/core"
	"github.com/sirupsen/logrus"
)

// Option configures a Processor.
type Option func(*config)

type config struct {
	logger   logrus.FieldLogger
	channels int
	seed     int64
}

func defaultConfig() config {
	logger := logrus.New()
	logger.Out = io.Discard

	return config{
		logger:   logger,
		channels: core.DefaultChannels,
		seed:     time.Now().UnixNano(),
	}
}

// WithLogger sets the logger used for lifecycle events. Process never logs.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithChannels sets the number of channels processed. Values below 1 are
// ignored.
func WithChannels(channels int) Option {
	return func(cfg *config) {
		if channels > 0 {
			cfg.channels = channels
		}
	}
}

// WithSeed makes the processor deterministic. Module i in processing order
// is seeded with seed+i.
func WithSeed(seed int64) Option {
	return func(cfg *config) {
		cfg.seed = seed
	}
}
