package vocal

import (
	"time"

	"github.com/cwbudde/algo-vocal/dsp/core"
)

// Option configures a module at construction time.
type Option func(*config)

type config struct {
	seed     int64
	channels int
}

func applyOptions(opts []Option) config {
	cfg := config{
		seed:     time.Now().UnixNano(),
		channels: core.DefaultChannels,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithSeed seeds the module's generator. Two modules built with the same
// seed produce identical output for identical input.
func WithSeed(seed int64) Option {
	return func(cfg *config) {
		cfg.seed = seed
	}
}

// WithChannels sets the maximum channel count. Channels beyond it pass
// through untouched. Values below 1 are ignored.
func WithChannels(channels int) Option {
	return func(cfg *config) {
		if channels > 0 {
			cfg.channels = channels
		}
	}
}
