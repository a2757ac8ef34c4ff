package config

import "time"

// WorkerConfig holds the planning job worker configuration
type WorkerConfig struct {
	// How often the worker polls for queued jobs when idle
	PollInterval time.Duration `mapstructure:"poll_interval"`

	// Queue polls per second the worker is allowed to issue
	PollRate float64 `mapstructure:"poll_rate" validate:"min=0"`

	// PollBurst bounds bursts of queue polls
	PollBurst int `mapstructure:"poll_burst" validate:"min=1"`
}
