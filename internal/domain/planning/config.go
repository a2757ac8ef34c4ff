package planning

import (
	"encoding/json"
	"fmt"

	"github.com/railops/rakeplanner/internal/domain/shared"
)

// Mode selects the planning strategy
type Mode string

const (
	ModeGreedy  Mode = "greedy"
	ModeOptimal Mode = "optimal"
	ModeHybrid  Mode = "hybrid"
)

// CostWeights scalarize the three cost components into a single total
type CostWeights struct {
	Freight   float64 `json:"freight"`
	Demurrage float64 `json:"demurrage"`
	Idle      float64 `json:"idle"`
}

// Config holds the per-run planner configuration. All fields are optional on
// the wire; ApplyDefaults fills the gaps.
type Config struct {
	Mode                  Mode        `json:"mode"`
	AllowMultiDestination bool        `json:"allow_multi_destination"`
	MinRakeSize           float64     `json:"min_rake_size"`
	CostWeights           CostWeights `json:"cost_weights"`
	FreightRate           float64     `json:"freight_rate"`
	DemurrageRate         float64     `json:"demurrage_rate"`
	IdleCost              float64     `json:"idle_cost"`
}

// DefaultConfig returns a Config populated with the documented defaults
func DefaultConfig() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero-valued fields with the documented defaults
func (c *Config) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeGreedy
	}
	if c.MinRakeSize == 0 {
		c.MinRakeSize = 1000
	}
	if c.CostWeights.Freight == 0 {
		c.CostWeights.Freight = 1.0
	}
	if c.CostWeights.Demurrage == 0 {
		c.CostWeights.Demurrage = 0.5
	}
	if c.CostWeights.Idle == 0 {
		c.CostWeights.Idle = 0.3
	}
	if c.FreightRate == 0 {
		c.FreightRate = 2.5
	}
	if c.DemurrageRate == 0 {
		c.DemurrageRate = 500
	}
	if c.IdleCost == 0 {
		c.IdleCost = 100
	}
}

// Validate checks the configuration and returns a ConfigError on violation
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeGreedy, ModeOptimal, ModeHybrid:
	default:
		return shared.NewConfigError(fmt.Sprintf("unknown planner mode: %s", c.Mode))
	}
	if c.MinRakeSize < 0 {
		return shared.NewConfigError("min_rake_size must not be negative")
	}
	return nil
}

// ParseConfig decodes a JSON configuration, applies defaults, and validates.
// Malformed JSON or an unknown mode surfaces as ConfigError.
func ParseConfig(raw []byte) (Config, error) {
	var cfg Config
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return Config{}, shared.NewConfigError(fmt.Sprintf("malformed planner config: %v", err))
		}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
