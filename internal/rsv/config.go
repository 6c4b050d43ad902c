package rsv

import (
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors rsvd.yml
type Config struct {
	Capacity        int    `yaml:"capacity"`         // 50 (by default)
	HighestPriority int    `yaml:"highest_priority"` // 99 (by default), first RM rank
	LowestPriority  int    `yaml:"lowest_priority"`  // 1 (by default), floor for every rank
	EventBuffer     int    `yaml:"event_buffer"`     // 256 (by default)
	PollMS          int    `yaml:"poll_ms"`          // 50 (by default), host termination poll interval
	Listen          string `yaml:"listen"`           // ":7431" (by default)
	CSVPath         string `yaml:"csv_path"`         // empty = no CSV journal
	SQLitePath      string `yaml:"sqlite_path"`      // empty = no SQLite journal
}

// MaxReservations is the default store capacity.
const MaxReservations = 50

// DefaultConfig is used when no config file is found.
func DefaultConfig() Config {
	return Config{
		Capacity:        MaxReservations,
		HighestPriority: 99,
		LowestPriority:  1,
		EventBuffer:     256,
		PollMS:          50,
		Listen:          ":7431",
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg.sanitized(), nil
}

// MaxRTPriority is the highest SCHED_FIFO priority Linux accepts.
const MaxRTPriority = 99

// sanity clamps
func (c Config) sanitized() Config {
	def := DefaultConfig()
	if c.Capacity <= 0 {
		c.Capacity = def.Capacity
	}
	if c.HighestPriority > MaxRTPriority {
		c.HighestPriority = MaxRTPriority
	}
	if c.LowestPriority < 1 {
		c.LowestPriority = def.LowestPriority
	}
	if c.LowestPriority > MaxRTPriority {
		c.LowestPriority = MaxRTPriority
	}
	if c.HighestPriority < c.LowestPriority {
		c.HighestPriority = def.HighestPriority
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = def.EventBuffer
	}
	if c.PollMS <= 0 {
		c.PollMS = def.PollMS
	}
	if c.Listen == "" {
		c.Listen = def.Listen
	}

	return c
}
