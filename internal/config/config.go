// Package config holds the runtime settings of a match and the servers that
// host it.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Perception strategies.
const (
	PerceptionRadius = "radius"
	PerceptionSensor = "sensor"
)

// Config is the on-disk settings file. Zero fields fall back to Default.
type Config struct {
	TickRate           int           `yaml:"tick_rate"`
	PerceptionInterval time.Duration `yaml:"perception_interval"`
	Perception         string        `yaml:"perception"`
	ArrivalThreshold   float64       `yaml:"arrival_threshold"`
	GridSize           float64       `yaml:"grid_size"`
	EnforceAttackRange bool          `yaml:"enforce_attack_range"`
	FactionsDir        string        `yaml:"factions_dir"`
	RedFaction         string        `yaml:"red_faction"`
	BlueFaction        string        `yaml:"blue_faction"`
	Level              string        `yaml:"level"`
	SSHAddr            string        `yaml:"ssh_addr"`
	HostKey            string        `yaml:"host_key"`
	BotBuildInterval   time.Duration `yaml:"bot_build_interval"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TickRate:           30,
		PerceptionInterval: 200 * time.Millisecond,
		Perception:         PerceptionRadius,
		ArrivalThreshold:   64,
		GridSize:           32,
		EnforceAttackRange: true,
		SSHAddr:            ":2222",
		HostKey:            "server_host_key",
		BotBuildInterval:   12 * time.Second,
	}
}

// Parse decodes YAML over Default, so a file only lists what it changes.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0 || c.TickRate > 1000:
		return fmt.Errorf("%w: tick_rate %d not in 1..1000", ErrInvalid, c.TickRate)
	case c.PerceptionInterval < 0:
		return fmt.Errorf("%w: perception_interval %v is negative", ErrInvalid, c.PerceptionInterval)
	case c.Perception != PerceptionRadius && c.Perception != PerceptionSensor:
		return fmt.Errorf("%w: perception %q (want %s or %s)", ErrInvalid, c.Perception, PerceptionRadius, PerceptionSensor)
	case c.ArrivalThreshold <= 0:
		return fmt.Errorf("%w: arrival_threshold must be positive", ErrInvalid)
	case c.GridSize <= 0:
		return fmt.Errorf("%w: grid_size must be positive", ErrInvalid)
	case c.BotBuildInterval < 0:
		return fmt.Errorf("%w: bot_build_interval %v is negative", ErrInvalid, c.BotBuildInterval)
	}
	return nil
}

// TickDuration is the wall-clock length of one tick.
func (c Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// TickSeconds is the simulated time one tick advances.
func (c Config) TickSeconds() float64 { return 1 / float64(c.TickRate) }
