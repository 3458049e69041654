package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"PPD/pkg/models"
	"PPD/pkg/output"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the run settings. A nil Seed means "seed from the clock";
// any set value, zero included, is used as is.
type Config struct {
	Seed      *int64  `yaml:"seed,omitempty"`
	Bitrate   float64 `yaml:"bitrate"`
	Format    string  `yaml:"format"`             // text, csv, json
	Label     string  `yaml:"label"`              // cover, stego or empty
	Analyzer  string  `yaml:"analyzer,omitempty"` // empty picks the first registered
	Workers   int     `yaml:"workers"`            // batch mode only
	Output    string  `yaml:"output"`             // empty means stdout
	Recursive bool    `yaml:"recursive"`          // walk subdirectories in batch mode
	Verbose   bool    `yaml:"verbose"`
}

// Default returns full-rate embedding with plain text output.
func Default() Config {
	return Config{
		Bitrate:   1.0,
		Format:    "text",
		Workers:   runtime.NumCPU(),
		Recursive: true,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Write stores cfg as YAML.
func Write(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if !(c.Bitrate > 0 && c.Bitrate <= 1) {
		return fmt.Errorf("%w: bitrate %v not in (0, 1]", ErrInvalidConfig, c.Bitrate)
	}
	if !knownFormat(c.Format) {
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}
	switch c.Label {
	case "", models.LabelCover, models.LabelStego:
	default:
		return fmt.Errorf("%w: label must be cover or stego, got %q", ErrInvalidConfig, c.Label)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

func knownFormat(format string) bool {
	for _, f := range output.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// SetSeed fixes the seed.
func (c *Config) SetSeed(seed int64) {
	c.Seed = &seed
}

// ResolveSeed returns Seed, or a clock-derived seed when none is set.
func (c *Config) ResolveSeed() int64 {
	if c.Seed != nil {
		return *c.Seed
	}
	return time.Now().UnixNano()
}
