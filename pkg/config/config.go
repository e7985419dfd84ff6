// Package config loads the YAML configuration shared by the rtg and
// assembunny commands. Values come from Default, then an optional file,
// then explicitly set command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/oisee/aoc-core/pkg/inst"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration.
type Config struct {
	Input      string           `yaml:"input"`
	Output     string           `yaml:"output"`
	MetricsOut string           `yaml:"metrics_out"`
	Cache      string           `yaml:"cache"`
	Log        LogConfig        `yaml:"log"`
	RTG        RTGConfig        `yaml:"rtg"`
	Assembunny AssembunnyConfig `yaml:"assembunny"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  string `yaml:"json"` // path of a JSON copy of the log
}

// RTGConfig holds facility search settings.
type RTGConfig struct {
	Bidirectional bool     `yaml:"bidirectional"`
	Trace         bool     `yaml:"trace"`
	ExtraPairs    []string `yaml:"extra_pairs"`
}

// AssembunnyConfig holds VM settings.
type AssembunnyConfig struct {
	Registers map[string]int32 `yaml:"registers"`
	Dump      bool             `yaml:"dump"`
}

// DefaultInput is the input path used when none is configured.
const DefaultInput = "input/input.txt"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input: DefaultInput,
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks values that the YAML types cannot.
func (c Config) Validate() error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := c.Assembunny.Seeds(); err != nil {
		return err
	}
	return nil
}

// Seeds resolves the configured register names. The result is never nil.
func (c AssembunnyConfig) Seeds() (map[inst.Reg]int32, error) {
	seeds := make(map[inst.Reg]int32, len(c.Registers))
	for name, v := range c.Registers {
		r, ok := inst.LookupReg(name)
		if !ok {
			return nil, fmt.Errorf("assembunny.registers: unknown register %q", name)
		}
		seeds[r] = v
	}
	return seeds, nil
}
