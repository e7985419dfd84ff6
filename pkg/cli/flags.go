// Package cli holds the pieces shared by the rtg and assembunny commands:
// common flags, input resolution and the per-run session.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oisee/aoc-core/pkg/config"
	"github.com/oisee/aoc-core/pkg/inst"
	"github.com/spf13/pflag"
)

// Common holds the flags every command accepts.
type Common struct {
	ConfigPath string
	Input      string
	LogLevel   string
	LogJSON    string
	MetricsOut string
	Output     string
	Cache      string
}

// Register adds the common flags to fs.
func (c *Common) Register(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", "", "YAML configuration file")
	fs.StringVarP(&c.Input, "input", "i", config.DefaultInput, `puzzle input file ("-" for stdin)`)
	fs.StringVar(&c.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&c.LogJSON, "log-json", "", "also write the log as JSON to this file")
	fs.StringVar(&c.MetricsOut, "metrics-out", "", "write Prometheus metrics to this file")
	fs.StringVarP(&c.Output, "output", "o", "", "write a JSON report to this file")
	fs.StringVar(&c.Cache, "cache", "", "answer cache file")
}

// Resolve loads the configuration file and applies every flag that was set
// explicitly on top of it.
func (c *Common) Resolve(fs *pflag.FlagSet) (config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if fs.Changed("input") {
		cfg.Input = c.Input
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = c.LogLevel
	}
	if fs.Changed("log-json") {
		cfg.Log.JSON = c.LogJSON
	}
	if fs.Changed("metrics-out") {
		cfg.MetricsOut = c.MetricsOut
	}
	if fs.Changed("output") {
		cfg.Output = c.Output
	}
	if fs.Changed("cache") {
		cfg.Cache = c.Cache
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// ParseRegisters parses r=v assignments such as "c=1".
func ParseRegisters(sets []string) (map[inst.Reg]int32, error) {
	regs := make(map[inst.Reg]int32, len(sets))
	for _, s := range sets {
		name, val, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("register assignment %q: want r=v", s)
		}
		name = strings.TrimSpace(name)
		r, ok := inst.LookupReg(name)
		if !ok {
			return nil, fmt.Errorf("register assignment %q: unknown register %q", s, name)
		}
		v, err := strconv.ParseInt(strings.TrimSpace(val), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("register assignment %q: %w", s, err)
		}
		regs[r] = int32(v)
	}
	return regs, nil
}
