package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/rr-sim/rr-sim/sim/report"
)

// RunConfig is the full set of knobs for one `run`. It can be loaded from a YAML file
// and then overridden by explicitly set CLI flags.
type RunConfig struct {
	Quantum          int64  `yaml:"quantum"`
	Input            string `yaml:"input"`
	Output           string `yaml:"output"`
	LogFile          string `yaml:"log_file"`
	LogLevel         string `yaml:"log_level"`
	Format           string `yaml:"format"`
	SnapshotInterval int64  `yaml:"snapshot_interval"`
	IdleMarkers      bool   `yaml:"idle_markers"`
}

// defaultRunConfig mirrors the flag defaults. Quantum has no default and must be given.
func defaultRunConfig() RunConfig {
	return RunConfig{
		Output:           "output.txt",
		LogFile:          "log.txt",
		LogLevel:         "warn",
		Format:           string(report.FormatText),
		SnapshotInterval: report.DefaultSnapshotInterval,
		IdleMarkers:      true,
	}
}

// loadRunConfig reads a YAML run config on top of the defaults.
// Unknown keys are rejected so typos surface instead of being ignored.
func loadRunConfig(path string) (RunConfig, error) {
	cfg := defaultRunConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading run config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return cfg, nil
}

// applyFlags copies flag values into cfg, but only for flags the user actually set.
// A config file value is never clobbered by a flag default.
func (c *RunConfig) applyFlags(flags *pflag.FlagSet) error {
	var err error
	if flags.Changed("quantum") {
		c.Quantum, err = flags.GetInt64("quantum")
	}
	if err == nil && flags.Changed("input") {
		c.Input, err = flags.GetString("input")
	}
	if err == nil && flags.Changed("output") {
		c.Output, err = flags.GetString("output")
	}
	if err == nil && flags.Changed("log-file") {
		c.LogFile, err = flags.GetString("log-file")
	}
	if err == nil && flags.Changed("log") {
		c.LogLevel, err = flags.GetString("log")
	}
	if err == nil && flags.Changed("format") {
		c.Format, err = flags.GetString("format")
	}
	if err == nil && flags.Changed("snapshot-interval") {
		c.SnapshotInterval, err = flags.GetInt64("snapshot-interval")
	}
	if err == nil && flags.Changed("idle-markers") {
		c.IdleMarkers, err = flags.GetBool("idle-markers")
	}
	return err
}

// Validate rejects configs that cannot produce a run.
func (c RunConfig) Validate() error {
	var errs []error
	if c.Quantum <= 0 {
		errs = append(errs, fmt.Errorf("quantum must be > 0, got %d", c.Quantum))
	}
	if c.Input == "" {
		errs = append(errs, errors.New("input file is required"))
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if c.SnapshotInterval < 0 {
		errs = append(errs, fmt.Errorf("snapshot interval must be >= 0, got %d", c.SnapshotInterval))
	}
	return errors.Join(errs...)
}

func (c RunConfig) logOptions() report.LogOptions {
	return report.LogOptions{IdleMarkers: c.IdleMarkers, SnapshotInterval: c.SnapshotInterval}
}
