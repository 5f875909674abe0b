package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// newRunFlagSet returns a fresh flag set with the `run` flags plus the inherited --log.
func newRunFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	bindRunFlags(fs)
	fs.String("log", "warn", "")
	return fs
}

func TestLoadRunConfig_ValidFile_OverlaysDefaults(t *testing.T) {
	// GIVEN a config that sets only quantum and input
	path := writeConfig(t, "quantum: 4\ninput: procs.txt\n")

	// WHEN it is loaded
	cfg, err := loadRunConfig(path)

	// THEN the file values are set and everything else keeps its default
	require.NoError(t, err)
	assert.Equal(t, int64(4), cfg.Quantum)
	assert.Equal(t, "procs.txt", cfg.Input)
	assert.Equal(t, defaultRunConfig().Output, cfg.Output)
	assert.True(t, cfg.IdleMarkers)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRunConfig_UnknownKey_Rejected(t *testing.T) {
	// GIVEN a config with a typo'd key
	path := writeConfig(t, "quantum: 4\nquantom: 5\n")

	_, err := loadRunConfig(path)

	// THEN strict parsing reports the unknown field
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantom")
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	_, err := loadRunConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyFlags_OnlyChangedFlagsOverride(t *testing.T) {
	// GIVEN a file config with quantum 4 and table output
	cfg := defaultRunConfig()
	cfg.Quantum = 4
	cfg.Format = "table"
	cfg.Input = "from-file.txt"

	// WHEN only --quantum is passed on the command line
	fs := newRunFlagSet()
	require.NoError(t, fs.Parse([]string{"--quantum", "7"}))
	require.NoError(t, cfg.applyFlags(fs))

	// THEN quantum is overridden but the other file values survive the flag defaults
	assert.Equal(t, int64(7), cfg.Quantum)
	assert.Equal(t, "table", cfg.Format)
	assert.Equal(t, "from-file.txt", cfg.Input)
}

func TestApplyFlags_AllFlags(t *testing.T) {
	cfg := defaultRunConfig()
	fs := newRunFlagSet()
	require.NoError(t, fs.Parse([]string{
		"--quantum", "2", "--input", "in.txt", "--output", "out.txt", "--log-file", "",
		"--format", "json", "--snapshot-interval", "0", "--idle-markers=false", "--log", "debug",
	}))
	require.NoError(t, cfg.applyFlags(fs))

	assert.Equal(t, RunConfig{
		Quantum:          2,
		Input:            "in.txt",
		Output:           "out.txt",
		LogFile:          "",
		LogLevel:         "debug",
		Format:           "json",
		SnapshotInterval: 0,
		IdleMarkers:      false,
	}, cfg)
}

func TestRunConfig_Validate(t *testing.T) {
	valid := defaultRunConfig()
	valid.Quantum = 3
	valid.Input = "in.txt"
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *RunConfig)
		want   string
	}{
		{"zero quantum", func(c *RunConfig) { c.Quantum = 0 }, "quantum must be > 0"},
		{"negative quantum", func(c *RunConfig) { c.Quantum = -2 }, "quantum must be > 0"},
		{"no input", func(c *RunConfig) { c.Input = "" }, "input file is required"},
		{"bad format", func(c *RunConfig) { c.Format = "xml" }, "unknown output format"},
		{"negative snapshot interval", func(c *RunConfig) { c.SnapshotInterval = -1 }, "snapshot interval"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
