package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/qresp/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWithViper(newIsolatedViper())
	require.NoError(t, err)

	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, 0, cfg.Log.Verbosity)
	assert.False(t, cfg.Trace.Enabled)
	assert.False(t, cfg.Collector.Synchronized)
	assert.Equal(t, 16, cfg.Collector.ExpectedResponses)
	assert.Equal(t, 4, cfg.Pump.Producers)
	assert.Equal(t, "qresp.db", cfg.Journal.Path)
	assert.True(t, cfg.Reply.Markdown)
	assert.Equal(t, 100, cfg.Reply.MaxCompletionItems)
}

func TestValidate(t *testing.T) {
	valid := func() Config { return *Defaults() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"zero expected responses grows on demand", func(c *Config) { c.Collector.ExpectedResponses = 0 }, ""},
		{"negative verbosity", func(c *Config) { c.Log.Verbosity = -1 }, "log.verbosity"},
		{"negative expected responses", func(c *Config) { c.Collector.ExpectedResponses = -3 }, "collector.expected_responses"},
		{"zero producers", func(c *Config) { c.Pump.Producers = 0 }, "pump.producers"},
		{"negative buffer", func(c *Config) { c.Pump.Buffer = -1 }, "pump.buffer"},
		{"journal without path", func(c *Config) { c.Journal.Enabled = true; c.Journal.Path = "" }, "journal.path"},
		{"disabled journal without path", func(c *Config) { c.Journal.Path = "" }, ""},
		{"negative completion cap", func(c *Config) { c.Reply.MaxCompletionItems = -1 }, "reply.max_completion_items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ProducersHint(t *testing.T) {
	cfg := *Defaults()
	cfg.Pump.Producers = 0
	assert.NotEmpty(t, errors.GetAllHints(cfg.Validate()))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "am.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[trace]
enabled = true

[pump]
producers = 1
buffer = 8

[journal]
enabled = true
path = "/tmp/sessions.db"
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Trace.Enabled)
	assert.Equal(t, 1, cfg.Pump.Producers)
	assert.Equal(t, 8, cfg.Pump.Buffer)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, "/tmp/sessions.db", cfg.Journal.Path)
	// Untouched sections keep defaults
	assert.Equal(t, 100, cfg.Reply.MaxCompletionItems)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "am.toml")
	require.NoError(t, os.WriteFile(path, []byte("[pump]\nproducers = -2\n"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pump.producers")

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("QRESP_PUMP_PRODUCERS", "2")
	t.Setenv("QRESP_TRACE_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Pump.Producers)
	assert.True(t, cfg.Trace.Enabled)

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, again, "Load caches the merged config")
}

func TestFindProjectConfig(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, DefaultDirPermissions))

	assert.Equal(t, "", findProjectConfig(sub))

	path := filepath.Join(root, "a", ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("[trace]\nenabled = true\n"), 0644))
	assert.Equal(t, path, findProjectConfig(sub))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "am.toml")
	cfg := Defaults()
	cfg.Trace.Enabled = true
	cfg.Pump.Producers = 3

	require.NoError(t, WriteFile(path, cfg, false))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	err = WriteFile(path, cfg, false)
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))
	assert.NoError(t, WriteFile(path, cfg, true))

	bad := Defaults()
	bad.Pump.Producers = 0
	assert.Error(t, WriteFile(filepath.Join(t.TempDir(), "am.toml"), bad, false))
}

func TestMergeConfigFiles_ProjectOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("[reply]\nmarkdown = false\n"), 0644))
	t.Chdir(dir)

	v := viper.New()
	SetDefaults(v)
	mergeConfigFiles(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.False(t, cfg.Reply.Markdown)
}
