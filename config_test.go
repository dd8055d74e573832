package hookline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultConfig verifies the default values.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "15:04:05.000", cfg.Logging.TimeFormat)
	assert.False(t, cfg.Dispatch.RecoverPanics)
	assert.True(t, cfg.Deprecations.Notify)
	assert.NoError(t, cfg.Validate())
}

// TestParseConfig verifies values from TOML override the defaults.
func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(`
[logging]
level = "debug"
format = "json"

[dispatch]
recover_panics = true

[deprecations]
notify = false
`)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "15:04:05.000", cfg.Logging.TimeFormat, "absent keys keep defaults")
	assert.True(t, cfg.Dispatch.RecoverPanics)
	assert.False(t, cfg.Deprecations.Notify)
}

// TestParseConfigInvalid verifies bad files and bad values are rejected.
func TestParseConfigInvalid(t *testing.T) {
	_, err := ParseConfig(`[logging`)
	assert.ErrorIs(t, err, ErrConfig)

	_, err = ParseConfig("[logging]\nlevel = \"loud\"\n")
	assert.ErrorIs(t, err, ErrConfig)

	_, err = ParseConfig("[logging]\nformat = \"xml\"\n")
	assert.ErrorIs(t, err, ErrConfig)
}

// TestLoadConfig verifies configuration files are read from disk.
func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hooks.toml")
	require.NoError(t, os.WriteFile(path, []byte("[dispatch]\nrecover_panics = true\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Dispatch.RecoverPanics)
	assert.Equal(t, "warn", cfg.Logging.Level)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrConfig)
}

// TestConfigOptions verifies a configuration is applied through New.
func TestConfigOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "error"
	cfg.Dispatch.RecoverPanics = true
	cfg.Deprecations.Notify = false

	h := New(cfg.Options()...)
	assert.True(t, h.recoverPanics)
	assert.IsType(t, NoticeSinkFunc(nil), h.sink)

	h.Add("old", Function("cb", noop))
	require.NoError(t, h.DoActionDeprecated("old", nil, "1.0", "", ""))
	assert.Equal(t, 1, h.Count("old"))
}

// TestWithNoticeSinkOverridesLogSink verifies an explicit sink replaces the default.
func TestWithNoticeSinkOverridesLogSink(t *testing.T) {
	var notices []Notice
	h := newTestHooks(WithNoticeSink(NoticeSinkFunc(func(n Notice) {
		notices = append(notices, n)
	})))

	h.Add("old", Function("cb", noop))
	require.NoError(t, h.DoActionDeprecated("old", nil, "1.0", "new", ""))

	require.Len(t, notices, 1)
	assert.Equal(t, "Hook old is deprecated since version 1.0! Use new instead.", notices[0].String())
}
