// FILE: lixenwraith/treelog/config_test.go
package treelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "root", cfg.Name)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, ThreadingGuarded, cfg.Threading)
	assert.Equal(t, DefaultPattern, cfg.Pattern)
	assert.False(t, cfg.EnableConsole)
	assert.Equal(t, ConsoleStdout, cfg.ConsoleTarget)
	assert.False(t, cfg.EnableFile)
	assert.Equal(t, int64(10), cfg.FileMaxSizeMB)

	assert.NoError(t, cfg.validate())
}

func TestConfigClone(t *testing.T) {
	cfg1 := DefaultConfig()
	cfg1.Level = "debug"
	cfg1.FileDirectory = "/custom/path"

	cfg2 := cfg1.Clone()
	assert.Equal(t, cfg1.Level, cfg2.Level)
	assert.Equal(t, cfg1.FileDirectory, cfg2.FileDirectory)

	// Modifying the original leaves the clone untouched
	cfg1.Level = "error"
	assert.Equal(t, "debug", cfg2.Level)
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"uncontended", func(c *Config) { c.Threading = ThreadingUncontended }, true},
		{"empty pattern", func(c *Config) { c.Pattern = "" }, true},
		{"blank name", func(c *Config) { c.Name = "  " }, false},
		{"bad level", func(c *Config) { c.Level = "loud" }, false},
		{"bad threading", func(c *Config) { c.Threading = "atomic" }, false},
		{"bad pattern", func(c *Config) { c.Pattern = "%q" }, false},
		{"bad console target", func(c *Config) { c.ConsoleTarget = "tty" }, false},
		{"dotted extension", func(c *Config) { c.FileExtension = ".txt" }, false},
		{"negative age", func(c *Config) { c.FileMaxAgeDays = -1 }, false},
		{"file zero size", func(c *Config) { c.EnableFile = true; c.FileMaxSizeMB = 0 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewConfigFromDefaults(t *testing.T) {
	cfg, err := NewConfigFromDefaults(map[string]any{
		"name":             "svc",
		"level":            "debug",
		"threading":        "uncontended",
		"enable_file":      true,
		"file_max_size_mb": 25,
	})
	require.NoError(t, err)

	assert.Equal(t, "svc", cfg.Name)
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, ThreadingUncontended, cfg.Threading)
	assert.True(t, cfg.EnableFile)
	assert.Equal(t, int64(25), cfg.FileMaxSizeMB)
}

func TestNewConfigFromDefaultsRejectsUnknownKey(t *testing.T) {
	_, err := NewConfigFromDefaults(map[string]any{"volume": 11})
	assert.Error(t, err)
}

func TestNewConfigFromDefaultsRejectsBadType(t *testing.T) {
	_, err := NewConfigFromDefaults(map[string]any{"name": 42})
	assert.Error(t, err)
}

func TestNewConfigFromDefaultsValidates(t *testing.T) {
	_, err := NewConfigFromDefaults(map[string]any{"level": "shout"})
	assert.Error(t, err)
}

func TestNewConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treelog.toml")
	content := `[treelog]
name = "svc"
level = "debug"
threading = "uncontended"
pattern = "{level} {message}"
enable_file = true
file_directory = "/var/log/svc"
file_max_size_mb = 25
file_compress = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "svc", cfg.Name)
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, ThreadingUncontended, cfg.Threading)
	assert.Equal(t, "{level} {message}", cfg.Pattern)
	assert.True(t, cfg.EnableFile)
	assert.Equal(t, "/var/log/svc", cfg.FileDirectory)
	assert.Equal(t, int64(25), cfg.FileMaxSizeMB)
	assert.True(t, cfg.FileCompress)

	// Unset keys keep their defaults
	assert.Equal(t, "log", cfg.FileExtension)
}

func TestNewConfigFromFileMissingUsesDefaults(t *testing.T) {
	cfg, err := NewConfigFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig.Name, cfg.Name)
	assert.Equal(t, defaultConfig.Level, cfg.Level)
}
