// FILE: lixenwraith/treelog/config.go
package treelog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds the construction parameters of a logger
type Config struct {
	// Identity and policy
	Name      string `toml:"name"`      // Logger name, stamped on records as the category
	Level     string `toml:"level"`     // Severity threshold: fatal, error, warning, info, debug, trace
	Threading string `toml:"threading"` // "guarded" or "uncontended"
	Pattern   string `toml:"pattern"`   // Pattern applied to sinks built from this config

	// Console sink
	EnableConsole bool   `toml:"enable_console"`
	ConsoleTarget string `toml:"console_target"` // "stdout" or "stderr"

	// File sink
	EnableFile     bool   `toml:"enable_file"`
	FileDirectory  string `toml:"file_directory"`
	FileName       string `toml:"file_name"` // Base name without extension
	FileExtension  string `toml:"file_extension"`
	FileMaxSizeMB  int64  `toml:"file_max_size_mb"`
	FileMaxBackups int64  `toml:"file_max_backups"`  // Rotated files kept, 0 = unlimited
	FileMaxAgeDays int64  `toml:"file_max_age_days"` // 0 = unlimited
	FileCompress   bool   `toml:"file_compress"`

	// Programmatic-only settings, not loadable from file
	Parent *Logger `toml:"-"` // Attach the new logger under this one
	Sinks  []Sink  `toml:"-"` // Pre-built sinks to attach
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Name:      "root",
	Level:     "info",
	Threading: ThreadingGuarded,
	Pattern:   DefaultPattern,

	EnableConsole: false,
	ConsoleTarget: ConsoleStdout,

	EnableFile:     false,
	FileDirectory:  "./logs",
	FileName:       "app",
	FileExtension:  "log",
	FileMaxSizeMB:  10,
	FileMaxBackups: 0,
	FileMaxAgeDays: 0,
	FileCompress:   false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a
// validated Config. A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	if err := loader.RegisterStruct("treelog.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, "treelog.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies
// overrides keyed by toml tag
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmt.Errorf("failed to apply overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" || tomlTag == "-" {
			continue
		}

		key := prefix + tomlTag

		val, found := loader.Get(key)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag != "" && tomlTag != "-" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmtErrorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmtErrorf("logger name cannot be empty")
	}

	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}

	if c.Threading != ThreadingGuarded && c.Threading != ThreadingUncontended {
		return fmtErrorf("invalid threading: '%s' (use guarded or uncontended)", c.Threading)
	}

	if c.Pattern != "" {
		if _, err := CompilePattern(c.Pattern); err != nil {
			return err
		}
	}

	if c.ConsoleTarget != ConsoleStdout && c.ConsoleTarget != ConsoleStderr {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget)
	}

	if strings.HasPrefix(c.FileExtension, ".") {
		return fmtErrorf("file_extension should not start with dot: %s", c.FileExtension)
	}

	if c.FileMaxSizeMB < 0 || c.FileMaxBackups < 0 || c.FileMaxAgeDays < 0 {
		return fmtErrorf("file limits cannot be negative")
	}

	if c.EnableFile {
		if strings.TrimSpace(c.FileName) == "" {
			return fmtErrorf("file_name cannot be empty when file output is enabled")
		}
		if c.FileMaxSizeMB == 0 {
			return fmtErrorf("file_max_size_mb must be positive when file output is enabled")
		}
	}

	return nil
}

// Clone creates a copy of the configuration. The Parent pointer and the
// Sinks slice header are copied, not the sinks themselves.
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
