// FILE: lixenwraith/treelog/logger_test.go
package treelog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerDefaults(t *testing.T) {
	logger, err := NewLogger(nil)
	require.NoError(t, err)
	defer logger.Close()

	assert.Equal(t, "root", logger.Name())
	assert.Equal(t, LevelInfo, logger.Level())
}

func TestNewLoggerValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty name", func(c *Config) { c.Name = " " }},
		{"bad level", func(c *Config) { c.Level = "verbose" }},
		{"bad threading", func(c *Config) { c.Threading = "lockfree" }},
		{"bad pattern", func(c *Config) { c.Pattern = "{level" }},
		{"bad console target", func(c *Config) { c.ConsoleTarget = "syslog" }},
		{"dotted extension", func(c *Config) { c.FileExtension = ".log" }},
		{"negative backups", func(c *Config) { c.FileMaxBackups = -1 }},
		{"file without name", func(c *Config) { c.EnableFile = true; c.FileName = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			_, err := NewLogger(cfg)
			assert.Error(t, err)
		})
	}
}

func TestNewLoggerAttachesConfiguredSinks(t *testing.T) {
	sink := newCaptureSink("{level} {category}: {message}")

	cfg := DefaultConfig()
	cfg.Name = "net"
	cfg.Level = "warning"
	cfg.Sinks = []Sink{sink}

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	defer logger.Close()

	require.NoError(t, logger.Warn("timeout"))
	assert.Equal(t, "Warning net: timeout", sink.last())

	require.NoError(t, logger.Info("quiet"))
	assert.Equal(t, 1, sink.count())
}

func TestChildInheritsLevelAndDiverges(t *testing.T) {
	root := newTestLogger(t, "root", "debug")
	defer root.Close()

	child := root.Child("sub")
	assert.Equal(t, LevelDebug, child.Level())
	assert.Equal(t, "sub", child.Name())

	child.SetLevel(LevelError)
	assert.Equal(t, LevelError, child.Level())
	assert.Equal(t, LevelDebug, root.Level())
}

func TestLoggerSourceKinds(t *testing.T) {
	root := newTestLogger(t, "root", "info")
	defer root.Close()

	sink := newCaptureSink("{message}")
	root.AddSink(sink)

	require.NoError(t, root.Info("plain"))
	assert.Equal(t, "plain", sink.last())

	require.NoError(t, root.Info([]byte("raw bytes")))
	assert.Equal(t, "raw bytes", sink.last())

	require.NoError(t, root.Info(errors.New("wrapped failure")))
	assert.Equal(t, "wrapped failure", sink.last())

	require.NoError(t, root.Info(bytes.NewBufferString("stringer")))
	assert.Equal(t, "stringer", sink.last())

	require.NoError(t, root.Info(nil))
	assert.Equal(t, "", sink.last())

	// Arbitrary values go through the dump fallback
	type endpoint struct {
		Host string
		Port int
	}
	require.NoError(t, root.Info(endpoint{Host: "localhost", Port: 9000}))
	assert.Contains(t, sink.last(), "localhost")
	assert.Contains(t, sink.last(), "9000")

	// Functions outside the three recognized signatures are values too:
	// rendered, never invoked
	calls := 0
	require.NoError(t, root.Info(func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 0, calls)
	assert.Equal(t, 7, sink.count())
}

func TestLogfFormatsLazily(t *testing.T) {
	root := newTestLogger(t, "root", "info")
	defer root.Close()

	sink := newCaptureSink("{message}")
	root.AddSink(sink)

	require.NoError(t, root.Logf(LevelInfo, "attempt %d of %d", 2, 5))
	assert.Equal(t, "attempt 2 of 5", sink.last())

	// Below the threshold nothing is formatted or delivered
	require.NoError(t, root.Logf(LevelDebug, "unused %d", 1))
	assert.Equal(t, 1, sink.count())
}

func TestLeveledMethods(t *testing.T) {
	root := newTestLogger(t, "root", "trace")
	defer root.Close()

	sink := newCaptureSink("{level}")
	root.AddSink(sink)

	require.NoError(t, root.Fatal("m"))
	require.NoError(t, root.Error("m"))
	require.NoError(t, root.Warn("m"))
	require.NoError(t, root.Info("m"))
	require.NoError(t, root.Debug("m"))
	require.NoError(t, root.Trace("m"))

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(t, []string{"Fatal", "Error", "Warning", "Info", "Debug", "Trace"}, sink.lines)
}

func TestLocationCapture(t *testing.T) {
	root := newTestLogger(t, "root", "info")
	defer root.Close()

	sink := newCaptureSink("{file}:{function}")
	root.AddSink(sink)

	require.NoError(t, root.Info("here"))
	assert.Contains(t, sink.last(), "logger_test.go")
	assert.Contains(t, sink.last(), "TestLocationCapture")
}

func TestClosedLoggerIsInert(t *testing.T) {
	root := newTestLogger(t, "root", "info")

	sink := newCaptureSink("{message}")
	root.AddSink(sink)

	root.Close()
	root.Close() // idempotent

	require.NoError(t, root.Info("dropped"))
	assert.Equal(t, 0, sink.count())
}

func TestAddWriterSinkHelper(t *testing.T) {
	root := newTestLogger(t, "app", "info")
	defer root.Close()

	var out bytes.Buffer
	root.AddWriterSink(&out, "{level} {category}: {message}")

	require.NoError(t, root.Info("started"))
	require.NoError(t, root.Flush())

	assert.Equal(t, "Info app: started\n", out.String())
}

func TestFileSinkViaConfig(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Name = "app"
	cfg.EnableFile = true
	cfg.FileDirectory = tmpDir
	cfg.FileName = "app"
	cfg.FileExtension = "log"
	cfg.Pattern = "{level} {message}"

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	defer logger.Close()

	require.NoError(t, logger.Info("persisted"))
	require.NoError(t, logger.Flush())

	data, err := os.ReadFile(filepath.Join(tmpDir, "app.log"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Info persisted"))
}
