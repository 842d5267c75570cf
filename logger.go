// FILE: lixenwraith/treelog/logger.go
package treelog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/valyala/bytebufferpool"
)

// Logger is a named node in the logging hierarchy. It carries the
// severity threshold, owns a sink driver for sink management and
// dispatch, and stamps its name on every record it emits as the
// category.
//
// Loggers are created with NewLogger from a Config, or with Child under
// an existing logger. A child starts with its parent's threshold and
// threading policy and sees the parent's sinks through the driver's
// effective-sink cache.
type Logger struct {
	name      string
	threading string
	level     atomic.Int32
	closed    atomic.Bool
	driver    *SinkDriver
}

// NewLogger creates a logger from cfg, building the configured console
// and file sinks and attaching any pre-built ones. A nil cfg uses
// defaults. The returned logger is ready to dispatch.
func NewLogger(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	l := &Logger{
		name:      cfg.Name,
		threading: cfg.Threading,
	}
	l.level.Store(int32(lvl))

	var parent *SinkDriver
	if cfg.Parent != nil {
		parent = cfg.Parent.driver
	}
	l.driver = newSinkDriver(l, parent, newPolicyLock(cfg.Threading))

	pattern := cfg.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}

	if cfg.EnableConsole {
		var w io.Writer = os.Stdout
		if cfg.ConsoleTarget == ConsoleStderr {
			w = os.Stderr
		}
		sink := NewWriterSink(w, pattern)
		if err := sink.Err(); err != nil {
			return nil, err
		}
		l.driver.AddSink(sink)
	}

	if cfg.EnableFile {
		path := filepath.Join(cfg.FileDirectory, cfg.FileName+"."+cfg.FileExtension)
		sink := NewFileSink(path, pattern).
			Rotation(int(cfg.FileMaxSizeMB), int(cfg.FileMaxBackups), int(cfg.FileMaxAgeDays), cfg.FileCompress)
		if err := sink.Err(); err != nil {
			return nil, err
		}
		l.driver.AddSink(sink)
	}

	for _, sink := range cfg.Sinks {
		l.driver.AddSink(sink)
	}

	return l, nil
}

// Child creates a logger named name under this one. It inherits the
// threshold and threading policy at creation time; both can diverge
// afterward without affecting the parent.
func (l *Logger) Child(name string) *Logger {
	c := &Logger{
		name:      name,
		threading: l.threading,
	}
	c.level.Store(l.level.Load())
	c.driver = newSinkDriver(c, l.driver, newPolicyLock(l.threading))
	return c
}

// Name returns the logger's name, used as the record category.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the current severity threshold.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// SetLevel replaces the severity threshold. Takes effect for subsequent
// dispatches; in-flight dispatches may use either value.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// levelEnabled reports whether events at level pass this logger's
// threshold. Larger levels are more verbose, so the test is
// threshold >= level.
func (l *Logger) levelEnabled(level Level) bool {
	return Level(l.level.Load()) >= level
}

// AddSink attaches a sink at this logger, enabled, making it reachable
// from this node and every descendant. Returns false if it was already
// attached here.
func (l *Logger) AddSink(sink Sink) bool {
	return l.driver.AddSink(sink)
}

// AddWriterSink builds a WriterSink over w and attaches it.
func (l *Logger) AddWriterSink(w io.Writer, pattern string, names ...LevelName) *WriterSink {
	sink := NewWriterSink(w, pattern, names...)
	l.driver.AddSink(sink)
	return sink
}

// AddFileSink builds a FileSink at path and attaches it.
func (l *Logger) AddFileSink(path string, pattern string, names ...LevelName) *FileSink {
	sink := NewFileSink(path, pattern, names...)
	l.driver.AddSink(sink)
	return sink
}

// RemoveSink detaches a sink attached at this logger. Returns false if
// the sink is not attached here; ancestors' attachments are not touched.
func (l *Logger) RemoveSink(sink Sink) bool {
	return l.driver.RemoveSink(sink)
}

// SetSinkEnabled flips the enabled flag of a sink attached at this
// logger. Disabling masks an identical ancestor attachment for this
// subtree. Returns false if the sink is not attached here.
func (l *Logger) SetSinkEnabled(sink Sink, enabled bool) bool {
	return l.driver.SetSinkEnabled(sink, enabled)
}

// SinkEnabled reports whether sink is attached at this logger and
// enabled.
func (l *Logger) SinkEnabled(sink Sink) bool {
	return l.driver.SinkEnabled(sink)
}

// Flush flushes every sink reachable from this logger.
func (l *Logger) Flush() error {
	return l.driver.FlushSinks()
}

// Close removes the logger from the hierarchy. Its children become
// roots of their own subtrees and lose the sinks they reached through
// this node and its ancestors. The closed logger stops dispatching.
// Safe to call more than once.
func (l *Logger) Close() {
	if !l.closed.CompareAndSwap(false, true) {
		return
	}
	l.driver.close()
}

// Log dispatches a message source at the given level. The source may be
// a string, []byte, error, fmt.Stringer, a func() string or
// func(*bytebufferpool.ByteBuffer) evaluated only when a sink passes
// the level filter, a func() invoked for side effects only, or any
// other value rendered with a compact dump. Only those three function
// signatures are treated as callables; functions with any other
// signature are rendered as values, never invoked.
func (l *Logger) Log(level Level, source any) error {
	return l.dispatch(level, source, 2)
}

// Logf dispatches a formatted message. The formatting runs only when a
// sink passes the level filter.
func (l *Logger) Logf(level Level, format string, args ...any) error {
	return l.dispatch(level, func(buf *bytebufferpool.ByteBuffer) {
		fmt.Fprintf(buf, format, args...)
	}, 2)
}

func (l *Logger) dispatch(level Level, source any, skip int) error {
	if l.closed.Load() {
		return nil
	}
	return l.driver.Dispatch(level, source, l.name, Here(skip))
}
