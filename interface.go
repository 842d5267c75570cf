// FILE: lixenwraith/treelog/interface.go
package treelog

import (
	"fmt"

	"github.com/valyala/bytebufferpool"
)

// Leveled convenience methods. Each is Log or Logf pinned to one level;
// see Log for the accepted message sources.

// Fatal logs a message source at fatal level
func (l *Logger) Fatal(source any) error {
	return l.dispatch(LevelFatal, source, 2)
}

// Error logs a message source at error level
func (l *Logger) Error(source any) error {
	return l.dispatch(LevelError, source, 2)
}

// Warn logs a message source at warning level
func (l *Logger) Warn(source any) error {
	return l.dispatch(LevelWarning, source, 2)
}

// Info logs a message source at info level
func (l *Logger) Info(source any) error {
	return l.dispatch(LevelInfo, source, 2)
}

// Debug logs a message source at debug level
func (l *Logger) Debug(source any) error {
	return l.dispatch(LevelDebug, source, 2)
}

// Trace logs a message source at trace level
func (l *Logger) Trace(source any) error {
	return l.dispatch(LevelTrace, source, 2)
}

// Fatalf logs a formatted message at fatal level
func (l *Logger) Fatalf(format string, args ...any) error {
	return l.dispatch(LevelFatal, func(buf *bytebufferpool.ByteBuffer) {
		fmt.Fprintf(buf, format, args...)
	}, 2)
}

// Errorf logs a formatted message at error level
func (l *Logger) Errorf(format string, args ...any) error {
	return l.dispatch(LevelError, func(buf *bytebufferpool.ByteBuffer) {
		fmt.Fprintf(buf, format, args...)
	}, 2)
}

// Warnf logs a formatted message at warning level
func (l *Logger) Warnf(format string, args ...any) error {
	return l.dispatch(LevelWarning, func(buf *bytebufferpool.ByteBuffer) {
		fmt.Fprintf(buf, format, args...)
	}, 2)
}

// Infof logs a formatted message at info level
func (l *Logger) Infof(format string, args ...any) error {
	return l.dispatch(LevelInfo, func(buf *bytebufferpool.ByteBuffer) {
		fmt.Fprintf(buf, format, args...)
	}, 2)
}

// Debugf logs a formatted message at debug level
func (l *Logger) Debugf(format string, args ...any) error {
	return l.dispatch(LevelDebug, func(buf *bytebufferpool.ByteBuffer) {
		fmt.Fprintf(buf, format, args...)
	}, 2)
}

// Tracef logs a formatted message at trace level
func (l *Logger) Tracef(format string, args ...any) error {
	return l.dispatch(LevelTrace, func(buf *bytebufferpool.ByteBuffer) {
		fmt.Fprintf(buf, format, args...)
	}, 2)
}
