// FILE: lixenwraith/treelog/sink_file.go
package treelog

import (
	"sync"

	"github.com/valyala/bytebufferpool"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileSink writes rendered records to a size-rotated log file. Rotation,
// retention, and compression are delegated to lumberjack; the core never
// manages files itself.
type FileSink struct {
	SinkBase
	mu  sync.Mutex
	out *lumberjack.Logger
}

// NewFileSink creates a file sink at path with an optional pattern and
// level name overrides. Rotation defaults to 10 MB per file with no
// backup or age limit; tune with Rotation.
func NewFileSink(path string, pattern string, names ...LevelName) *FileSink {
	s := &FileSink{
		out: &lumberjack.Logger{
			Filename: path,
			MaxSize:  10,
		},
	}
	if pattern != "" {
		s.ConfigurePattern(pattern)
	}
	if len(names) > 0 {
		s.ConfigureLevels(names...)
	}
	return s
}

// Rotation sets the rotation policy: max file size in MB, number of
// rotated files kept, their max age in days, and gzip compression.
// Fluent, configuration-time only.
func (s *FileSink) Rotation(maxSizeMB, maxBackups, maxAgeDays int, compress bool) *FileSink {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out.MaxSize = maxSizeMB
	s.out.MaxBackups = maxBackups
	s.out.MaxAge = maxAgeDays
	s.out.Compress = compress
	return s
}

// Message renders and writes one record.
func (s *FileSink) Message(rec *Record) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	s.Format(buf, rec)
	buf.B = append(buf.B, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.out.Write(buf.B)
	return err
}

// Flush is a no-op: lumberjack writes through to the file on every call.
func (s *FileSink) Flush() error { return nil }

// Rotate forces a rotation of the current log file.
func (s *FileSink) Rotate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Rotate()
}

// Close closes the current log file. The sink must be removed from any
// driver first.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Close()
}

// SetPattern recompiles the sink's pattern. Fluent; see Sink.
func (s *FileSink) SetPattern(spec string) Sink {
	s.ConfigurePattern(spec)
	return s
}

// SetLevels overrides the sink's level display names. Fluent; see Sink.
func (s *FileSink) SetLevels(names ...LevelName) Sink {
	s.ConfigureLevels(names...)
	return s
}
