// FILE: lixenwraith/treelog/sink_writer.go
package treelog

import (
	"io"
	"sync"

	"github.com/valyala/bytebufferpool"
)

// WriterSink is the reference backend: it renders each record with its
// own pattern, appends a newline, and issues a single Write on the
// underlying io.Writer under a private mutex.
type WriterSink struct {
	SinkBase
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink over w with an optional pattern and level
// name overrides. An empty pattern renders the bare message.
func NewWriterSink(w io.Writer, pattern string, names ...LevelName) *WriterSink {
	s := &WriterSink{w: w}
	if pattern != "" {
		s.ConfigurePattern(pattern)
	}
	if len(names) > 0 {
		s.ConfigureLevels(names...)
	}
	return s
}

// Message renders and writes one record.
func (s *WriterSink) Message(rec *Record) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	s.Format(buf, rec)
	buf.B = append(buf.B, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(buf.B)
	return err
}

// Flush syncs or flushes the underlying writer when it supports either.
func (s *WriterSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch w := s.w.(type) {
	case interface{ Sync() error }:
		return w.Sync()
	case interface{ Flush() error }:
		return w.Flush()
	}
	return nil
}

// SetPattern recompiles the sink's pattern. Fluent; see Sink.
func (s *WriterSink) SetPattern(spec string) Sink {
	s.ConfigurePattern(spec)
	return s
}

// SetLevels overrides the sink's level display names. Fluent; see Sink.
func (s *WriterSink) SetLevels(names ...LevelName) Sink {
	s.ConfigureLevels(names...)
	return s
}

// NullSink discards every record without rendering it. Useful for
// benchmarks and for keeping a driver wired while muting output.
type NullSink struct {
	SinkBase
}

// NewNullSink creates a discarding sink.
func NewNullSink() *NullSink {
	return &NullSink{}
}

func (s *NullSink) Message(*Record) error { return nil }

func (s *NullSink) Flush() error { return nil }

func (s *NullSink) SetPattern(spec string) Sink {
	s.ConfigurePattern(spec)
	return s
}

func (s *NullSink) SetLevels(names ...LevelName) Sink {
	s.ConfigureLevels(names...)
	return s
}
