// FILE: lixenwraith/treelog/sink.go
package treelog

import (
	"sync"

	"github.com/valyala/bytebufferpool"
)

// Sink is the backend contract. A sink renders a finished Record with its
// own pattern and level-name table and emits it. Message calls may arrive
// concurrently from multiple dispatching goroutines; a sink must
// serialize its own output if the transport is not inherently safe.
//
// SetPattern and SetLevels mutate sink-local state only and return the
// sink itself for fluent configuration chains. A pattern compile failure
// is retained and reported by Err, in the manner of a deferred builder
// error; the previously active pattern stays in effect.
type Sink interface {
	Message(rec *Record) error
	Flush() error
	SetPattern(spec string) Sink
	SetLevels(names ...LevelName) Sink
	Err() error
}

// SinkBase carries the pattern state shared by sink implementations.
// Embed it and delegate the fluent Sink methods to ConfigurePattern and
// ConfigureLevels.
type SinkBase struct {
	pattern Pattern

	errMu sync.Mutex
	err   error
}

// ConfigurePattern compiles and swaps the pattern, retaining the first
// compile error for Err.
func (b *SinkBase) ConfigurePattern(spec string) {
	if err := b.pattern.SetPattern(spec); err != nil {
		b.errMu.Lock()
		if b.err == nil {
			b.err = err
		}
		b.errMu.Unlock()
	}
}

// ConfigureLevels overrides the level display names.
func (b *SinkBase) ConfigureLevels(names ...LevelName) {
	b.pattern.SetLevels(names...)
}

// Err returns the first pattern configuration error, if any.
func (b *SinkBase) Err() error {
	b.errMu.Lock()
	defer b.errMu.Unlock()
	return b.err
}

// Format appends the record rendered with this sink's pattern to buf.
func (b *SinkBase) Format(buf *bytebufferpool.ByteBuffer, rec *Record) {
	b.pattern.Render(buf, rec)
}
