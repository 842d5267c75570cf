// FILE: lixenwraith/treelog/integration_test.go
package treelog

import (
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countSink counts deliveries without rendering
type countSink struct {
	SinkBase
	n atomic.Int64
}

func (s *countSink) Message(*Record) error { s.n.Add(1); return nil }
func (s *countSink) Flush() error          { return nil }
func (s *countSink) SetPattern(spec string) Sink {
	s.ConfigurePattern(spec)
	return s
}
func (s *countSink) SetLevels(names ...LevelName) Sink {
	s.ConfigureLevels(names...)
	return s
}

func TestConcurrentDispatchThroughHierarchy(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 200

	root := newTestLogger(t, "root", "info")
	defer root.Close()

	sink := &countSink{}
	root.AddSink(sink)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		child := root.Child("worker")
		wg.Add(1)
		go func(l *Logger) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				_ = l.Infof("iteration %d", i)
			}
		}(child)
	}
	wg.Wait()

	assert.Equal(t, int64(goroutines*perGoroutine), sink.n.Load())
}

func TestConcurrentStructuralMutations(t *testing.T) {
	root := newTestLogger(t, "root", "info")
	defer root.Close()

	stable := &countSink{}
	root.AddSink(stable)

	child := root.Child("busy")

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				_ = child.Info("under churn")
			}
		}
	}()

	// Attach, toggle, and detach a second sink while the child emits
	churn := &countSink{}
	for i := 0; i < 100; i++ {
		root.AddSink(churn)
		root.SetSinkEnabled(churn, false)
		root.SetSinkEnabled(churn, true)
		root.RemoveSink(churn)

		grand := child.Child("transient")
		_ = grand.Info("hello")
		grand.Close()
	}
	close(stop)
	wg.Wait()

	require.NoError(t, root.Flush())
	assert.Greater(t, stable.n.Load(), int64(0))
}

func TestUncontendedHierarchy(t *testing.T) {
	logger, err := NewBuilder().
		Name("single").
		Threading(ThreadingUncontended).
		LevelString("trace").
		Build()
	require.NoError(t, err)
	defer logger.Close()

	sink := newCaptureSink("{category}/{level}: {message}")
	logger.AddSink(sink)

	child := logger.Child("fast")
	require.NoError(t, child.Trace("no locks taken"))
	assert.Equal(t, "fast/Trace: no locks taken", sink.last())
}

func BenchmarkDispatchBelowThreshold(b *testing.B) {
	cfg := DefaultConfig()
	cfg.Level = "info"
	logger, _ := NewLogger(cfg)
	defer logger.Close()

	logger.AddWriterSink(io.Discard, "{level} {message}")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = logger.Debug("filtered out")
	}
}

func BenchmarkDispatchDelivered(b *testing.B) {
	cfg := DefaultConfig()
	cfg.Level = "info"
	logger, _ := NewLogger(cfg)
	defer logger.Close()

	logger.AddWriterSink(io.Discard, "{time}.{msec} {level} {category}: {message}")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = logger.Infof("request %d handled", i)
	}
}
