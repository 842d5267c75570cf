// FILE: lixenwraith/treelog/driver.go
package treelog

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/davecgh/go-spew/spew"
	"github.com/valyala/bytebufferpool"
)

// effectiveEntry pairs a reachable sink with the logger whose attachment
// made it reachable. That logger's threshold gates delivery through the
// sink, so a sink attached at a verbose ancestor stays deliverable from
// a quiet child and vice versa.
type effectiveEntry struct {
	sink  Sink
	owner *Logger
}

// effectiveSet is an immutable snapshot of a node's reachable sinks.
// Ancestor attachments come first, in the parent's order.
type effectiveSet struct {
	entries []effectiveEntry
}

// SinkDriver is the per-logger node of the hierarchy. It owns the sinks
// attached at this node (with their enabled flags), links to the parent
// and child drivers without owning them, and maintains the cached
// effective-sink set so dispatch never walks the tree.
//
// The node's maps are protected by the threading policy's lock. The
// effective set is additionally published through an atomic pointer:
// cache refresh reads a parent's set without taking the parent's lock,
// which keeps every lock acquisition ordered parent before child.
type SinkDriver struct {
	owner     *Logger
	mu        rwLocker
	parent    *SinkDriver
	children  map[*SinkDriver]struct{}
	sinks     map[Sink]bool
	effective atomic.Pointer[effectiveSet]
}

// newSinkDriver wires a node under parent (which may be nil) and
// computes its effective set from the parent's current one.
func newSinkDriver(owner *Logger, parent *SinkDriver, mu rwLocker) *SinkDriver {
	d := &SinkDriver{
		owner:    owner,
		mu:       mu,
		parent:   parent,
		children: make(map[*SinkDriver]struct{}),
		sinks:    make(map[Sink]bool),
	}
	d.effective.Store(&effectiveSet{})
	if parent != nil {
		parent.mu.Lock()
		parent.children[d] = struct{}{}
		d.refreshSubtree()
		parent.mu.Unlock()
	}
	return d
}

// AddSink attaches an existing sink, enabled. Returns false if the sink
// was already attached at this node (its flag is reset to enabled either
// way, matching insert-or-assign semantics).
func (d *SinkDriver) AddSink(sink Sink) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, exists := d.sinks[sink]
	d.sinks[sink] = true
	d.updateEffectiveSinks()
	return !exists
}

// RemoveSink detaches a sink. Returns false if it was not attached here.
func (d *SinkDriver) RemoveSink(sink Sink) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.sinks[sink]; !exists {
		return false
	}
	delete(d.sinks, sink)
	d.updateEffectiveSinks()
	return true
}

// SetSinkEnabled flips a sink's enabled flag without detaching it.
// Returns false if the sink is not attached at this node.
func (d *SinkDriver) SetSinkEnabled(sink Sink, enabled bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.sinks[sink]; !exists {
		return false
	}
	d.sinks[sink] = enabled
	d.updateEffectiveSinks()
	return true
}

// SinkEnabled reports whether a sink is attached here and enabled.
func (d *SinkDriver) SinkEnabled(sink Sink) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sinks[sink]
}

// Dispatch is the emission entry point. It captures the cheap record
// fields unconditionally, filters each reachable sink by its attributing
// logger's threshold, materializes the message source at most once when
// the first sink passes, and forwards the finished record to every
// passing sink. With no passing sink the call costs only the captures.
//
// The message source is one of: func(*bytebufferpool.ByteBuffer) writing
// the message into the buffer, func() string producing it, func() run
// for side effects only (nothing is dispatched), or a plain value
// (string, []byte, error, fmt.Stringer, anything else via a compact
// dump). Those three signatures are the only callables recognized; a
// function value of any other signature is not invoked and renders
// through the dump fallback like any other value.
//
// A sink error aborts the remaining iteration and propagates.
func (d *SinkDriver) Dispatch(level Level, source any, category string, loc Location) error {
	rec := Record{
		Level:    level,
		Location: loc,
		Category: category,
		ThreadID: goroutineID(),
		Time:     recordTimeNow(),
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	eff := d.effective.Load()
	if eff == nil || len(eff.entries) == 0 {
		return nil
	}

	var buf *bytebufferpool.ByteBuffer
	defer func() {
		if buf != nil {
			bytebufferpool.Put(buf)
		}
	}()

	evaluated := false
	for i := range eff.entries {
		e := &eff.entries[i]
		if !e.owner.levelEnabled(level) {
			continue
		}
		if !evaluated {
			evaluated = true
			switch src := source.(type) {
			case func(*bytebufferpool.ByteBuffer):
				buf = bytebufferpool.Get()
				src(buf)
				rec.SetMessageBytes(buf.B)
			case func() string:
				rec.SetMessage(src())
			case func():
				// Side-effect-only callback: run once, dispatch nothing
				src()
				return nil
			case string:
				rec.SetMessage(src)
			case []byte:
				rec.SetMessageBytes(src)
			case error:
				rec.SetMessage(src.Error())
			case fmt.Stringer:
				rec.SetMessage(src.String())
			case nil:
				rec.SetMessage("")
			default:
				rec.SetMessage(dumpValue(src))
			}
		}
		if err := e.sink.Message(&rec); err != nil {
			return err
		}
	}
	return nil
}

// FlushSinks flushes every sink reachable from this node. The first
// error aborts and propagates, like a dispatch.
func (d *SinkDriver) FlushSinks() error {
	d.mu.RLock()
	eff := d.effective.Load()
	d.mu.RUnlock()
	if eff == nil {
		return nil
	}
	for i := range eff.entries {
		if err := eff.entries[i].sink.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// close detaches the node and drops its own sinks, leaving nothing
// reachable through it.
func (d *SinkDriver) close() {
	d.detach()
	d.mu.Lock()
	d.sinks = make(map[Sink]bool)
	d.rebuild()
	d.mu.Unlock()
}

// detach unlinks the node from the hierarchy: it deregisters from the
// parent and orphans every child, which loses the ancestors' sinks and
// recomputes.
func (d *SinkDriver) detach() {
	d.mu.Lock()
	parent := d.parent
	d.parent = nil
	d.mu.Unlock()

	if parent != nil {
		parent.mu.Lock()
		delete(parent.children, d)
		parent.mu.Unlock()
	}

	d.mu.Lock()
	children := make([]*SinkDriver, 0, len(d.children))
	for c := range d.children {
		children = append(children, c)
	}
	d.children = make(map[*SinkDriver]struct{})
	d.rebuild()
	d.mu.Unlock()

	for _, c := range children {
		c.mu.Lock()
		c.parent = nil
		c.rebuild()
		for g := range c.children {
			g.refreshSubtree()
		}
		c.mu.Unlock()
	}
}

// updateEffectiveSinks recomputes this node's and every descendant's
// effective set. Caller holds d's write lock; descendants are locked
// parent-first on the way down, so a racing emission on any node sees
// either the fully old or the fully new snapshot.
func (d *SinkDriver) updateEffectiveSinks() {
	d.rebuild()
	for child := range d.children {
		child.refreshSubtree()
	}
}

// refreshSubtree rebuilds this node from its parent's current effective
// set, then descends. The caller guarantees the parent's set is stable
// for the duration (it holds the parent's write lock on this mutation
// path).
func (d *SinkDriver) refreshSubtree() {
	d.mu.Lock()
	d.rebuild()
	for child := range d.children {
		child.refreshSubtree()
	}
	d.mu.Unlock()
}

// rebuild derives the effective set: the parent's entries with their
// attribution unchanged, then this node's own sinks attributed to this
// node. A locally disabled attachment masks an identical ancestor
// attachment. Caller holds d's write lock.
func (d *SinkDriver) rebuild() {
	var entries []effectiveEntry
	if d.parent != nil {
		if p := d.parent.effective.Load(); p != nil && len(p.entries) > 0 {
			entries = append(entries, p.entries...)
		}
	}
	for sink, enabled := range d.sinks {
		idx := -1
		for i := range entries {
			if entries[i].sink == sink {
				idx = i
				break
			}
		}
		if enabled {
			if idx >= 0 {
				entries[idx].owner = d.owner
			} else {
				entries = append(entries, effectiveEntry{sink: sink, owner: d.owner})
			}
		} else if idx >= 0 {
			entries = append(entries[:idx], entries[idx+1:]...)
		}
	}
	d.effective.Store(&effectiveSet{entries: entries})
}

// valueDumper renders arbitrary message values compactly, without
// pointer addresses or capacities.
var valueDumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func dumpValue(v any) string {
	return strings.TrimSpace(valueDumper.Sdump(v))
}
