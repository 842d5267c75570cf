// FILE: lixenwraith/treelog/record.go
package treelog

import (
	"runtime"
	"time"
)

// Location identifies the call site of a log event.
type Location struct {
	File     string
	Function string
	Line     int
}

// Here captures the caller's location. skip counts stack frames above the
// caller, as in runtime.Caller.
func Here(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{File: "(unknown)"}
	}
	loc := Location{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = fn.Name()
	}
	return loc
}

// RecordTime is the event timestamp split into a coarse local-time
// component and the sub-second nanosecond remainder.
type RecordTime struct {
	Local time.Time
	Nsec  int
}

func recordTimeNow() RecordTime {
	now := time.Now()
	nsec := now.Nanosecond()
	return RecordTime{
		Local: now.Add(-time.Duration(nsec)),
		Nsec:  nsec,
	}
}

// Record is the unit of one log event passed to sinks. All fields except
// the message are populated when dispatch begins; the message is
// materialized at most once, and only if at least one sink passes the
// level filter. A Record must not be retained past the Message call that
// delivered it: the message may reference a pooled scratch buffer.
type Record struct {
	Level    Level
	Location Location
	Category string
	ThreadID uint64
	Time     RecordTime

	msg      string
	msgBytes []byte
	msgSet   bool
}

// SetMessage populates the message from an owned string.
func (r *Record) SetMessage(msg string) {
	r.msg = msg
	r.msgBytes = nil
	r.msgSet = true
}

// SetMessageBytes populates the message as a view over the given slice.
// The record does not copy; the slice must stay valid for the dispatch.
func (r *Record) SetMessageBytes(msg []byte) {
	r.msg = ""
	r.msgBytes = msg
	r.msgSet = true
}

// HasMessage reports whether the message has been materialized.
func (r *Record) HasMessage() bool {
	return r.msgSet
}

// MessageBytes returns the message as a byte view. Reading the message of
// a record that never went through materialization is a contract
// violation, not a runtime condition, so it panics.
func (r *Record) MessageBytes() []byte {
	if !r.msgSet {
		panic("treelog: record message read before materialization")
	}
	if r.msgBytes != nil {
		return r.msgBytes
	}
	return []byte(r.msg)
}

// Message returns the message as a string. Panics like MessageBytes when
// the message was never materialized.
func (r *Record) Message() string {
	if !r.msgSet {
		panic("treelog: record message read before materialization")
	}
	if r.msgBytes != nil {
		return string(r.msgBytes)
	}
	return r.msg
}
