// FILE: lixenwraith/treelog/level.go
package treelog

import (
	"strconv"
	"strings"
)

// Level is the severity of a log event. Values increase with verbosity,
// so a logger with threshold LevelInfo passes Fatal through Info and
// rejects Debug and Trace.
type Level int32

// Log level constants, least verbose first
const (
	LevelFatal Level = iota
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
	LevelTrace

	numLevels = int(LevelTrace) + 1
)

// defaultLevelNames are the built-in display names used by the pattern
// renderer when a sink has no override for a level.
var defaultLevelNames = [numLevels]string{
	LevelFatal:   "Fatal",
	LevelError:   "Error",
	LevelWarning: "Warning",
	LevelInfo:    "Info",
	LevelDebug:   "Debug",
	LevelTrace:   "Trace",
}

// LevelName pairs a level with a display name. Sinks accept an ordered
// list of these to override the built-in names.
type LevelName struct {
	Level Level
	Name  string
}

// String returns the built-in display name of the level.
func (l Level) String() string {
	if l.valid() {
		return defaultLevelNames[l]
	}
	return "Level(" + strconv.Itoa(int(l)) + ")"
}

func (l Level) valid() bool {
	return l >= LevelFatal && l <= LevelTrace
}

// ParseLevel converts a level string to its constant.
func ParseLevel(levelStr string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "fatal":
		return LevelFatal, nil
	case "error":
		return LevelError, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use fatal, error, warning, info, debug, trace)", levelStr)
	}
}
