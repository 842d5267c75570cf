// FILE: lixenwraith/treelog/constant.go
package treelog

// Pattern defaults
const (
	// defaultTimeLayout renders the coarse local-time component of a record
	defaultTimeLayout = "2006-01-02 15:04:05"

	// DefaultPattern is the pattern applied to sinks built from Config
	DefaultPattern = "{time}.{msec} {level} {category}: {message}"
)

// Threading policy names accepted by Config
const (
	ThreadingGuarded     = "guarded"
	ThreadingUncontended = "uncontended"
)

// Console targets accepted by Config
const (
	ConsoleStdout = "stdout"
	ConsoleStderr = "stderr"
)
