// FILE: lixenwraith/treelog/utility.go
package treelog

import (
	"fmt"
	"runtime"
	"strings"
)

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "treelog: ") {
		format = "treelog: " + format
	}
	return fmt.Errorf(format, args...)
}

// goroutineID extracts the numeric id from the goroutine's stack header.
// The runtime offers no direct accessor; parsing the fixed
// "goroutine N [" prefix is the established workaround.
func goroutineID() uint64 {
	var buf [32]byte
	n := runtime.Stack(buf[:], false)
	const prefix = "goroutine "
	if n <= len(prefix) {
		return 0
	}
	var id uint64
	for _, c := range buf[len(prefix):n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
