// FILE: example/hierarchy/main.go
package main

import (
	"github.com/lixenwraith/treelog"
)

func main() {
	root, err := treelog.NewBuilder().
		Name("root").
		LevelString("info").
		Console("stderr").
		Build()
	if err != nil {
		panic(err)
	}
	defer root.Close()

	// Children see the root's console sink through the effective-sink
	// cache; no tree walk happens at emission time.
	net := root.Child("net")
	db := root.Child("db")

	// Verbose subsystem: its own sink and its own threshold
	debugFile := net.AddFileSink("./logs/net-debug.log", "{time}.{usec} {level} [{thread}] {file}:{line} {message}")
	defer debugFile.Close()
	net.SetLevel(treelog.LevelTrace)

	net.Warnf("timeout after %d retries", 3)
	db.Info("connection pool ready")

	// The root stays at info; the net subtree also delivers trace
	// records, but only through sinks attributed at or below net.
	net.Trace("handshake bytes follow")

	if err := root.Flush(); err != nil {
		panic(err)
	}
}
