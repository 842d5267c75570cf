// FILE: example/simple/main.go
package main

import (
	"github.com/lixenwraith/treelog"
)

func main() {
	logger, err := treelog.NewBuilder().
		Name("app").
		LevelString("debug").
		Console("stdout").
		Pattern("{time}.{msec} {level} {category}: {message}").
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("starting up")
	logger.Debugf("listening on %s", ":8080")

	// Expensive messages are evaluated only when a sink passes the filter
	logger.Trace(func() string {
		return "never evaluated at debug threshold"
	})

	if err := logger.Flush(); err != nil {
		panic(err)
	}
}
