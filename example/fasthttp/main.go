// FILE: example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/treelog"
	"github.com/lixenwraith/treelog/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	logger, err := treelog.NewBuilder().
		Name("http").
		LevelString("debug").
		Console("stderr").
		File("/var/log/fasthttp", "server", "log").
		FileRotation(50, 5, 7, true).
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(treelog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	// Configure fasthttp server
	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		// Other server settings
		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	// Start server
	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

// customLevelDetector treats connection noise as debug, everything else
// per the default heuristics
func customLevelDetector(msg string) (treelog.Level, bool) {
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") {
		return treelog.LevelDebug, true
	}
	return compat.DetectLogLevel(msg)
}
