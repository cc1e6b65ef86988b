// Package logger holds the process-wide zerolog logger. main calls Init once;
// everything else derives from it through Get or Component.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the root logger is built.
type Options struct {
	// Level is one of trace, debug, info, warn or error. Anything else means info.
	Level string
	// Pretty switches from JSON lines to the coloured console writer.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service is attached to every entry as the "service" field when set.
	Service string
}

var (
	mu   sync.RWMutex
	root *zerolog.Logger
)

var levels = map[string]zerolog.Level{
	"trace":   zerolog.TraceLevel,
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
}

// Init builds the root logger. Until Reset, later calls return the existing
// logger and ignore their options.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if root == nil {
		l := build(opts)
		root = &l
	}
	return *root
}

func build(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	ctx := zerolog.New(out).Level(lvl).With().Timestamp().Caller()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	return ctx.Logger()
}

// Get returns the root logger. It panics when Init has not run.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	if root == nil {
		panic("logger: Init must be called before Get")
	}
	return *root
}

// Component returns a child of the root logger tagged with the component
// name, e.g. "swap_service" or "dispatcher".
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset drops the root logger so tests can Init again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	root = nil
}

func parseLevel(s string) zerolog.Level {
	if lvl, ok := levels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lvl
	}
	return zerolog.InfoLevel
}
