package main

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

const defaultLogLevel = "info"

// newLogger creates the command logger. Level names are those accepted by
// hclog (trace, debug, info, warn, error); unknown names fall back to info.
func newLogger(level string, jsonFormat bool, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "iconizer",
		Level:      lvl,
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// ValidLogLevel reports whether name is a recognized log level.
func ValidLogLevel(name string) bool {
	return hclog.LevelFromString(name) != hclog.NoLevel
}
