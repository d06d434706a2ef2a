// Package logx wires up the process-wide zerolog logger, grounded on
// freeeve-chessgraph/api/internal/logx's console-writer setup.
package logx

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a zerolog logger configured for console output on stderr —
// stderr, not stdout, because stdout is reserved for UCI protocol lines the
// GUI parses; malformed input and illegal operations are surfaced to stderr
// instead.
func New(debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		short := file
		for i := len(file) - 1; i > 0; i-- {
			if file[i] == '/' {
				short = file[i+1:]
				break
			}
		}
		return fmt.Sprintf("%-24s", fmt.Sprintf("%s:%d", short, line))
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Caller().Logger()
}
