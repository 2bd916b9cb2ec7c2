// Package logging configures the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the logger used across commands. Verbose mode lowers the
// level to debug and switches to the human-readable console writer;
// otherwise warnings and errors are emitted as JSON lines.
func New(verbose bool) zerolog.Logger {
	var out io.Writer = os.Stderr
	level := zerolog.WarnLevel
	if verbose {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		level = zerolog.DebugLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
