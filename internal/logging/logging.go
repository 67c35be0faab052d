// Package logging wires up dtop's structured logger. The TUI owns the
// whole terminal, so by default logging is silent; setting DEBUG=1
// redirects structured output to ./debug.log instead of fighting the
// terminal for stdout.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger configured from the DEBUG environment variable:
// DEBUG=1 opens ./debug.log and logs at debug level with full timestamps;
// otherwise every entry is discarded so running dtop normally never writes
// over the alternate screen buffer.
func New() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if os.Getenv("DEBUG") != "1" {
		log.SetOutput(io.Discard)
		return log
	}

	f, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return log
	}
	log.SetOutput(f)
	log.SetLevel(logrus.DebugLevel)
	return log
}
