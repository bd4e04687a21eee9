// Package logging configures the process-wide zerolog logger and the echo
// middleware that writes one line per request.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init initializes the global zerolog logger.  Development gets a colored
// console writer; every other environment logs JSON to stdout.
func Init(service string, development bool) {
	InitWithWriter(service, development, os.Stdout)
}

// InitWithWriter is Init with an explicit sink, used by tests.
func InitWithWriter(service string, development bool, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339
	if development {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Str("service", service).
			Logger()
		return
	}
	log.Logger = zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Str("service", service).
		Logger()
}
