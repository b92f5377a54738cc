package contract

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger routes diagnostics to a console writer on stderr at the given level.
func InitLogger(level zerolog.Level) {
	initLoggerTo(os.Stderr, level)
}

func initLoggerTo(w io.Writer, level zerolog.Level) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true})
}
