package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Console output is used unless
// APP_ENV is "production".
func Init() {
	zerolog.TimeFieldFormat = time.RFC3339
	if !strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	SetLevel(os.Getenv("LOG_LEVEL"))
}

// SetLevel applies a textual level; unknown values fall back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
