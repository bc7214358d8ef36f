package logger

import (
	"time"

	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"
)

type gormWriter struct{}

func (gormWriter) Printf(format string, args ...interface{}) {
	log.Warn().Str("component", "gorm").Msgf(format, args...)
}

// NewGormLogger routes gorm's warnings, errors and slow queries into zerolog
// at warn level.
func NewGormLogger() gormlogger.Interface {
	return gormlogger.New(gormWriter{}, gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
