package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	SetLevel("debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	SetLevel("WARN")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetLevel("nonsense")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	SetLevel("")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestGormLoggerSurvivesInfoLevel(t *testing.T) {
	prev := log.Logger
	defer func() { log.Logger = prev }()
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	SetLevel("info")

	NewGormLogger().Warn(context.Background(), "slow query %s", "SELECT 1")
	require.NotEmpty(t, buf.Bytes())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "gorm", entry["component"])
	assert.Contains(t, entry["message"], "slow query SELECT 1")
}
