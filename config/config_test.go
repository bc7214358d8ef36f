package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigFromEnvironment(t *testing.T) {
	viper.Reset()
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_PATH", ":memory:")
	t.Setenv("PUBLIC_BASE_URL", "https://surveys.example.com/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://surveys.example.com", cfg.Server.PublicBaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, ":memory:", cfg.Database.DSN())
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}

func TestNewConfigRequiresSecret(t *testing.T) {
	viper.Reset()
	t.Setenv("JWT_SECRET", "")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	db := Database{Driver: "postgres", Host: "db", Port: "5432", User: "u", Password: "p", Name: "surveys", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=surveys sslmode=disable", db.DSN())
}
