package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	LogLevel string
}

type Server struct {
	Port           string
	Mode           string
	PublicBaseURL  string
	AllowedOrigins []string
}

type Database struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string // sqlite file, ":memory:" allowed
}

type Auth struct {
	JWTSecret string
	JWTIssuer string
}

// DSN builds the connection string for the configured driver.
func (d Database) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_PATH", "surveyor.db")
	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.Mode = viper.GetString("GIN_MODE")
	config.Server.PublicBaseURL = strings.TrimRight(viper.GetString("PUBLIC_BASE_URL"), "/")
	config.Server.AllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	config.Database.Driver = viper.GetString("DATABASE_DRIVER")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")
	config.Database.Path = viper.GetString("DATABASE_PATH")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.JWTIssuer = viper.GetString("JWT_ISSUER")

	config.LogLevel = viper.GetString("LOG_LEVEL")

	if err := config.validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("port", config.Server.Port).
		Str("dbDriver", config.Database.Driver).
		Str("dbHost", config.Database.Host).
		Str("publicBaseURL", config.Server.PublicBaseURL).
		Msg("Config loaded")
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
