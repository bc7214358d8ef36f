package main

import (
	"os"

	"github.com/lshigami/Surveyor/internal/logger"
	"github.com/rs/zerolog/log"
)

// @title Surveyor API
// @version 1.0
// @description Survey authoring, public response collection and analytics.
// @contact.name API Support
// @contact.url http://example.com/support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
