package main

import (
	"context"

	"github.com/lshigami/Surveyor/config"
	"github.com/lshigami/Surveyor/database"
	"github.com/lshigami/Surveyor/internal/controller/owner"
	"github.com/lshigami/Surveyor/internal/controller/public"
	"github.com/lshigami/Surveyor/internal/logger"
	"github.com/lshigami/Surveyor/internal/metrics"
	"github.com/lshigami/Surveyor/internal/middleware"
	"github.com/lshigami/Surveyor/internal/repository"
	"github.com/lshigami/Surveyor/internal/server"
	"github.com/lshigami/Surveyor/internal/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// appOptions wires every component of the service. Invokes that start
// listeners are added separately so the graph can be validated on its own.
func appOptions() []fx.Option {
	return []fx.Option{
		fx.NopLogger,

		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			metrics.NewRegistry,
			metrics.NewMetrics,
			server.NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewSurveyRepository,
			repository.NewQuestionRepository,
			repository.NewResponseRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAccessService,
			service.NewUserService,
			service.NewSurveyService,
			service.NewQuestionService,
			service.NewSubmissionService,
			service.NewAnalyticsService,
			service.NewExportService,
			middleware.NewAuthenticator,
		),

		// API Controllers Layer
		fx.Provide(
			owner.NewAuthController,
			owner.NewSurveyController,
			owner.NewQuestionController,
			owner.NewAnalyticsController,
			public.NewPublicSurveyController,
		),

		fx.Invoke(applyLogLevel, closeDatabaseOnStop),
	}
}

func serverInvokes() fx.Option {
	return fx.Invoke(server.RegisterRoutes, server.StartServer)
}

func applyLogLevel(cfg *config.Config) {
	logger.SetLevel(cfg.LogLevel)
}

func closeDatabaseOnStop(lc fx.Lifecycle, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
}
