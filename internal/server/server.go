// Package server builds the HTTP engine and binds the controllers to routes.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Surveyor/config"
	_ "github.com/lshigami/Surveyor/docs"
	"github.com/lshigami/Surveyor/internal/controller"
	"github.com/lshigami/Surveyor/internal/controller/owner"
	"github.com/lshigami/Surveyor/internal/controller/public"
	"github.com/lshigami/Surveyor/internal/metrics"
	"github.com/lshigami/Surveyor/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

func NewGinEngine(cfg *config.Config, m *metrics.Metrics) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	controller.UseJSONFieldNames()

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(m.GinMiddleware())
	r.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// Controllers groups every controller the router binds.
type Controllers struct {
	fx.In

	Auth      *owner.AuthController
	Surveys   *owner.SurveyController
	Questions *owner.QuestionController
	Analytics *owner.AnalyticsController
	Public    *public.PublicSurveyController
}

func RegisterRoutes(router *gin.Engine, auth *middleware.Authenticator, reg *prometheus.Registry, ctrl Controllers) {
	router.GET("/metrics", gin.WrapH(metrics.Handler(reg)))

	api := router.Group("/api/v1")

	ownerAPI := api.Group("", auth.RequireAuth())
	{
		ownerAPI.GET("/auth/user", ctrl.Auth.CurrentUser)
		ownerAPI.GET("/dashboard/stats", ctrl.Analytics.DashboardStats)

		surveys := ownerAPI.Group("/surveys")
		surveys.GET("", ctrl.Surveys.ListSurveys)
		surveys.POST("", ctrl.Surveys.CreateSurvey)
		surveys.GET("/:survey_id", ctrl.Surveys.GetSurvey)
		surveys.PATCH("/:survey_id", ctrl.Surveys.UpdateSurvey)
		surveys.DELETE("/:survey_id", ctrl.Surveys.DeleteSurvey)

		surveys.POST("/:survey_id/questions", ctrl.Questions.AddQuestion)
		surveys.PUT("/:survey_id/questions/order", ctrl.Questions.ReorderQuestions)
		surveys.PATCH("/:survey_id/questions/:question_id", ctrl.Questions.UpdateQuestion)
		surveys.DELETE("/:survey_id/questions/:question_id", ctrl.Questions.DeleteQuestion)

		surveys.GET("/:survey_id/responses", ctrl.Analytics.ListResponses)
		surveys.GET("/:survey_id/analytics", ctrl.Analytics.SurveyAnalytics)
		surveys.GET("/:survey_id/export", ctrl.Analytics.ExportResponses)
	}

	publicAPI := api.Group("/public", auth.OptionalAuth())
	{
		publicAPI.GET("/surveys/:share_token", ctrl.Public.GetSurvey)
		publicAPI.POST("/surveys/:share_token/responses", ctrl.Public.SubmitResponse)
	}
}
