package owner

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Surveyor/internal/controller"
	"github.com/lshigami/Surveyor/internal/middleware"
	"github.com/lshigami/Surveyor/internal/service"
)

type AnalyticsController struct {
	analyticsService service.AnalyticsService
	exportService    service.ExportService
}

func NewAnalyticsController(analyticsService service.AnalyticsService, exportService service.ExportService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService, exportService: exportService}
}

// ListResponses godoc
// @Summary List responses
// @Description Every response to the survey with its answers, oldest first.
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param survey_id path string true "Survey ID"
// @Success 200 {array} dto.ResponseDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /surveys/{survey_id}/responses [get]
func (c *AnalyticsController) ListResponses(ctx *gin.Context) {
	resp, err := c.analyticsService.ListResponses(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("survey_id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SurveyAnalytics godoc
// @Summary Survey analytics
// @Description Per-question distributions: option counts, rating histogram 1-10 with average, or the raw text answers.
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param survey_id path string true "Survey ID"
// @Success 200 {object} dto.SurveyAnalyticsDTO
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /surveys/{survey_id}/analytics [get]
func (c *AnalyticsController) SurveyAnalytics(ctx *gin.Context) {
	resp, err := c.analyticsService.SurveyAnalytics(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("survey_id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ExportResponses godoc
// @Summary Export responses as CSV
// @Description One row per response with a column per question, in display order.
// @Tags Analytics
// @Produce text/csv
// @Security BearerAuth
// @Param survey_id path string true "Survey ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /surveys/{survey_id}/export [get]
func (c *AnalyticsController) ExportResponses(ctx *gin.Context) {
	export, err := c.exportService.ExportCSV(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("survey_id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", export.Data)
}

// DashboardStats godoc
// @Summary Dashboard statistics
// @Description Totals across the caller's surveys and the mean completion rate of required questions.
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardStatsDTO
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /dashboard/stats [get]
func (c *AnalyticsController) DashboardStats(ctx *gin.Context) {
	resp, err := c.analyticsService.DashboardStats(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
