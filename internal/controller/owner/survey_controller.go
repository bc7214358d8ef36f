package owner

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Surveyor/internal/controller"
	"github.com/lshigami/Surveyor/internal/dto"
	"github.com/lshigami/Surveyor/internal/middleware"
	"github.com/lshigami/Surveyor/internal/service"
	"github.com/rs/zerolog/log"
)

type SurveyController struct {
	surveyService service.SurveyService
}

func NewSurveyController(surveyService service.SurveyService) *SurveyController {
	return &SurveyController{surveyService: surveyService}
}

// CreateSurvey godoc
// @Summary Create a survey
// @Description Creates a draft survey owned by the caller, optionally with its questions. A share token is generated.
// @Tags Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param survey_data body dto.SurveyCreateDTO true "Survey with optional questions"
// @Success 201 {object} dto.SurveyResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /surveys [post]
func (c *SurveyController) CreateSurvey(ctx *gin.Context) {
	var req dto.SurveyCreateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.surveyService.CreateSurvey(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListSurveys godoc
// @Summary List own surveys
// @Description Lists the caller's surveys, newest first, with question and response counts.
// @Tags Surveys
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SurveySummaryDTO
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /surveys [get]
func (c *SurveyController) ListSurveys(ctx *gin.Context) {
	surveys, err := c.surveyService.ListSurveys(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, surveys)
}

// GetSurvey godoc
// @Summary Get a survey
// @Description Returns one of the caller's surveys with its questions in display order.
// @Tags Surveys
// @Produce json
// @Security BearerAuth
// @Param survey_id path string true "Survey ID"
// @Success 200 {object} dto.SurveyResponseDTO
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /surveys/{survey_id} [get]
func (c *SurveyController) GetSurvey(ctx *gin.Context) {
	resp, err := c.surveyService.GetSurvey(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("survey_id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateSurvey godoc
// @Summary Update a survey
// @Description Partially updates title, description, status and response settings. Omitted fields are unchanged.
// @Tags Surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param survey_id path string true "Survey ID"
// @Param survey_data body dto.SurveyUpdateDTO true "Fields to change"
// @Success 200 {object} dto.SurveyResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /surveys/{survey_id} [patch]
func (c *SurveyController) UpdateSurvey(ctx *gin.Context) {
	var req dto.SurveyUpdateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.surveyService.UpdateSurvey(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("survey_id"), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteSurvey godoc
// @Summary Delete a survey
// @Description Deletes the survey with its questions, responses and answers. The share token stops resolving.
// @Tags Surveys
// @Security BearerAuth
// @Param survey_id path string true "Survey ID"
// @Success 204 "Deleted"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /surveys/{survey_id} [delete]
func (c *SurveyController) DeleteSurvey(ctx *gin.Context) {
	surveyID := ctx.Param("survey_id")
	if err := c.surveyService.DeleteSurvey(ctx.Request.Context(), middleware.UserID(ctx), surveyID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	log.Info().Str("surveyID", surveyID).Msg("DeleteSurvey: survey removed")
	ctx.Status(http.StatusNoContent)
}
