package public

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Surveyor/internal/controller"
	"github.com/lshigami/Surveyor/internal/dto"
	"github.com/lshigami/Surveyor/internal/middleware"
	"github.com/lshigami/Surveyor/internal/service"
	"github.com/rs/zerolog/log"
)

type PublicSurveyController struct {
	surveyService     service.SurveyService
	submissionService service.SubmissionService
}

func NewPublicSurveyController(surveyService service.SurveyService, submissionService service.SubmissionService) *PublicSurveyController {
	return &PublicSurveyController{surveyService: surveyService, submissionService: submissionService}
}

// GetSurvey godoc
// @Summary (Public) Get a survey by share token
// @Description Returns an active survey with its questions. Draft, closed and unknown surveys are all reported as not found.
// @Tags Public
// @Produce json
// @Param share_token path string true "Share token"
// @Success 200 {object} dto.PublicSurveyDTO
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /public/surveys/{share_token} [get]
func (c *PublicSurveyController) GetSurvey(ctx *gin.Context) {
	resp, err := c.surveyService.GetPublicSurvey(ctx.Request.Context(), ctx.Param("share_token"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitResponse godoc
// @Summary (Public) Submit a response
// @Description Validates and stores one response. Every required question needs a non-empty answer.
// @Tags Public
// @Accept json
// @Produce json
// @Param share_token path string true "Share token"
// @Param submission_data body dto.ResponseSubmitDTO true "Answers"
// @Success 201 {object} dto.SubmissionAckDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid answers, with the offending fields"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Failure 409 {object} dto.ErrorResponse "Respondent has already answered"
// @Router /public/surveys/{share_token}/responses [post]
func (c *PublicSurveyController) SubmitResponse(ctx *gin.Context) {
	var req dto.ResponseSubmitDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	log.Info().Int("answerCount", len(req.Answers)).Msg("Received public survey submission")

	ack, err := c.submissionService.Submit(ctx.Request.Context(), ctx.Param("share_token"), middleware.UserID(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, ack)
}
