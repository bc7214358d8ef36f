package owner

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Surveyor/internal/controller"
	"github.com/lshigami/Surveyor/internal/dto"
	"github.com/lshigami/Surveyor/internal/middleware"
	"github.com/lshigami/Surveyor/internal/service"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// AddQuestion godoc
// @Summary Add a question
// @Description Appends a question, or inserts it at the given order shifting later questions down.
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param survey_id path string true "Survey ID"
// @Param question_data body dto.QuestionCreateDTO true "Question"
// @Success 201 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /surveys/{survey_id}/questions [post]
func (c *QuestionController) AddQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.questionService.AddQuestion(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("survey_id"), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param survey_id path string true "Survey ID"
// @Param question_id path string true "Question ID"
// @Param question_data body dto.QuestionUpdateDTO true "Fields to change"
// @Success 200 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Survey or question not found"
// @Router /surveys/{survey_id}/questions/{question_id} [patch]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	var req dto.QuestionUpdateDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.questionService.UpdateQuestion(ctx.Request.Context(), middleware.UserID(ctx),
		ctx.Param("survey_id"), ctx.Param("question_id"), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Description Removes the question and its answers; remaining questions are renumbered.
// @Tags Questions
// @Security BearerAuth
// @Param survey_id path string true "Survey ID"
// @Param question_id path string true "Question ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Survey or question not found"
// @Router /surveys/{survey_id}/questions/{question_id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	err := c.questionService.DeleteQuestion(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("survey_id"), ctx.Param("question_id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ReorderQuestions godoc
// @Summary Reorder questions
// @Description Sets the display order. The list must contain every question of the survey exactly once.
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param survey_id path string true "Survey ID"
// @Param order_data body dto.QuestionReorderDTO true "Question ids in the new order"
// @Success 200 {array} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Not a permutation of the survey's questions"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /surveys/{survey_id}/questions/order [put]
func (c *QuestionController) ReorderQuestions(ctx *gin.Context) {
	var req dto.QuestionReorderDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.questionService.ReorderQuestions(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("survey_id"), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
