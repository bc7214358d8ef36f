package service

import (
	"context"

	"github.com/lshigami/Surveyor/internal/apperror"
	"github.com/lshigami/Surveyor/internal/model"
	"github.com/lshigami/Surveyor/internal/repository"
	"github.com/rs/zerolog/log"
)

// AccessService decides who may reach a survey. There are exactly two paths:
// the owner by id, or anyone by share token while the survey is active.
// Both report NotFound on refusal so a survey's existence is never revealed.
type AccessService interface {
	OwnedSurvey(ctx context.Context, callerID, surveyID string) (*model.Survey, error)
	OwnedQuestion(ctx context.Context, callerID, surveyID, questionID string) (*model.Question, error)
	PublicSurvey(ctx context.Context, shareToken string) (*model.Survey, error)
}

type accessService struct {
	surveyRepo   repository.SurveyRepository
	questionRepo repository.QuestionRepository
}

func NewAccessService(surveyRepo repository.SurveyRepository, questionRepo repository.QuestionRepository) AccessService {
	return &accessService{surveyRepo: surveyRepo, questionRepo: questionRepo}
}

// OwnedSurvey returns the survey with its ordered questions if callerID owns it.
func (s *accessService) OwnedSurvey(ctx context.Context, callerID, surveyID string) (*model.Survey, error) {
	if callerID == "" || surveyID == "" {
		return nil, apperror.NotFound("survey")
	}
	survey, err := s.surveyRepo.FindByIDWithQuestions(ctx, surveyID)
	if err != nil {
		appErr := storeError(err, "survey")
		if !apperror.IsNotFound(appErr) {
			log.Error().Err(err).Str("surveyID", surveyID).Msg("OwnedSurvey: store lookup failed")
		}
		return nil, appErr
	}
	if survey.OwnerID != callerID {
		log.Debug().Str("surveyID", surveyID).Str("callerID", callerID).Msg("OwnedSurvey: caller is not the owner")
		return nil, apperror.NotFound("survey")
	}
	return survey, nil
}

// OwnedQuestion additionally requires the question to belong to that survey.
func (s *accessService) OwnedQuestion(ctx context.Context, callerID, surveyID, questionID string) (*model.Question, error) {
	if _, err := s.OwnedSurvey(ctx, callerID, surveyID); err != nil {
		return nil, err
	}
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, storeError(err, "question")
	}
	if question.SurveyID != surveyID {
		return nil, apperror.NotFound("question")
	}
	return question, nil
}

// PublicSurvey resolves an active survey by share token. Draft and closed
// surveys are unreachable here even with the right token.
func (s *accessService) PublicSurvey(ctx context.Context, shareToken string) (*model.Survey, error) {
	if shareToken == "" {
		return nil, apperror.NotFound("survey")
	}
	survey, err := s.surveyRepo.FindByShareToken(ctx, shareToken)
	if err != nil {
		return nil, storeError(err, "survey")
	}
	if !survey.IsPublic() {
		return nil, apperror.NotFound("survey")
	}
	return survey, nil
}
