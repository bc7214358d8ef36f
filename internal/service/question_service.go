package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lshigami/Surveyor/internal/apperror"
	"github.com/lshigami/Surveyor/internal/dto"
	"github.com/lshigami/Surveyor/internal/model"
	"github.com/lshigami/Surveyor/internal/repository"
	"github.com/rs/zerolog/log"
)

type QuestionService interface {
	AddQuestion(ctx context.Context, ownerID, surveyID string, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	UpdateQuestion(ctx context.Context, ownerID, surveyID, questionID string, req dto.QuestionUpdateDTO) (*dto.QuestionResponseDTO, error)
	DeleteQuestion(ctx context.Context, ownerID, surveyID, questionID string) error
	ReorderQuestions(ctx context.Context, ownerID, surveyID string, req dto.QuestionReorderDTO) ([]dto.QuestionResponseDTO, error)
}

type questionService struct {
	repo   repository.QuestionRepository
	access AccessService
}

func NewQuestionService(repo repository.QuestionRepository, access AccessService) QuestionService {
	return &questionService{repo: repo, access: access}
}

func (s *questionService) AddQuestion(ctx context.Context, ownerID, surveyID string, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	if _, err := s.access.OwnedSurvey(ctx, ownerID, surveyID); err != nil {
		return nil, err
	}

	var fieldErrs []apperror.FieldError
	text := strings.TrimSpace(req.Text)
	if text == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "text", Message: "must not be blank"})
	}
	options, errs := normalizeOptions("question", req.Type, req.Options)
	fieldErrs = append(fieldErrs, errs...)
	if len(fieldErrs) > 0 {
		return nil, apperror.Validation("invalid question", fieldErrs...)
	}

	question := model.Question{
		SurveyID: surveyID,
		Text:     text,
		Type:     req.Type,
		Required: req.Required,
		Options:  options,
	}
	if err := s.repo.Create(ctx, &question, req.Order); err != nil {
		log.Error().Err(err).Str("surveyID", surveyID).Msg("Failed to add question to survey")
		return nil, storeError(err, "question")
	}

	resp := toQuestionDTO(question)
	return &resp, nil
}

// UpdateQuestion merges the non-nil fields of req. Switching a question to
// multiple-choice requires options; switching away clears them.
func (s *questionService) UpdateQuestion(ctx context.Context, ownerID, surveyID, questionID string, req dto.QuestionUpdateDTO) (*dto.QuestionResponseDTO, error) {
	existing, err := s.access.OwnedQuestion(ctx, ownerID, surveyID, questionID)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	var fieldErrs []apperror.FieldError
	if req.Text != nil {
		text := strings.TrimSpace(*req.Text)
		if text == "" {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: "text", Message: "must not be blank"})
		}
		changes["text"] = text
	}
	if req.Required != nil {
		changes["required"] = *req.Required
	}

	qType := existing.Type
	if req.Type != nil {
		qType = *req.Type
		changes["type"] = qType
	}
	if req.Type != nil || req.Options != nil {
		opts := existing.Options
		if req.Options != nil {
			opts = *req.Options
		}
		normalized, errs := normalizeOptions("question", qType, opts)
		fieldErrs = append(fieldErrs, errs...)
		changes["options"] = normalized
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.Validation("invalid question", fieldErrs...)
	}

	updated, err := s.repo.Update(ctx, questionID, changes)
	if err != nil {
		log.Error().Err(err).Str("questionID", questionID).Msg("Failed to update question")
		return nil, storeError(err, "question")
	}
	resp := toQuestionDTO(*updated)
	return &resp, nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, ownerID, surveyID, questionID string) error {
	if _, err := s.access.OwnedQuestion(ctx, ownerID, surveyID, questionID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, questionID); err != nil {
		log.Error().Err(err).Str("questionID", questionID).Msg("Failed to delete question")
		return storeError(err, "question")
	}
	return nil
}

func (s *questionService) ReorderQuestions(ctx context.Context, ownerID, surveyID string, req dto.QuestionReorderDTO) ([]dto.QuestionResponseDTO, error) {
	if _, err := s.access.OwnedSurvey(ctx, ownerID, surveyID); err != nil {
		return nil, err
	}
	questions, err := s.repo.Reorder(ctx, surveyID, req.QuestionIDs)
	if errors.Is(err, repository.ErrInvalidOrder) {
		return nil, apperror.Validation("invalid question order",
			apperror.FieldError{Field: "questionIds", Message: "must list every question of the survey exactly once"})
	}
	if err != nil {
		log.Error().Err(err).Str("surveyID", surveyID).Msg("Failed to reorder questions")
		return nil, storeError(err, "question")
	}
	return toQuestionDTOs(questions), nil
}
