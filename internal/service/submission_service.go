package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/lshigami/Surveyor/internal/apperror"
	"github.com/lshigami/Surveyor/internal/dto"
	"github.com/lshigami/Surveyor/internal/metrics"
	"github.com/lshigami/Surveyor/internal/model"
	"github.com/lshigami/Surveyor/internal/repository"
	"github.com/rs/zerolog/log"
)

// SubmissionService accepts public responses addressed by share token.
type SubmissionService interface {
	Submit(ctx context.Context, shareToken, callerID string, req dto.ResponseSubmitDTO) (*dto.SubmissionAckDTO, error)
}

type submissionService struct {
	responseRepo repository.ResponseRepository
	access       AccessService
	metrics      *metrics.Metrics
}

func NewSubmissionService(responseRepo repository.ResponseRepository, access AccessService, m *metrics.Metrics) SubmissionService {
	return &submissionService{responseRepo: responseRepo, access: access, metrics: m}
}

func (s *submissionService) Submit(ctx context.Context, shareToken, callerID string, req dto.ResponseSubmitDTO) (*dto.SubmissionAckDTO, error) {
	survey, err := s.access.PublicSurvey(ctx, shareToken)
	if err != nil {
		s.record(err)
		return nil, err
	}

	answers, fields := validateAnswers(survey.Questions, req.Answers)
	if len(fields) > 0 {
		log.Info().Str("surveyID", survey.ID).Int("fieldErrors", len(fields)).Msg("Submit: submission rejected")
		err := apperror.Validation("submission rejected", fields...)
		s.record(err)
		return nil, err
	}

	respondentID := resolveRespondent(survey, callerID, req.RespondentID)
	response := model.Response{
		SurveyID:     survey.ID,
		RespondentID: respondentID,
		Answers:      answers,
	}
	create := s.responseRepo.CreateWithAnswers
	if !survey.AllowMultipleResponses {
		create = s.responseRepo.CreateOnceWithAnswers
	}
	if err := create(ctx, &response); err != nil {
		if errors.Is(err, repository.ErrDuplicateResponse) {
			appErr := apperror.Conflict("respondent has already answered this survey")
			s.record(appErr)
			return nil, appErr
		}
		log.Error().Err(err).Str("surveyID", survey.ID).Msg("Submit: failed to store response")
		appErr := storeError(err, "response")
		s.record(appErr)
		return nil, appErr
	}

	s.metrics.RecordSubmission(metrics.ResultAccepted)
	log.Info().Str("surveyID", survey.ID).Str("responseID", response.ID).Int("answers", len(answers)).Msg("Submit: response accepted")
	return &dto.SubmissionAckDTO{
		ResponseID:  response.ID,
		SurveyID:    survey.ID,
		AnswerCount: len(response.Answers),
		CreatedAt:   response.CreatedAt,
	}, nil
}

func (s *submissionService) record(err error) {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		s.metrics.RecordSubmission(metrics.ResultRejected)
	case apperror.KindConflict:
		s.metrics.RecordSubmission(metrics.ResultConflict)
	case apperror.KindNotFound:
		s.metrics.RecordSubmission(metrics.ResultNotFound)
	default:
		s.metrics.RecordSubmission(metrics.ResultError)
	}
}

// resolveRespondent drops identity for anonymous surveys; otherwise the
// authenticated caller wins over a self-declared id.
func resolveRespondent(survey *model.Survey, callerID string, declared *string) *string {
	if survey.Anonymous {
		return nil
	}
	if callerID != "" {
		return &callerID
	}
	if declared != nil {
		if id := strings.TrimSpace(*declared); id != "" {
			return &id
		}
	}
	return nil
}

// validateAnswers checks the submitted answers against the survey's questions
// and returns the answers to store. Every problem is reported, keyed by the
// question it concerns. Blank answers to optional questions are not stored.
func validateAnswers(questions []model.Question, submitted []dto.AnswerSubmitDTO) ([]model.Answer, []apperror.FieldError) {
	byID := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var fields []apperror.FieldError
	seen := make(map[string]bool, len(submitted))
	values := make(map[string]string, len(submitted))
	for i, a := range submitted {
		field := answerField(i, a.QuestionID)
		q, ok := byID[a.QuestionID]
		if !ok {
			fields = append(fields, apperror.FieldError{Field: field, Message: "question does not belong to this survey"})
			continue
		}
		if seen[a.QuestionID] {
			fields = append(fields, apperror.FieldError{Field: field, Message: "question answered more than once"})
			continue
		}
		seen[a.QuestionID] = true

		value := strings.TrimSpace(a.Value)
		if value == "" {
			continue
		}
		if msg := checkValue(q, value); msg != "" {
			fields = append(fields, apperror.FieldError{Field: field, Message: msg})
			continue
		}
		values[q.ID] = value
	}

	answers := make([]model.Answer, 0, len(values))
	for _, q := range questions {
		value, ok := values[q.ID]
		if !ok {
			if q.Required && !hasFieldError(fields, "answers."+q.ID) {
				fields = append(fields, apperror.FieldError{Field: "answers." + q.ID, Message: "answer is required"})
			}
			continue
		}
		answers = append(answers, model.Answer{QuestionID: q.ID, Value: value})
	}
	return answers, fields
}

func checkValue(q model.Question, value string) string {
	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		for _, opt := range q.Options {
			if opt == value {
				return ""
			}
		}
		return "value is not one of the question's options"
	case model.QuestionTypeRating:
		if _, ok := parseRating(value); !ok {
			return "rating must be a whole number from 1 to 10"
		}
	}
	return ""
}

func answerField(index int, questionID string) string {
	if questionID == "" {
		return "answers[" + strconv.Itoa(index) + "].questionId"
	}
	return "answers." + questionID
}

func hasFieldError(fields []apperror.FieldError, field string) bool {
	for _, f := range fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
