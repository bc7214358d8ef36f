package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lshigami/Surveyor/config"
	"github.com/lshigami/Surveyor/internal/apperror"
	"github.com/lshigami/Surveyor/internal/dto"
	"github.com/lshigami/Surveyor/internal/metrics"
	"github.com/lshigami/Surveyor/internal/model"
	"github.com/lshigami/Surveyor/internal/repository"
	"github.com/rs/zerolog/log"
)

type SurveyService interface {
	CreateSurvey(ctx context.Context, ownerID string, req dto.SurveyCreateDTO) (*dto.SurveyResponseDTO, error)
	ListSurveys(ctx context.Context, ownerID string) ([]dto.SurveySummaryDTO, error)
	GetSurvey(ctx context.Context, ownerID, surveyID string) (*dto.SurveyResponseDTO, error)
	UpdateSurvey(ctx context.Context, ownerID, surveyID string, req dto.SurveyUpdateDTO) (*dto.SurveyResponseDTO, error)
	DeleteSurvey(ctx context.Context, ownerID, surveyID string) error
	GetPublicSurvey(ctx context.Context, shareToken string) (*dto.PublicSurveyDTO, error)
}

type surveyService struct {
	surveyRepo    repository.SurveyRepository
	access        AccessService
	metrics       *metrics.Metrics
	publicBaseURL string
}

func NewSurveyService(surveyRepo repository.SurveyRepository, access AccessService, m *metrics.Metrics, cfg *config.Config) SurveyService {
	return &surveyService{
		surveyRepo:    surveyRepo,
		access:        access,
		metrics:       m,
		publicBaseURL: cfg.Server.PublicBaseURL,
	}
}

func (s *surveyService) shareURL(token string) string {
	if s.publicBaseURL == "" {
		return ""
	}
	return s.publicBaseURL + "/survey/" + token
}

func (s *surveyService) CreateSurvey(ctx context.Context, ownerID string, req dto.SurveyCreateDTO) (*dto.SurveyResponseDTO, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validation("invalid survey", apperror.FieldError{Field: "title", Message: "must not be blank"})
	}

	survey := model.Survey{
		Title:                  title,
		Description:            req.Description,
		OwnerID:                ownerID,
		Status:                 model.SurveyStatusDraft,
		Anonymous:              req.Anonymous,
		AllowMultipleResponses: req.MultipleResponses,
	}

	var fieldErrs []apperror.FieldError
	for i, qReq := range req.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		text := strings.TrimSpace(qReq.Text)
		if text == "" {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: prefix + ".text", Message: "must not be blank"})
		}
		options, errs := normalizeOptions(prefix, qReq.Type, qReq.Options)
		fieldErrs = append(fieldErrs, errs...)

		order := i
		if qReq.Order != nil {
			order = *qReq.Order
		}
		survey.Questions = append(survey.Questions, model.Question{
			Text:     text,
			Type:     qReq.Type,
			Required: qReq.Required,
			Options:  options,
			Order:    order,
		})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.Validation("invalid survey", fieldErrs...)
	}

	if err := s.surveyRepo.Create(ctx, &survey); err != nil {
		log.Error().Err(err).Str("ownerID", ownerID).Msg("Failed to create survey with questions in transaction")
		return nil, storeError(err, "survey")
	}
	s.metrics.RecordSurveyCreated()
	log.Info().Str("surveyID", survey.ID).Str("ownerID", ownerID).Int("questions", len(survey.Questions)).Msg("Survey created")

	return toSurveyDTO(&survey, s.shareURL(survey.ShareToken)), nil
}

func (s *surveyService) ListSurveys(ctx context.Context, ownerID string) ([]dto.SurveySummaryDTO, error) {
	rows, err := s.surveyRepo.FindAllByOwnerWithCounts(ctx, ownerID)
	if err != nil {
		log.Error().Err(err).Str("ownerID", ownerID).Msg("Failed to list surveys with counts")
		return nil, storeError(err, "survey")
	}
	out := make([]dto.SurveySummaryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSurveySummaryDTO(row))
	}
	return out, nil
}

func (s *surveyService) GetSurvey(ctx context.Context, ownerID, surveyID string) (*dto.SurveyResponseDTO, error) {
	survey, err := s.access.OwnedSurvey(ctx, ownerID, surveyID)
	if err != nil {
		return nil, err
	}
	return toSurveyDTO(survey, s.shareURL(survey.ShareToken)), nil
}

// UpdateSurvey merges the non-nil fields of req into the survey. Status may be
// moved between draft, active and closed freely by the owner.
func (s *surveyService) UpdateSurvey(ctx context.Context, ownerID, surveyID string, req dto.SurveyUpdateDTO) (*dto.SurveyResponseDTO, error) {
	if _, err := s.access.OwnedSurvey(ctx, ownerID, surveyID); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperror.Validation("invalid survey", apperror.FieldError{Field: "title", Message: "must not be blank"})
		}
		changes["title"] = title
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.Status != nil {
		switch *req.Status {
		case model.SurveyStatusDraft, model.SurveyStatusActive, model.SurveyStatusClosed:
			changes["status"] = *req.Status
		default:
			return nil, apperror.Validation("invalid survey", apperror.FieldError{Field: "status", Message: "must be one of draft, active, closed"})
		}
	}
	if req.Anonymous != nil {
		changes["anonymous"] = *req.Anonymous
	}
	if req.MultipleResponses != nil {
		changes["allow_multiple_responses"] = *req.MultipleResponses
	}

	survey, err := s.surveyRepo.Update(ctx, surveyID, changes)
	if err != nil {
		log.Error().Err(err).Str("surveyID", surveyID).Msg("Failed to update survey")
		return nil, storeError(err, "survey")
	}
	if status, ok := changes["status"]; ok {
		log.Info().Str("surveyID", surveyID).Interface("status", status).Msg("Survey status changed")
	}
	return toSurveyDTO(survey, s.shareURL(survey.ShareToken)), nil
}

func (s *surveyService) DeleteSurvey(ctx context.Context, ownerID, surveyID string) error {
	if _, err := s.access.OwnedSurvey(ctx, ownerID, surveyID); err != nil {
		return err
	}
	if err := s.surveyRepo.Delete(ctx, surveyID); err != nil {
		log.Error().Err(err).Str("surveyID", surveyID).Msg("Failed to delete survey")
		return storeError(err, "survey")
	}
	log.Info().Str("surveyID", surveyID).Str("ownerID", ownerID).Msg("Survey deleted")
	return nil
}

func (s *surveyService) GetPublicSurvey(ctx context.Context, shareToken string) (*dto.PublicSurveyDTO, error) {
	survey, err := s.access.PublicSurvey(ctx, shareToken)
	if err != nil {
		return nil, err
	}
	return toPublicSurveyDTO(survey), nil
}
