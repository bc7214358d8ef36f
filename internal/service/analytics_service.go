package service

import (
	"context"

	"github.com/lshigami/Surveyor/internal/dto"
	"github.com/lshigami/Surveyor/internal/model"
	"github.com/lshigami/Surveyor/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type AnalyticsService interface {
	SurveyAnalytics(ctx context.Context, ownerID, surveyID string) (*dto.SurveyAnalyticsDTO, error)
	ListResponses(ctx context.Context, ownerID, surveyID string) ([]dto.ResponseDetailDTO, error)
	DashboardStats(ctx context.Context, ownerID string) (*dto.DashboardStatsDTO, error)
}

type analyticsService struct {
	surveyRepo   repository.SurveyRepository
	responseRepo repository.ResponseRepository
	access       AccessService
}

func NewAnalyticsService(surveyRepo repository.SurveyRepository, responseRepo repository.ResponseRepository, access AccessService) AnalyticsService {
	return &analyticsService{surveyRepo: surveyRepo, responseRepo: responseRepo, access: access}
}

func (s *analyticsService) SurveyAnalytics(ctx context.Context, ownerID, surveyID string) (*dto.SurveyAnalyticsDTO, error) {
	survey, err := s.access.OwnedSurvey(ctx, ownerID, surveyID)
	if err != nil {
		return nil, err
	}

	answers, err := s.responseRepo.FindAnswersBySurveyID(ctx, surveyID)
	if err != nil {
		log.Error().Err(err).Str("surveyID", surveyID).Msg("SurveyAnalytics: failed to load answers")
		return nil, storeError(err, "answer")
	}
	total, err := s.responseRepo.CountBySurvey(ctx, surveyID)
	if err != nil {
		log.Error().Err(err).Str("surveyID", surveyID).Msg("SurveyAnalytics: failed to count responses")
		return nil, storeError(err, "response")
	}

	return &dto.SurveyAnalyticsDTO{
		SurveyID:       survey.ID,
		Title:          survey.Title,
		Status:         survey.Status,
		TotalResponses: int(total),
		Questions:      aggregateSurvey(survey.Questions, answers),
	}, nil
}

// aggregateSurvey groups answers by question, preserving store order within
// each group, and aggregates every question in display order.
func aggregateSurvey(questions []model.Question, answers []model.Answer) []dto.QuestionAnalyticsDTO {
	byQuestion := make(map[string][]string, len(questions))
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a.Value)
	}
	out := make([]dto.QuestionAnalyticsDTO, 0, len(questions))
	for _, q := range questions {
		out = append(out, AggregateQuestion(q, byQuestion[q.ID]))
	}
	return out
}

func (s *analyticsService) ListResponses(ctx context.Context, ownerID, surveyID string) ([]dto.ResponseDetailDTO, error) {
	if _, err := s.access.OwnedSurvey(ctx, ownerID, surveyID); err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.FindBySurveyID(ctx, surveyID)
	if err != nil {
		log.Error().Err(err).Str("surveyID", surveyID).Msg("ListResponses: failed to load responses")
		return nil, storeError(err, "response")
	}
	out := make([]dto.ResponseDetailDTO, 0, len(responses))
	for _, r := range responses {
		out = append(out, toResponseDTO(r))
	}
	return out, nil
}

// DashboardStats gathers the owner's counts concurrently.
func (s *analyticsService) DashboardStats(ctx context.Context, ownerID string) (*dto.DashboardStatsDTO, error) {
	var stats dto.DashboardStatsDTO
	var completion []repository.ResponseCompletion

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.surveyRepo.CountByOwner(gctx, ownerID)
		stats.TotalSurveys = n
		return err
	})
	g.Go(func() error {
		n, err := s.surveyRepo.CountByOwnerAndStatus(gctx, ownerID, model.SurveyStatusActive)
		stats.ActiveSurveys = n
		return err
	})
	g.Go(func() error {
		n, err := s.responseRepo.CountBySurveyOwner(gctx, ownerID)
		stats.TotalResponses = n
		return err
	})
	g.Go(func() error {
		rows, err := s.responseRepo.FindCompletionBySurveyOwner(gctx, ownerID)
		completion = rows
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Str("ownerID", ownerID).Msg("DashboardStats: failed to compute stats")
		return nil, storeError(err, "stats")
	}

	stats.CompletionRate = CompletionRate(completion)
	return &stats, nil
}
