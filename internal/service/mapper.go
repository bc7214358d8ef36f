package service

import (
	"github.com/jinzhu/copier"
	"github.com/lshigami/Surveyor/internal/dto"
	"github.com/lshigami/Surveyor/internal/model"
	"github.com/lshigami/Surveyor/internal/repository"
)

func toQuestionDTO(q model.Question) dto.QuestionResponseDTO {
	var out dto.QuestionResponseDTO
	_ = copier.Copy(&out, &q)
	if out.Options == nil {
		out.Options = []string{}
	}
	return out
}

func toQuestionDTOs(questions []model.Question) []dto.QuestionResponseDTO {
	out := make([]dto.QuestionResponseDTO, 0, len(questions))
	for _, q := range questions {
		out = append(out, toQuestionDTO(q))
	}
	return out
}

func toSurveyDTO(s *model.Survey, shareURL string) *dto.SurveyResponseDTO {
	var out dto.SurveyResponseDTO
	_ = copier.Copy(&out, s)
	out.MultipleResponses = s.AllowMultipleResponses
	out.ShareURL = shareURL
	out.Questions = toQuestionDTOs(s.Questions)
	return &out
}

func toSurveySummaryDTO(s repository.SurveyWithCounts) dto.SurveySummaryDTO {
	var out dto.SurveySummaryDTO
	_ = copier.Copy(&out, &s.Survey)
	out.MultipleResponses = s.AllowMultipleResponses
	out.QuestionCount = s.QuestionCount
	out.ResponseCount = s.ResponseCount
	return out
}

func toPublicSurveyDTO(s *model.Survey) *dto.PublicSurveyDTO {
	var out dto.PublicSurveyDTO
	_ = copier.Copy(&out, s)
	out.Questions = toQuestionDTOs(s.Questions)
	return &out
}

func toResponseDTO(r model.Response) dto.ResponseDetailDTO {
	var out dto.ResponseDetailDTO
	_ = copier.Copy(&out, &r)
	answers := make([]dto.AnswerResponseDTO, 0, len(r.Answers))
	for _, a := range r.Answers {
		var ad dto.AnswerResponseDTO
		_ = copier.Copy(&ad, &a)
		answers = append(answers, ad)
	}
	out.Answers = answers
	return out
}

func toUserDTO(u *model.User) *dto.UserResponseDTO {
	var out dto.UserResponseDTO
	_ = copier.Copy(&out, u)
	return &out
}
