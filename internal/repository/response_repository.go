package repository

import (
	"context"

	"github.com/lshigami/Surveyor/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResponseCompletion describes how many required questions one response answered.
type ResponseCompletion struct {
	ResponseID       string
	RequiredTotal    int
	RequiredAnswered int
}

type ResponseRepository interface {
	CreateWithAnswers(ctx context.Context, response *model.Response) error
	FindBySurveyID(ctx context.Context, surveyID string) ([]model.Response, error)
	FindAnswersBySurveyID(ctx context.Context, surveyID string) ([]model.Answer, error)
	CountBySurvey(ctx context.Context, surveyID string) (int64, error)
	CountBySurveyOwner(ctx context.Context, ownerID string) (int64, error)
	CreateOnceWithAnswers(ctx context.Context, response *model.Response) error
	FindCompletionBySurveyOwner(ctx context.Context, ownerID string) ([]ResponseCompletion, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

// CreateWithAnswers stores the response and all of response.Answers atomically.
func (r *responseRepository) CreateWithAnswers(ctx context.Context, response *model.Response) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Survey").Create(response).Error
	})
}

func (r *responseRepository) FindBySurveyID(ctx context.Context, surveyID string) ([]model.Response, error) {
	var responses []model.Response
	err := r.db.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.created_at ASC").Order("answers.id ASC")
		}).
		Where("survey_id = ?", surveyID).
		Order("created_at ASC").Order("id ASC").
		Find(&responses).Error
	return responses, err
}

// FindAnswersBySurveyID returns every answer of every response to the survey,
// ordered by response creation, then answer creation, then id.
func (r *responseRepository) FindAnswersBySurveyID(ctx context.Context, surveyID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.WithContext(ctx).
		Joins("JOIN responses ON responses.id = answers.response_id").
		Where("responses.survey_id = ?", surveyID).
		Order("responses.created_at ASC").
		Order("responses.id ASC").
		Order("answers.created_at ASC").
		Order("answers.id ASC").
		Find(&answers).Error
	return answers, err
}

func (r *responseRepository) CountBySurvey(ctx context.Context, surveyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Response{}).Where("survey_id = ?", surveyID).Count(&count).Error
	return count, err
}

func (r *responseRepository) CountBySurveyOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Response{}).
		Joins("JOIN surveys ON surveys.id = responses.survey_id").
		Where("surveys.owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

// CreateOnceWithAnswers behaves like CreateWithAnswers but fails with
// ErrDuplicateResponse when response.RespondentID already answered the survey.
// The survey row is locked for the check so concurrent submissions serialize.
func (r *responseRepository) CreateOnceWithAnswers(ctx context.Context, response *model.Response) error {
	if response.RespondentID == nil {
		return r.CreateWithAnswers(ctx, response)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var survey model.Survey
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").First(&survey, "id = ?", response.SurveyID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.Response{}).
			Where("survey_id = ? AND respondent_id = ?", response.SurveyID, *response.RespondentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateResponse
		}
		return tx.Omit("Survey").Create(response).Error
	})
}

func (r *responseRepository) FindCompletionBySurveyOwner(ctx context.Context, ownerID string) ([]ResponseCompletion, error) {
	var rows []ResponseCompletion
	err := r.db.WithContext(ctx).Table("responses").
		Select("responses.id AS response_id, "+
			"(SELECT COUNT(*) FROM questions WHERE questions.survey_id = responses.survey_id AND questions.required = ?) AS required_total, "+
			"(SELECT COUNT(*) FROM answers JOIN questions ON questions.id = answers.question_id "+
			"WHERE answers.response_id = responses.id AND questions.required = ?) AS required_answered",
			true, true).
		Joins("JOIN surveys ON surveys.id = responses.survey_id").
		Where("surveys.owner_id = ?", ownerID).
		Scan(&rows).Error
	return rows, err
}
