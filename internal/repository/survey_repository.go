package repository

import (
	"context"
	"sort"
	"time"

	"github.com/lshigami/Surveyor/internal/model"
	"gorm.io/gorm"
)

// SurveyWithCounts is a survey row plus the number of its questions and responses.
type SurveyWithCounts struct {
	model.Survey
	QuestionCount int
	ResponseCount int
}

// SurveyRepository persists surveys. It performs no ownership checks; callers
// are expected to have authorized the access already.
type SurveyRepository interface {
	Create(ctx context.Context, survey *model.Survey) error
	FindByID(ctx context.Context, id string) (*model.Survey, error)
	FindByIDWithQuestions(ctx context.Context, id string) (*model.Survey, error)
	FindByShareToken(ctx context.Context, token string) (*model.Survey, error)
	FindAllByOwnerWithCounts(ctx context.Context, ownerID string) ([]SurveyWithCounts, error)
	Update(ctx context.Context, id string, changes map[string]interface{}) (*model.Survey, error)
	Delete(ctx context.Context, id string) error
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	CountByOwnerAndStatus(ctx context.Context, ownerID, status string) (int64, error)
}

type surveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepository{db: db}
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("questions.position ASC")
}

// Create assigns a fresh share token, overwriting anything the caller set, and
// stores the survey with its questions in one transaction. Question order is
// renumbered densely from zero following the supplied order values.
func (r *surveyRepository) Create(ctx context.Context, survey *model.Survey) error {
	token, err := NewShareToken()
	if err != nil {
		return err
	}
	survey.ShareToken = token

	sort.SliceStable(survey.Questions, func(i, j int) bool {
		return survey.Questions[i].Order < survey.Questions[j].Order
	})
	for i := range survey.Questions {
		survey.Questions[i].Order = i
		survey.Questions[i].SurveyID = ""
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Owner").Create(survey).Error
	})
}

func (r *surveyRepository) FindByID(ctx context.Context, id string) (*model.Survey, error) {
	var survey model.Survey
	if err := r.db.WithContext(ctx).First(&survey, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) FindByIDWithQuestions(ctx context.Context, id string) (*model.Survey, error) {
	var survey model.Survey
	err := r.db.WithContext(ctx).
		Preload("Questions", orderedQuestions).
		First(&survey, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) FindByShareToken(ctx context.Context, token string) (*model.Survey, error) {
	var survey model.Survey
	err := r.db.WithContext(ctx).
		Preload("Questions", orderedQuestions).
		First(&survey, "share_token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) FindAllByOwnerWithCounts(ctx context.Context, ownerID string) ([]SurveyWithCounts, error) {
	var results []SurveyWithCounts
	err := r.db.WithContext(ctx).Model(&model.Survey{}).
		Select("surveys.*, " +
			"(SELECT COUNT(*) FROM questions WHERE questions.survey_id = surveys.id) AS question_count, " +
			"(SELECT COUNT(*) FROM responses WHERE responses.survey_id = surveys.id) AS response_count").
		Where("surveys.owner_id = ?", ownerID).
		Order("surveys.created_at DESC").
		Scan(&results).Error
	return results, err
}

// Update applies a partial change set keyed by column name and refreshes updated_at.
func (r *surveyRepository) Update(ctx context.Context, id string, changes map[string]interface{}) (*model.Survey, error) {
	if changes == nil {
		changes = map[string]interface{}{}
	}
	changes["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&model.Survey{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByIDWithQuestions(ctx, id)
}

// Delete removes the survey together with its questions, responses and answers.
func (r *surveyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Survey{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		responseIDs := tx.Model(&model.Response{}).Select("id").Where("survey_id = ?", id)
		questionIDs := tx.Model(&model.Question{}).Select("id").Where("survey_id = ?", id)
		if err := tx.Where("response_id IN (?) OR question_id IN (?)", responseIDs, questionIDs).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&model.Response{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Survey{}).Error
	})
}

func (r *surveyRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Survey{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *surveyRepository) CountByOwnerAndStatus(ctx context.Context, ownerID, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Survey{}).
		Where("owner_id = ? AND status = ?", ownerID, status).
		Count(&count).Error
	return count, err
}
