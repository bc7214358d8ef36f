package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/Surveyor/internal/model"
	"gorm.io/gorm"
)

// QuestionRepository persists questions and keeps their order dense
// (0..N-1, no gaps, no duplicates) within each survey after every mutation.
type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question, position *int) error
	FindByID(ctx context.Context, id string) (*model.Question, error)
	FindBySurveyID(ctx context.Context, surveyID string) ([]model.Question, error)
	Update(ctx context.Context, id string, changes map[string]interface{}) (*model.Question, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, surveyID string, orderedIDs []string) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// Create appends the question, or inserts it at position when that falls
// inside the current list, shifting later questions down by one.
func (r *questionRepository) Create(ctx context.Context, question *model.Question, position *int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Question{}).Where("survey_id = ?", question.SurveyID).Count(&count).Error; err != nil {
			return err
		}

		question.Order = int(count)
		if position != nil && *position >= 0 && int64(*position) < count {
			if err := tx.Model(&model.Question{}).
				Where("survey_id = ? AND position >= ?", question.SurveyID, *position).
				UpdateColumn("position", gorm.Expr("position + 1")).Error; err != nil {
				return err
			}
			question.Order = *position
		}

		if err := tx.Create(question).Error; err != nil {
			return err
		}
		return normalize(tx, question.SurveyID)
	})
}

func (r *questionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).First(&question, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindBySurveyID(ctx context.Context, surveyID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.WithContext(ctx).
		Where("survey_id = ?", surveyID).
		Order("position ASC").
		Find(&questions).Error
	return questions, err
}

// Update applies a partial change set keyed by column name and refreshes updated_at.
func (r *questionRepository) Update(ctx context.Context, id string, changes map[string]interface{}) (*model.Question, error) {
	if changes == nil {
		changes = map[string]interface{}{}
	}
	changes["updated_at"] = time.Now()

	var question *model.Question
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Options go through the json serializer, which map updates bypass.
		if raw, ok := changes["options"]; ok {
			delete(changes, "options")
			opts, ok := raw.([]string)
			if !ok && raw != nil {
				return fmt.Errorf("question options must be []string, got %T", raw)
			}
			var current model.Question
			if err := tx.First(&current, "id = ?", id).Error; err != nil {
				return err
			}
			current.Options = opts
			if err := tx.Model(&current).Select("options").Updates(&current).Error; err != nil {
				return err
			}
		}

		res := tx.Model(&model.Question{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var updated model.Question
		if err := tx.First(&updated, "id = ?", id).Error; err != nil {
			return err
		}
		question = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

// Delete removes the question and its answers, then closes the gap it leaves.
func (r *questionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question model.Question
		if err := tx.First(&question, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&question).Error; err != nil {
			return err
		}
		return normalize(tx, question.SurveyID)
	})
}

// Reorder assigns order by position in orderedIDs, which must name every
// question of the survey exactly once.
func (r *questionRepository) Reorder(ctx context.Context, surveyID string, orderedIDs []string) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []model.Question
		if err := tx.Where("survey_id = ?", surveyID).Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) != len(orderedIDs) {
			return ErrInvalidOrder
		}
		known := make(map[string]bool, len(existing))
		for _, q := range existing {
			known[q.ID] = true
		}
		for _, id := range orderedIDs {
			if !known[id] {
				return ErrInvalidOrder
			}
			delete(known, id) // a repeated id fails on the next lookup
		}

		for i, id := range orderedIDs {
			if err := tx.Model(&model.Question{}).Where("id = ?", id).
				Updates(map[string]interface{}{"position": i, "updated_at": time.Now()}).Error; err != nil {
				return err
			}
		}
		return tx.Where("survey_id = ?", surveyID).Order("position ASC").Find(&questions).Error
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// normalize renumbers a survey's questions to 0..N-1 keeping their relative order.
func normalize(tx *gorm.DB, surveyID string) error {
	var questions []model.Question
	if err := tx.Select("id", "position").
		Where("survey_id = ?", surveyID).
		Order("position ASC").Order("created_at ASC").Order("id ASC").
		Find(&questions).Error; err != nil {
		return err
	}
	for i, q := range questions {
		if q.Order == i {
			continue
		}
		if err := tx.Model(&model.Question{}).Where("id = ?", q.ID).UpdateColumn("position", i).Error; err != nil {
			return err
		}
	}
	return nil
}
