package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeText           = "text"
	QuestionTypeRating         = "rating"
	QuestionTypeTextarea       = "textarea"
)

// Rating questions are answered on a fixed 1..10 scale.
const (
	RatingMin = 1
	RatingMax = 10
)

type Question struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SurveyID  string    `gorm:"type:varchar(36);not null;index" json:"surveyId"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Type      string    `gorm:"type:varchar(32);not null" json:"type"`
	Required  bool      `gorm:"not null;default:false" json:"required"`
	Options   []string  `gorm:"type:text;serializer:json" json:"options"`
	Order     int       `gorm:"column:position;not null;index" json:"order"` // dense, zero-based within a survey
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	return nil
}

func IsValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeText, QuestionTypeRating, QuestionTypeTextarea:
		return true
	}
	return false
}
