package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Response is one completed submission. It is never updated after creation.
type Response struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SurveyID     string    `gorm:"type:varchar(36);not null;index" json:"surveyId"`
	Survey       Survey    `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE;" json:"-"`
	RespondentID *string   `gorm:"type:varchar(128);index" json:"respondentId,omitempty"`
	Answers      []Answer  `gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE;" json:"answers,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
