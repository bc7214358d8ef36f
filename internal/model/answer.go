package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Answer struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ResponseID string    `gorm:"type:varchar(36);not null;index" json:"responseId"`
	QuestionID string    `gorm:"type:varchar(36);not null;index" json:"questionId"`
	Question   Question  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE;" json:"-"`
	Value      string    `gorm:"type:text;not null" json:"value"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
