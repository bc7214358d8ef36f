package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SurveyStatusDraft  = "draft"
	SurveyStatusActive = "active"
	SurveyStatusClosed = "closed"
)

type Survey struct {
	ID                     string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title                  string     `gorm:"not null" json:"title"`
	Description            *string    `gorm:"type:text" json:"description,omitempty"`
	OwnerID                string     `gorm:"type:varchar(64);not null;index" json:"ownerId"`
	Owner                  User       `gorm:"foreignKey:OwnerID" json:"-"`
	Status                 string     `gorm:"type:varchar(16);not null;default:'draft';index" json:"status"`
	Anonymous              bool       `gorm:"not null;default:false" json:"anonymous"`
	AllowMultipleResponses bool       `gorm:"not null;default:false" json:"multipleResponses"`
	ShareToken             string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"shareToken"`
	Questions              []Question `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE;" json:"questions,omitempty"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

func (s *Survey) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Status == "" {
		s.Status = SurveyStatusDraft
	}
	return nil
}

// IsPublic reports whether the survey may be read and answered through its share token.
func (s *Survey) IsPublic() bool {
	return s.Status == SurveyStatusActive
}
