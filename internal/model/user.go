package model

import "time"

// User is the local record of an identity asserted by the token issuer.
// Rows are upserted on every authenticated request and never deleted.
type User struct {
	ID              string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Email           *string   `gorm:"uniqueIndex" json:"email,omitempty"`
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
