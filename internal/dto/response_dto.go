package dto

import "time"

type UserResponseDTO struct {
	ID              string    `json:"id"`
	Email           *string   `json:"email,omitempty"`
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type QuestionResponseDTO struct {
	ID       string   `json:"id"`
	SurveyID string   `json:"surveyId"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
	Order    int      `json:"order"`
}

// SurveyResponseDTO is the owner view of a survey.
type SurveyResponseDTO struct {
	ID                string                `json:"id"`
	Title             string                `json:"title"`
	Description       *string               `json:"description,omitempty"`
	Status            string                `json:"status"`
	Anonymous         bool                  `json:"anonymous"`
	MultipleResponses bool                  `json:"multipleResponses"`
	ShareToken        string                `json:"shareToken"`
	ShareURL          string                `json:"shareUrl,omitempty"`
	Questions         []QuestionResponseDTO `json:"questions"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

// SurveySummaryDTO is a row of the owner's survey list.
type SurveySummaryDTO struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       *string   `json:"description,omitempty"`
	Status            string    `json:"status"`
	Anonymous         bool      `json:"anonymous"`
	MultipleResponses bool      `json:"multipleResponses"`
	ShareToken        string    `json:"shareToken"`
	QuestionCount     int       `json:"questionCount"`
	ResponseCount     int       `json:"responseCount"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// PublicSurveyDTO is what respondents see; it omits owner-only fields.
type PublicSurveyDTO struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description *string               `json:"description,omitempty"`
	Status      string                `json:"status"`
	Anonymous   bool                  `json:"anonymous"`
	Questions   []QuestionResponseDTO `json:"questions"`
}

type AnswerResponseDTO struct {
	ID         string    `json:"id"`
	ResponseID string    `json:"responseId"`
	QuestionID string    `json:"questionId"`
	Value      string    `json:"value"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ResponseDetailDTO struct {
	ID           string              `json:"id"`
	SurveyID     string              `json:"surveyId"`
	RespondentID *string             `json:"respondentId,omitempty"`
	Answers      []AnswerResponseDTO `json:"answers"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// SubmissionAckDTO acknowledges an accepted public submission.
type SubmissionAckDTO struct {
	ResponseID  string    `json:"responseId"`
	SurveyID    string    `json:"surveyId"`
	AnswerCount int       `json:"answerCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FieldErrorDTO names one offending field of a rejected request.
type FieldErrorDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string          `json:"error"`
	Message string          `json:"message,omitempty"`
	Fields  []FieldErrorDTO `json:"fields,omitempty"`
}
