package dto

// QuestionCreateDTO describes one question, either nested in a survey creation
// request or added to an existing survey. Order is optional: nested questions
// are sorted by it and renumbered, a standalone question is inserted at it.
type QuestionCreateDTO struct {
	Text     string   `json:"text" binding:"required,max=2000"`
	Type     string   `json:"type" binding:"required,oneof=multiple-choice text rating textarea"`
	Required bool     `json:"required"`
	Options  []string `json:"options" binding:"omitempty,max=50,dive,max=500"`
	Order    *int     `json:"order" binding:"omitempty,min=0"`
}

// SurveyCreateDTO is the payload for creating a survey, optionally with its questions.
type SurveyCreateDTO struct {
	Title             string              `json:"title" binding:"required,max=200"`
	Description       *string             `json:"description" binding:"omitempty,max=5000"`
	Anonymous         bool                `json:"anonymous"`
	MultipleResponses bool                `json:"multipleResponses"`
	Questions         []QuestionCreateDTO `json:"questions" binding:"omitempty,max=200,dive"`
}

// SurveyUpdateDTO carries a partial update; nil fields are left untouched.
type SurveyUpdateDTO struct {
	Title             *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description       *string `json:"description" binding:"omitempty,max=5000"`
	Status            *string `json:"status" binding:"omitempty,oneof=draft active closed"`
	Anonymous         *bool   `json:"anonymous"`
	MultipleResponses *bool   `json:"multipleResponses"`
}

// QuestionUpdateDTO carries a partial update; nil fields are left untouched.
type QuestionUpdateDTO struct {
	Text     *string   `json:"text" binding:"omitempty,min=1,max=2000"`
	Type     *string   `json:"type" binding:"omitempty,oneof=multiple-choice text rating textarea"`
	Required *bool     `json:"required"`
	Options  *[]string `json:"options" binding:"omitempty,max=50,dive,max=500"`
}

// QuestionReorderDTO lists every question id of a survey in the desired order.
type QuestionReorderDTO struct {
	QuestionIDs []string `json:"questionIds" binding:"required,min=1,dive,required"`
}

// AnswerSubmitDTO is one answered question inside a public submission.
type AnswerSubmitDTO struct {
	QuestionID string `json:"questionId" binding:"required"`
	Value      string `json:"value" binding:"max=10000"`
}

// ResponseSubmitDTO is the public submission payload.
type ResponseSubmitDTO struct {
	RespondentID *string           `json:"respondentId" binding:"omitempty,max=128"`
	Answers      []AnswerSubmitDTO `json:"answers" binding:"max=500,dive"`
}
