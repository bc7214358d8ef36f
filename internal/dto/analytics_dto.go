package dto

type OptionCountDTO struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

type RatingBucketDTO struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// QuestionAnalyticsDTO holds the distribution for one question. Exactly one of
// OptionCounts, RatingBuckets or TextAnswers is populated, by question type.
type QuestionAnalyticsDTO struct {
	QuestionID    string            `json:"questionId"`
	Text          string            `json:"text"`
	Type          string            `json:"type"`
	Required      bool              `json:"required"`
	Order         int               `json:"order"`
	TotalAnswers  int               `json:"totalAnswers"`
	OptionCounts  []OptionCountDTO  `json:"optionCounts,omitempty"`
	RatingBuckets []RatingBucketDTO `json:"ratingBuckets,omitempty"`
	AverageRating *float64          `json:"averageRating,omitempty"`
	TextAnswers   []string          `json:"textAnswers,omitempty"`
}

type SurveyAnalyticsDTO struct {
	SurveyID       string                 `json:"surveyId"`
	Title          string                 `json:"title"`
	Status         string                 `json:"status"`
	TotalResponses int                    `json:"totalResponses"`
	Questions      []QuestionAnalyticsDTO `json:"questions"`
}

// DashboardStatsDTO summarizes everything one owner has.
type DashboardStatsDTO struct {
	TotalSurveys   int64   `json:"totalSurveys"`
	ActiveSurveys  int64   `json:"activeSurveys"`
	TotalResponses int64   `json:"totalResponses"`
	CompletionRate float64 `json:"completionRate"`
}
