package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/lshigami/Surveyor/internal/dto"
	"github.com/lshigami/Surveyor/internal/model"
	"github.com/lshigami/Surveyor/internal/repository"
)

// AggregateQuestion builds the distribution of one question from its answer
// values, given in store order.
func AggregateQuestion(q model.Question, values []string) dto.QuestionAnalyticsDTO {
	out := dto.QuestionAnalyticsDTO{
		QuestionID:   q.ID,
		Text:         q.Text,
		Type:         q.Type,
		Required:     q.Required,
		Order:        q.Order,
		TotalAnswers: len(values),
	}
	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		out.OptionCounts = CountOptions(q.Options, values)
	case model.QuestionTypeRating:
		out.RatingBuckets, out.AverageRating = RatingHistogram(values)
	default:
		out.TextAnswers = append([]string{}, values...)
	}
	return out
}

// CountOptions tallies values per declared option, in declaration order.
// Values matching no option (for example after the options were edited) are
// dropped without error.
func CountOptions(options, values []string) []dto.OptionCountDTO {
	counts := make([]dto.OptionCountDTO, len(options))
	index := make(map[string]int, len(options))
	for i, opt := range options {
		counts[i] = dto.OptionCountDTO{Option: opt}
		if _, dup := index[opt]; !dup {
			index[opt] = i
		}
	}
	for _, v := range values {
		if i, ok := index[v]; ok {
			counts[i].Count++
		}
	}
	return counts
}

// RatingHistogram counts ratings into the buckets 1..10, all of which are
// always present. Values that are not integers in range are ignored. The
// average is nil when no value was counted.
func RatingHistogram(values []string) ([]dto.RatingBucketDTO, *float64) {
	buckets := make([]dto.RatingBucketDTO, 0, model.RatingMax-model.RatingMin+1)
	for r := model.RatingMin; r <= model.RatingMax; r++ {
		buckets = append(buckets, dto.RatingBucketDTO{Rating: r})
	}

	sum, n := 0, 0
	for _, v := range values {
		r, ok := parseRating(v)
		if !ok {
			continue
		}
		buckets[r-model.RatingMin].Count++
		sum += r
		n++
	}
	if n == 0 {
		return buckets, nil
	}
	avg := round1(float64(sum) / float64(n))
	return buckets, &avg
}

func parseRating(v string) (int, bool) {
	r, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || r < model.RatingMin || r > model.RatingMax {
		return 0, false
	}
	return r, true
}

// CompletionRate is the mean, in percent, of answered required questions over
// required questions per response. A response to a survey without required
// questions counts as complete. No responses yields 0.
func CompletionRate(rows []repository.ResponseCompletion) float64 {
	if len(rows) == 0 {
		return 0
	}
	total := 0.0
	for _, row := range rows {
		if row.RequiredTotal <= 0 {
			total += 1
			continue
		}
		ratio := float64(row.RequiredAnswered) / float64(row.RequiredTotal)
		total += math.Min(ratio, 1)
	}
	return round1(total / float64(len(rows)) * 100)
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
