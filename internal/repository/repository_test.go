package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lshigami/Surveyor/internal/model"
	"github.com/lshigami/Surveyor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type repos struct {
	db        *gorm.DB
	users     UserRepository
	surveys   SurveyRepository
	questions QuestionRepository
	responses ResponseRepository
}

func newRepos(t *testing.T) repos {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "owner-1")
	testutil.CreateUser(t, db, "owner-2")
	return repos{
		db:        db,
		users:     NewUserRepository(db),
		surveys:   NewSurveyRepository(db),
		questions: NewQuestionRepository(db),
		responses: NewResponseRepository(db),
	}
}

func createSurvey(t *testing.T, r repos, ownerID string, texts ...string) *model.Survey {
	t.Helper()
	survey := &model.Survey{Title: "Survey", OwnerID: ownerID}
	for i, text := range texts {
		survey.Questions = append(survey.Questions, model.Question{Text: text, Type: model.QuestionTypeText, Order: i})
	}
	require.NoError(t, r.surveys.Create(context.Background(), survey))
	return survey
}

func assertDenseOrder(t *testing.T, r repos, surveyID string) []model.Question {
	t.Helper()
	questions, err := r.questions.FindBySurveyID(context.Background(), surveyID)
	require.NoError(t, err)
	for i, q := range questions {
		assert.Equal(t, i, q.Order, "question %s", q.Text)
	}
	return questions
}

func texts(questions []model.Question) []string {
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.Text)
	}
	return out
}

func TestSurveyCreateAssignsIdentityAndToken(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	survey := &model.Survey{Title: "Feedback", OwnerID: "owner-1", ShareToken: "caller-chosen"}
	require.NoError(t, r.surveys.Create(ctx, survey))

	assert.NotEmpty(t, survey.ID)
	assert.NotEqual(t, "caller-chosen", survey.ShareToken)
	assert.Len(t, survey.ShareToken, 24)
	assert.Equal(t, model.SurveyStatusDraft, survey.Status)

	other := createSurvey(t, r, "owner-1")
	assert.NotEqual(t, survey.ShareToken, other.ShareToken)
}

func TestSurveyRoundTripKeepsQuestionOrder(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	survey := &model.Survey{Title: "Round trip", OwnerID: "owner-1", Questions: []model.Question{
		{Text: "third", Type: model.QuestionTypeText, Order: 7},
		{Text: "first", Type: model.QuestionTypeRating, Order: 1},
		{Text: "second", Type: model.QuestionTypeMultipleChoice, Options: []string{"A", "B"}, Order: 3},
	}}
	require.NoError(t, r.surveys.Create(ctx, survey))

	found, err := r.surveys.FindByIDWithQuestions(ctx, survey.ID)
	require.NoError(t, err)
	require.Len(t, found.Questions, 3)
	assert.Equal(t, []string{"first", "second", "third"}, texts(found.Questions))
	for i, q := range found.Questions {
		assert.Equal(t, i, q.Order)
		assert.Equal(t, survey.ID, q.SurveyID)
	}
	assert.Equal(t, []string{"A", "B"}, found.Questions[1].Options)
}

func TestSurveyUpdateMergesAndTouchesUpdatedAt(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	survey := createSurvey(t, r, "owner-1", "q")
	before := survey.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	updated, err := r.surveys.Update(ctx, survey.ID, map[string]interface{}{"status": model.SurveyStatusActive})
	require.NoError(t, err)

	assert.Equal(t, model.SurveyStatusActive, updated.Status)
	assert.Equal(t, "Survey", updated.Title)
	assert.Equal(t, survey.ShareToken, updated.ShareToken)
	assert.True(t, updated.UpdatedAt.After(before))
	assert.Len(t, updated.Questions, 1)

	_, err = r.surveys.Update(ctx, "missing", map[string]interface{}{"title": "x"})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSurveyDeleteCascades(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	survey := createSurvey(t, r, "owner-1", "a", "b")
	keep := createSurvey(t, r, "owner-1", "c")

	for _, s := range []*model.Survey{survey, keep} {
		resp := &model.Response{SurveyID: s.ID, Answers: []model.Answer{{QuestionID: s.Questions[0].ID, Value: "v"}}}
		require.NoError(t, r.responses.CreateWithAnswers(ctx, resp))
	}

	require.NoError(t, r.surveys.Delete(ctx, survey.ID))

	_, err := r.surveys.FindByID(ctx, survey.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	_, err = r.surveys.FindByShareToken(ctx, survey.ShareToken)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var questions, responses, answers int64
	r.db.Model(&model.Question{}).Where("survey_id = ?", survey.ID).Count(&questions)
	r.db.Model(&model.Response{}).Where("survey_id = ?", survey.ID).Count(&responses)
	r.db.Model(&model.Answer{}).Count(&answers)
	assert.Zero(t, questions)
	assert.Zero(t, responses)
	assert.EqualValues(t, 1, answers, "the other survey's answer must survive")

	assert.True(t, errors.Is(r.surveys.Delete(ctx, survey.ID), gorm.ErrRecordNotFound))
}

func TestSurveyListAndCounts(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	first := createSurvey(t, r, "owner-1", "a", "b")
	createSurvey(t, r, "owner-1")
	createSurvey(t, r, "owner-2", "x")
	_, err := r.surveys.Update(ctx, first.ID, map[string]interface{}{"status": model.SurveyStatusActive})
	require.NoError(t, err)
	require.NoError(t, r.responses.CreateWithAnswers(ctx, &model.Response{SurveyID: first.ID}))

	list, err := r.surveys.FindAllByOwnerWithCounts(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	byID := map[string]SurveyWithCounts{}
	for _, s := range list {
		byID[s.ID] = s
	}
	assert.Equal(t, 2, byID[first.ID].QuestionCount)
	assert.Equal(t, 1, byID[first.ID].ResponseCount)

	total, err := r.surveys.CountByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	active, err := r.surveys.CountByOwnerAndStatus(ctx, "owner-1", model.SurveyStatusActive)
	require.NoError(t, err)
	assert.EqualValues(t, 1, active)
}

func TestQuestionOrderStaysDense(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	survey := createSurvey(t, r, "owner-1", "a", "b", "c")

	appended := &model.Question{SurveyID: survey.ID, Text: "d", Type: model.QuestionTypeText}
	require.NoError(t, r.questions.Create(ctx, appended, nil))
	assert.Equal(t, 3, appended.Order)

	pos := 1
	inserted := &model.Question{SurveyID: survey.ID, Text: "a2", Type: model.QuestionTypeText}
	require.NoError(t, r.questions.Create(ctx, inserted, &pos))
	questions := assertDenseOrder(t, r, survey.ID)
	assert.Equal(t, []string{"a", "a2", "b", "c", "d"}, texts(questions))

	far := 99
	tail := &model.Question{SurveyID: survey.ID, Text: "e", Type: model.QuestionTypeText}
	require.NoError(t, r.questions.Create(ctx, tail, &far))
	assert.Equal(t, 5, tail.Order)

	require.NoError(t, r.questions.Delete(ctx, questions[2].ID))
	questions = assertDenseOrder(t, r, survey.ID)
	assert.Equal(t, []string{"a", "a2", "c", "d", "e"}, texts(questions))

	ids := []string{questions[4].ID, questions[3].ID, questions[2].ID, questions[1].ID, questions[0].ID}
	reordered, err := r.questions.Reorder(ctx, survey.ID, ids)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "d", "c", "a2", "a"}, texts(reordered))
	assertDenseOrder(t, r, survey.ID)
}

func TestQuestionReorderRejectsNonPermutations(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	survey := createSurvey(t, r, "owner-1", "a", "b")
	other := createSurvey(t, r, "owner-1", "x")
	a, b := survey.Questions[0].ID, survey.Questions[1].ID

	cases := map[string][]string{
		"missing id":   {a},
		"repeated id":  {a, a},
		"foreign id":   {a, other.Questions[0].ID},
		"too many ids": {a, b, other.Questions[0].ID},
	}
	for name, ids := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := r.questions.Reorder(ctx, survey.ID, ids)
			assert.ErrorIs(t, err, ErrInvalidOrder)
		})
	}
	questions := assertDenseOrder(t, r, survey.ID)
	assert.Equal(t, []string{"a", "b"}, texts(questions))
}

func TestQuestionUpdateMerges(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	survey := createSurvey(t, r, "owner-1", "a")
	q := survey.Questions[0]

	updated, err := r.questions.Update(ctx, q.ID, map[string]interface{}{
		"type":    model.QuestionTypeMultipleChoice,
		"options": []string{"Yes", "No"},
	})
	require.NoError(t, err)
	assert.Equal(t, "a", updated.Text)
	assert.Equal(t, model.QuestionTypeMultipleChoice, updated.Type)
	assert.Equal(t, []string{"Yes", "No"}, updated.Options)
	assert.Equal(t, 0, updated.Order)
	assert.False(t, updated.UpdatedAt.Before(q.UpdatedAt))

	_, err = r.questions.Update(ctx, "missing", map[string]interface{}{"text": "x"})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestResponseQueries(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	survey := createSurvey(t, r, "owner-1", "a", "b")
	other := createSurvey(t, r, "owner-2", "x")
	require.NoError(t, r.db.Model(&model.Question{}).Where("id = ?", survey.Questions[0].ID).Update("required", true).Error)

	respondent := "resp-1"
	full := &model.Response{SurveyID: survey.ID, RespondentID: &respondent, Answers: []model.Answer{
		{QuestionID: survey.Questions[0].ID, Value: "first"},
		{QuestionID: survey.Questions[1].ID, Value: "second"},
	}}
	require.NoError(t, r.responses.CreateWithAnswers(ctx, full))
	partial := &model.Response{SurveyID: survey.ID, Answers: []model.Answer{
		{QuestionID: survey.Questions[1].ID, Value: "third"},
	}}
	require.NoError(t, r.responses.CreateWithAnswers(ctx, partial))
	require.NoError(t, r.responses.CreateWithAnswers(ctx, &model.Response{SurveyID: other.ID}))

	answers, err := r.responses.FindAnswersBySurveyID(ctx, survey.ID)
	require.NoError(t, err)
	assert.Len(t, answers, 3)

	responses, err := r.responses.FindBySurveyID(ctx, survey.ID)
	require.NoError(t, err)
	require.Len(t, responses, 2)
	total := len(responses[0].Answers) + len(responses[1].Answers)
	assert.Equal(t, 3, total)

	count, err := r.responses.CountBySurvey(ctx, survey.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	owned, err := r.responses.CountBySurveyOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, owned)

	completion, err := r.responses.FindCompletionBySurveyOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, completion, 2)
	answered := map[string]int{}
	for _, c := range completion {
		assert.Equal(t, 1, c.RequiredTotal)
		answered[c.ResponseID] = c.RequiredAnswered
	}
	assert.Equal(t, 1, answered[full.ID])
	assert.Equal(t, 0, answered[partial.ID])
}

func TestUserUpsert(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	email := "ada@example.com"

	require.NoError(t, r.users.Upsert(ctx, &model.User{ID: "u-1", Email: &email, FirstName: "Ada"}))
	require.NoError(t, r.users.Upsert(ctx, &model.User{ID: "u-1", Email: &email, FirstName: "Ada", LastName: "Lovelace"}))

	user, err := r.users.FindByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", user.LastName)

	var count int64
	r.db.Model(&model.User{}).Where("id = ?", "u-1").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestNewShareTokenIsURLSafe(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token, err := NewShareToken()
		require.NoError(t, err)
		assert.Regexp(t, `^[A-Za-z0-9_-]{24}$`, token)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestCreateOnceWithAnswers(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	survey := createSurvey(t, r, "owner-1", "a")
	other := createSurvey(t, r, "owner-2", "x")

	respondent := "resp-1"
	first := &model.Response{SurveyID: survey.ID, RespondentID: &respondent, Answers: []model.Answer{
		{QuestionID: survey.Questions[0].ID, Value: "yes"},
	}}
	require.NoError(t, r.responses.CreateOnceWithAnswers(ctx, first))

	again := &model.Response{SurveyID: survey.ID, RespondentID: &respondent, Answers: []model.Answer{
		{QuestionID: survey.Questions[0].ID, Value: "no"},
	}}
	err := r.responses.CreateOnceWithAnswers(ctx, again)
	assert.True(t, errors.Is(err, ErrDuplicateResponse))

	// The rejected response leaves nothing behind.
	count, err := r.responses.CountBySurvey(ctx, survey.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	answers, err := r.responses.FindAnswersBySurveyID(ctx, survey.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "yes", answers[0].Value)

	require.NoError(t, r.responses.CreateOnceWithAnswers(ctx, &model.Response{SurveyID: other.ID, RespondentID: &respondent}))
	require.NoError(t, r.responses.CreateOnceWithAnswers(ctx, &model.Response{SurveyID: survey.ID}))
	require.NoError(t, r.responses.CreateOnceWithAnswers(ctx, &model.Response{SurveyID: survey.ID}))

	err = r.responses.CreateOnceWithAnswers(ctx, &model.Response{SurveyID: "missing", RespondentID: &respondent})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestQuestionUpdateIsAtomic(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	survey := createSurvey(t, r, "owner-1", "a")
	q := survey.Questions[0]
	_, err := r.questions.Update(ctx, q.ID, map[string]interface{}{"options": []string{"keep"}})
	require.NoError(t, err)

	_, err = r.questions.Update(ctx, q.ID, map[string]interface{}{
		"text":    "changed",
		"options": "not-a-list",
	})
	assert.ErrorContains(t, err, "got string")

	// A failing column update rolls back the options written before it.
	_, err = r.questions.Update(ctx, q.ID, map[string]interface{}{
		"options":   []string{"lost"},
		"survey_id": "missing-survey",
	})
	assert.Error(t, err)

	stored, err := r.questions.FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", stored.Text)
	assert.Equal(t, []string{"keep"}, stored.Options)
	assert.Equal(t, survey.ID, stored.SurveyID)

	cleared, err := r.questions.Update(ctx, q.ID, map[string]interface{}{"options": nil})
	require.NoError(t, err)
	assert.Empty(t, cleared.Options)
}
