package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lshigami/Surveyor/internal/apperror"
	"github.com/lshigami/Surveyor/internal/model"
	"github.com/lshigami/Surveyor/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubSurveys serves surveys from memory; unused methods panic through the
// embedded nil interface.
type stubSurveys struct {
	repository.SurveyRepository
	byID map[string]*model.Survey
	err  error
}

func (s *stubSurveys) FindByIDWithQuestions(_ context.Context, id string) (*model.Survey, error) {
	if s.err != nil {
		return nil, s.err
	}
	if sv, ok := s.byID[id]; ok {
		return sv, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSurveys) FindByShareToken(_ context.Context, token string) (*model.Survey, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, sv := range s.byID {
		if sv.ShareToken == token {
			return sv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type stubQuestions struct {
	repository.QuestionRepository
	byID map[string]*model.Question
}

func (s *stubQuestions) FindByID(_ context.Context, id string) (*model.Question, error) {
	if q, ok := s.byID[id]; ok {
		return q, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newStubAccess(err error) AccessService {
	surveys := &stubSurveys{err: err, byID: map[string]*model.Survey{
		"s-draft":  {ID: "s-draft", OwnerID: "alice", Status: model.SurveyStatusDraft, ShareToken: "tok-draft"},
		"s-active": {ID: "s-active", OwnerID: "alice", Status: model.SurveyStatusActive, ShareToken: "tok-active"},
		"s-closed": {ID: "s-closed", OwnerID: "alice", Status: model.SurveyStatusClosed, ShareToken: "tok-closed"},
	}}
	questions := &stubQuestions{byID: map[string]*model.Question{
		"q-1": {ID: "q-1", SurveyID: "s-active"},
	}}
	return NewAccessService(surveys, questions)
}

func TestOwnedSurvey(t *testing.T) {
	access := newStubAccess(nil)
	ctx := context.Background()

	survey, err := access.OwnedSurvey(ctx, "alice", "s-draft")
	require.NoError(t, err)
	assert.Equal(t, "s-draft", survey.ID)

	for name, args := range map[string][2]string{
		"foreign owner":  {"bob", "s-draft"},
		"absent survey":  {"alice", "s-missing"},
		"anonymous call": {"", "s-draft"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := access.OwnedSurvey(ctx, args[0], args[1])
			assert.True(t, apperror.IsNotFound(err))
		})
	}
}

func TestOwnedQuestion(t *testing.T) {
	access := newStubAccess(nil)
	ctx := context.Background()

	q, err := access.OwnedQuestion(ctx, "alice", "s-active", "q-1")
	require.NoError(t, err)
	assert.Equal(t, "q-1", q.ID)

	_, err = access.OwnedQuestion(ctx, "alice", "s-draft", "q-1")
	assert.True(t, apperror.IsNotFound(err))

	_, err = access.OwnedQuestion(ctx, "bob", "s-active", "q-1")
	assert.True(t, apperror.IsNotFound(err))
}

func TestPublicSurveyOnlyWhenActive(t *testing.T) {
	access := newStubAccess(nil)
	ctx := context.Background()

	survey, err := access.PublicSurvey(ctx, "tok-active")
	require.NoError(t, err)
	assert.Equal(t, "s-active", survey.ID)

	for _, token := range []string{"tok-draft", "tok-closed", "tok-unknown", ""} {
		_, err := access.PublicSurvey(ctx, token)
		assert.True(t, apperror.IsNotFound(err), token)
	}
}

func TestAccessStoreFailureIsInternal(t *testing.T) {
	access := newStubAccess(errors.New("connection reset"))

	_, err := access.OwnedSurvey(context.Background(), "alice", "s-draft")
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	assert.Equal(t, "internal error", apperror.As(err).Message)
}
