package service

import (
	"context"
	"testing"

	"surveykit/internal/model"
	"surveykit/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDraftService_EditFlow(t *testing.T) {
	ctx := context.Background()
	sc := userSession("admin1", true)
	svc := NewDraftService(newMemDraftRepo(), new(MockSurveyAPI), nil, nil)

	draft, err := svc.Create(ctx, sc, "")
	require.NoError(t, err)
	assert.Equal(t, "draft-1", draft.ID)
	assert.Equal(t, "admin1", draft.Owner)

	_, err = svc.SetMeta(ctx, sc, draft.ID, "Lunch", "Pick a place")
	require.NoError(t, err)
	_, err = svc.AddQuestion(ctx, sc, draft.ID)
	require.NoError(t, err)
	_, err = svc.ReplaceQuestion(ctx, sc, draft.ID, 0, model.RawQuestion{Question: "Where?", Type: model.QuestionTypeDropdown, Options: []string{"Pizza"}})
	require.NoError(t, err)
	_, err = svc.AddOption(ctx, sc, draft.ID, 0)
	require.NoError(t, err)
	_, err = svc.UpdateOption(ctx, sc, draft.ID, 0, 1, "Sushi")
	require.NoError(t, err)

	got, err := svc.Get(ctx, sc, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lunch", got.Survey.Title)
	assert.Equal(t, []string{"Pizza", "Sushi"}, got.Survey.Questions[0].Options())

	_, err = svc.UpdateQuestionField(ctx, sc, draft.ID, 0, FieldMaxRating, 5)
	assert.ErrorIs(t, err, model.ErrSchema)
	got, _ = svc.Get(ctx, sc, draft.ID)
	assert.Equal(t, model.QuestionTypeDropdown, got.Survey.Questions[0].Type, "a failed edit stores nothing")

	_, err = svc.RemoveOption(ctx, sc, draft.ID, 0, 0)
	require.NoError(t, err)
	_, err = svc.RemoveQuestion(ctx, sc, draft.ID, 0)
	require.NoError(t, err)
	got, _ = svc.Get(ctx, sc, draft.ID)
	assert.Empty(t, got.Survey.Questions)
}

func TestDraftService_Ownership(t *testing.T) {
	ctx := context.Background()
	svc := NewDraftService(newMemDraftRepo(), new(MockSurveyAPI), nil, nil)

	draft, err := svc.Create(ctx, userSession("admin1", true), TemplatePartyInvitation)
	require.NoError(t, err)
	assert.Equal(t, "Party Invitation Form", draft.Survey.Title)

	_, err = svc.Get(ctx, userSession("admin2", true), draft.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = svc.Delete(ctx, userSession("admin2", true), draft.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.List(ctx, session.Anonymous())
	assert.ErrorIs(t, err, model.ErrAuthRequired)

	mine, err := svc.List(ctx, userSession("admin1", true))
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = svc.Create(ctx, userSession("admin1", true), "wedding")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDraftService_Publish(t *testing.T) {
	ctx := context.Background()
	sc := userSession("admin1", true)
	repo := newMemDraftRepo()

	api := new(MockSurveyAPI)
	api.On("CreateSurvey", mock.Anything, sc, mock.Anything).Return(&model.Survey{ID: "s9"}, nil).Once()
	api.On("UpdateSurvey", mock.Anything, sc, mock.MatchedBy(func(s model.Survey) bool {
		return s.ID == "s9"
	})).Return(&model.Survey{ID: "s9"}, nil).Once()

	notes := newRecordingNotifier()
	svc := NewDraftService(repo, api, notes, nil)

	draft, err := svc.Create(ctx, sc, TemplateCustomerSatisfaction)
	require.NoError(t, err)

	published, err := svc.Publish(ctx, sc, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "s9", published.ID)

	stored, _ := svc.Get(ctx, sc, draft.ID)
	assert.Equal(t, "s9", stored.PublishedID)

	_, err = svc.Publish(ctx, sc, draft.ID)
	require.NoError(t, err)

	note, _ := notes.last("admin1")
	assert.Equal(t, "Survey published successfully!", note.Message)
	api.AssertExpectations(t)
}

func TestDraftService_PublishInvalid(t *testing.T) {
	ctx := context.Background()
	sc := userSession("admin1", true)
	api := new(MockSurveyAPI)
	svc := NewDraftService(newMemDraftRepo(), api, nil, nil)

	draft, err := svc.Create(ctx, sc, "")
	require.NoError(t, err)

	_, err = svc.Publish(ctx, sc, draft.ID)
	assert.ErrorIs(t, err, model.ErrValidation)
	api.AssertNotCalled(t, "CreateSurvey", mock.Anything, mock.Anything, mock.Anything)
}
