package dialog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kompisbot/kompis/internal/logging"
	"github.com/kompisbot/kompis/pkg/dialog"
	"github.com/kompisbot/kompis/pkg/domain"
)

type recordedFeedback struct {
	ChatID    string
	SessionID string
	TopicID   string
	Vote      string
}

type fakeFeedbackStore struct {
	records []recordedFeedback
}

func (f *fakeFeedbackStore) SaveFeedback(_ context.Context, chatID, sessionID, topicID, vote string) error {
	f.records = append(f.records, recordedFeedback{ChatID: chatID, SessionID: sessionID, TopicID: topicID, Vote: vote})
	return nil
}

func TestFeedback_NormalizeSynonyms(t *testing.T) {
	node := dialog.NewFeedbackNode("feedback", nil, logging.NewNop())

	assert.Equal(t, dialog.ActionGoodConversation, node.Normalize("good"))
	assert.Equal(t, dialog.ActionGoodConversation, node.Normalize("Perfect"))
	assert.Equal(t, dialog.ActionNormalConversation, node.Normalize("ok"))
	assert.Equal(t, dialog.ActionBadConversation, node.Normalize("terrible"))
	assert.Equal(t, dialog.ActionBadConversation, node.Normalize("bad"))
	assert.Equal(t, "meh", node.Normalize("meh"))
}

func TestFeedback_AlwaysTerminates(t *testing.T) {
	node := dialog.NewFeedbackNode("feedback", nil, logging.NewNop())

	next, err := node.ComputeNext(context.Background(), nil, domain.Message{}, dialog.ActionGoodConversation)
	require.NoError(t, err)
	assert.Equal(t, domain.HomeNodeID, next)
}

func TestFeedback_OnCloseRecordsWithTopic(t *testing.T) {
	store := &fakeFeedbackStore{}
	node := dialog.NewFeedbackNode("feedback", store, logging.NewNop())

	session := domain.NewSession("chat-1", node.ID())
	session.SetAttr(domain.AttrTopic, "bank")

	require.NoError(t, node.OnClose(context.Background(), session, domain.Message{}, dialog.ActionNormalConversation))
	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.Equal(t, "chat-1", rec.ChatID)
	assert.Equal(t, session.ID, rec.SessionID)
	assert.Equal(t, "bank", rec.TopicID)
	assert.Equal(t, dialog.ActionNormalConversation, rec.Vote)
}

func TestFeedback_OnCloseSkipsWithoutTopic(t *testing.T) {
	store := &fakeFeedbackStore{}
	node := dialog.NewFeedbackNode("feedback", store, logging.NewNop())

	// A conversation that reached feedback through the menu never went
	// through topic prediction.
	session := domain.NewSession("chat-1", node.ID())

	require.NoError(t, node.OnClose(context.Background(), session, domain.Message{}, dialog.ActionGoodConversation))
	assert.Empty(t, store.records)
}

func TestFeedback_RenderMoodPrompt(t *testing.T) {
	node := dialog.NewFeedbackNode("feedback", nil, logging.NewNop())

	p := node.Render(nil, domain.Message{ChatID: "chat-1", FirstName: "Omar"}, "")
	require.NotNil(t, p)
	assert.Equal(t, "Omar, how it was?", p.Text)
	require.Len(t, p.Keyboard, 1)
	require.Len(t, p.Keyboard[0], 3)
	assert.Equal(t, dialog.ActionBadConversation, p.Keyboard[0][0].Action)
	assert.Equal(t, dialog.ActionGoodConversation, p.Keyboard[0][2].Action)
}
