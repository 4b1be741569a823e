package dialog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kompisbot/kompis/pkg/dialog"
	"github.com/kompisbot/kompis/pkg/domain"
)

type fakeClassifier struct {
	topic string
	err   error
}

func (f *fakeClassifier) Classify(context.Context, string) (string, error) {
	return f.topic, f.err
}

func TestPredict_RoutesToConfirmationAndStashesTopic(t *testing.T) {
	node := dialog.NewTopicPredictNode("make_topic_prediction", &fakeClassifier{topic: "swedish"})
	session := domain.NewSession("chat-1", node.ID())
	msg := domain.Message{ChatID: "chat-1", Text: "I want to start SFI"}

	next, err := node.ComputeNext(context.Background(), session, msg, node.Normalize(msg.Text))
	require.NoError(t, err)

	assert.Equal(t, "check_topic_prediction_swedish", next)
	topic, ok := session.Attr(domain.AttrTopic)
	require.True(t, ok)
	assert.Equal(t, "swedish", topic)
}

func TestPredict_NeverRenders(t *testing.T) {
	node := dialog.NewTopicPredictNode("make_topic_prediction", &fakeClassifier{topic: "bank"})
	assert.Nil(t, node.Render(nil, domain.Message{}, ""))
}

func TestPredict_AcceptsAnyInput(t *testing.T) {
	node := dialog.NewTopicPredictNode("make_topic_prediction", &fakeClassifier{topic: "bank"})
	assert.True(t, node.IsExpected("absolutely anything"))
	assert.Equal(t, "as typed", node.Normalize("as typed"))
}

func TestPredict_ClassifierFailure(t *testing.T) {
	node := dialog.NewTopicPredictNode("make_topic_prediction", &fakeClassifier{err: errors.New("model offline")})
	session := domain.NewSession("chat-1", node.ID())

	_, err := node.ComputeNext(context.Background(), session, domain.Message{Text: "hello"}, "hello")
	assert.ErrorContains(t, err, "classify message")
}

func TestPredict_ReferencesEveryConfirmation(t *testing.T) {
	node := dialog.NewTopicPredictNode("make_topic_prediction", &fakeClassifier{})
	refs := node.References()
	assert.Len(t, refs, len(dialog.Topics))
	assert.Contains(t, refs, "check_topic_prediction_culture")
}
