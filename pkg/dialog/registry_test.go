package dialog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kompisbot/kompis/internal/logging"
	"github.com/kompisbot/kompis/pkg/dialog"
	"github.com/kompisbot/kompis/pkg/domain"
)

func TestRegistry_GetUnknownNode(t *testing.T) {
	reg := dialog.NewRegistry(logging.NewNop())

	_, err := reg.Get("nope")
	assert.True(t, errors.Is(err, domain.ErrNodeNotFound))
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	reg := dialog.NewRegistry(logging.NewNop())

	first, err := dialog.NewOptionNode("menu", dialog.OptionDef{Content: "first"})
	require.NoError(t, err)
	second, err := dialog.NewOptionNode("menu", dialog.OptionDef{Content: "second"})
	require.NoError(t, err)

	reg.Register(first)
	reg.Register(second)

	node, err := reg.Get("menu")
	require.NoError(t, err)
	p := node.Render(nil, domain.Message{ChatID: "c"}, "")
	assert.Equal(t, "second", p.Text)
	assert.Equal(t, 1, reg.Len())
}

func TestRegisterBuiltins(t *testing.T) {
	reg := dialog.NewRegistry(logging.NewNop())
	dialog.RegisterBuiltins(reg, dialog.BuiltinDeps{
		Classifier: &fakeClassifier{topic: "swedish"},
	})

	assert.True(t, reg.Has(dialog.PredictNodeID))
	assert.True(t, reg.Has(dialog.FeedbackNodeID))
	for _, topic := range dialog.Topics {
		assert.True(t, reg.Has(dialog.ConfirmNodePrefix+topic), topic)
	}
	// Prediction, one confirmation per topic, feedback.
	assert.Equal(t, 2+len(dialog.Topics), reg.Len())
}

func TestRegisterBuiltins_ConfirmRejectTarget(t *testing.T) {
	reg := dialog.NewRegistry(logging.NewNop())
	dialog.RegisterBuiltins(reg, dialog.BuiltinDeps{
		Classifier:          &fakeClassifier{topic: "bank"},
		ConfirmRejectNodeID: "static_topic",
	})

	node, err := reg.Get(dialog.ConfirmNodePrefix + "bank")
	require.NoError(t, err)
	ref, ok := node.(dialog.Referencer)
	require.True(t, ok)
	assert.Contains(t, ref.References(), "static_topic")
}
