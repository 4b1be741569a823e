package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kompisbot/kompis/pkg/domain"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract, including the
// conditional semantics of Update and Delete.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	chatID := "contract-chat-" + time.Now().Format("20060102150405")

	t.Run("Create and Load", func(t *testing.T) {
		session := domain.NewSession(chatID, "static_topic")
		session.MessageID = 42
		session.Text = "Hej!"
		session.SetAttr("topic", "bank")

		require.NoError(t, store.Create(ctx, session))

		loaded, err := store.Load(ctx, chatID)
		require.NoError(t, err)
		assert.Equal(t, session.ID, loaded.ID)
		assert.Equal(t, "static_topic", loaded.NodeID)
		assert.Equal(t, 42, loaded.MessageID)
		assert.Equal(t, "bank", loaded.Attributes["topic"])

		require.NoError(t, store.Delete(ctx, session))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+chatID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Load Returns Snapshot", func(t *testing.T) {
		session := domain.NewSession(chatID, "static_topic")
		require.NoError(t, store.Create(ctx, session))
		defer func() { _ = store.Delete(ctx, session) }()

		loaded, err := store.Load(ctx, chatID)
		require.NoError(t, err)
		loaded.SetAttr("scratch", "x")

		again, err := store.Load(ctx, chatID)
		require.NoError(t, err)
		_, ok := again.Attr("scratch")
		assert.False(t, ok, "mutating a loaded session must not leak into the store")
	})

	t.Run("Conditional Update", func(t *testing.T) {
		session := domain.NewSession(chatID, "static_topic")
		require.NoError(t, store.Create(ctx, session))
		defer func() { _ = store.Delete(ctx, session) }()

		session.NodeID = "head_topic_bank"
		session.SetAttr("postal_code", "11428")
		require.NoError(t, store.Update(ctx, session))

		loaded, err := store.Load(ctx, chatID)
		require.NoError(t, err)
		assert.Equal(t, "head_topic_bank", loaded.NodeID)
		assert.Equal(t, "11428", loaded.Attributes["postal_code"])

		stale := loaded.Clone()
		stale.ID = "some-other-session"
		assert.ErrorIs(t, store.Update(ctx, stale), domain.ErrStaleSession)
	})

	t.Run("Conditional Delete", func(t *testing.T) {
		session := domain.NewSession(chatID, "static_topic")
		require.NoError(t, store.Create(ctx, session))

		stale := session.Clone()
		stale.ID = "some-other-session"
		assert.ErrorIs(t, store.Delete(ctx, stale), domain.ErrStaleSession)

		require.NoError(t, store.Delete(ctx, session))
		_, err := store.Load(ctx, chatID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)

		// Deleting again is a no-op, not an error.
		assert.NoError(t, store.Delete(ctx, session))
	})
}
