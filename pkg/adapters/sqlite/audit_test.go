package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kompisbot/kompis/pkg/adapters/sqlite"
)

func newTestStore(t *testing.T) *sqlite.AuditStore {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAuditStore_SaveVote(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveVote(ctx, "chat-1", 17, "good_answer"))

	// Replaying the same event overwrites, it does not fail.
	require.NoError(t, store.SaveVote(ctx, "chat-1", 17, "good_answer"))

	assert.NoError(t, store.SaveVote(ctx, "chat-1", 18, "bad_answer"))
}

func TestAuditStore_SaveFeedback(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveFeedback(ctx, "chat-1", "sess-1", "swedish", "good_conversation"))
	require.NoError(t, store.SaveFeedback(ctx, "chat-1", "sess-1", "swedish", "normal_conversation"))
	assert.NoError(t, store.SaveFeedback(ctx, "chat-2", "sess-2", "bank", "bad_conversation"))
}
