package dialog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kompisbot/kompis/internal/logging"
	"github.com/kompisbot/kompis/pkg/dialog"
	"github.com/kompisbot/kompis/pkg/domain"
	"github.com/kompisbot/kompis/pkg/ports"
)

func writeFlow(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_BuildsDeclaredNodes(t *testing.T) {
	path := writeFlow(t, `
nodes:
  static_topic:
    node_type: option
    content: "Pick a topic."
    options:
      - - content: Bank
          next_node_id: head_topic_bank
  komvux_postal_search:
    node_type: postal_lookup
    content: "Send me your postal code."
    unknown_postal_node_id: komvux_unknown_postal
    has_further_service_node_id: komvux_found
    no_further_service_node_id: komvux_not_found
`)

	reg := dialog.NewRegistry(logging.NewNop())
	loader := &dialog.Loader{Index: &fakeIndex{}}
	require.NoError(t, loader.Load(reg, path))

	assert.True(t, reg.Has("static_topic"))
	assert.True(t, reg.Has("komvux_postal_search"))
	assert.Equal(t, 2, reg.Len())

	node, err := reg.Get("static_topic")
	require.NoError(t, err)
	assert.Equal(t, "head_topic_bank", node.Normalize("bank"))
}

func TestLoader_UnknownNodeTypeIsFatal(t *testing.T) {
	path := writeFlow(t, `
nodes:
  broken:
    node_type: quiz
    content: "?"
`)

	reg := dialog.NewRegistry(logging.NewNop())
	loader := &dialog.Loader{Index: &fakeIndex{}}
	err := loader.Load(reg, path)
	assert.ErrorContains(t, err, `unknown node_type "quiz"`)
}

func TestLoader_MissingNodeTypeIsFatal(t *testing.T) {
	path := writeFlow(t, `
nodes:
  broken:
    content: "?"
`)

	reg := dialog.NewRegistry(logging.NewNop())
	loader := &dialog.Loader{}
	assert.ErrorContains(t, loader.Load(reg, path), "node_type is required")
}

func TestLoader_MalformedRecordIsFatal(t *testing.T) {
	path := writeFlow(t, `
nodes:
  broken:
    node_type: option
    options:
      - - content: Bank
          next_node_id: head_topic_bank
`)

	reg := dialog.NewRegistry(logging.NewNop())
	loader := &dialog.Loader{}
	assert.ErrorContains(t, loader.Load(reg, path), "content is required")
}

func TestLoader_MissingFileIsFatal(t *testing.T) {
	reg := dialog.NewRegistry(logging.NewNop())
	loader := &dialog.Loader{}
	assert.Error(t, loader.Load(reg, filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestLoader_LaterFileOverridesEarlier(t *testing.T) {
	first := writeFlow(t, `
nodes:
  static_topic:
    node_type: option
    content: "Old menu."
`)
	second := writeFlow(t, `
nodes:
  static_topic:
    node_type: option
    content: "New menu."
`)

	reg := dialog.NewRegistry(logging.NewNop())
	loader := &dialog.Loader{}
	require.NoError(t, loader.Load(reg, first, second))

	node, err := reg.Get("static_topic")
	require.NoError(t, err)
	p := node.Render(nil, domain.Message{ChatID: "chat-1"}, "")
	assert.Equal(t, "New menu.", p.Text)
}

var _ ports.MunicipalityIndex = (*fakeIndex)(nil)
