package dialog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kompisbot/kompis/pkg/dialog"
	"github.com/kompisbot/kompis/pkg/domain"
	"github.com/kompisbot/kompis/pkg/ports"
)

type fakeIndex struct {
	entries map[string]ports.Municipality
}

func (f *fakeIndex) Lookup(code string) (ports.Municipality, bool) {
	m, ok := f.entries[code]
	return m, ok
}

func postalNode(t *testing.T, index ports.MunicipalityIndex) *dialog.PostalLookupNode {
	t.Helper()
	node, err := dialog.NewPostalLookupNode("komvux_postal_search", dialog.PostalDef{
		Content:          "Send me your postal code.",
		UnknownNodeID:    "komvux_unknown_postal",
		HasServiceNodeID: "komvux_found",
		NoServiceNodeID:  "komvux_not_found",
	}, index)
	require.NoError(t, err)
	return node
}

func TestPostal_NormalizeStripsWhitespace(t *testing.T) {
	node := postalNode(t, &fakeIndex{})

	assert.Equal(t, "22100", node.Normalize("221 00"))
	assert.Equal(t, "22100", node.Normalize("  22100  "))
}

func TestPostal_IsExpected(t *testing.T) {
	node := postalNode(t, &fakeIndex{})

	assert.True(t, node.IsExpected("12345"))
	assert.False(t, node.IsExpected("1234"))
	assert.False(t, node.IsExpected("123456"))
	assert.False(t, node.IsExpected("12a45"))
	assert.False(t, node.IsExpected("exit"), "no exit shortcut configured")
}

func TestPostal_UnknownCode(t *testing.T) {
	node := postalNode(t, &fakeIndex{})
	session := domain.NewSession("chat-1", node.ID())

	next, err := node.ComputeNext(context.Background(), session, domain.Message{}, "12345")
	require.NoError(t, err)
	assert.Equal(t, "komvux_unknown_postal", next)

	code, _ := session.Attr(domain.AttrPostalCode)
	assert.Equal(t, "12345", code)
	_, ok := session.Attr(domain.AttrKommunName)
	assert.False(t, ok, "unknown code must not leave municipality attributes")
}

func TestPostal_KnownCodeWithService(t *testing.T) {
	index := &fakeIndex{entries: map[string]ports.Municipality{
		"22100": {Name: "Lund", Link: "https://lund.se", KomvuxLink: "https://lund.se/komvux"},
	}}
	node := postalNode(t, index)
	session := domain.NewSession("chat-1", node.ID())

	next, err := node.ComputeNext(context.Background(), session, domain.Message{}, "22100")
	require.NoError(t, err)
	assert.Equal(t, "komvux_found", next)

	name, _ := session.Attr(domain.AttrKommunName)
	link, _ := session.Attr(domain.AttrKommunLink)
	komvux, _ := session.Attr(domain.AttrKomvuxLink)
	assert.Equal(t, "Lund", name)
	assert.Equal(t, "https://lund.se", link)
	assert.Equal(t, "https://lund.se/komvux", komvux)
}

func TestPostal_KnownCodeWithoutService(t *testing.T) {
	index := &fakeIndex{entries: map[string]ports.Municipality{
		"27580": {Name: "Sjöbo", Link: "https://sjobo.se"},
	}}
	node := postalNode(t, index)
	session := domain.NewSession("chat-1", node.ID())

	next, err := node.ComputeNext(context.Background(), session, domain.Message{}, "27580")
	require.NoError(t, err)
	assert.Equal(t, "komvux_not_found", next)

	_, ok := session.Attr(domain.AttrKomvuxLink)
	assert.False(t, ok)
}

func TestPostal_ExitShortcut(t *testing.T) {
	node, err := dialog.NewPostalLookupNode("komvux_postal_search", dialog.PostalDef{
		Content:          "Send me your postal code.",
		UnknownNodeID:    "komvux_unknown_postal",
		HasServiceNodeID: "komvux_found",
		NoServiceNodeID:  "komvux_not_found",
		ExitNodeID:       "feedback",
		ExitContent:      "Never mind",
	}, &fakeIndex{})
	require.NoError(t, err)

	assert.Equal(t, "feedback", node.Normalize("Exit"))
	assert.True(t, node.IsExpected("feedback"))

	session := domain.NewSession("chat-1", node.ID())
	next, err := node.ComputeNext(context.Background(), session, domain.Message{}, "feedback")
	require.NoError(t, err)
	assert.Equal(t, "feedback", next)
	_, ok := session.Attr(domain.AttrPostalCode)
	assert.False(t, ok, "exit must not stash a postal code")
}

func TestPostal_ConstructionValidation(t *testing.T) {
	_, err := dialog.NewPostalLookupNode("x", dialog.PostalDef{Content: "c"}, &fakeIndex{})
	assert.ErrorContains(t, err, "required")

	_, err = dialog.NewPostalLookupNode("x", dialog.PostalDef{
		Content:          "c",
		UnknownNodeID:    "a",
		HasServiceNodeID: "b",
		NoServiceNodeID:  "d",
	}, nil)
	assert.ErrorContains(t, err, "municipality index")
}
