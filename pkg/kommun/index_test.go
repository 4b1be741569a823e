package kommun_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kompisbot/kompis/pkg/kommun"
)

const sample = `[
	{
		"name": "Lund",
		"kommun_link": "https://lund.se",
		"vuxenutbildningar_link": "https://lund.se/komvux",
		"postnummers": ["22100", "221 85"]
	},
	{
		"name": "Sjöbo",
		"kommun_link": "https://sjobo.se",
		"vuxenutbildningar_link": "",
		"postnummers": ["27580"]
	}
]`

func TestLoadAndLookup(t *testing.T) {
	idx, err := kommun.Load([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())

	m, ok := idx.Lookup("22100")
	require.True(t, ok)
	assert.Equal(t, "Lund", m.Name)
	assert.Equal(t, "https://lund.se", m.Link)
	assert.Equal(t, "https://lund.se/komvux", m.KomvuxLink)

	// Spaced postal codes hit the same record.
	m, ok = idx.Lookup("221 85")
	require.True(t, ok)
	assert.Equal(t, "Lund", m.Name)

	_, ok = idx.Lookup("99999")
	assert.False(t, ok)
}

func TestLookup_NoKomvuxOffering(t *testing.T) {
	idx, err := kommun.Load([]byte(sample))
	require.NoError(t, err)

	m, ok := idx.Lookup("27580")
	require.True(t, ok)
	assert.Empty(t, m.KomvuxLink)
}

func TestByName(t *testing.T) {
	idx, err := kommun.Load([]byte(sample))
	require.NoError(t, err)

	m, ok := idx.ByName("Sjöbo")
	require.True(t, ok)
	assert.Equal(t, "https://sjobo.se", m.Link)
}

func TestLoad_RejectsRecordWithoutLink(t *testing.T) {
	_, err := kommun.Load([]byte(`[{"name": "Lund", "kommun_link": "", "postnummers": []}]`))
	assert.ErrorContains(t, err, "no link")
}

func TestLoad_RejectsRecordWithoutName(t *testing.T) {
	_, err := kommun.Load([]byte(`[{"kommun_link": "https://x.se"}]`))
	assert.ErrorContains(t, err, "no name")
}
