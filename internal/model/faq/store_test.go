package faq

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCatalogResolvesEveryTopic(t *testing.T) {
	c := MustSeedCatalog()

	for _, topic := range Seed() {
		assert.Equal(t, topic.Response, c.Resolve(topic.Title), "topic %q", topic.Title)
	}
}

func TestResolveFallsBackOnUnknownTitle(t *testing.T) {
	c := MustSeedCatalog()

	assert.Equal(t, "Sorry, I didn't understand that.", c.Resolve("nonexistent"))
	// exact match only
	assert.Equal(t, DefaultFallback, c.Resolve("refund policy"))
	assert.Equal(t, DefaultFallback, c.Resolve(" Refund Policy"))
}

func TestListPreservesCatalogOrder(t *testing.T) {
	c := MustSeedCatalog()
	topics := c.List()

	require.Len(t, topics, 25)
	for i, topic := range topics {
		assert.Equal(t, i+1, topic.ID)
	}
	assert.Equal(t, "Membership Information", c.Titles()[0])

	topics[0].Title = "mutated"
	assert.Equal(t, "Membership Information", c.List()[0].Title)
}

func TestNewCatalogRejectsInvalidTables(t *testing.T) {
	_, err := NewCatalog(nil, Options{})
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = NewCatalog([]Topic{{ID: 1, Title: "A"}, {ID: 2, Title: "A"}}, Options{})
	assert.ErrorIs(t, err, ErrDuplicateTitle)

	_, err = NewCatalog([]Topic{{ID: 1, Title: "A"}, {ID: 1, Title: "B"}}, Options{})
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = NewCatalog([]Topic{{ID: 1, Title: "  "}}, Options{})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestCatalogDefaults(t *testing.T) {
	c, err := NewCatalog([]Topic{{ID: 1, Title: "A", Response: "a"}}, Options{})
	require.NoError(t, err)

	assert.Equal(t, DefaultWelcome, c.Welcome())
	assert.Equal(t, DefaultPlaceholder, c.Placeholder())
	assert.Equal(t, DefaultLinks(), c.Links())
}

func TestLoadFile(t *testing.T) {
	doc := `
fallback: "No idea."
links:
  - label: Helpdesk
    href: https://help.example.com
topics:
  - id: 1
    title: Opening Hours
    response: We are open 9 to 5.
  - id: 2
    title: Parking
    response: Parking is free.
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "We are open 9 to 5.", c.Resolve("Opening Hours"))
	assert.Equal(t, "No idea.", c.Resolve("Weather"))
	assert.Equal(t, DefaultPlaceholder, c.Placeholder())
	assert.Equal(t, []Link{{Label: "Helpdesk", Href: "https://help.example.com"}}, c.Links())
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("topics: ["))
	assert.Error(t, err)

	_, err = Parse([]byte("welcome: hi\n"))
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}
