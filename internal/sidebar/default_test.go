package sidebar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cylondata/docnav/internal/domain"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefaultSectionOrder(t *testing.T) {
	assert.Equal(t, []string{
		"Installing", "Get Started", "Deployment", "Architecture", "API", "Releases", "Resources",
	}, Default().SectionNames())
}

func TestDefaultInstallingSection(t *testing.T) {
	sec, ok := Default().Section("Installing")
	require.True(t, ok)
	assert.Equal(t, []domain.Entry{
		domain.DocRef("compile"), domain.DocRef("docker"), domain.DocRef("conda"),
	}, sec.Entries)
}

func TestDefaultReleasesNewestFirst(t *testing.T) {
	sec, ok := Default().Section("Releases")
	require.True(t, ok)
	require.Len(t, sec.Entries, 7)
	assert.Equal(t, "release/0.5.0", sec.Entries[0].Doc)
	assert.Equal(t, "release/0.1.0", sec.Entries[6].Doc)
}

func TestDefaultAPILinks(t *testing.T) {
	links := Default().Links()
	require.Len(t, links, 2)
	assert.Equal(t, "Python API docs", links[0].Label)
	assert.Equal(t, "https://cylondata.org/pydocs/frame.html", links[0].Href)
	assert.Equal(t, "Javadocs", links[1].Label)
	assert.Equal(t, "https://cylondata.org/javadocs/index.html", links[1].Href)
}

func TestDefaultReturnsFreshValue(t *testing.T) {
	a := Default()
	a.Sections[0].Entries[0] = domain.DocRef("changed")
	assert.Equal(t, "compile", Default().Sections[0].Entries[0].Doc)
}
