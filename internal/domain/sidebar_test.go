package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSidebar() *SidebarSpec {
	return &SidebarSpec{
		Name: "someSidebar",
		Sections: []Section{
			{Name: "Installing", Entries: []Entry{DocRef("compile"), DocRef("docker"), DocRef("conda")}},
			{Name: "API", Entries: []Entry{
				LinkRef("Javadocs", "https://cylondata.org/javadocs/index.html"),
			}},
			{Name: "Deployment", Entries: []Entry{DocRef("mpi")}},
		},
	}
}

func TestSectionLookup(t *testing.T) {
	s := testSidebar()

	sec, ok := s.Section("Installing")
	require.True(t, ok)
	assert.Equal(t, []Entry{DocRef("compile"), DocRef("docker"), DocRef("conda")}, sec.Entries)

	_, ok = s.Section("installing")
	assert.False(t, ok, "lookup is case sensitive")
}

func TestSectionLookupReturnsCopy(t *testing.T) {
	s := testSidebar()

	sec, _ := s.Section("Installing")
	sec.Entries[0] = DocRef("mutated")

	again, _ := s.Section("Installing")
	assert.Equal(t, "compile", again.Entries[0].Doc)
}

func TestSectionNamesKeepOrder(t *testing.T) {
	assert.Equal(t, []string{"Installing", "API", "Deployment"}, testSidebar().SectionNames())
}

func TestDocRefsAndLinks(t *testing.T) {
	s := testSidebar()

	assert.Equal(t, []string{"compile", "docker", "conda", "mpi"}, s.DocRefs())
	links := s.Links()
	require.Len(t, links, 1)
	assert.Equal(t, "Javadocs", links[0].Label)
	assert.Equal(t, 4, s.EntryCount(KindDoc))
	assert.Equal(t, 1, s.EntryCount(KindLink))
}

func TestCloneIsDeep(t *testing.T) {
	s := testSidebar()
	c := s.Clone()

	c.Sections[0].Entries[0] = DocRef("changed")
	c.Sections[1].Name = "Renamed"

	assert.Equal(t, "compile", s.Sections[0].Entries[0].Doc)
	assert.Equal(t, "API", s.Sections[1].Name)
	assert.Nil(t, (*SidebarSpec)(nil).Clone())
}

func TestDigest(t *testing.T) {
	a := testSidebar()
	b := testSidebar()
	assert.Equal(t, a.Digest(), b.Digest())
	assert.Len(t, a.Digest(), 16)

	// Swapping two entries changes display order, so the revision changes too.
	b.Sections[0].Entries[0], b.Sections[0].Entries[1] = b.Sections[0].Entries[1], b.Sections[0].Entries[0]
	assert.NotEqual(t, a.Digest(), b.Digest())
}

func TestEntryJSON(t *testing.T) {
	data, err := json.Marshal([]Entry{
		DocRef("python"),
		LinkRef("Python API docs", "https://cylondata.org/pydocs/frame.html"),
	})
	require.NoError(t, err)
	assert.JSONEq(t,
		`["python",{"type":"link","label":"Python API docs","href":"https://cylondata.org/pydocs/frame.html"}]`,
		string(data))

	var back []Entry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back[0].IsDoc())
	assert.True(t, back[1].IsLink())
	assert.Equal(t, "https://cylondata.org/pydocs/frame.html", back[1].Href)
}

func TestEntryJSONRejectsUnknownType(t *testing.T) {
	var e Entry
	assert.Error(t, json.Unmarshal([]byte(`{"type":"category","label":"x"}`), &e))
	assert.Error(t, json.Unmarshal([]byte(`42`), &e))

	_, err := json.Marshal(Entry{Kind: "ref"})
	assert.Error(t, err)
}

func TestEntryString(t *testing.T) {
	assert.Equal(t, "docker", DocRef("docker").String())
	assert.Equal(t, "Javadocs <https://x.org>", LinkRef("Javadocs", "https://x.org").String())
}
