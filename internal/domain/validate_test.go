package domain

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedSidebar(t *testing.T) {
	assert.NoError(t, testSidebar().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *SidebarSpec)
		section string
		index   int
		reason  string
	}{
		{
			name:   "empty sidebar name",
			mutate: func(s *SidebarSpec) { s.Name = " " },
			index:  -1,
			reason: "sidebar name is empty",
		},
		{
			name:   "no sections",
			mutate: func(s *SidebarSpec) { s.Sections = nil },
			index:  -1,
			reason: "sidebar has no sections",
		},
		{
			name: "duplicate section",
			mutate: func(s *SidebarSpec) {
				s.Sections = append(s.Sections, Section{Name: "Installing ", Entries: []Entry{DocRef("x")}})
			},
			section: "Installing ",
			index:   -1,
			reason:  "duplicate section name",
		},
		{
			name:    "empty section",
			mutate:  func(s *SidebarSpec) { s.Sections[2].Entries = nil },
			section: "Deployment",
			index:   -1,
			reason:  "section has no entries",
		},
		{
			name:    "empty slug",
			mutate:  func(s *SidebarSpec) { s.Sections[0].Entries[1] = DocRef("") },
			section: "Installing",
			index:   1,
			reason:  "document slug is empty",
		},
		{
			name:    "absolute slug",
			mutate:  func(s *SidebarSpec) { s.Sections[0].Entries[2] = DocRef("/conda") },
			section: "Installing",
			index:   2,
			reason:  "must be relative",
		},
		{
			name:    "parent segment",
			mutate:  func(s *SidebarSpec) { s.Sections[0].Entries[0] = DocRef("release/../secret") },
			section: "Installing",
			index:   0,
			reason:  "relative path segment",
		},
		{
			name:    "slug that is a URL",
			mutate:  func(s *SidebarSpec) { s.Sections[2].Entries[0] = DocRef("https://cylondata.org") },
			section: "Deployment",
			index:   0,
			reason:  "use a link entry",
		},
		{
			name:    "missing label",
			mutate:  func(s *SidebarSpec) { s.Sections[1].Entries[0].Label = "" },
			section: "API",
			index:   0,
			reason:  "link label is empty",
		},
		{
			name:    "relative href",
			mutate:  func(s *SidebarSpec) { s.Sections[1].Entries[0].Href = "/javadocs/index.html" },
			section: "API",
			index:   0,
			reason:  "not an absolute URL",
		},
		{
			name:    "unsupported scheme",
			mutate:  func(s *SidebarSpec) { s.Sections[1].Entries[0].Href = "ftp://cylondata.org/docs" },
			section: "API",
			index:   0,
			reason:  "unsupported scheme",
		},
		{
			name:    "unknown kind",
			mutate:  func(s *SidebarSpec) { s.Sections[2].Entries[0].Kind = "category" },
			section: "Deployment",
			index:   0,
			reason:  "unknown entry kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSidebar()
			tt.mutate(s)

			violations := Violations(s.Validate())
			require.Len(t, violations, 1)
			v := violations[0]
			assert.Equal(t, tt.section, v.Section)
			assert.Equal(t, tt.index, v.Index)
			assert.True(t, strings.Contains(v.Reason, tt.reason), "reason %q should contain %q", v.Reason, tt.reason)
		})
	}
}

func TestValidateReportsEveryViolation(t *testing.T) {
	s := testSidebar()
	s.Sections[0].Entries[0] = DocRef("")
	s.Sections[1].Entries[0].Href = "not a url"
	s.Sections = append(s.Sections, Section{Name: "API"})

	violations := Violations(s.Validate())
	assert.Len(t, violations, 4)
}

func TestValidateNil(t *testing.T) {
	var s *SidebarSpec
	assert.Error(t, s.Validate())
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "sidebar has no sections",
		(&ValidationError{Index: -1, Reason: "sidebar has no sections"}).Error())
	assert.Equal(t, `section "API": section has no entries`,
		(&ValidationError{Section: "API", Index: -1, Reason: "section has no entries"}).Error())
	assert.Equal(t, `section "API" entry 0: link label is empty`,
		(&ValidationError{Section: "API", Index: 0, Reason: "link label is empty"}).Error())
}

func TestViolationsUnwrap(t *testing.T) {
	s := testSidebar()
	s.Sections[0].Entries[0] = DocRef("")
	s.Sections[2].Entries = nil

	wrapped := fmt.Errorf("reload failed: %w", s.Validate())
	assert.Len(t, Violations(wrapped), 2)
	assert.Nil(t, Violations(nil))
}
