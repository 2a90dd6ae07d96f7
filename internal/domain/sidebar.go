package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// EntryKind tags the variant held by an Entry.
type EntryKind string

const (
	// KindDoc is a reference to an internal document by slug.
	KindDoc EntryKind = "doc"
	// KindLink is an external hyperlink with a display label.
	KindLink EntryKind = "link"
)

// Entry is one item of a sidebar section.
//
// It is either a DocRef (Kind == KindDoc, Doc set) or a LinkRef
// (Kind == KindLink, Label and Href set). Use DocRef and LinkRef to build one.
type Entry struct {
	Kind EntryKind

	// Doc is the document slug, resolved by the documentation tool
	// against its source tree. Example: "release/0.5.0"
	Doc string

	// Label is the text shown for a link entry.
	Label string

	// Href is the absolute target URL of a link entry.
	Href string
}

// DocRef returns a document entry.
func DocRef(slug string) Entry {
	return Entry{Kind: KindDoc, Doc: slug}
}

// LinkRef returns an external link entry.
func LinkRef(label, href string) Entry {
	return Entry{Kind: KindLink, Label: label, Href: href}
}

// IsDoc reports whether e references an internal document.
func (e Entry) IsDoc() bool { return e.Kind == KindDoc }

// IsLink reports whether e is an external link.
func (e Entry) IsLink() bool { return e.Kind == KindLink }

// String returns the slug for documents and "label <href>" for links.
func (e Entry) String() string {
	if e.IsLink() {
		return fmt.Sprintf("%s <%s>", e.Label, e.Href)
	}
	return e.Doc
}

type linkJSON struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Href  string `json:"href"`
}

// MarshalJSON encodes a DocRef as a bare string and a LinkRef as
// {"type":"link","label":...,"href":...}, the shape documentation tools read.
func (e Entry) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case KindDoc:
		return json.Marshal(e.Doc)
	case KindLink:
		return json.Marshal(linkJSON{Type: string(KindLink), Label: e.Label, Href: e.Href})
	default:
		return nil, fmt.Errorf("unknown entry kind %q", e.Kind)
	}
}

// UnmarshalJSON accepts either form produced by MarshalJSON.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var slug string
	if err := json.Unmarshal(data, &slug); err == nil {
		*e = DocRef(slug)
		return nil
	}

	var link linkJSON
	if err := json.Unmarshal(data, &link); err != nil {
		return fmt.Errorf("entry is neither a document slug nor a link: %w", err)
	}
	if link.Type != string(KindLink) {
		return fmt.Errorf("unsupported entry type %q", link.Type)
	}
	*e = LinkRef(link.Label, link.Href)
	return nil
}

// Section is a named, ordered group of entries shown together.
type Section struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// SidebarSpec is the navigation sidebar of a documentation site.
//
// Sections are kept as a slice: their order is the display order and
// must survive every load, store and export untouched.
type SidebarSpec struct {
	// Name is the sidebar identifier expected by the site tool.
	// Example: someSidebar
	Name string `json:"name"`

	Sections []Section `json:"sections"`
}

// Section returns the section with the given name.
func (s *SidebarSpec) Section(name string) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.Name == name {
			return sec.clone(), true
		}
	}
	return Section{}, false
}

// SectionNames returns section names in display order.
func (s *SidebarSpec) SectionNames() []string {
	names := make([]string, 0, len(s.Sections))
	for _, sec := range s.Sections {
		names = append(names, sec.Name)
	}
	return names
}

// DocRefs returns every document slug in display order.
// External integration checks use it to cross-reference the live document set.
func (s *SidebarSpec) DocRefs() []string {
	var slugs []string
	for _, sec := range s.Sections {
		for _, e := range sec.Entries {
			if e.IsDoc() {
				slugs = append(slugs, e.Doc)
			}
		}
	}
	return slugs
}

// Links returns every link entry in display order.
func (s *SidebarSpec) Links() []Entry {
	var links []Entry
	for _, sec := range s.Sections {
		for _, e := range sec.Entries {
			if e.IsLink() {
				links = append(links, e)
			}
		}
	}
	return links
}

// EntryCount returns the number of entries of the given kind.
func (s *SidebarSpec) EntryCount(kind EntryKind) int {
	n := 0
	for _, sec := range s.Sections {
		for _, e := range sec.Entries {
			if e.Kind == kind {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy.
func (s *SidebarSpec) Clone() *SidebarSpec {
	if s == nil {
		return nil
	}
	out := &SidebarSpec{
		Name:     s.Name,
		Sections: make([]Section, len(s.Sections)),
	}
	for i, sec := range s.Sections {
		out.Sections[i] = sec.clone()
	}
	return out
}

// Digest returns a stable revision identifier for the sidebar content.
// Two sidebars share a digest only if names, order and entries all match.
func (s *SidebarSpec) Digest() string {
	data, err := json.Marshal(s)
	if err != nil {
		// Unknown entry kinds cannot be marshalled; hash what identifies them instead.
		data = []byte(fmt.Sprintf("%#v", s))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16]
}

func (sec Section) clone() Section {
	entries := make([]Entry, len(sec.Entries))
	copy(entries, sec.Entries)
	return Section{Name: sec.Name, Entries: entries}
}
