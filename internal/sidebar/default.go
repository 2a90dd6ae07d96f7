// Package sidebar holds the authored Cylon documentation sidebar.
package sidebar

import "github.com/cylondata/docnav/internal/domain"

// DefaultName is the sidebar identifier the documentation site looks up.
const DefaultName = "someSidebar"

// Default returns the authored sidebar. Each call returns a fresh value.
func Default() *domain.SidebarSpec {
	return &domain.SidebarSpec{
		Name: DefaultName,
		Sections: []domain.Section{
			{Name: "Installing", Entries: docs("compile", "docker", "conda")},
			{Name: "Get Started", Entries: docs("python", "cpp")},
			{Name: "Deployment", Entries: docs("mpi")},
			{Name: "Architecture", Entries: docs("arch")},
			{Name: "API", Entries: []domain.Entry{
				domain.LinkRef("Python API docs", "https://cylondata.org/pydocs/frame.html"),
				domain.LinkRef("Javadocs", "https://cylondata.org/javadocs/index.html"),
			}},
			{Name: "Releases", Entries: docs(
				"release/0.5.0", "release/0.4.1", "release/0.4.0",
				"release/0.3.1", "release/0.3.0", "release/0.2.0", "release/0.1.0",
			)},
			{Name: "Resources", Entries: docs("contrib_guide", "pub", "blogs", "contributors")},
		},
	}
}

func docs(slugs ...string) []domain.Entry {
	entries := make([]domain.Entry, len(slugs))
	for i, slug := range slugs {
		entries[i] = domain.DocRef(slug)
	}
	return entries
}

// Static is a reload source that always yields the same sidebar.
type Static struct {
	Spec *domain.SidebarSpec
}

// Load returns a copy of the held sidebar.
func (s Static) Load() (*domain.SidebarSpec, error) {
	return s.Spec.Clone(), nil
}
