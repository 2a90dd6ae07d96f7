package docusaurus

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/cylondata/docnav/internal/domain"
)

var (
	jsLeadingComments = regexp.MustCompile(`^(?:\s*(?://[^\n]*|/\*[\s\S]*?\*/))*\s*`)
	jsLineComment     = regexp.MustCompile(`(?m)^[ \t]*//.*$`)
	jsExportPrefix    = regexp.MustCompile(`^(module\.exports\s*=|export\s+default|(?:const|let|var)\s+[A-Za-z_$][\w$]*\s*=)\s*`)
	jsTrailer         = regexp.MustCompile(`;?\s*(?:(?:module\.exports\s*=|export\s+default)\s*[A-Za-z_$][\w$]*\s*;?\s*)?$`)
)

// Loader handles loading and parsing of a sidebar file
type Loader struct {
	fs       afero.Fs
	filePath string
}

// NewLoader creates a loader reading from the OS filesystem
func NewLoader(filePath string) *Loader {
	return NewLoaderFs(afero.NewOsFs(), filePath)
}

// NewLoaderFs creates a loader reading from fs
func NewLoaderFs(fs afero.Fs, filePath string) *Loader {
	return &Loader{
		fs:       fs,
		filePath: filePath,
	}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads and parses the sidebar file.
// The result is not validated; callers decide what to do with violations.
func (l *Loader) Load() (*domain.SidebarSpec, error) {
	data, err := afero.ReadFile(l.fs, l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sidebar file: %w", err)
	}

	spec, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sidebar file %s: %w", l.filePath, err)
	}
	return spec, nil
}

// Decode parses a sidebar written as YAML, JSON or a sidebars.js module
// whose body is a plain object literal.
//
// The document holds exactly one sidebar:
//
//	someSidebar:
//	  Installing: [compile, docker, conda]
//	  API:
//	    - {type: link, label: Javadocs, href: https://cylondata.org/javadocs/index.html}
func Decode(data []byte) (*domain.SidebarSpec, error) {
	data = stripJSModule(data)

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse sidebar yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("sidebar document is empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: sidebar document must be a mapping", root.Line)
	}
	switch n := len(root.Content) / 2; {
	case n == 0:
		return nil, fmt.Errorf("sidebar document declares no sidebar")
	case n > 1:
		return nil, fmt.Errorf("sidebar document declares %d sidebars, expected 1", n)
	}

	nameNode, body := root.Content[0], root.Content[1]
	if body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: sidebar %q must map section names to entry lists", body.Line, nameNode.Value)
	}

	spec := &domain.SidebarSpec{
		Name:     nameNode.Value,
		Sections: make([]domain.Section, 0, len(body.Content)/2),
	}

	// Mapping content alternates key, value in document order.
	for i := 0; i+1 < len(body.Content); i += 2 {
		keyNode, valNode := body.Content[i], body.Content[i+1]
		section, err := decodeSection(keyNode.Value, valNode)
		if err != nil {
			return nil, err
		}
		spec.Sections = append(spec.Sections, section)
	}

	return spec, nil
}

func decodeSection(name string, node *yaml.Node) (domain.Section, error) {
	section := domain.Section{Name: name}

	switch node.Kind {
	case yaml.SequenceNode:
	case yaml.ScalarNode:
		// "Section:" with nothing after it; validation reports the empty section.
		if node.Tag == "!!null" {
			return section, nil
		}
		fallthrough
	default:
		return section, fmt.Errorf("line %d: section %q must be a list of entries", node.Line, name)
	}

	section.Entries = make([]domain.Entry, 0, len(node.Content))
	for _, item := range node.Content {
		entry, err := decodeEntry(item)
		if err != nil {
			return section, fmt.Errorf("line %d: section %q: %w", item.Line, name, err)
		}
		section.Entries = append(section.Entries, entry)
	}
	return section, nil
}

func decodeEntry(node *yaml.Node) (domain.Entry, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return domain.DocRef(""), nil
		}
		return domain.DocRef(node.Value), nil

	case yaml.MappingNode:
		var item linkItem
		if err := node.Decode(&item); err != nil {
			return domain.Entry{}, fmt.Errorf("invalid entry: %w", err)
		}
		switch item.Type {
		case itemTypeLink:
			return domain.LinkRef(item.Label, item.Href), nil
		case itemTypeDoc:
			return domain.DocRef(item.ID), nil
		case "":
			return domain.Entry{}, fmt.Errorf("entry is missing its type")
		default:
			return domain.Entry{}, fmt.Errorf("unsupported entry type %q", item.Type)
		}

	default:
		return domain.Entry{}, fmt.Errorf("entry must be a document slug or a link")
	}
}

// stripJSModule turns `module.exports = {...};` into the bare object literal,
// which parses as a YAML flow mapping. Leading comments, whole-line comments
// and the `const sidebars = {...}; module.exports = sidebars;` form are
// accepted. Anything else is returned unchanged.
func stripJSModule(data []byte) []byte {
	body := data
	if loc := jsLeadingComments.FindIndex(body); loc != nil {
		body = body[loc[1]:]
	}

	loc := jsExportPrefix.FindIndex(body)
	if loc == nil {
		return data
	}
	body = jsLineComment.ReplaceAll(body[loc[1]:], nil)
	return bytes.TrimSpace(jsTrailer.ReplaceAll(body, nil))
}
