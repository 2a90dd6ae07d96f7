package docusaurus

// linkItem is the mapping form of a sidebar item.
// Docusaurus writes links as {type: link, label, href}; {type: doc, id} is
// accepted as a long-hand document reference.
type linkItem struct {
	Type  string `yaml:"type"`
	ID    string `yaml:"id,omitempty"`
	Label string `yaml:"label,omitempty"`
	Href  string `yaml:"href,omitempty"`
}

const (
	itemTypeLink = "link"
	itemTypeDoc  = "doc"
)
