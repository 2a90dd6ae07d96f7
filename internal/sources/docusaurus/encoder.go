package docusaurus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dchest/jsmin"
	"gopkg.in/yaml.v3"

	"github.com/cylondata/docnav/internal/domain"
)

// Format selects the serialization written by Encode.
type Format string

const (
	FormatJS   Format = "js"   // sidebars.js module
	FormatJSON Format = "json" // ordered JSON object
	FormatYAML Format = "yaml" // shape accepted by Decode
)

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "js", "javascript":
		return FormatJS, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want js, json or yaml)", s)
	}
}

// ContentType returns the HTTP media type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJS:
		return "text/javascript; charset=utf-8"
	case FormatYAML:
		return "application/yaml"
	default:
		return "application/json"
	}
}

// EncodeOptions controls Encode.
type EncodeOptions struct {
	Format Format
	Minify bool // FormatJS only
}

// Encode writes spec in the requested format. Section names and entry
// order are emitted exactly as held by spec.
func Encode(w io.Writer, spec *domain.SidebarSpec, opts EncodeOptions) error {
	var (
		data []byte
		err  error
	)

	switch opts.Format {
	case FormatJS:
		data, err = encodeJS(spec, opts.Minify)
	case FormatJSON, "":
		data, err = encodeJSON(spec)
	case FormatYAML:
		data, err = encodeYAML(spec)
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

func encodeJS(spec *domain.SidebarSpec, minify bool) ([]byte, error) {
	// Keys are always quoted: once minified, an unquoted "name:{" no longer
	// reads back as a flow mapping key.
	name, _ := json.Marshal(spec.Name)

	var buf bytes.Buffer
	buf.WriteString("module.exports = {\n")
	fmt.Fprintf(&buf, "  %s: {\n", name)
	for _, sec := range spec.Sections {
		key, _ := json.Marshal(sec.Name)
		items, err := encodeEntries(sec.Entries)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", sec.Name, err)
		}
		fmt.Fprintf(&buf, "    %s: [%s],\n", key, strings.Join(items, ", "))
	}
	buf.WriteString("  },\n};\n")

	if !minify {
		return buf.Bytes(), nil
	}

	minified, err := jsmin.Minify(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to minify sidebars.js: %w", err)
	}
	return append(bytes.TrimSpace(minified), '\n'), nil
}

func encodeJSON(spec *domain.SidebarSpec) ([]byte, error) {
	var buf bytes.Buffer

	name, _ := json.Marshal(spec.Name)
	buf.WriteByte('{')
	buf.Write(name)
	buf.WriteString(":{")
	for i, sec := range spec.Sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(sec.Name)
		items, err := encodeEntries(sec.Entries)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", sec.Name, err)
		}
		buf.Write(key)
		buf.WriteString(":[")
		buf.WriteString(strings.Join(items, ","))
		buf.WriteByte(']')
	}
	buf.WriteString("}}")

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("failed to format sidebar json: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func encodeYAML(spec *domain.SidebarSpec) ([]byte, error) {
	body := &yaml.Node{Kind: yaml.MappingNode}
	for _, sec := range spec.Sections {
		list := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range sec.Entries {
			item, err := entryNode(e)
			if err != nil {
				return nil, fmt.Errorf("section %q: %w", sec.Name, err)
			}
			list.Content = append(list.Content, item)
		}
		body.Content = append(body.Content, scalar(sec.Name), list)
	}

	root := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{scalar(spec.Name), body},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode sidebar yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode sidebar yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeEntries(entries []domain.Entry) ([]string, error) {
	items := make([]string, 0, len(entries))
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		items = append(items, string(data))
	}
	return items, nil
}

func entryNode(e domain.Entry) (*yaml.Node, error) {
	switch e.Kind {
	case domain.KindDoc:
		return scalar(e.Doc), nil
	case domain.KindLink:
		return &yaml.Node{
			Kind:  yaml.MappingNode,
			Style: yaml.FlowStyle,
			Content: []*yaml.Node{
				scalar("type"), scalar(itemTypeLink),
				scalar("label"), scalar(e.Label),
				scalar("href"), scalar(e.Href),
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown entry kind %q", e.Kind)
	}
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
