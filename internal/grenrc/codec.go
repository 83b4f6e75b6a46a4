package grenrc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a serialization format for Config documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a user supplied name into a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected: json, yaml)", name)
	}
}

// MarshalJSON encodes the groups as an object whose key order is the
// declared group order.
func (g GroupBy) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, group := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(group.Name)
		if err != nil {
			return nil, err
		}
		labels := group.Labels
		if labels == nil {
			labels = []string{}
		}
		value, err := json.Marshal(labels)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of label arrays, keeping key order.
func (g *GroupBy) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding groupBy: %w", err)
	}
	if tok == nil {
		*g = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decoding groupBy: expected object, got %v", tok)
	}

	out := GroupBy{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding groupBy: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decoding groupBy: expected group name, got %v", tok)
		}
		var labels []string
		if err := dec.Decode(&labels); err != nil {
			return fmt.Errorf("decoding groupBy.%s: %w", name, err)
		}
		out = append(out, Group{Name: name, Labels: labels})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decoding groupBy: %w", err)
	}

	*g = out
	return nil
}

// MarshalYAML encodes the groups as a mapping in declared order.
func (g GroupBy) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, group := range g {
		var value yaml.Node
		labels := group.Labels
		if labels == nil {
			labels = []string{}
		}
		if err := value.Encode(labels); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: group.Name},
			&value,
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping of label sequences, keeping key order.
func (g *GroupBy) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: groupBy must be a mapping", value.Line)
	}

	out := make(GroupBy, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var labels []string
		if err := val.Decode(&labels); err != nil {
			return fmt.Errorf("line %d: groupBy.%s: %w", val.Line, key.Value, err)
		}
		out = append(out, Group{Name: key.Value, Labels: labels})
	}

	*g = out
	return nil
}

// MarshalYAML encodes the template slots as a mapping. Multi-line values are
// double quoted: yaml.v3 writes them as block scalars, which drop a leading
// newline when read back.
func (t Template) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, slot := range []struct {
		key, value string
	}{
		{"commit", t.Commit},
		{"issue", t.Issue},
		{"noLabel", t.NoLabel},
		{"group", t.Group},
		{"changelogTitle", t.ChangelogTitle},
		{"release", t.Release},
		{"releaseSeparator", t.ReleaseSeparator},
	} {
		value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: slot.value}
		if strings.Contains(slot.value, "\n") {
			value.Style = yaml.DoubleQuotedStyle
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: slot.key},
			value,
		)
	}
	return node, nil
}

// Encode writes c to w in the given format.
func Encode(w io.Writer, c *Config, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encoding config as JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encoding config as YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// EncodeString is a convenience wrapper around Encode.
func EncodeString(c *Config, format Format) (string, error) {
	var b bytes.Buffer
	if err := Encode(&b, c, format); err != nil {
		return "", err
	}
	return b.String(), nil
}
