package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/kisixing/srcdeps-core/internal/config/tree"
)

// keyAliases maps keys of older model versions to their current name.
var keyAliases = map[string]aliasRule{
	"selectors": {target: "includes", versions: []string{"2.0", "2.1"}},
}

type aliasRule struct {
	target   string
	versions []string
}

type textScalar interface {
	tree.Node
	SetText(text string) error
	Text() string
	Origin() tree.Origin
}

type textList interface {
	tree.Node
	AddText(text string) error
	Texts() []string
	Origin() tree.Origin
}

type repeatedContainer interface {
	Repeated() bool
	NewChild(name string) (tree.Node, error)
}

// LoadFromFile reads a configuration document. Files ending in .json or
// .jsonc are parsed as JSON with comments, anything else as YAML.
func LoadFromFile(path string) (*Builder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return LoadFromJSONC(data)
	}
	return LoadFromBytes(data)
}

// Read parses a YAML configuration document from r.
func Read(r io.Reader) (*Builder, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses a YAML configuration document. Only values present in
// the document are set; call ApplyDefaults on the result to fill the rest.
func LoadFromBytes(data []byte) (*Builder, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &StructuralError{Msg: fmt.Sprintf("parsing config: %v", err)}
	}
	if len(doc.Content) == 0 {
		return NewBuilder(), nil
	}
	return readDocument(doc.Content[0])
}

// LoadFromJSONC parses a JSON configuration document that may contain
// comments and trailing commas.
func LoadFromJSONC(data []byte) (*Builder, error) {
	root, err := parseJSON(jsonc.ToJSON(data))
	if err != nil {
		return nil, err
	}
	if root == nil {
		return NewBuilder(), nil
	}
	return readDocument(root)
}

func readDocument(root *yaml.Node) (*Builder, error) {
	root = resolveAlias(root)
	b := NewBuilder()
	if isNull(root) {
		return b, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, structuralAt(RootName, root, "expected a mapping at the document root")
	}
	d := &decoder{version: latestConfigModelVersion}
	if v := mappingValue(root, "configModelVersion"); v != nil && validateConfigModelVersion(v.Value) == nil {
		d.version = v.Value
	}
	if err := d.container(b, root, RootName); err != nil {
		return nil, err
	}
	return b, nil
}

type decoder struct {
	version string
}

func (d *decoder) container(c tree.ContainerNode, m *yaml.Node, path string) error {
	seen := make(map[string]bool, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], resolveAlias(m.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return structuralAt(path, key, "mapping keys must be scalars")
		}
		child, err := d.child(c, key, path)
		if err != nil {
			return err
		}
		if seen[child.Name()] {
			return structuralAt(path, key, fmt.Sprintf("duplicate key %q", key.Value))
		}
		seen[child.Name()] = true
		if err := d.node(child, val, path+"/"+child.Name()); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) child(c tree.ContainerNode, key *yaml.Node, path string) (tree.Node, error) {
	name := key.Value
	if n, ok := c.Child(name); ok {
		return n, nil
	}
	if rule, ok := keyAliases[name]; ok && slices.Contains(rule.versions, d.version) {
		if n, ok := c.Child(rule.target); ok {
			return n, nil
		}
	}
	if r, ok := c.(repeatedContainer); ok && r.Repeated() {
		n, err := r.NewChild(name)
		if err != nil {
			return nil, structuralAt(path, key, err.Error())
		}
		return n, nil
	}
	return nil, structuralAt(path, key, fmt.Sprintf("unknown key %q", name))
}

func (d *decoder) node(n tree.Node, val *yaml.Node, path string) error {
	if isNull(val) {
		return nil
	}
	switch n.Kind() {
	case tree.KindScalar:
		if val.Kind != yaml.ScalarNode {
			return structuralAt(path, val, "expected a scalar value")
		}
		s, ok := n.(textScalar)
		if !ok {
			return structuralAt(path, val, "value cannot be set from a document")
		}
		if err := s.SetText(val.Value); err != nil {
			return &ValueError{Path: path, Line: val.Line, Column: val.Column, Err: err}
		}
	case tree.KindList:
		if val.Kind != yaml.SequenceNode {
			return structuralAt(path, val, "expected a sequence")
		}
		l, ok := n.(textList)
		if !ok {
			return structuralAt(path, val, "value cannot be set from a document")
		}
		for _, item := range val.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.ScalarNode {
				return structuralAt(path, item, "expected a scalar sequence element")
			}
			if err := l.AddText(item.Value); err != nil {
				return &ValueError{Path: path, Line: item.Line, Column: item.Column, Err: err}
			}
		}
	case tree.KindContainer:
		if val.Kind != yaml.MappingNode {
			return structuralAt(path, val, "expected a mapping")
		}
		return d.container(n.(tree.ContainerNode), val, path)
	}
	return nil
}

func structuralAt(path string, n *yaml.Node, msg string) *StructuralError {
	return &StructuralError{Path: path, Line: n.Line, Column: n.Column, Msg: msg}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return resolveAlias(m.Content[i+1])
		}
	}
	return nil
}
