package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kisixing/srcdeps-core/internal/config/tree"
)

// WriteMode selects which values Write emits.
type WriteMode int

const (
	// WriteExplicit emits only values set explicitly, reproducing the
	// document the builder was read from.
	WriteExplicit WriteMode = iota
	// WriteEffective emits every value including inherited and default ones.
	WriteEffective
)

// Write encodes the builder tree as a YAML document in tree order.
func (b *Builder) Write(w io.Writer, mode WriteMode) error {
	doc := encodeContainer(b, mode)
	if doc == nil {
		doc = &yaml.Node{Kind: yaml.MappingNode}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return enc.Close()
}

// encodeContainer returns nil for a container with nothing to emit.
func encodeContainer(c tree.ContainerNode, mode WriteMode) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, child := range c.Children() {
		val := encodeNode(child, mode)
		if val == nil {
			continue
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: child.Name()}
		m.Content = append(m.Content, key, val)
	}
	if len(m.Content) == 0 {
		return nil
	}
	return m
}

func encodeNode(n tree.Node, mode WriteMode) *yaml.Node {
	switch v := n.(type) {
	case textScalar:
		if mode == WriteExplicit && v.Origin() != tree.OriginExplicit {
			return nil
		}
		return textNode(n, v.Text())
	case textList:
		texts := v.Texts()
		if len(texts) == 0 || (mode == WriteExplicit && v.Origin() != tree.OriginExplicit) {
			return nil
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, t := range texts {
			seq.Content = append(seq.Content, textNode(n, t))
		}
		return seq
	case tree.ContainerNode:
		return encodeContainer(v, mode)
	}
	return nil
}

// textNode tags string values as !!str so that text such as "", "null" or
// "true" is quoted and reads back as a string.
func textNode(n tree.Node, text string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Value: text}
	switch n.(type) {
	case *tree.Scalar[string], *tree.List[string]:
		node.Tag = "!!str"
	}
	return node
}
