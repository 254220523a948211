// Package tree provides the generic configuration tree: scalar, list and
// container nodes, a depth-first walker that maintains an ancestor stack, and
// the visitor that applies defaults and inheritance to a tree of builders.
//
// Every node is in one of three states with respect to its value:
//
//   - explicit: the value was set by the user (document or builder call)
//   - inherited: the value was copied from a same-named ancestor value
//   - defaulted (or unset): the node carries its statically declared default
//
// Precedence is explicit > inherited > default and it holds for every node kind.
package tree

import "strings"

// Kind identifies which of the three node variants a Node is.
type Kind int

const (
	KindScalar Kind = iota
	KindList
	KindContainer
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindContainer:
		return "container"
	default:
		return "unknown"
	}
}

// Origin records where the current value of a scalar or list came from.
type Origin int

const (
	OriginUnset Origin = iota
	OriginExplicit
	OriginInherited
	OriginDefault
)

func (o Origin) String() string {
	switch o {
	case OriginUnset:
		return "unset"
	case OriginExplicit:
		return "explicit"
	case OriginInherited:
		return "inherited"
	case OriginDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Node is a member of a configuration tree. The set of implementations is
// closed: only Scalar, List and Container (or types embedding them) satisfy it.
type Node interface {
	// Name is unique among the node's siblings.
	Name() string

	// Kind reports the node variant.
	Kind() Kind

	// Parent returns the enclosing container or nil for a root.
	Parent() ContainerNode

	// IsInDefaultState reports whether the node still carries its declared
	// default, given the ancestors from the root to the node's parent.
	IsInDefaultState(stack Stack) bool

	// ApplyDefaultsAndInheritance fills an unset node from an ancestor value
	// or from its declared default. It must be idempotent.
	ApplyDefaultsAndInheritance(stack Stack)

	setParent(parent ContainerNode)
}

// ContainerNode is a Node owning an ordered set of named children.
type ContainerNode interface {
	Node

	// Children returns the children in insertion order.
	Children() []Node

	// Child returns the child with the given name.
	Child(name string) (Node, bool)
}

// PathOf returns the names from the root down to n joined with "/".
func PathOf(n Node) string {
	var names []string
	for cur := n; cur != nil; {
		names = append(names, cur.Name())
		p := cur.Parent()
		if p == nil {
			break
		}
		cur = p
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}
