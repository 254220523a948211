package tree

import "strings"

// Stack is a read-only view of the ancestors of a node, ordered from the
// root to the node's parent.
type Stack struct {
	nodes []ContainerNode
}

// Len returns the number of ancestors.
func (s Stack) Len() int { return len(s.nodes) }

// At returns the ancestor at depth i, 0 being the root.
func (s Stack) At(i int) ContainerNode { return s.nodes[i] }

// Parent returns the nearest ancestor or nil for an empty stack.
func (s Stack) Parent() ContainerNode {
	if len(s.nodes) == 0 {
		return nil
	}
	return s.nodes[len(s.nodes)-1]
}

// Names returns the ancestor names from the root.
func (s Stack) Names() []string {
	names := make([]string, len(s.nodes))
	for i, n := range s.nodes {
		names[i] = n.Name()
	}
	return names
}

// Path returns the slash-separated path of child below the stack.
func (s Stack) Path(child Node) string {
	return strings.Join(append(s.Names(), child.Name()), "/")
}

// Push returns a new stack with c appended. The receiver is not modified.
func (s Stack) Push(c ContainerNode) Stack {
	nodes := make([]ContainerNode, len(s.nodes), len(s.nodes)+1)
	copy(nodes, s.nodes)
	return Stack{nodes: append(nodes, c)}
}

// Lookup resolves path against each ancestor, nearest first, and returns the
// first node found that is not self. It returns nil when nothing matches.
func (s Stack) Lookup(self Node, path ...string) Node {
	if len(path) == 0 {
		return nil
	}
	for i := len(s.nodes) - 1; i >= 0; i-- {
		n := resolve(s.nodes[i], path)
		if n != nil && !sameNode(n, self) {
			return n
		}
	}
	return nil
}

func resolve(from ContainerNode, path []string) Node {
	var cur Node = from
	for _, name := range path {
		c, ok := cur.(ContainerNode)
		if !ok {
			return nil
		}
		child, ok := c.Child(name)
		if !ok {
			return nil
		}
		cur = child
	}
	return cur
}

func sameNode(a, b Node) bool {
	return a == b
}
