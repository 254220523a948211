package tree

import "fmt"

// Visitor receives every node of a walk. Enter is called before the
// children of a container are visited and Leave after them. Returning an
// error aborts the walk.
type Visitor interface {
	Enter(n Node, stack Stack) error
	Leave(n Node, stack Stack) error
}

// VisitorFunc adapts a function to a Visitor that only uses Enter.
type VisitorFunc func(n Node, stack Stack) error

func (f VisitorFunc) Enter(n Node, stack Stack) error { return f(n, stack) }
func (f VisitorFunc) Leave(Node, Stack) error         { return nil }

// WalkError reports the node at which a visitor failed.
type WalkError struct {
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *WalkError) Unwrap() error { return e.Err }

// Walk visits root and its descendants depth-first in child insertion order.
// Nodes visited before a failure keep whatever changes the visitor made.
func Walk(root ContainerNode, v Visitor) error {
	return walk(root, Stack{}, v)
}

func walk(n Node, stack Stack, v Visitor) error {
	if err := v.Enter(n, stack); err != nil {
		return wrapWalkError(n, stack, err)
	}
	if c, ok := n.(ContainerNode); ok {
		inner := stack.Push(c)
		for _, child := range c.Children() {
			if err := walk(child, inner, v); err != nil {
				return err
			}
		}
	}
	if err := v.Leave(n, stack); err != nil {
		return wrapWalkError(n, stack, err)
	}
	return nil
}

func wrapWalkError(n Node, stack Stack, err error) error {
	return &WalkError{Path: stack.Path(n), Err: err}
}

// DefaultsAndInheritanceVisitor applies each node's own defaulting and
// inheritance policy in walk order. Values meant to be inherited must be
// declared before the sibling containers that inherit them.
type DefaultsAndInheritanceVisitor struct{}

func (DefaultsAndInheritanceVisitor) Enter(n Node, stack Stack) error {
	n.ApplyDefaultsAndInheritance(stack)
	return nil
}

func (DefaultsAndInheritanceVisitor) Leave(Node, Stack) error { return nil }
