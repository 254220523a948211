package tree

import "fmt"

// Container is a named, ordered collection of child nodes. A container
// created with NewRepeated accepts children of arbitrary names produced by a
// factory, e.g. one sub-tree per repository id.
type Container struct {
	name     string
	parent   ContainerNode
	children []Node
	index    map[string]int
	factory  func(name string) Node
}

// NewContainer creates a container holding the given children in order.
func NewContainer(name string, children ...Node) *Container {
	c := &Container{name: name, index: make(map[string]int)}
	c.Add(children...)
	return c
}

// NewRepeated creates a container whose children are created on demand by
// factory when a document names them.
func NewRepeated(name string, factory func(name string) Node) *Container {
	c := NewContainer(name)
	c.factory = factory
	return c
}

func (c *Container) Name() string          { return c.name }
func (c *Container) Kind() Kind            { return KindContainer }
func (c *Container) Parent() ContainerNode { return c.parent }

func (c *Container) setParent(parent ContainerNode) { c.parent = parent }

// Add appends children. A child whose name is already present replaces the
// existing one in place.
func (c *Container) Add(children ...Node) {
	for _, child := range children {
		child.setParent(c)
		if i, ok := c.index[child.Name()]; ok {
			c.children[i] = child
			continue
		}
		c.index[child.Name()] = len(c.children)
		c.children = append(c.children, child)
	}
}

// Children returns the children in insertion order.
func (c *Container) Children() []Node {
	return append([]Node(nil), c.children...)
}

// Child returns the child with the given name.
func (c *Container) Child(name string) (Node, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.children[i], true
}

// Len returns the number of children.
func (c *Container) Len() int { return len(c.children) }

// Repeated reports whether children are created by name on demand.
func (c *Container) Repeated() bool { return c.factory != nil }

// NewChild creates and adds a child of a repeated container.
func (c *Container) NewChild(name string) (Node, error) {
	if c.factory == nil {
		return nil, fmt.Errorf("%s does not accept arbitrary children", c.name)
	}
	if _, ok := c.index[name]; ok {
		return nil, fmt.Errorf("duplicate %s entry %q", c.name, name)
	}
	child := c.factory(name)
	c.Add(child)
	return child, nil
}

// IsInDefaultState reports whether every descendant is in its default state.
func (c *Container) IsInDefaultState(stack Stack) bool {
	inner := stack.Push(c)
	for _, child := range c.children {
		if !child.IsInDefaultState(inner) {
			return false
		}
	}
	return true
}

// ApplyDefaultsAndInheritance is a no-op; the walk reaches every child.
func (c *Container) ApplyDefaultsAndInheritance(Stack) {}
