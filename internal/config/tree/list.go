package tree

import "fmt"

// List holds an ordered sequence of T. Order is significant for consumers
// that pass elements on a command line; AsSet gives the deduplicated view.
type List[T comparable] struct {
	name   string
	parent ContainerNode

	elements []T
	origin   Origin

	defaults []T
	inherit  bool

	parse    func(string) (T, error)
	format   func(T) string
	validate func(T) error
}

// ListOption customizes a List at construction time.
type ListOption[T comparable] func(*List[T])

// WithDefaults declares the elements assigned when the list is left empty.
func WithDefaults[T comparable](defaults ...T) ListOption[T] {
	return func(l *List[T]) { l.defaults = append([]T(nil), defaults...) }
}

// Inheriting makes an empty list copy a same-named non-empty ancestor list.
func Inheriting[T comparable]() ListOption[T] {
	return func(l *List[T]) { l.inherit = true }
}

// WithElementParser sets the function used by AddText.
func WithElementParser[T comparable](parse func(string) (T, error)) ListOption[T] {
	return func(l *List[T]) { l.parse = parse }
}

// WithElementFormatter sets the function used by Texts.
func WithElementFormatter[T comparable](format func(T) string) ListOption[T] {
	return func(l *List[T]) { l.format = format }
}

// WithElementValidator rejects elements at assignment time.
func WithElementValidator[T comparable](validate func(T) error) ListOption[T] {
	return func(l *List[T]) { l.validate = validate }
}

// NewList creates an empty list node.
func NewList[T comparable](name string, opts ...ListOption[T]) *List[T] {
	l := &List[T]{
		name:   name,
		format: func(v T) string { return fmt.Sprint(v) },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Strings creates a list of strings.
func Strings(name string, opts ...ListOption[string]) *List[string] {
	base := []ListOption[string]{
		WithElementParser(func(s string) (string, error) { return s, nil }),
	}
	return NewList(name, append(base, opts...)...)
}

func (l *List[T]) Name() string          { return l.name }
func (l *List[T]) Kind() Kind            { return KindList }
func (l *List[T]) Parent() ContainerNode { return l.parent }
func (l *List[T]) Origin() Origin        { return l.origin }

func (l *List[T]) setParent(parent ContainerNode) { l.parent = parent }

// Elements returns a copy of the elements in insertion order.
func (l *List[T]) Elements() []T {
	return append([]T(nil), l.elements...)
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return len(l.elements) }

// AsSet returns the elements with duplicates removed, first occurrence wins.
func (l *List[T]) AsSet() []T {
	seen := make(map[T]struct{}, len(l.elements))
	out := make([]T, 0, len(l.elements))
	for _, e := range l.elements {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Add appends explicit elements after validating each of them.
func (l *List[T]) Add(values ...T) error {
	if l.validate != nil {
		for _, v := range values {
			if err := l.validate(v); err != nil {
				return err
			}
		}
	}
	if l.origin != OriginExplicit {
		l.elements = nil
	}
	l.elements = append(l.elements, values...)
	l.origin = OriginExplicit
	return nil
}

// AddText parses text as T and appends it.
func (l *List[T]) AddText(text string) error {
	if l.parse == nil {
		return fmt.Errorf("%s cannot be set from text", l.name)
	}
	v, err := l.parse(text)
	if err != nil {
		return err
	}
	return l.Add(v)
}

// Texts formats every element.
func (l *List[T]) Texts() []string {
	out := make([]string, len(l.elements))
	for i, e := range l.elements {
		out[i] = l.format(e)
	}
	return out
}

func (l *List[T]) IsInDefaultState(_ Stack) bool {
	return len(l.elements) == 0 || (len(l.defaults) > 0 && sameSet(l.elements, l.defaults))
}

func (l *List[T]) ApplyDefaultsAndInheritance(stack Stack) {
	if len(l.elements) > 0 && l.origin != OriginDefault {
		return
	}
	if l.inherit {
		if src, ok := stack.Lookup(l, l.name).(*List[T]); ok && !src.IsInDefaultState(stack) {
			l.elements = src.Elements()
			l.origin = OriginInherited
			return
		}
	}
	l.elements = append([]T(nil), l.defaults...)
	l.origin = OriginDefault
}

func sameSet[T comparable](a, b []T) bool {
	as := make(map[T]struct{}, len(a))
	for _, v := range a {
		as[v] = struct{}{}
	}
	bs := make(map[T]struct{}, len(b))
	for _, v := range b {
		if _, ok := as[v]; !ok {
			return false
		}
		bs[v] = struct{}{}
	}
	return len(as) == len(bs)
}
