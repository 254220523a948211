package tree

import (
	"fmt"
	"strconv"
)

// Scalar holds a single value of type T with a statically declared default.
type Scalar[T comparable] struct {
	name   string
	parent ContainerNode

	value  T
	def    T
	origin Origin

	// inheritPath is resolved against each ancestor, nearest first. Nil
	// disables inheritance.
	inheritPath []string

	parse    func(string) (T, error)
	format   func(T) string
	validate func(T) error
}

// ScalarOption customizes a Scalar at construction time.
type ScalarOption[T comparable] func(*Scalar[T])

// WithParser sets the function used by SetText.
func WithParser[T comparable](parse func(string) (T, error)) ScalarOption[T] {
	return func(s *Scalar[T]) { s.parse = parse }
}

// WithFormatter sets the function used by Text.
func WithFormatter[T comparable](format func(T) string) ScalarOption[T] {
	return func(s *Scalar[T]) { s.format = format }
}

// WithValidator rejects values at assignment time.
func WithValidator[T comparable](validate func(T) error) ScalarOption[T] {
	return func(s *Scalar[T]) { s.validate = validate }
}

// InheritFrom makes the scalar inherit from the node found at the given path
// relative to an ancestor, instead of from a same-named sibling of an ancestor.
func InheritFrom[T comparable](path ...string) ScalarOption[T] {
	return func(s *Scalar[T]) { s.inheritPath = append([]string(nil), path...) }
}

// NoInheritance disables inheritance; only the static default applies.
func NoInheritance[T comparable]() ScalarOption[T] {
	return func(s *Scalar[T]) { s.inheritPath = nil }
}

// NewScalar creates a scalar node that inherits from same-named ancestor
// values by default.
func NewScalar[T comparable](name string, def T, opts ...ScalarOption[T]) *Scalar[T] {
	s := &Scalar[T]{
		name:        name,
		def:         def,
		inheritPath: []string{name},
		format:      func(v T) string { return fmt.Sprint(v) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// String creates a string scalar.
func String(name, def string, opts ...ScalarOption[string]) *Scalar[string] {
	base := []ScalarOption[string]{
		WithParser(func(s string) (string, error) { return s, nil }),
	}
	return NewScalar(name, def, append(base, opts...)...)
}

// Bool creates a boolean scalar.
func Bool(name string, def bool, opts ...ScalarOption[bool]) *Scalar[bool] {
	base := []ScalarOption[bool]{
		WithParser(strconv.ParseBool),
		WithFormatter(strconv.FormatBool),
	}
	return NewScalar(name, def, append(base, opts...)...)
}

func (s *Scalar[T]) Name() string          { return s.name }
func (s *Scalar[T]) Kind() Kind            { return KindScalar }
func (s *Scalar[T]) Parent() ContainerNode { return s.parent }
func (s *Scalar[T]) Origin() Origin        { return s.origin }
func (s *Scalar[T]) Default() T            { return s.def }

func (s *Scalar[T]) setParent(parent ContainerNode) { s.parent = parent }

// Value returns the current value, or the default if nothing was assigned.
func (s *Scalar[T]) Value() T {
	if s.origin == OriginUnset {
		return s.def
	}
	return s.value
}

// IsSet reports whether the value is explicit or inherited.
func (s *Scalar[T]) IsSet() bool {
	return s.origin == OriginExplicit || s.origin == OriginInherited
}

// Set assigns an explicit value after validating it.
func (s *Scalar[T]) Set(v T) error {
	if s.validate != nil {
		if err := s.validate(v); err != nil {
			return err
		}
	}
	s.value = v
	s.origin = OriginExplicit
	return nil
}

// SetText parses text as T and assigns it explicitly.
func (s *Scalar[T]) SetText(text string) error {
	if s.parse == nil {
		return fmt.Errorf("%s cannot be set from text", s.name)
	}
	v, err := s.parse(text)
	if err != nil {
		return err
	}
	return s.Set(v)
}

// Text formats the current value.
func (s *Scalar[T]) Text() string {
	return s.format(s.Value())
}

func (s *Scalar[T]) IsInDefaultState(_ Stack) bool {
	return !s.IsSet() || s.value == s.def
}

func (s *Scalar[T]) ApplyDefaultsAndInheritance(stack Stack) {
	if s.origin == OriginExplicit {
		return
	}
	if s.inheritPath != nil {
		if src, ok := stack.Lookup(s, s.inheritPath...).(*Scalar[T]); ok && src.IsSet() && !src.IsInDefaultState(stack) {
			s.value = src.value
			s.origin = OriginInherited
			return
		}
	}
	s.value = s.def
	s.origin = OriginDefault
}
