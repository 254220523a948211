package scalar

import (
	"fmt"
	"strings"
)

// SourceScheme tells where a CharStreamSource reads from.
type SourceScheme string

const (
	SchemeClasspath SourceScheme = "classpath"
	SchemeFile      SourceScheme = "file"
	SchemeLiteral   SourceScheme = "literal"
)

// CharStreamSource locates a text resource, such as a Gradle model
// transformer script.
type CharStreamSource struct {
	Scheme   SourceScheme
	Resource string
}

func (s CharStreamSource) String() string {
	return string(s.Scheme) + ":" + s.Resource
}

// ParseCharStreamSource parses "classpath:<res>", "file:<path>" or
// "literal:<text>".
func ParseCharStreamSource(s string) (CharStreamSource, error) {
	scheme, resource, ok := strings.Cut(s, ":")
	if !ok {
		return CharStreamSource{}, fmt.Errorf("invalid source %q: expected <scheme>:<resource>", s)
	}
	switch SourceScheme(scheme) {
	case SchemeClasspath, SchemeFile, SchemeLiteral:
		return CharStreamSource{Scheme: SourceScheme(scheme), Resource: resource}, nil
	}
	return CharStreamSource{}, fmt.Errorf("invalid source %q: scheme must be classpath, file or literal", s)
}
