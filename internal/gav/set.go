package gav

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Set selects coordinates that match at least one include pattern and no
// exclude pattern. Pattern order is preserved for serialization.
type Set struct {
	includes []Pattern
	excludes []Pattern
}

// NewSet parses include and exclude pattern text.
func NewSet(includes, excludes []string) (Set, error) {
	var s Set
	for _, text := range includes {
		p, err := ParsePattern(text)
		if err != nil {
			return Set{}, fmt.Errorf("include: %w", err)
		}
		s.includes = append(s.includes, p)
	}
	for _, text := range excludes {
		p, err := ParsePattern(text)
		if err != nil {
			return Set{}, fmt.Errorf("exclude: %w", err)
		}
		s.excludes = append(s.excludes, p)
	}
	return s, nil
}

// Includes returns the include patterns in declaration order.
func (s Set) Includes() []Pattern { return append([]Pattern(nil), s.includes...) }

// Excludes returns the exclude patterns in declaration order.
func (s Set) Excludes() []Pattern { return append([]Pattern(nil), s.excludes...) }

// Contains reports whether g is included and not excluded.
func (s Set) Contains(g Gav) bool {
	included := false
	for _, p := range s.includes {
		if p.Matches(g) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, p := range s.excludes {
		if p.Matches(g) {
			return false
		}
	}
	return true
}

// AppendIncludes appends the canonical text of the include patterns to b.
// Patterns are written in canonical three-segment form, comma separated.
func (s Set) AppendIncludes(b []byte) []byte {
	return appendPatterns(b, s.includes)
}

// AppendExcludes appends the canonical text of the exclude patterns to b.
func (s Set) AppendExcludes(b []byte) []byte {
	return appendPatterns(b, s.excludes)
}

func (s Set) String() string {
	var sb strings.Builder
	sb.WriteString("[includes: ")
	sb.Write(s.AppendIncludes(nil))
	sb.WriteString("; excludes: ")
	sb.Write(s.AppendExcludes(nil))
	sb.WriteString("]")
	return sb.String()
}

// MarshalJSON writes the canonical include and exclude patterns.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Includes []string `json:"includes"`
		Excludes []string `json:"excludes"`
	}{patternTexts(s.includes), patternTexts(s.excludes)})
}

func patternTexts(patterns []Pattern) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = p.String()
	}
	return out
}

func appendPatterns(b []byte, patterns []Pattern) []byte {
	for i, p := range patterns {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, p.String()...)
	}
	return b
}
