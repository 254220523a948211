package gav

import (
	"fmt"
	"strings"
)

const wildcard = "*"

// Pattern matches coordinates segment by segment. Each segment may contain
// "*" matching any run of characters. Omitted trailing segments match
// anything, so "org.example" equals "org.example:*:*".
type Pattern struct {
	segments [3]string
}

// ParsePattern parses "groupId[:artifactId[:version]]".
func ParsePattern(s string) (Pattern, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Pattern{}, fmt.Errorf("empty GAV pattern")
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return Pattern{}, fmt.Errorf("invalid GAV pattern %q: at most groupId:artifactId:version", s)
	}
	p := Pattern{segments: [3]string{wildcard, wildcard, wildcard}}
	for i, part := range parts {
		if part == "" {
			return Pattern{}, fmt.Errorf("invalid GAV pattern %q: empty segment", s)
		}
		p.segments[i] = part
	}
	return p, nil
}

// MustParsePattern is like ParsePattern but panics on error.
func MustParsePattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the canonical three-segment form.
func (p Pattern) String() string {
	return strings.Join(p.segments[:], ":")
}

// Matches reports whether g satisfies every segment.
func (p Pattern) Matches(g Gav) bool {
	return globMatch(p.segments[0], g.GroupID) &&
		globMatch(p.segments[1], g.ArtifactID) &&
		globMatch(p.segments[2], g.Version)
}

// globMatch matches s against pattern where "*" is the only metacharacter.
func globMatch(pattern, s string) bool {
	if pattern == wildcard {
		return true
	}
	parts := strings.Split(pattern, wildcard)
	if len(parts) == 1 {
		return pattern == s
	}
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]
	last := parts[len(parts)-1]
	for _, mid := range parts[1 : len(parts)-1] {
		i := strings.Index(s, mid)
		if i < 0 {
			return false
		}
		s = s[i+len(mid):]
	}
	return strings.HasSuffix(s, last)
}
