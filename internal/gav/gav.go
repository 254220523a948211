// Package gav provides Maven/Gradle dependency coordinates, coordinate
// patterns and the include/exclude GavSet used to select the SCM repository
// a dependency is built from.
package gav

import (
	"fmt"
	"strings"
)

// Gav is a groupId:artifactId:version coordinate.
type Gav struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// Parse parses "groupId:artifactId:version".
func Parse(s string) (Gav, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Gav{}, fmt.Errorf("invalid coordinate %q: expected groupId:artifactId:version", s)
	}
	for _, p := range parts {
		if p == "" {
			return Gav{}, fmt.Errorf("invalid coordinate %q: empty segment", s)
		}
	}
	return Gav{GroupID: parts[0], ArtifactID: parts[1], Version: parts[2]}, nil
}

func (g Gav) String() string {
	return g.GroupID + ":" + g.ArtifactID + ":" + g.Version
}
