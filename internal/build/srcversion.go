// Package build derives build requests from the srcdeps configuration and
// computes their content-addressed identity.
package build

import (
	"fmt"
	"strings"
)

const srcMarker = "-SRC-"

// RefKind tells how a SrcVersion points into the source repository.
type RefKind int

const (
	RefRevision RefKind = iota
	RefBranch
	RefTag
)

var refKindNames = []string{"revision", "branch", "tag"}

func (k RefKind) String() string {
	if k < RefRevision || k > RefTag {
		return "unknown"
	}
	return refKindNames[k]
}

// SrcVersion is a dependency version that asks for a build from source,
// e.g. "1.2.3-SRC-revision-0a5ab902" or "1.0-SRC-branch-main".
type SrcVersion struct {
	text    string
	version string
	kind    RefKind
	ref     string
}

// IsSrcVersion reports whether version carries the -SRC- marker.
func IsSrcVersion(version string) bool {
	return strings.Contains(version, srcMarker)
}

// ParseSrcVersion parses "<version>-SRC-(revision|branch|tag)-<ref>".
func ParseSrcVersion(s string) (SrcVersion, error) {
	i := strings.LastIndex(s, srcMarker)
	if i <= 0 {
		return SrcVersion{}, fmt.Errorf("invalid source version %q: expected <version>-SRC-<revision|branch|tag>-<ref>", s)
	}
	kindText, ref, ok := strings.Cut(s[i+len(srcMarker):], "-")
	if !ok || ref == "" {
		return SrcVersion{}, fmt.Errorf("invalid source version %q: missing ref", s)
	}
	for k, name := range refKindNames {
		if kindText == name {
			return SrcVersion{text: s, version: s[:i], kind: RefKind(k), ref: ref}, nil
		}
	}
	return SrcVersion{}, fmt.Errorf("invalid source version %q: unknown ref kind %q", s, kindText)
}

// String returns the text the version was parsed from.
func (v SrcVersion) String() string { return v.text }

// Version returns the part before the -SRC- marker.
func (v SrcVersion) Version() string { return v.version }

// Kind returns the kind of the ref.
func (v SrcVersion) Kind() RefKind { return v.kind }

// Ref returns the revision id, branch name or tag name.
func (v SrcVersion) Ref() string { return v.ref }
