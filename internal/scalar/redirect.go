package scalar

import (
	"fmt"
	"strings"
)

// RedirectKind tells what a build process stream is connected to.
type RedirectKind int

const (
	RedirectInherit RedirectKind = iota
	RedirectRead
	RedirectWrite
	RedirectAppend
	RedirectErr2Out
)

func (k RedirectKind) String() string {
	switch k {
	case RedirectInherit:
		return "inherit"
	case RedirectRead:
		return "read"
	case RedirectWrite:
		return "write"
	case RedirectAppend:
		return "append"
	case RedirectErr2Out:
		return "err2out"
	default:
		return "unknown"
	}
}

// Redirect is one stream redirection of a spawned build process.
type Redirect struct {
	Kind RedirectKind
	Path string
}

// Inherit connects the stream to the parent process.
var Inherit = Redirect{Kind: RedirectInherit}

func (r Redirect) String() string {
	switch r.Kind {
	case RedirectRead, RedirectWrite, RedirectAppend:
		return r.Kind.String() + ":" + r.Path
	default:
		return r.Kind.String()
	}
}

// ParseStdin accepts "inherit" and "read:<path>".
func ParseStdin(s string) (Redirect, error) {
	return parseRedirect("stdin", s, RedirectInherit, RedirectRead)
}

// ParseStdout accepts "inherit", "write:<path>" and "append:<path>".
func ParseStdout(s string) (Redirect, error) {
	return parseRedirect("stdout", s, RedirectInherit, RedirectWrite, RedirectAppend)
}

// ParseStderr accepts everything ParseStdout does plus "err2out".
func ParseStderr(s string) (Redirect, error) {
	return parseRedirect("stderr", s, RedirectInherit, RedirectWrite, RedirectAppend, RedirectErr2Out)
}

func parseRedirect(stream, s string, allowed ...RedirectKind) (Redirect, error) {
	kindText, path, hasPath := strings.Cut(s, ":")
	for _, k := range allowed {
		if kindText != k.String() {
			continue
		}
		needsPath := k == RedirectRead || k == RedirectWrite || k == RedirectAppend
		switch {
		case needsPath && (!hasPath || path == ""):
			return Redirect{}, fmt.Errorf("%s redirect %q requires a path", stream, s)
		case !needsPath && hasPath:
			return Redirect{}, fmt.Errorf("%s redirect %q does not take a path", stream, s)
		}
		return Redirect{Kind: k, Path: path}, nil
	}
	names := make([]string, len(allowed))
	for i, k := range allowed {
		names[i] = k.String()
	}
	return Redirect{}, fmt.Errorf("invalid %s redirect %q: expected one of %s", stream, s, strings.Join(names, ", "))
}
