// Package scalar provides the semantic value types held by configuration
// scalar nodes: verbosity levels, durations with an unbounded sentinel, IO
// redirection specs and character stream sources.
package scalar

import (
	"fmt"
	"strings"
)

// Verbosity is the logging detail requested from a dependency build.
// Levels are ordered: trace < debug < info < warn < error.
type Verbosity int

const (
	VerbosityTrace Verbosity = iota
	VerbosityDebug
	VerbosityInfo
	VerbosityWarn
	VerbosityError
)

var verbosityNames = []string{"trace", "debug", "info", "warn", "error"}

func (v Verbosity) String() string {
	if v < VerbosityTrace || v > VerbosityError {
		return "unknown"
	}
	return verbosityNames[v]
}

// ParseVerbosity parses a verbosity name, ignoring case.
func ParseVerbosity(s string) (Verbosity, error) {
	for i, name := range verbosityNames {
		if strings.EqualFold(s, name) {
			return Verbosity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown verbosity %q: expected one of %s", s, strings.Join(verbosityNames, ", "))
}

// MavenArg returns the Maven command line switch matching the level, or an
// empty string when Maven's default output should be used.
func (v Verbosity) MavenArg() string {
	switch v {
	case VerbosityTrace, VerbosityDebug:
		return "--debug"
	case VerbosityError:
		return "--quiet"
	default:
		return ""
	}
}
