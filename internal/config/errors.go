package config

import "fmt"

// StructuralError reports a document whose shape does not fit the
// configuration tree: an unknown key, a mapping where a scalar is expected,
// a duplicate key, or unparsable syntax.
type StructuralError struct {
	Path   string
	Line   int
	Column int
	Msg    string
}

func (e *StructuralError) Error() string {
	return formatLocated(e.Path, e.Line, e.Column, e.Msg)
}

// ValueError reports a value of the right node kind that cannot be parsed
// as the declared scalar type or is outside the permitted set.
type ValueError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ValueError) Error() string {
	return formatLocated(e.Path, e.Line, e.Column, e.Err.Error())
}

func (e *ValueError) Unwrap() error { return e.Err }

func formatLocated(path string, line, column int, msg string) string {
	prefix := ""
	if path != "" {
		prefix = path + ": "
	}
	if line > 0 {
		return fmt.Sprintf("%s%s (line %d, column %d)", prefix, msg, line, column)
	}
	return prefix + msg
}
