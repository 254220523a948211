package config

import (
	"github.com/kisixing/srcdeps-core/internal/config/tree"
	"github.com/kisixing/srcdeps-core/internal/scalar"
)

// BuilderIoBuilder configures where the standard streams of dependency
// builds go. Every stream inherits the parent process stream by default.
type BuilderIoBuilder struct {
	*tree.Container

	stdin  *tree.Scalar[scalar.Redirect]
	stdout *tree.Scalar[scalar.Redirect]
	stderr *tree.Scalar[scalar.Redirect]

	err error
}

// NewBuilderIoBuilder creates redirect settings with all streams inherited.
func NewBuilderIoBuilder() *BuilderIoBuilder {
	b := &BuilderIoBuilder{
		stdin:  redirectScalar("stdin", scalar.ParseStdin),
		stdout: redirectScalar("stdout", scalar.ParseStdout),
		stderr: redirectScalar("stderr", scalar.ParseStderr),
	}
	b.Container = tree.NewContainer("builderIo", b.stdin, b.stdout, b.stderr)
	return b
}

func redirectScalar(name string, parse func(string) (scalar.Redirect, error)) *tree.Scalar[scalar.Redirect] {
	return tree.NewScalar(name, scalar.Inherit,
		tree.NoInheritance[scalar.Redirect](),
		tree.WithParser(parse))
}

// Stdin sets the stdin redirect, e.g. "read:/path/to/file".
func (b *BuilderIoBuilder) Stdin(text string) *BuilderIoBuilder {
	b.set(b.stdin, text)
	return b
}

// Stdout sets the stdout redirect, e.g. "append:/path/to/log".
func (b *BuilderIoBuilder) Stdout(text string) *BuilderIoBuilder {
	b.set(b.stdout, text)
	return b
}

// Stderr sets the stderr redirect, e.g. "err2out".
func (b *BuilderIoBuilder) Stderr(text string) *BuilderIoBuilder {
	b.set(b.stderr, text)
	return b
}

// Err returns the first error recorded by a setter.
func (b *BuilderIoBuilder) Err() error { return b.err }

func (b *BuilderIoBuilder) set(s *tree.Scalar[scalar.Redirect], text string) {
	if err := s.SetText(text); err != nil && b.err == nil {
		b.err = err
	}
}

func (b *BuilderIoBuilder) build() BuilderIo {
	return BuilderIo{
		Stdin:  b.stdin.Value(),
		Stdout: b.stdout.Value(),
		Stderr: b.stderr.Value(),
	}
}
