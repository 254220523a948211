package config

import (
	"errors"
	"fmt"

	"github.com/kisixing/srcdeps-core/internal/config/tree"
	"github.com/kisixing/srcdeps-core/internal/scalar"
)

// RootName is the name of the configuration tree root.
const RootName = "srcdeps"

// Builder is the mutable root of the configuration tree. Setters chain and
// keep the first error they hit; Build reports it.
type Builder struct {
	*tree.Container

	configModelVersion       *tree.Scalar[string]
	forwardProperties        *tree.List[string]
	builderIo                *BuilderIoBuilder
	skip                     *tree.Scalar[bool]
	sourcesDirectory         *tree.Scalar[string]
	verbosity                *tree.Scalar[scalar.Verbosity]
	buildTimeout             *tree.Scalar[scalar.Duration]
	addDefaultBuildArguments *tree.Scalar[bool]
	skipTests                *tree.Scalar[bool]
	maven                    *MavenBuilder
	repositories             *tree.Container

	err error
}

// NewBuilder creates an empty configuration builder.
func NewBuilder() *Builder {
	b := &Builder{
		configModelVersion: tree.String("configModelVersion", latestConfigModelVersion,
			tree.NoInheritance[string](),
			tree.WithValidator(validateConfigModelVersion)),
		forwardProperties: tree.Strings("forwardProperties",
			tree.WithDefaults(DefaultForwardProperties()...),
			tree.WithElementValidator(validateForwardProperty)),
		builderIo:                NewBuilderIoBuilder(),
		skip:                     tree.Bool("skip", false),
		sourcesDirectory:         tree.String("sourcesDirectory", ""),
		verbosity:                verbosityScalar(),
		buildTimeout:             durationScalar(),
		addDefaultBuildArguments: tree.Bool("addDefaultBuildArguments", true),
		skipTests:                tree.Bool("skipTests", true),
		maven:                    NewMavenBuilder(),
		repositories: tree.NewRepeated("repositories", func(id string) tree.Node {
			return NewScmRepositoryBuilder(id)
		}),
	}
	b.Container = tree.NewContainer(RootName,
		b.configModelVersion,
		b.forwardProperties,
		b.builderIo,
		b.skip,
		b.sourcesDirectory,
		b.verbosity,
		b.buildTimeout,
		b.addDefaultBuildArguments,
		b.skipTests,
		b.maven,
		b.repositories,
	)
	return b
}

func verbosityScalar() *tree.Scalar[scalar.Verbosity] {
	return tree.NewScalar("verbosity", scalar.VerbosityWarn,
		tree.WithParser(scalar.ParseVerbosity))
}

func durationScalar() *tree.Scalar[scalar.Duration] {
	return tree.NewScalar("buildTimeout", scalar.Unbounded,
		tree.WithParser(scalar.ParseDuration))
}

func (b *Builder) record(err error) {
	if err != nil && b.err == nil {
		b.err = err
	}
}

// Err returns the first error recorded by a setter.
func (b *Builder) Err() error { return b.err }

// ConfigModelVersion sets the document model version.
func (b *Builder) ConfigModelVersion(v string) *Builder {
	b.record(b.configModelVersion.Set(v))
	return b
}

// ForwardProperty appends a property name or "prefix*" pattern.
func (b *Builder) ForwardProperty(p string) *Builder {
	b.record(b.forwardProperties.Add(p))
	return b
}

// ForwardProperties appends several forward property patterns.
func (b *Builder) ForwardProperties(ps ...string) *Builder {
	b.record(b.forwardProperties.Add(ps...))
	return b
}

// BuilderIo replaces the stream redirect settings.
func (b *Builder) BuilderIo(io *BuilderIoBuilder) *Builder {
	b.builderIo = io
	b.Add(io)
	return b
}

// Skip disables source dependency building altogether.
func (b *Builder) Skip(skip bool) *Builder {
	b.record(b.skip.Set(skip))
	return b
}

// SourcesDirectory sets where dependency sources are checked out.
func (b *Builder) SourcesDirectory(dir string) *Builder {
	b.record(b.sourcesDirectory.Set(dir))
	return b
}

// Verbosity sets the default verbosity of dependency builds.
func (b *Builder) Verbosity(v scalar.Verbosity) *Builder {
	b.record(b.verbosity.Set(v))
	return b
}

// BuildTimeout sets the default timeout of dependency builds.
func (b *Builder) BuildTimeout(d scalar.Duration) *Builder {
	b.record(b.buildTimeout.Set(d))
	return b
}

// AddDefaultBuildArguments sets whether the build tool default arguments are
// prepended to each dependency build.
func (b *Builder) AddDefaultBuildArguments(add bool) *Builder {
	b.record(b.addDefaultBuildArguments.Set(add))
	return b
}

// SkipTests sets whether tests of dependency builds are skipped.
func (b *Builder) SkipTests(skip bool) *Builder {
	b.record(b.skipTests.Set(skip))
	return b
}

// Maven replaces the top level Maven settings.
func (b *Builder) Maven(m *MavenBuilder) *Builder {
	b.maven = m
	b.Add(m)
	return b
}

// Repository adds a repository. A repository with the same id is replaced
// in place.
func (b *Builder) Repository(r *ScmRepositoryBuilder) *Builder {
	b.repositories.Add(r)
	return b
}

// Repositories adds several repositories in order.
func (b *Builder) Repositories(rs ...*ScmRepositoryBuilder) *Builder {
	for _, r := range rs {
		b.Repository(r)
	}
	return b
}

// RepositoryBuilders returns the repository builders in document order.
func (b *Builder) RepositoryBuilders() []*ScmRepositoryBuilder {
	children := b.repositories.Children()
	out := make([]*ScmRepositoryBuilder, 0, len(children))
	for _, c := range children {
		out = append(out, c.(*ScmRepositoryBuilder))
	}
	return out
}

// Accept walks the builder tree with v. A visitor error is recorded like a
// setter error.
func (b *Builder) Accept(v tree.Visitor) *Builder {
	b.record(tree.Walk(b, v))
	return b
}

// ApplyDefaults fills every value not set explicitly from its ancestors or
// its static default. It may be called repeatedly.
func (b *Builder) ApplyDefaults() *Builder {
	return b.Accept(tree.DefaultsAndInheritanceVisitor{})
}

// Build applies defaults and inheritance, then produces an immutable
// Configuration. Later changes to the builder do not affect the returned
// value.
func (b *Builder) Build() (*Configuration, error) {
	b.ApplyDefaults()
	if b.err != nil {
		return nil, b.err
	}
	if err := b.builderIo.err; err != nil {
		return nil, fmt.Errorf("builderIo: %w", err)
	}
	if err := b.maven.Err(); err != nil {
		return nil, fmt.Errorf("maven: %w", err)
	}

	cfg := &Configuration{
		ConfigModelVersion:       b.configModelVersion.Value(),
		ForwardProperties:        b.forwardProperties.AsSet(),
		BuilderIo:                b.builderIo.build(),
		Skip:                     b.skip.Value(),
		SourcesDirectory:         b.sourcesDirectory.Value(),
		Verbosity:                b.verbosity.Value(),
		BuildTimeout:             b.buildTimeout.Value(),
		AddDefaultBuildArguments: b.addDefaultBuildArguments.Value(),
		SkipTests:                b.skipTests.Value(),
		Maven:                    b.maven.build(),
	}

	var errs []error
	for _, r := range b.RepositoryBuilders() {
		repo, err := r.build()
		if err != nil {
			errs = append(errs, fmt.Errorf("repository %q: %w", r.Name(), err))
			continue
		}
		cfg.Repositories = append(cfg.Repositories, repo)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}
