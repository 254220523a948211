package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kisixing/srcdeps-core/internal/config/tree"
	"github.com/kisixing/srcdeps-core/internal/gav"
	"github.com/kisixing/srcdeps-core/internal/scalar"
)

// DefaultModelTransformer is the Gradle script applied to dependency builds
// when a repository does not name its own.
var DefaultModelTransformer = scalar.CharStreamSource{
	Scheme:   scalar.SchemeClasspath,
	Resource: "/gradle/srcdeps-model-transformer.gradle",
}

// ScmRepositoryBuilder configures one source repository. Its id is the node
// name and cannot change.
type ScmRepositoryBuilder struct {
	*tree.Container

	includes                 *tree.List[string]
	excludes                 *tree.List[string]
	urls                     *tree.List[string]
	buildArguments           *tree.List[string]
	addDefaultBuildArguments *tree.Scalar[bool]
	skipTests                *tree.Scalar[bool]
	buildTimeout             *tree.Scalar[scalar.Duration]
	verbosity                *tree.Scalar[scalar.Verbosity]
	maven                    *ScmRepositoryMavenBuilder
	gradle                   *ScmRepositoryGradleBuilder

	err error
}

// NewScmRepositoryBuilder creates a repository with the given id.
func NewScmRepositoryBuilder(id string) *ScmRepositoryBuilder {
	r := &ScmRepositoryBuilder{
		includes:                 tree.Strings("includes", tree.WithElementValidator(validatePattern)),
		excludes:                 tree.Strings("excludes", tree.WithElementValidator(validatePattern)),
		urls:                     tree.Strings("urls", tree.WithElementValidator(validateURL)),
		buildArguments:           tree.Strings("buildArguments"),
		addDefaultBuildArguments: tree.Bool("addDefaultBuildArguments", true),
		skipTests:                tree.Bool("skipTests", true),
		buildTimeout:             durationScalar(),
		verbosity:                verbosityScalar(),
		maven:                    NewScmRepositoryMavenBuilder(),
		gradle:                   NewScmRepositoryGradleBuilder(),
	}
	r.Container = tree.NewContainer(id,
		r.includes,
		r.excludes,
		r.urls,
		r.buildArguments,
		r.addDefaultBuildArguments,
		r.skipTests,
		r.buildTimeout,
		r.verbosity,
		r.maven,
		r.gradle,
	)
	return r
}

func validatePattern(p string) error {
	_, err := gav.ParsePattern(p)
	return err
}

func notBlank(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s must not be blank", name)
		}
		return nil
	}
}

func validateURL(u string) error {
	scm, rest, ok := strings.Cut(u, ":")
	if !ok || scm == "" || rest == "" {
		return fmt.Errorf("invalid SCM URL %q: expected <scm>:<url>", u)
	}
	return nil
}

func (r *ScmRepositoryBuilder) record(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
}

// Err returns the first error recorded by a setter.
func (r *ScmRepositoryBuilder) Err() error { return r.err }

// ID returns the repository id.
func (r *ScmRepositoryBuilder) ID() string { return r.Name() }

// Include appends GAV patterns selecting the artifacts built from this
// repository.
func (r *ScmRepositoryBuilder) Include(patterns ...string) *ScmRepositoryBuilder {
	r.record(r.includes.Add(patterns...))
	return r
}

// Exclude appends GAV patterns removed from the included artifacts.
func (r *ScmRepositoryBuilder) Exclude(patterns ...string) *ScmRepositoryBuilder {
	r.record(r.excludes.Add(patterns...))
	return r
}

// URL appends SCM URLs such as "git:https://github.com/org/repo.git". They
// are tried in order.
func (r *ScmRepositoryBuilder) URL(urls ...string) *ScmRepositoryBuilder {
	r.record(r.urls.Add(urls...))
	return r
}

// BuildArgument appends arguments passed to the build tool.
func (r *ScmRepositoryBuilder) BuildArgument(args ...string) *ScmRepositoryBuilder {
	r.record(r.buildArguments.Add(args...))
	return r
}

// AddDefaultBuildArguments overrides the top level setting for this
// repository.
func (r *ScmRepositoryBuilder) AddDefaultBuildArguments(add bool) *ScmRepositoryBuilder {
	r.record(r.addDefaultBuildArguments.Set(add))
	return r
}

// SkipTests overrides the top level setting for this repository.
func (r *ScmRepositoryBuilder) SkipTests(skip bool) *ScmRepositoryBuilder {
	r.record(r.skipTests.Set(skip))
	return r
}

// BuildTimeout overrides the top level timeout for this repository.
func (r *ScmRepositoryBuilder) BuildTimeout(d scalar.Duration) *ScmRepositoryBuilder {
	r.record(r.buildTimeout.Set(d))
	return r
}

// Verbosity overrides the top level verbosity for this repository.
func (r *ScmRepositoryBuilder) Verbosity(v scalar.Verbosity) *ScmRepositoryBuilder {
	r.record(r.verbosity.Set(v))
	return r
}

// Maven replaces the repository Maven settings.
func (r *ScmRepositoryBuilder) Maven(m *ScmRepositoryMavenBuilder) *ScmRepositoryBuilder {
	r.maven = m
	r.Add(m)
	return r
}

// Gradle replaces the repository Gradle settings.
func (r *ScmRepositoryBuilder) Gradle(g *ScmRepositoryGradleBuilder) *ScmRepositoryBuilder {
	r.gradle = g
	r.Add(g)
	return r
}

func (r *ScmRepositoryBuilder) build() (ScmRepository, error) {
	if r.err != nil {
		return ScmRepository{}, r.err
	}
	if err := r.maven.err; err != nil {
		return ScmRepository{}, fmt.Errorf("maven: %w", err)
	}
	if err := r.gradle.err; err != nil {
		return ScmRepository{}, fmt.Errorf("gradle: %w", err)
	}
	var errs []error
	if r.Name() == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if r.includes.Len() == 0 {
		errs = append(errs, errors.New("at least one include is required"))
	}
	if r.urls.Len() == 0 {
		errs = append(errs, errors.New("at least one URL is required"))
	}
	if len(errs) > 0 {
		return ScmRepository{}, errors.Join(errs...)
	}

	set, err := gav.NewSet(r.includes.Elements(), r.excludes.Elements())
	if err != nil {
		return ScmRepository{}, err
	}
	return ScmRepository{
		ID:                       r.Name(),
		GavSet:                   set,
		URLs:                     r.urls.Elements(),
		BuildArguments:           r.buildArguments.Elements(),
		AddDefaultBuildArguments: r.addDefaultBuildArguments.Value(),
		SkipTests:                r.skipTests.Value(),
		BuildTimeout:             r.buildTimeout.Value(),
		Verbosity:                r.verbosity.Value(),
		Maven:                    ScmRepositoryMaven{VersionsMavenPluginVersion: r.maven.versionsMavenPluginVersion.Value()},
		Gradle:                   ScmRepositoryGradle{ModelTransformer: r.gradle.modelTransformer.Value()},
	}, nil
}

// ScmRepositoryMavenBuilder configures Maven settings of one repository.
type ScmRepositoryMavenBuilder struct {
	*tree.Container

	versionsMavenPluginVersion *tree.Scalar[string]

	err error
}

// NewScmRepositoryMavenBuilder creates repository Maven settings that
// inherit the top level plugin version.
func NewScmRepositoryMavenBuilder() *ScmRepositoryMavenBuilder {
	m := &ScmRepositoryMavenBuilder{
		versionsMavenPluginVersion: tree.String("versionsMavenPluginVersion", DefaultVersionsMavenPluginVersion,
			tree.InheritFrom[string]("maven", "versionsMavenPluginVersion"),
			tree.WithValidator(notBlank("versionsMavenPluginVersion"))),
	}
	m.Container = tree.NewContainer("maven", m.versionsMavenPluginVersion)
	return m
}

// VersionsMavenPluginVersion overrides the plugin version for this
// repository.
func (m *ScmRepositoryMavenBuilder) VersionsMavenPluginVersion(v string) *ScmRepositoryMavenBuilder {
	if err := m.versionsMavenPluginVersion.Set(v); err != nil && m.err == nil {
		m.err = err
	}
	return m
}

// ScmRepositoryGradleBuilder configures Gradle settings of one repository.
type ScmRepositoryGradleBuilder struct {
	*tree.Container

	modelTransformer *tree.Scalar[scalar.CharStreamSource]

	err error
}

// NewScmRepositoryGradleBuilder creates repository Gradle settings using
// DefaultModelTransformer.
func NewScmRepositoryGradleBuilder() *ScmRepositoryGradleBuilder {
	g := &ScmRepositoryGradleBuilder{
		modelTransformer: tree.NewScalar("modelTransformer", DefaultModelTransformer,
			tree.NoInheritance[scalar.CharStreamSource](),
			tree.WithParser(scalar.ParseCharStreamSource)),
	}
	g.Container = tree.NewContainer("gradle", g.modelTransformer)
	return g
}

// ModelTransformer sets the Gradle script source, e.g.
// "file:/path/to/transformer.gradle".
func (g *ScmRepositoryGradleBuilder) ModelTransformer(text string) *ScmRepositoryGradleBuilder {
	if err := g.modelTransformer.SetText(text); err != nil && g.err == nil {
		g.err = err
	}
	return g
}
