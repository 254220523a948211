package build

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/kisixing/srcdeps-core/internal/config"
	"github.com/kisixing/srcdeps-core/internal/gav"
	"github.com/kisixing/srcdeps-core/internal/scalar"
)

// Request describes one dependency build from source. Use NewRequest to
// derive it from a configuration; ID computes its identity.
type Request struct {
	AddDefaultBuildArguments   bool
	AddDefaultBuildEnvironment bool
	BuildArguments             []string
	BuildEnvironment           map[string]string
	ForwardProperties          []string
	GavSet                     gav.Set
	ScmURLs                    []string
	SkipTests                  bool
	SrcVersion                 SrcVersion
	Version                    string
	Timeout                    scalar.Duration
	Verbosity                  scalar.Verbosity

	// The fields below do not change the build output and are not part of
	// the identity.

	Dependency                 gav.Gav
	RepositoryID               string
	ProjectRootDirectory       string
	IoRedirects                config.BuilderIo
	VersionsMavenPluginVersion string
	ModelTransformer           scalar.CharStreamSource
	DependentProjectRoot       string
}

// Option customizes a Request built by NewRequest.
type Option func(*Request)

// WithBuildEnvironment sets environment variables of the build process.
func WithBuildEnvironment(env map[string]string) Option {
	return func(r *Request) { r.BuildEnvironment = maps.Clone(env) }
}

// WithAddDefaultBuildEnvironment sets whether the build process inherits the
// environment of the current process.
func WithAddDefaultBuildEnvironment(add bool) Option {
	return func(r *Request) { r.AddDefaultBuildEnvironment = add }
}

// WithDependentProjectRoot records the project that depends on the
// artifact being built.
func WithDependentProjectRoot(dir string) Option {
	return func(r *Request) { r.DependentProjectRoot = dir }
}

// WithSourcesDirectory overrides the configured sourcesDirectory.
func WithSourcesDirectory(dir string) Option {
	return func(r *Request) { r.ProjectRootDirectory = filepath.Join(dir, r.RepositoryID) }
}

// NewRequest derives the build of dep from repo. dep must have a source
// version such as "1.0-SRC-revision-abc".
func NewRequest(cfg *config.Configuration, repo config.ScmRepository, dep gav.Gav, opts ...Option) (*Request, error) {
	src, err := ParseSrcVersion(dep.Version)
	if err != nil {
		return nil, fmt.Errorf("dependency %s: %w", dep, err)
	}
	r := &Request{
		AddDefaultBuildArguments:   repo.AddDefaultBuildArguments,
		AddDefaultBuildEnvironment: true,
		BuildArguments:             slices.Clone(repo.BuildArguments),
		BuildEnvironment:           map[string]string{},
		ForwardProperties:          slices.Clone(cfg.ForwardProperties),
		GavSet:                     repo.GavSet,
		ScmURLs:                    slices.Clone(repo.URLs),
		SkipTests:                  repo.SkipTests,
		SrcVersion:                 src,
		Version:                    dep.Version,
		Timeout:                    repo.BuildTimeout,
		Verbosity:                  repo.Verbosity,

		Dependency:                 dep,
		RepositoryID:               repo.ID,
		ProjectRootDirectory:       filepath.Join(cfg.SourcesDirectory, repo.ID),
		IoRedirects:                cfg.BuilderIo,
		VersionsMavenPluginVersion: repo.Maven.VersionsMavenPluginVersion,
		ModelTransformer:           repo.Gradle.ModelTransformer,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ID computes the identity of the request.
func (r *Request) ID() BuildRequestID {
	return Of(r)
}
