// Package sdk provides a public Go API for srcdeps. It loads a srcdeps
// configuration, selects the source repository of a dependency, computes the
// identity of the build that produces it, and checks out its sources.
//
// Basic usage:
//
//	cfg, err := sdk.Load(sdk.LoadOptions{
//	    Path: "/path/to/project",
//	})
//	req, err := sdk.NewRequest(cfg, "org.example:core:1.0-SRC-tag-v1.0", sdk.RequestOptions{})
//	fmt.Println(req.RepositoryID, req.ID()) // "org.repo1 3c1f0a..."
//
//	res, err := sdk.Checkout(ctx, req)
//	fmt.Println(res.Dir, res.Revision)
package sdk

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kisixing/srcdeps-core/internal/build"
	"github.com/kisixing/srcdeps-core/internal/config"
	"github.com/kisixing/srcdeps-core/internal/gav"
	"github.com/kisixing/srcdeps-core/internal/scm"
)

type (
	// Configuration is a fully built srcdeps configuration.
	Configuration = config.Configuration

	// ScmRepository is one configured source repository.
	ScmRepository = config.ScmRepository

	// Request describes the build of one source dependency.
	Request = build.Request

	// BuildRequestID identifies a Request by the fields that affect its
	// output. It is comparable and usable as a map key.
	BuildRequestID = build.BuildRequestID
)

// LoadOptions configures where the configuration is read from.
type LoadOptions struct {
	// Path to the project directory. Defaults to "." if empty.
	Path string

	// ConfigPath is the path to a srcdeps YAML, JSON or JSONC file.
	// If empty, auto-detects .mvn/srcdeps.yaml, srcdeps.yaml, srcdeps.yml,
	// srcdeps.json or srcdeps.jsonc in Path.
	ConfigPath string
}

// RequestOptions configures NewRequest.
type RequestOptions struct {
	// SourcesDirectory overrides the configured sources directory. When both
	// are empty, ~/.m2/srcdeps is used.
	SourcesDirectory string

	// BuildEnvironment holds extra environment variables for the build.
	BuildEnvironment map[string]string

	// NoDefaultBuildEnvironment stops the build from inheriting the
	// environment of the current process.
	NoDefaultBuildEnvironment bool

	// DependentProjectRoot is the project that depends on the source
	// dependency. Defaults to the current directory.
	DependentProjectRoot string
}

// CheckoutResult describes checked out sources.
type CheckoutResult struct {
	// URL is the SCM URL the sources came from.
	URL string

	// Dir is the directory holding the sources.
	Dir string

	// Revision is the full commit hash checked out.
	Revision string
}

// Load reads the configuration file, applies defaults and inheritance, and
// builds the Configuration.
func Load(opts LoadOptions) (*Configuration, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.FindFile(path)
	}
	if configPath == "" {
		return nil, fmt.Errorf("no configuration file in %s: looked for %s", path, strings.Join(config.FileNames(), ", "))
	}

	b, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", configPath, err)
	}
	return buildConfig(b)
}

// Parse reads a YAML configuration document, applies defaults and
// inheritance, and builds the Configuration.
func Parse(document []byte) (*Configuration, error) {
	b, err := config.LoadFromBytes(document)
	if err != nil {
		return nil, err
	}
	return buildConfig(b)
}

func buildConfig(b *config.Builder) (*Configuration, error) {
	cfg, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("building configuration: %w", err)
	}
	return cfg, nil
}

// NewRequest selects the repository that includes the dependency given as
// groupId:artifactId:version and describes its build. The version must be a
// source version such as 1.0-SRC-revision-0a5ab902.
func NewRequest(cfg *Configuration, coordinate string, opts RequestOptions) (*Request, error) {
	dep, err := gav.Parse(coordinate)
	if err != nil {
		return nil, err
	}
	repo, ok := cfg.FindRepository(dep)
	if !ok {
		return nil, fmt.Errorf("no repository includes %s", dep)
	}

	sources := opts.SourcesDirectory
	if sources == "" {
		if sources, err = cfg.ResolveSourcesDirectory(); err != nil {
			return nil, err
		}
	}
	project := opts.DependentProjectRoot
	if project == "" {
		project = "."
	}
	if project, err = filepath.Abs(project); err != nil {
		return nil, fmt.Errorf("resolving project path: %w", err)
	}

	buildOpts := []build.Option{
		build.WithSourcesDirectory(sources),
		build.WithDependentProjectRoot(project),
		build.WithAddDefaultBuildEnvironment(!opts.NoDefaultBuildEnvironment),
	}
	if opts.BuildEnvironment != nil {
		buildOpts = append(buildOpts, build.WithBuildEnvironment(opts.BuildEnvironment))
	}
	return build.NewRequest(cfg, repo, dep, buildOpts...)
}

// Checkout clones or updates the sources of r in r.ProjectRootDirectory and
// checks out its source version. SCM URLs are tried in order.
func Checkout(ctx context.Context, r *Request) (CheckoutResult, error) {
	res, err := scm.NewGit().Checkout(ctx, r)
	if err != nil {
		return CheckoutResult{}, err
	}
	return CheckoutResult{URL: res.URL, Dir: res.Dir, Revision: res.Revision}, nil
}
