// Package e2e contains end-to-end tests that run configuration documents
// through the whole pipeline: reader, defaults and inheritance, builder,
// build request identity and checkout, against real (temporary) git
// repositories.
package e2e

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kisixing/srcdeps-core/internal/build"
	"github.com/kisixing/srcdeps-core/internal/buildcache"
	"github.com/kisixing/srcdeps-core/internal/config"
	"github.com/kisixing/srcdeps-core/internal/scm"
	"github.com/kisixing/srcdeps-core/internal/testutil"
	"github.com/kisixing/srcdeps-core/pkg/sdk"
)

const yamlDocument = `configModelVersion: 2.2
verbosity: info
buildTimeout: 40m
repositories:
  org.repo1:
    includes:
    - org.example
    urls:
    - git:https://example.com/repo1.git
    buildArguments:
    - -Pquick
  org.repo2:
    includes:
    - org.other:*
    excludes:
    - org.other:legacy
    urls:
    - git:https://example.com/repo2.git
    skipTests: false
`

const jsoncDocument = `{
  "configModelVersion": "2.2",
  "verbosity": "info", // the default is warn
  "buildTimeout": "40m",
  "repositories": {
    "org.repo1": {
      "includes": ["org.example"],
      "urls": ["git:https://example.com/repo1.git"],
      "buildArguments": ["-Pquick"],
    },
    "org.repo2": {
      "includes": ["org.other:*"],
      "excludes": ["org.other:legacy"],
      "urls": ["git:https://example.com/repo2.git"],
      "skipTests": false,
    },
  },
}`

var coordinates = []string{
	"org.example:core:1.0-SRC-revision-0a5ab902",
	"org.example:api:2.0-SRC-branch-main",
	"org.other:lib:3.1-SRC-tag-v3.1",
}

// identities builds the document and returns repository id and build
// identity of each coordinate.
func identities(t *testing.T, b *config.Builder) []string {
	t.Helper()
	cfg, err := b.ApplyDefaults().Build()
	require.NoError(t, err)

	var out []string
	for _, c := range coordinates {
		r, err := sdk.NewRequest(cfg, c, sdk.RequestOptions{SourcesDirectory: "/srv/srcdeps"})
		require.NoError(t, err)
		out = append(out, r.RepositoryID+" "+r.ID().String())
	}
	return out
}

func TestPipeline_DocumentFormsAgree(t *testing.T) {
	fromYAML, err := config.LoadFromBytes([]byte(yamlDocument))
	require.NoError(t, err)
	want := identities(t, fromYAML)
	require.Len(t, want, 3)
	require.NotEqual(t, want[0], want[1])

	t.Run("jsonc", func(t *testing.T) {
		b, err := config.LoadFromJSONC([]byte(jsoncDocument))
		require.NoError(t, err)
		require.Equal(t, want, identities(t, b))
	})

	t.Run("builder api", func(t *testing.T) {
		b := config.NewBuilder().
			ConfigModelVersion("2.2").
			Verbosity(mustVerbosity(t, "info")).
			BuildTimeout(mustDuration(t, "40m")).
			Repository(config.NewScmRepositoryBuilder("org.repo1").
				Include("org.example").
				URL("git:https://example.com/repo1.git").
				BuildArgument("-Pquick")).
			Repository(config.NewScmRepositoryBuilder("org.repo2").
				Include("org.other:*").
				Exclude("org.other:legacy").
				URL("git:https://example.com/repo2.git").
				SkipTests(false))
		require.NoError(t, b.Err())
		require.Equal(t, want, identities(t, b))
	})

	t.Run("explicit round trip", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, fromYAML.Write(&buf, config.WriteExplicit))
		b, err := config.LoadFromBytes(buf.Bytes())
		require.NoError(t, err)
		require.Equal(t, want, identities(t, b))
	})

	t.Run("effective round trip", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, fromYAML.Write(&buf, config.WriteEffective))
		b, err := config.LoadFromBytes(buf.Bytes())
		require.NoError(t, err)
		require.Equal(t, want, identities(t, b))
	})
}

func TestPipeline_SelectorsAliasOnOlderModels(t *testing.T) {
	doc := `configModelVersion: 2.1
repositories:
  org.repo1:
    selectors:
    - org.example
    urls:
    - git:https://example.com/repo1.git
`
	b, err := config.LoadFromBytes([]byte(doc))
	require.NoError(t, err)
	cfg, err := b.ApplyDefaults().Build()
	require.NoError(t, err)

	repo, ok := cfg.FindRepository(mustGav(t, "org.example:core:1.0-SRC-tag-v1"))
	require.True(t, ok)
	require.Equal(t, "org.repo1", repo.ID)
}

func TestPipeline_InheritanceReachesRequests(t *testing.T) {
	b, err := config.LoadFromBytes([]byte(yamlDocument))
	require.NoError(t, err)
	cfg, err := b.ApplyDefaults().Build()
	require.NoError(t, err)

	r1, err := sdk.NewRequest(cfg, coordinates[0], sdk.RequestOptions{SourcesDirectory: "/srv"})
	require.NoError(t, err)
	require.Equal(t, "info", r1.Verbosity.String())
	require.Equal(t, "40m0s", r1.Timeout.String())
	require.True(t, r1.SkipTests)
	require.Equal(t, []string{"-Pquick"}, r1.BuildArguments)

	r2, err := sdk.NewRequest(cfg, coordinates[2], sdk.RequestOptions{SourcesDirectory: "/srv"})
	require.NoError(t, err)
	require.False(t, r2.SkipTests)
	require.Empty(t, r2.BuildArguments)

	_, err = sdk.NewRequest(cfg, "org.other:legacy:1.0-SRC-tag-v1", sdk.RequestOptions{})
	require.ErrorContains(t, err, "no repository includes")
}

func TestPipeline_CheckoutThroughCache(t *testing.T) {
	testutil.ServeLocalRepos()

	src := testutil.NewTestRepo(t)
	c1 := src.WriteConfig("configModelVersion: 2.2\n")
	src.CreateAnnotatedTag("v1.0", c1, "release 1.0")
	c2 := src.AddCommit("feature work")
	src.CreateBranch("feature", c2)

	project := t.TempDir()
	sources := t.TempDir()
	doc := fmt.Sprintf(`sourcesDirectory: %s
repositories:
  org.repo1:
    includes:
    - org.example
    urls:
    - git:%s
`, sources, src.GitDir())
	require.NoError(t, os.WriteFile(filepath.Join(project, "srcdeps.yaml"), []byte(doc), 0o644))

	cfg, err := sdk.Load(sdk.LoadOptions{Path: project})
	require.NoError(t, err)

	cache := buildcache.New()
	git := scm.NewGit()
	checkout := func(ctx context.Context, r *build.Request) (buildcache.Outcome, error) {
		res, err := git.Checkout(ctx, r)
		return buildcache.Outcome{Dir: res.Dir, Revision: res.Revision}, err
	}

	tests := []struct {
		coordinate string
		revision   string
		cached     bool
	}{
		{"org.example:core:1.0-SRC-tag-v1.0", c1, false},
		{"org.example:api:1.0-SRC-tag-v1.0", c1, true},
		{"org.example:core:1.1-SRC-branch-feature", c2, false},
		{"org.example:core:1.0-SRC-tag-v1.0", c1, true},
	}
	for _, tt := range tests {
		r, err := sdk.NewRequest(cfg, tt.coordinate, sdk.RequestOptions{DependentProjectRoot: project})
		require.NoError(t, err)
		o, cached, err := cache.Do(context.Background(), r, checkout)
		require.NoError(t, err, tt.coordinate)
		require.Equal(t, tt.cached, cached, tt.coordinate)
		require.Equal(t, tt.revision, o.Revision, tt.coordinate)
		require.Equal(t, filepath.Join(sources, "org.repo1"), o.Dir)
	}
	require.Equal(t, 2, cache.Len())
}
