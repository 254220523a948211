package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const projectConfig = `configModelVersion: 2.2
verbosity: info
repositories:
  org.repo1:
    includes:
    - org.example
    urls:
    - git:https://example.com/repo1.git
  org.repo2:
    includes:
    - org.other:lib
    urls:
    - git:https://example.com/repo2.git
    verbosity: debug
`

func writeProject(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return dir
}

func TestLoadConfig_WithFlag(t *testing.T) {
	dir := writeProject(t, "custom.yaml", projectConfig)
	flagConfig = filepath.Join(dir, "custom.yaml")
	defer func() { flagConfig = "" }()

	cfg, err := loadConfig(t.TempDir())
	require.NoError(t, err)
	require.Len(t, cfg.Repositories, 2)
	require.Equal(t, "debug", cfg.Repositories[1].Verbosity.String())
	require.Equal(t, "info", cfg.Repositories[0].Verbosity.String())
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(t.TempDir())
	require.ErrorContains(t, err, "no configuration file")

	flagConfig = "/nonexistent/path/srcdeps.yaml"
	defer func() { flagConfig = "" }()
	_, err = loadConfig(t.TempDir())
	require.ErrorContains(t, err, "reading config file")
}

func TestValidateCmd(t *testing.T) {
	dir := writeProject(t, "srcdeps.yaml", projectConfig)
	out, err := run(t, "--path", dir, "validate")
	require.NoError(t, err)
	require.Equal(t, "OK (2 repositories)\n", out)
}

func TestValidateCmd_JSONC(t *testing.T) {
	dir := writeProject(t, "srcdeps.jsonc", `{
  // comments are allowed
  "repositories": {
    "org.repo1": {"includes": ["org.example"], "urls": ["git:https://example.com/repo1.git"]},
  },
}`)
	out, err := run(t, "--path", dir, "validate")
	require.NoError(t, err)
	require.Equal(t, "OK (1 repositories)\n", out)
}

func TestValidateCmd_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad verbosity", "verbosity: loud\n", "srcdeps/verbosity"},
		{"unknown key", "colour: red\n", "colour"},
		{"missing urls", "repositories:\n  r1:\n    includes:\n    - org.example\n", "at least one URL is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeProject(t, "srcdeps.yaml", tt.content)
			_, err := run(t, "--path", dir, "validate")
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestShowConfigCmd_YAML(t *testing.T) {
	dir := writeProject(t, "srcdeps.yaml", projectConfig)
	out, err := run(t, "--path", dir, "show-config")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "configModelVersion: \"2.2\"\n") || strings.HasPrefix(out, "configModelVersion: 2.2\n"), out)
	require.Contains(t, out, "buildTimeout: unbounded")
	require.Contains(t, out, "org.repo2:")
	require.Contains(t, out, "skipTests: true")
}

func TestShowConfigCmd_JSON(t *testing.T) {
	dir := writeProject(t, "srcdeps.yaml", projectConfig)
	out, err := run(t, "--path", dir, "show-config", "--output", "json")
	require.NoError(t, err)

	var doc struct {
		ConfigModelVersion string `json:"configModelVersion"`
		Verbosity          string `json:"verbosity"`
		Repositories       []struct {
			ID        string `json:"id"`
			Verbosity string `json:"verbosity"`
		} `json:"repositories"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, "2.2", doc.ConfigModelVersion)
	require.Equal(t, "info", doc.Verbosity)
	require.Len(t, doc.Repositories, 2)
	require.Equal(t, "org.repo2", doc.Repositories[1].ID)
	require.Equal(t, "debug", doc.Repositories[1].Verbosity)
}

func TestShowConfigCmd_UnknownOutput(t *testing.T) {
	dir := writeProject(t, "srcdeps.yaml", projectConfig)
	_, err := run(t, "--path", dir, "show-config", "--output", "xml")
	require.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestIDCmd(t *testing.T) {
	dir := writeProject(t, "srcdeps.yaml", projectConfig)
	out, err := run(t, "--path", dir, "id", "org.example:core:1.0-SRC-revision-abc123")
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^org\.repo1 [0-9a-f]{40}\n$`), out)

	// artifactId is not part of the identity
	again, err := run(t, "--path", dir, "id", "org.example:other:1.0-SRC-revision-abc123")
	require.NoError(t, err)
	require.Equal(t, out, again)

	other, err := run(t, "--path", dir, "id", "org.other:lib:1.0-SRC-revision-abc123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(other, "org.repo2 "))
	require.NotEqual(t, out[len("org.repo1 "):], other[len("org.repo2 "):])
}

func TestIDCmd_Errors(t *testing.T) {
	dir := writeProject(t, "srcdeps.yaml", projectConfig)
	tests := []struct {
		name    string
		arg     string
		wantErr string
	}{
		{"no repository", "com.unknown:lib:1.0-SRC-tag-v1", "no repository includes"},
		{"not a source version", "org.example:core:1.0", "org.example:core:1.0"},
		{"bad coordinate", "org.example", "org.example"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "--path", dir, "id", tt.arg)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
