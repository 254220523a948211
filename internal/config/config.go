// Package config provides the srcdeps configuration model: mutable builders
// forming a configuration tree, document loading from YAML and JSONC,
// defaults and inheritance through the tree walker, and the immutable
// Configuration produced by Builder.Build.
package config

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/kisixing/srcdeps-core/internal/gav"
	"github.com/kisixing/srcdeps-core/internal/scalar"
)

const latestConfigModelVersion = "2.2"

var supportedConfigModelVersions = []string{"2.0", "2.1", latestConfigModelVersion}

// DefaultVersionsMavenPluginVersion is the versions-maven-plugin used to set
// the version of a dependency source tree before building it.
const DefaultVersionsMavenPluginVersion = "2.3"

// SupportedConfigModelVersions returns the accepted configModelVersion values.
func SupportedConfigModelVersions() []string {
	return slices.Clone(supportedConfigModelVersions)
}

// LatestConfigModelVersion returns the newest and default configModelVersion.
func LatestConfigModelVersion() string {
	return latestConfigModelVersion
}

// DefaultForwardProperties returns the property patterns forwarded when the
// document declares none.
func DefaultForwardProperties() []string {
	return []string{"srcdeps.mvn.*"}
}

func validateConfigModelVersion(v string) error {
	if !slices.Contains(supportedConfigModelVersions, v) {
		return fmt.Errorf("cannot parse configModelVersion %q: expected any of [%s]",
			v, strings.Join(supportedConfigModelVersions, ", "))
	}
	return nil
}

// validateForwardProperty accepts a literal property name or a prefix
// ending in "*".
func validateForwardProperty(p string) error {
	if p == "" {
		return fmt.Errorf("empty forward property")
	}
	if i := strings.IndexByte(p, '*'); i >= 0 && i != len(p)-1 {
		return fmt.Errorf("invalid forward property %q: '*' is only allowed at the end", p)
	}
	return nil
}

// Configuration is the fully built srcdeps configuration. It shares no
// state with the Builder it came from; treat it as read-only.
type Configuration struct {
	ConfigModelVersion       string           `json:"configModelVersion"`
	ForwardProperties        []string         `json:"forwardProperties"`
	BuilderIo                BuilderIo        `json:"builderIo"`
	Skip                     bool             `json:"skip"`
	SourcesDirectory         string           `json:"sourcesDirectory"`
	Verbosity                scalar.Verbosity `json:"verbosity"`
	BuildTimeout             scalar.Duration  `json:"buildTimeout"`
	AddDefaultBuildArguments bool             `json:"addDefaultBuildArguments"`
	SkipTests                bool             `json:"skipTests"`
	Maven                    Maven            `json:"maven"`
	Repositories             []ScmRepository  `json:"repositories"`
}

// FindRepository returns the first repository, in document order, whose
// GAV set contains g.
func (c *Configuration) FindRepository(g gav.Gav) (ScmRepository, bool) {
	for _, r := range c.Repositories {
		if r.GavSet.Contains(g) {
			return r, true
		}
	}
	return ScmRepository{}, false
}

// ForwardsProperty reports whether a property name is matched by one of the
// forward property patterns.
func (c *Configuration) ForwardsProperty(name string) bool {
	for _, p := range c.ForwardProperties {
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		} else if p == name {
			return true
		}
	}
	return false
}

// Equal compares two configurations field by field, treating
// ForwardProperties as a set.
func (c *Configuration) Equal(other *Configuration) bool {
	if c == nil || other == nil {
		return c == other
	}
	a, b := *c, *other
	a.ForwardProperties = sortedSet(a.ForwardProperties)
	b.ForwardProperties = sortedSet(b.ForwardProperties)
	return reflect.DeepEqual(a, b)
}

func sortedSet(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

// BuilderIo holds the stream redirects of spawned dependency builds.
type BuilderIo struct {
	Stdin  scalar.Redirect `json:"stdin"`
	Stdout scalar.Redirect `json:"stdout"`
	Stderr scalar.Redirect `json:"stderr"`
}

// Maven holds top level Maven settings. Repositories inherit the plugin
// version unless they override it.
type Maven struct {
	VersionsMavenPluginVersion string          `json:"versionsMavenPluginVersion"`
	FailWith                   MavenAssertions `json:"failWith"`
	FailWithout                MavenAssertions `json:"failWithout"`
}

// MavenAssertions lists goals, profiles and properties whose presence (for
// failWith) or absence (for failWithout) in the top level build makes
// srcdeps fail.
type MavenAssertions struct {
	Goals      []string `json:"goals"`
	Profiles   []string `json:"profiles"`
	Properties []string `json:"properties"`
}

// IsEmpty reports whether no assertion is configured.
func (a MavenAssertions) IsEmpty() bool {
	return len(a.Goals) == 0 && len(a.Profiles) == 0 && len(a.Properties) == 0
}

// ScmRepository describes where and how dependencies matching GavSet are
// built from source.
type ScmRepository struct {
	ID                       string              `json:"id"`
	GavSet                   gav.Set             `json:"gavSet"`
	URLs                     []string            `json:"urls"`
	BuildArguments           []string            `json:"buildArguments"`
	AddDefaultBuildArguments bool                `json:"addDefaultBuildArguments"`
	SkipTests                bool                `json:"skipTests"`
	BuildTimeout             scalar.Duration     `json:"buildTimeout"`
	Verbosity                scalar.Verbosity    `json:"verbosity"`
	Maven                    ScmRepositoryMaven  `json:"maven"`
	Gradle                   ScmRepositoryGradle `json:"gradle"`
}

// ScmRepositoryMaven holds Maven settings of a single repository.
type ScmRepositoryMaven struct {
	VersionsMavenPluginVersion string `json:"versionsMavenPluginVersion"`
}

// ScmRepositoryGradle holds Gradle settings of a single repository.
type ScmRepositoryGradle struct {
	ModelTransformer scalar.CharStreamSource `json:"modelTransformer"`
}
