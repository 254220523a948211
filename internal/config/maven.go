package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kisixing/srcdeps-core/internal/config/tree"
)

// DefaultFailWithGoals are prepended to failWith goals unless addDefaults is
// switched off.
var DefaultFailWithGoals = []string{"release:prepare", "release:perform"}

const (
	failWithName    = "failWith"
	failWithoutName = "failWithout"
)

// MavenBuilder configures top level Maven settings.
type MavenBuilder struct {
	*tree.Container

	versionsMavenPluginVersion *tree.Scalar[string]
	failWith                   *MavenAssertionsBuilder
	failWithout                *MavenAssertionsBuilder

	err error
}

// NewMavenBuilder creates Maven settings with default values.
func NewMavenBuilder() *MavenBuilder {
	m := &MavenBuilder{
		versionsMavenPluginVersion: tree.String("versionsMavenPluginVersion", DefaultVersionsMavenPluginVersion,
			tree.NoInheritance[string](),
			tree.WithValidator(notBlank("versionsMavenPluginVersion"))),
		failWith:    NewFailWithBuilder(),
		failWithout: NewFailWithoutBuilder(),
	}
	m.Container = tree.NewContainer("maven", m.versionsMavenPluginVersion, m.failWith, m.failWithout)
	return m
}

// VersionsMavenPluginVersion sets the versions-maven-plugin version.
func (m *MavenBuilder) VersionsMavenPluginVersion(v string) *MavenBuilder {
	m.record(m.versionsMavenPluginVersion.Set(v))
	return m
}

// FailWith replaces the failWith assertions. a must come from
// NewFailWithBuilder.
func (m *MavenBuilder) FailWith(a *MavenAssertionsBuilder) *MavenBuilder {
	if a.Name() != failWithName {
		m.record(fmt.Errorf("%s assertions used as %s", a.Name(), failWithName))
		return m
	}
	m.failWith = a
	m.Add(a)
	return m
}

// FailWithout replaces the failWithout assertions. a must come from
// NewFailWithoutBuilder.
func (m *MavenBuilder) FailWithout(a *MavenAssertionsBuilder) *MavenBuilder {
	if a.Name() != failWithoutName {
		m.record(fmt.Errorf("%s assertions used as %s", a.Name(), failWithoutName))
		return m
	}
	m.failWithout = a
	m.Add(a)
	return m
}

func (m *MavenBuilder) record(err error) {
	if err != nil && m.err == nil {
		m.err = err
	}
}

// Err returns the first error recorded by a setter.
func (m *MavenBuilder) Err() error {
	return errors.Join(m.err, m.failWith.err, m.failWithout.err)
}

func (m *MavenBuilder) build() Maven {
	return Maven{
		VersionsMavenPluginVersion: m.versionsMavenPluginVersion.Value(),
		FailWith:                   m.failWith.build(),
		FailWithout:                m.failWithout.build(),
	}
}

// MavenAssertionsBuilder configures goals, profiles and properties checked
// against the top level Maven build.
type MavenAssertionsBuilder struct {
	*tree.Container

	// nil for failWithout
	addDefaults *tree.Scalar[bool]
	goals       *tree.List[string]
	profiles    *tree.List[string]
	properties  *tree.List[string]

	err error
}

// NewFailWithBuilder creates failWith assertions. DefaultFailWithGoals are
// included unless AddDefaults(false) is called.
func NewFailWithBuilder() *MavenAssertionsBuilder {
	a := &MavenAssertionsBuilder{
		addDefaults: tree.Bool("addDefaults", true, tree.NoInheritance[bool]()),
		goals:       assertionList("goals"),
		profiles:    assertionList("profiles"),
		properties:  assertionList("properties"),
	}
	a.Container = tree.NewContainer(failWithName, a.addDefaults, a.goals, a.profiles, a.properties)
	return a
}

// NewFailWithoutBuilder creates failWithout assertions.
func NewFailWithoutBuilder() *MavenAssertionsBuilder {
	a := &MavenAssertionsBuilder{
		goals:      assertionList("goals"),
		profiles:   assertionList("profiles"),
		properties: assertionList("properties"),
	}
	a.Container = tree.NewContainer(failWithoutName, a.goals, a.profiles, a.properties)
	return a
}

func assertionList(name string) *tree.List[string] {
	return tree.Strings(name, tree.WithElementValidator(notBlank(name)))
}

func (a *MavenAssertionsBuilder) record(err error) {
	if err != nil && a.err == nil {
		a.err = err
	}
}

// AddDefaults sets whether DefaultFailWithGoals are included.
func (a *MavenAssertionsBuilder) AddDefaults(add bool) *MavenAssertionsBuilder {
	if a.addDefaults == nil {
		a.record(fmt.Errorf("%s does not support addDefaults", a.Name()))
		return a
	}
	a.record(a.addDefaults.Set(add))
	return a
}

// Goals appends goals such as "release:prepare".
func (a *MavenAssertionsBuilder) Goals(goals ...string) *MavenAssertionsBuilder {
	a.record(a.goals.Add(goals...))
	return a
}

// Profiles appends profile ids.
func (a *MavenAssertionsBuilder) Profiles(profiles ...string) *MavenAssertionsBuilder {
	a.record(a.profiles.Add(profiles...))
	return a
}

// Properties appends property names.
func (a *MavenAssertionsBuilder) Properties(properties ...string) *MavenAssertionsBuilder {
	a.record(a.properties.Add(properties...))
	return a
}

func (a *MavenAssertionsBuilder) build() MavenAssertions {
	goals := a.goals.AsSet()
	if a.addDefaults != nil && a.addDefaults.Value() {
		merged := slices.Clone(DefaultFailWithGoals)
		for _, g := range goals {
			if !slices.Contains(merged, g) {
				merged = append(merged, g)
			}
		}
		goals = merged
	}
	return MavenAssertions{
		Goals:      goals,
		Profiles:   a.profiles.AsSet(),
		Properties: a.properties.AsSet(),
	}
}
