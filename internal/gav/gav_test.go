package gav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	g, err := Parse("org.example:lib:1.0-SRC-revision-abc")
	require.NoError(t, err)
	require.Equal(t, Gav{GroupID: "org.example", ArtifactID: "lib", Version: "1.0-SRC-revision-abc"}, g)
	require.Equal(t, "org.example:lib:1.0-SRC-revision-abc", g.String())

	for _, bad := range []string{"", "a:b", "a::c", "a:b:c:d"} {
		_, err := Parse(bad)
		require.Error(t, err, bad)
	}
}

func TestParsePattern_Canonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"group1", "group1:*:*"},
		{"group2:artifact2:*", "group2:artifact2:*"},
		{"group4:artifact4", "group4:artifact4:*"},
		{"group4:artifact4:1.2.3", "group4:artifact4:1.2.3"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParsePattern(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, p.String())
		})
	}

	_, err := ParsePattern("")
	require.Error(t, err)
	_, err = ParsePattern("a:b:c:d")
	require.Error(t, err)
	_, err = ParsePattern("a::c")
	require.Error(t, err)
}

func TestPattern_Matches(t *testing.T) {
	g := Gav{GroupID: "org.example", ArtifactID: "core-lib", Version: "1.2.3-SRC-branch-main"}
	tests := []struct {
		pattern string
		want    bool
	}{
		{"org.example", true},
		{"org.*", true},
		{"*.example", true},
		{"org.other", false},
		{"org.example:core-*", true},
		{"org.example:*-lib:1.2.*", true},
		{"org.example:core-lib:1.2.3", false},
		{"org.example:core-lib:*-SRC-*", true},
		{"o*e*e", true},
		{"org.example:c*x", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			require.Equal(t, tt.want, MustParsePattern(tt.pattern).Matches(g))
		})
	}
}

func TestSet_Contains(t *testing.T) {
	s, err := NewSet(
		[]string{"group1", "group2:artifact2:*"},
		[]string{"group1:excluded", "group2:artifact2:0.*"},
	)
	require.NoError(t, err)

	require.True(t, s.Contains(Gav{"group1", "a", "1.0"}))
	require.False(t, s.Contains(Gav{"group1", "excluded", "1.0"}))
	require.True(t, s.Contains(Gav{"group2", "artifact2", "1.0"}))
	require.False(t, s.Contains(Gav{"group2", "artifact2", "0.9"}))
	require.False(t, s.Contains(Gav{"group3", "a", "1.0"}))
}

func TestSet_EmptyIncludesMatchNothing(t *testing.T) {
	s, err := NewSet(nil, nil)
	require.NoError(t, err)
	require.False(t, s.Contains(Gav{"g", "a", "v"}))
}

func TestSet_AppendSerialization(t *testing.T) {
	s, err := NewSet([]string{"group1", "group2:artifact2:*"}, []string{"group3", "group4:artifact4"})
	require.NoError(t, err)

	require.Equal(t, "group1:*:*,group2:artifact2:*", string(s.AppendIncludes(nil)))
	require.Equal(t, "group3:*:*,group4:artifact4:*", string(s.AppendExcludes(nil)))
	require.Equal(t, "prefix|group3:*:*,group4:artifact4:*", string(s.AppendExcludes([]byte("prefix|"))))
	require.Equal(t, "[includes: group1:*:*,group2:artifact2:*; excludes: group3:*:*,group4:artifact4:*]", s.String())
}

func TestNewSet_InvalidPattern(t *testing.T) {
	_, err := NewSet([]string{"ok"}, []string{"a:b:c:d"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "exclude")
}
