package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrite_ExplicitRoundTrip(t *testing.T) {
	for name, doc := range map[string]string{"full": fullDocument, "minimal": minimalDocument} {
		t.Run(name, func(t *testing.T) {
			b, err := LoadFromBytes([]byte(doc))
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, b.Write(&buf, WriteExplicit))

			again, err := LoadFromBytes(buf.Bytes())
			require.NoError(t, err, buf.String())

			want, err := b.ApplyDefaults().Build()
			require.NoError(t, err)
			got, err := again.ApplyDefaults().Build()
			require.NoError(t, err)
			require.True(t, want.Equal(got), buf.String())
		})
	}
}

func TestWrite_QuotesStringsThatReadAsOtherTypes(t *testing.T) {
	b := NewBuilder().
		SourcesDirectory("null").
		Repository(minimalRepo("org.repo1").BuildArgument("", "~", "true", "-Dx=1"))

	var buf bytes.Buffer
	require.NoError(t, b.Write(&buf, WriteExplicit))
	out := buf.String()
	require.Contains(t, out, `sourcesDirectory: "null"`)
	require.Contains(t, out, `- ""`)
	require.Contains(t, out, "- -Dx=1")

	again, err := LoadFromBytes(buf.Bytes())
	require.NoError(t, err, out)
	cfg, err := again.Build()
	require.NoError(t, err)
	require.Equal(t, "null", cfg.SourcesDirectory)
	require.Equal(t, []string{"", "~", "true", "-Dx=1"}, cfg.Repositories[0].BuildArguments)
}

func TestWrite_KeepsTreeOrder(t *testing.T) {
	b, err := LoadFromBytes([]byte(minimalDocument))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, b.Write(&buf, WriteExplicit))
	out := buf.String()

	require.NotContains(t, out, "verbosity")
	require.Less(t, strings.Index(out, "sourcesDirectory"), strings.Index(out, "repositories"))
	require.Less(t, strings.Index(out, "includes"), strings.Index(out, "urls"))
}

func TestWrite_Effective(t *testing.T) {
	b, err := LoadFromBytes([]byte(minimalDocument))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, b.ApplyDefaults().Write(&buf, WriteEffective))
	out := buf.String()

	require.Contains(t, out, "configModelVersion")
	require.Contains(t, out, "verbosity: warn")
	require.Contains(t, out, "buildTimeout: unbounded")
	require.Contains(t, out, "srcdeps.mvn.*")
	require.Contains(t, out, "modelTransformer: classpath:/gradle/srcdeps-model-transformer.gradle")

	// the effective document reads back to the same configuration
	again, err := LoadFromBytes(buf.Bytes())
	require.NoError(t, err, out)
	want, err := b.Build()
	require.NoError(t, err)
	got, err := again.ApplyDefaults().Build()
	require.NoError(t, err)
	require.True(t, want.Equal(got), out)
}

func TestWrite_EmptyBuilder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewBuilder().Write(&buf, WriteExplicit))
	require.Equal(t, "{}\n", buf.String())
}
