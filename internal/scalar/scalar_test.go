package scalar

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestVerbosity_StringAndParse(t *testing.T) {
	tests := []struct {
		v    Verbosity
		want string
	}{
		{VerbosityTrace, "trace"},
		{VerbosityDebug, "debug"},
		{VerbosityInfo, "info"},
		{VerbosityWarn, "warn"},
		{VerbosityError, "error"},
		{Verbosity(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.v.String())
			if tt.want == "unknown" {
				return
			}
			parsed, err := ParseVerbosity(tt.want)
			require.NoError(t, err)
			require.Equal(t, tt.v, parsed)
		})
	}
}

func TestVerbosity_Ordered(t *testing.T) {
	require.Less(t, VerbosityTrace, VerbosityDebug)
	require.Less(t, VerbosityDebug, VerbosityWarn)
}

func TestParseVerbosity_CaseInsensitive(t *testing.T) {
	v, err := ParseVerbosity("DEBUG")
	require.NoError(t, err)
	require.Equal(t, VerbosityDebug, v)

	_, err = ParseVerbosity("loud")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown verbosity")
}

func TestScalars_YAMLText(t *testing.T) {
	out, err := yaml.Marshal(struct {
		V Verbosity `yaml:"v"`
		D Duration  `yaml:"d"`
	}{V: VerbosityTrace, D: Unbounded})
	require.NoError(t, err)
	require.Equal(t, "v: trace\nd: unbounded\n", string(out))
}

func TestScalars_JSONText(t *testing.T) {
	in := struct {
		V Verbosity        `json:"v"`
		D Duration         `json:"d"`
		R Redirect         `json:"r"`
		S CharStreamSource `json:"s"`
	}{
		V: VerbosityDebug,
		D: NewDuration(90 * time.Second),
		R: Redirect{Kind: RedirectAppend, Path: "/tmp/build.log"},
		S: CharStreamSource{Scheme: SchemeFile, Resource: "/x.gradle"},
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.JSONEq(t, `{"v":"debug","d":"1m30s","r":"append:/tmp/build.log","s":"file:/x.gradle"}`, string(data))
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    Duration
		wantErr bool
	}{
		{in: "35m", want: NewDuration(35 * time.Minute)},
		{in: "64s", want: NewDuration(64 * time.Second)},
		{in: "1h30m", want: NewDuration(90 * time.Minute)},
		{in: "unbounded", want: Unbounded},
		{in: "MAX", want: Unbounded},
		{in: "-5s", wantErr: true},
		{in: "soon", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDuration_Milliseconds(t *testing.T) {
	require.Equal(t, int64(64000), NewDuration(64*time.Second).Milliseconds())
	require.Equal(t, int64(math.MaxInt64), Unbounded.Milliseconds())
	require.Equal(t, "unbounded", Unbounded.String())
	require.Equal(t, "35m0s", NewDuration(35*time.Minute).String())
	require.True(t, Unbounded.IsUnbounded())
}

func TestParseRedirects(t *testing.T) {
	tests := []struct {
		name    string
		parse   func(string) (Redirect, error)
		in      string
		want    Redirect
		wantErr bool
	}{
		{name: "stdin inherit", parse: ParseStdin, in: "inherit", want: Inherit},
		{name: "stdin read", parse: ParseStdin, in: "read:/path/to/input/file", want: Redirect{RedirectRead, "/path/to/input/file"}},
		{name: "stdin write rejected", parse: ParseStdin, in: "write:/x", wantErr: true},
		{name: "stdout write", parse: ParseStdout, in: "write:/out", want: Redirect{RedirectWrite, "/out"}},
		{name: "stdout append", parse: ParseStdout, in: "append:/out", want: Redirect{RedirectAppend, "/out"}},
		{name: "stdout err2out rejected", parse: ParseStdout, in: "err2out", wantErr: true},
		{name: "stderr err2out", parse: ParseStderr, in: "err2out", want: Redirect{Kind: RedirectErr2Out}},
		{name: "missing path", parse: ParseStderr, in: "write:", wantErr: true},
		{name: "unexpected path", parse: ParseStderr, in: "inherit:/x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.in, got.String())
		})
	}
}

func TestParseCharStreamSource(t *testing.T) {
	src, err := ParseCharStreamSource("file:my/file")
	require.NoError(t, err)
	require.Equal(t, CharStreamSource{Scheme: SchemeFile, Resource: "my/file"}, src)
	require.Equal(t, "file:my/file", src.String())

	_, err = ParseCharStreamSource("http://example.com")
	require.Error(t, err)
	_, err = ParseCharStreamSource("nocolon")
	require.Error(t, err)
}
