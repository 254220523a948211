package e2e

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kisixing/srcdeps-core/internal/gav"
	"github.com/kisixing/srcdeps-core/internal/scalar"
)

func mustVerbosity(t *testing.T, s string) scalar.Verbosity {
	t.Helper()
	v, err := scalar.ParseVerbosity(s)
	require.NoError(t, err)
	return v
}

func mustDuration(t *testing.T, s string) scalar.Duration {
	t.Helper()
	d, err := scalar.ParseDuration(s)
	require.NoError(t, err)
	return d
}

func mustGav(t *testing.T, s string) gav.Gav {
	t.Helper()
	g, err := gav.Parse(s)
	require.NoError(t, err)
	return g
}
