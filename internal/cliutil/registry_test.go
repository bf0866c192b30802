package cliutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownPasses(t *testing.T) {
	for _, name := range []string{"tdce", "lvn", "lvn-only", "lvn-constprop", "lvn-constprop-only"} {
		p, ok := Lookup(name)
		require.True(t, ok, "expected %q to be registered", name)
		assert.NotNil(t, p)
	}
}

func TestLookupUnknownPassFails(t *testing.T) {
	_, ok := Lookup("not-a-real-pass")
	assert.False(t, ok)
}

func TestNamesIsSorted(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}
