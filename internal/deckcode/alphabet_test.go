package deckcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabetInvariants(t *testing.T) {
	require.Len(t, alphabet, 64)
	seen := map[byte]bool{}
	for i := 0; i < len(alphabet); i++ {
		assert.False(t, seen[alphabet[i]], "duplicate symbol %q", alphabet[i])
		seen[alphabet[i]] = true
	}

	for i := 0; i < len(alphabet); i++ {
		v, ok := symbolValue(alphabet[i])
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok := symbolValue('@')
	assert.False(t, ok)
}

func TestExpansionTableInvariants(t *testing.T) {
	for _, table := range []string{tableA, tableB} {
		require.Len(t, table, 10)
		seen := map[byte]bool{}
		for i := 0; i < len(table); i++ {
			assert.False(t, seen[table[i]], "duplicate symbol %q", table[i])
			seen[table[i]] = true
		}
	}
}

func TestSetCode(t *testing.T) {
	assert.Equal(t, "ex", setCode('e'))
	assert.Equal(t, "prm", setCode('p'))
	assert.Equal(t, "B", setCode('B'))
}
