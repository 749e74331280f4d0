package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	tests := []struct {
		name    string
		nBytes  int
		wantLen int
	}{
		{name: "default on zero", nBytes: 0, wantLen: 8},
		{name: "default on negative", nBytes: -3, wantLen: 8},
		{name: "four bytes", nBytes: 4, wantLen: 8},
		{name: "sixteen bytes", nBytes: 16, wantLen: 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.nBytes)
			id, err := g.Generate()
			require.NoError(t, err)
			assert.Len(t, id, tt.wantLen)
			assert.Regexp(t, "^[0-9a-f]+$", id)
		})
	}
}

func TestGenerator_Distribution(t *testing.T) {
	g := New(8)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id, err := g.Generate()
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup, "duplicate token %s after %d draws", id, i)
		seen[id] = struct{}{}
	}
}

func BenchmarkGenerator_Generate(b *testing.B) {
	g := New(4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.Generate()
	}
}
