package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratorCodeShape(t *testing.T) {
	gen := NewGenerator(DefaultCodeAlphabet, DefaultCodeLength)

	for i := 0; i < 100; i++ {
		code := gen.Generate()
		require.Len(t, code, DefaultCodeLength)
		for _, ch := range code {
			require.True(t, strings.ContainsRune(DefaultCodeAlphabet, ch), "unexpected character %q in code %q", ch, code)
		}
	}
}

func TestGeneratorCustomAlphabet(t *testing.T) {
	gen := NewGenerator("AB", 4)

	code := gen.Generate()
	require.Len(t, code, 4)
	for _, ch := range code {
		require.Contains(t, []rune{'A', 'B'}, ch)
	}
}

func TestGeneratorDefaultsOnZeroValues(t *testing.T) {
	gen := NewGenerator("", 0)

	code := gen.Generate()
	require.Len(t, code, DefaultCodeLength)
}
