package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestPlayerNamePassesShortNames(t *testing.T) {
	require.Equal(t, "Alice", PlayerName("Alice"))
}

func TestPlayerNameDefaultsWhenEmpty(t *testing.T) {
	require.Equal(t, DefaultPlayerName, PlayerName(""))
}

func TestPlayerNameTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("a", MaxPlayerNameLen+10)
	require.Equal(t, strings.Repeat("a", MaxPlayerNameLen), PlayerName(long))
}

func TestPlayerNameTruncatesOnRuneBoundary(t *testing.T) {
	// 13 three-byte runes, 39 bytes: a byte cut at 36 lands exactly on a
	// rune boundary.
	even := strings.Repeat("世", 13)
	got := PlayerName(even)
	require.Equal(t, strings.Repeat("世", 12), got)
	require.True(t, utf8.ValidString(got))

	// Shifted by one leading ASCII byte the cut lands mid-rune; the whole
	// rune must go, never a fragment of it.
	shifted := "a" + strings.Repeat("世", 12)
	got = PlayerName(shifted)
	require.Equal(t, "a"+strings.Repeat("世", 11), got)
	require.True(t, utf8.ValidString(got))
	require.LessOrEqual(t, len(got), MaxPlayerNameLen)
}
