// Package domain contains entities without logic, just meta-data.
package domain

import (
	"time"
	"unicode/utf8"
)

const (
	MaxPlayerNameLen  = 36
	DefaultPlayerName = "Guest"
)

// Member represents a player's participation in a room.
// No transport or lifecycle logic here.
type Member struct {
	Session  SessionID
	Name     string
	JoinedAt time.Time
	// Seq is the monotonic per-room join index; broadcast and display
	// order follow it.
	Seq uint64
}

// PlayerName sanitizes a client-supplied display name: empty names fall
// back to a guest name, long names are truncated on a rune boundary so the
// result stays valid UTF-8.
func PlayerName(raw string) string {
	if len(raw) > MaxPlayerNameLen {
		cut := MaxPlayerNameLen
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		raw = raw[:cut]
	}
	if raw == "" {
		return DefaultPlayerName
	}
	return raw
}
