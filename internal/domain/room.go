package domain

type (
	// RoomID is a short join code, unique among currently-live rooms.
	// A code may be reused after its room has been reaped.
	RoomID string

	// SessionID identifies one live transport connection.
	SessionID string
)
