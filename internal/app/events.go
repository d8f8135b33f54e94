package app

// Fan-out event envelopes carried verbatim by the transport layer. Direct
// replies (connected, room_state, pong, error) are built at the signal
// adapter; only events every room member receives live here.

const (
	EventPlayerJoined = "player_joined"
	EventPlayerLeft   = "player_left"
)

type PlayerJoinedEvent struct {
	Type         string `json:"type"`
	PlayerName   string `json:"player_name"`
	TotalPlayers int    `json:"total_players"`
}

func NewPlayerJoinedEvent(name string, total int) PlayerJoinedEvent {
	return PlayerJoinedEvent{Type: EventPlayerJoined, PlayerName: name, TotalPlayers: total}
}

type PlayerLeftEvent struct {
	Type         string `json:"type"`
	PlayerName   string `json:"player_name"`
	TotalPlayers int    `json:"total_players"`
}

func NewPlayerLeftEvent(name string, total int) PlayerLeftEvent {
	return PlayerLeftEvent{Type: EventPlayerLeft, PlayerName: name, TotalPlayers: total}
}
