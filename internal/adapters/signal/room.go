package signal

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/vibeluvcommerce/love-heat-up/internal/domain"
)

func (ctl *Controller) handleJoin(sid domain.SessionID, conn *WsSignalConn, data []byte) {
	type joinPayload struct {
		Type       string `json:"type"`
		RoomID     string `json:"room_id"`
		PlayerName string `json:"player_name,omitempty"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	if !ctl.Limiter.Allow(sid) {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("join rate limited")
		ctl.sendError(conn, "too many join attempts, slow down")
		return
	}

	name := domain.PlayerName(p.PlayerName)
	res, err := ctl.Orch.Join(sid, domain.RoomID(p.RoomID), name)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Str("room_id", p.RoomID).Msg("join rejected")
		ctl.sendError(conn, messageFor(err))
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room_id", string(res.Room)).Str("name", name).Msg("join")
	resp := struct {
		Type         string        `json:"type"`
		Room         domain.RoomID `json:"room"`
		Players      []string      `json:"players"`
		TotalPlayers int           `json:"total_players"`
	}{
		Type: "room_state",
		Room: res.Room,
		Players: lo.Map(res.Snapshot.Members, func(m domain.Member, _ int) string {
			return m.Name
		}),
		TotalPlayers: res.Snapshot.Count,
	}
	ctl.sendJSON(conn, resp)
}

// handleLeave drops the room membership but keeps the connection up.
func (ctl *Controller) handleLeave(sid domain.SessionID, conn *WsSignalConn) {
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("leave")
	if err := ctl.Orch.Leave(sid); err != nil {
		ctl.sendError(conn, messageFor(err))
		return
	}
	ctl.sendJSON(conn, struct {
		Type string `json:"type"`
	}{
		Type: "left",
	})
}

// messageFor maps the error taxonomy onto user-facing strings. Anything
// outside the taxonomy stays generic so internals never leak to clients.
func messageFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		return "room does not exist"
	case errors.Is(err, domain.ErrRoomClosing):
		return "room is closing, create a new one"
	case errors.Is(err, domain.ErrAlreadyJoined):
		return "you are already in this room"
	case errors.Is(err, domain.ErrNotAMember):
		return "you are not in a room"
	case errors.Is(err, domain.ErrSessionNotFound):
		return "session expired, reconnect"
	case errors.Is(err, domain.ErrCapacityExhausted):
		return "no room codes available, try again later"
	default:
		return "internal error"
	}
}
