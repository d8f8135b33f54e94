package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/vibeluvcommerce/love-heat-up/internal/core"
	"github.com/vibeluvcommerce/love-heat-up/internal/domain"
)

// Broadcaster fans one event out to every current member of a room, in join
// order. Delivery is best-effort per recipient: a dead or slow connection is
// logged and skipped, never removed here (disconnect cleanup is the
// registry's path, which keeps removal single-sourced).
type Broadcaster struct {
	rooms    *core.Store
	registry *Registry
}

func NewBroadcaster(rooms *core.Store, registry *Registry) *Broadcaster {
	return &Broadcaster{rooms: rooms, registry: registry}
}

func (b *Broadcaster) Broadcast(roomID domain.RoomID, v any) {
	room, ok := b.rooms.Get(roomID)
	if !ok {
		log.Debug().Str("module", "app.broadcaster").Str("room", string(roomID)).Msg("broadcast to missing room")
		return
	}
	frame, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.broadcaster").Str("room", string(roomID)).Msg("marshal event")
		return
	}

	// Snapshot under the room lock, deliver outside it: a suspended
	// network write must not stall joins and leaves.
	snap := room.Snapshot()
	sent, dropped := 0, 0
	for _, m := range snap.Members {
		conn, ok := b.registry.Conn(m.Session)
		if !ok {
			dropped++
			continue
		}
		if err := conn.TrySend(core.Frame(frame)); err != nil {
			dropped++
			log.Warn().Err(err).Str("module", "app.broadcaster").Str("room", string(roomID)).Str("sid", string(m.Session)).Msg("delivery failed")
			continue
		}
		sent++
	}
	log.Debug().Str("module", "app.broadcaster").Str("room", string(roomID)).Int("sent_to", sent).Int("dropped", dropped).Msg("broadcast result")
}
