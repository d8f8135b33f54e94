package app

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/vibeluvcommerce/love-heat-up/internal/core"
	"github.com/vibeluvcommerce/love-heat-up/internal/domain"
)

// Orchestrator wires the room store, session registry and broadcaster into
// the operations the transport layer calls.
type Orchestrator struct {
	Rooms    *core.Store
	Registry *Registry
	Events   *Broadcaster
}

func NewOrchestrator(rooms *core.Store, registry *Registry) *Orchestrator {
	return &Orchestrator{
		Rooms:    rooms,
		Registry: registry,
		Events:   NewBroadcaster(rooms, registry),
	}
}

// CreateRoom mints a fresh empty room and returns its join code.
func (o *Orchestrator) CreateRoom() (domain.RoomID, error) {
	room, err := o.Rooms.Create()
	if err != nil {
		return "", err
	}
	return room.ID, nil
}

// Connect registers a freshly attached transport connection. A session id
// that is already live (page refresh, second tab on the same token) gets
// its old session torn down first: membership left and broadcast, pumps
// canceled, connection closed. Skipping this would orphan the old room
// binding and leave a ghost member the reaper can never expire.
func (o *Orchestrator) Connect(sid domain.SessionID, conn core.SignalConnection, cancel context.CancelFunc) {
	if old, ok := o.Registry.Conn(sid); ok {
		log.Info().Str("module", "app.orchestrator").Str("sid", string(sid)).Msg("replacing live session")
		o.Registry.Cancel(sid)
		o.Disconnect(sid)
		if old != nil {
			old.Close()
		}
	}
	o.Registry.Attach(sid, conn, cancel)
}

// JoinResult is what the transport reports back to the joiner.
type JoinResult struct {
	Room     domain.RoomID
	Snapshot core.Snapshot
}

// Join moves a session into a room and fans out player_joined to everyone
// in it, the joiner included. A session already in another room leaves it
// first; a rejoin of the same room surfaces ErrAlreadyJoined untouched.
func (o *Orchestrator) Join(sid domain.SessionID, roomID domain.RoomID, name string) (JoinResult, error) {
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return JoinResult{}, domain.ErrRoomNotFound
	}
	if _, ok := o.Registry.Conn(sid); !ok {
		return JoinResult{}, domain.ErrSessionNotFound
	}

	if prev, bound := o.Registry.RoomOf(sid); bound && prev != roomID {
		o.leaveRoom(sid, prev)
	}

	snap, err := room.Join(sid, name)
	if err != nil {
		return JoinResult{}, err
	}
	if err := o.Registry.BindRoom(sid, roomID); err != nil {
		// The session vanished between the check and the bind; undo the
		// membership so the room does not keep a ghost.
		_, _, _ = room.Leave(sid)
		return JoinResult{}, err
	}

	o.Events.Broadcast(roomID, NewPlayerJoinedEvent(name, snap.Count))
	return JoinResult{Room: roomID, Snapshot: snap}, nil
}

// Leave handles an explicit leave_room: the connection stays up, only the
// membership goes.
func (o *Orchestrator) Leave(sid domain.SessionID) error {
	roomID, ok := o.Registry.RoomOf(sid)
	if !ok {
		return domain.ErrNotAMember
	}
	o.Registry.UnbindRoom(sid)
	o.leaveRoom(sid, roomID)
	return nil
}

// Disconnect is the cleanup path for a dropped connection. Detach makes it
// idempotent: only the first notification finds the session and triggers
// the leave plus broadcast.
func (o *Orchestrator) Disconnect(sid domain.SessionID) {
	roomID, ok := o.Registry.Detach(sid)
	if !ok {
		return
	}
	if roomID != "" {
		o.leaveRoom(sid, roomID)
	}
}

// DisconnectConn is Disconnect for transport teardown paths: it only cleans
// up while sid is still bound to conn, so a replaced connection unwinding
// late cannot detach the session that replaced it.
func (o *Orchestrator) DisconnectConn(sid domain.SessionID, conn core.SignalConnection) {
	roomID, ok := o.Registry.DetachConn(sid, conn)
	if !ok {
		return
	}
	if roomID != "" {
		o.leaveRoom(sid, roomID)
	}
}

func (o *Orchestrator) leaveRoom(sid domain.SessionID, roomID domain.RoomID) {
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return
	}
	member, remaining, err := room.Leave(sid)
	if err != nil {
		log.Debug().Str("module", "app.orchestrator").Str("sid", string(sid)).Str("room", string(roomID)).Msg("leave of a non-member")
		return
	}
	o.Events.Broadcast(roomID, NewPlayerLeftEvent(member.Name, remaining))
}

// RoomInfo is a read-only listing view (no member identities).
type RoomInfo struct {
	RoomID      domain.RoomID `json:"room_id"`
	PlayerCount int           `json:"player_count"`
}

func (o *Orchestrator) ListRooms() []RoomInfo {
	return lo.Map(o.Rooms.Rooms(), func(r *core.Room, _ int) RoomInfo {
		return RoomInfo{RoomID: r.ID, PlayerCount: r.MemberCount()}
	})
}
