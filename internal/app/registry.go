package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/vibeluvcommerce/love-heat-up/internal/core"
	"github.com/vibeluvcommerce/love-heat-up/internal/domain"
)

type sessionEntry struct {
	Room   domain.RoomID
	Conn   core.SignalConnection
	Cancel context.CancelFunc
}

// Registry is the sole owner of session state: one entry per live transport
// connection, mapping it to its signal endpoint and (once joined) its room.
type Registry struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[domain.SessionID]*sessionEntry),
	}
}

// Attach records a freshly connected session. A reconnect with the same
// token replaces the previous entry.
func (r *Registry) Attach(sid domain.SessionID, conn core.SignalConnection, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = &sessionEntry{Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("session attached")
}

// BindRoom records which room a session joined.
func (r *Registry) BindRoom(sid domain.SessionID, roomID domain.RoomID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return domain.ErrSessionNotFound
	}
	entry.Room = roomID
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(roomID)).Msg("bound room")
	return nil
}

// UnbindRoom clears the room association without dropping the session.
func (r *Registry) UnbindRoom(sid domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.sessions[sid]; ok {
		entry.Room = ""
	}
}

// RoomOf reports the room a session is currently bound to, if any.
func (r *Registry) RoomOf(sid domain.SessionID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.sessions[sid]
	if !ok || entry.Room == "" {
		return "", false
	}
	return entry.Room, true
}

// Conn returns the signal endpoint for delivery.
func (r *Registry) Conn(sid domain.SessionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return nil, false
	}
	return entry.Conn, true
}

// Detach removes the session and returns its last bound room. The removal
// makes cleanup at-most-once: a duplicate disconnect notification finds no
// entry and reports ok=false.
func (r *Registry) Detach(sid domain.SessionID) (domain.RoomID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return "", false
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("session detached")
	return entry.Room, true
}

// DetachConn removes the session only while it is still bound to conn. A
// same-token re-attach replaces the entry, and the replaced connection's
// late teardown must not take the new session with it.
func (r *Registry) DetachConn(sid domain.SessionID, conn core.SignalConnection) (domain.RoomID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok || entry.Conn != conn {
		return "", false
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("session detached")
	return entry.Room, true
}

// Cancel fires the session's context cancel, tearing down its pumps.
func (r *Registry) Cancel(sid domain.SessionID) bool {
	r.mu.RLock()
	entry, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if entry.Cancel != nil {
		entry.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
