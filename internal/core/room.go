package core

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vibeluvcommerce/love-heat-up/internal/domain"
)

type roomState int

const (
	stateOpen roomState = iota
	stateClosing
)

// Room is a threadsafe in-memory room. It owns its membership and guards
// all mutation with its own lock; it never touches transport resources.
type Room struct {
	ID        domain.RoomID
	CreatedAt time.Time

	mu           sync.Mutex
	members      []domain.Member
	nextSeq      uint64
	lastActivity time.Time
	state        roomState
}

func NewRoom(id domain.RoomID) *Room {
	now := time.Now()
	return &Room{
		ID:           id,
		CreatedAt:    now,
		lastActivity: now,
	}
}

// Snapshot is a consistent view of membership taken under the room lock,
// in join order.
type Snapshot struct {
	Members []domain.Member
	Count   int
}

// Join appends a member with the next sequence index. A session already in
// the room is rejected rather than silently re-appended, so callers can
// decide what a rejoin means.
func (r *Room) Join(sid domain.SessionID, name string) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == stateClosing {
		return Snapshot{}, domain.ErrRoomClosing
	}
	for _, m := range r.members {
		if m.Session == sid {
			return Snapshot{}, domain.ErrAlreadyJoined
		}
	}
	now := time.Now()
	r.members = append(r.members, domain.Member{
		Session:  sid,
		Name:     name,
		JoinedAt: now,
		Seq:      r.nextSeq,
	})
	r.nextSeq++
	r.lastActivity = now
	log.Info().Str("module", "core.room").Str("room", string(r.ID)).Str("sid", string(sid)).Str("name", name).Msg("member joined")
	return r.snapshotLocked(), nil
}

// Leave removes the member and compacts the list, keeping join order for
// everyone who stays. Returns the removed member and the remaining count.
func (r *Room) Leave(sid domain.SessionID) (domain.Member, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.members {
		if m.Session == sid {
			r.members = append(r.members[:i], r.members[i+1:]...)
			r.lastActivity = time.Now()
			log.Info().Str("module", "core.room").Str("room", string(r.ID)).Str("sid", string(sid)).Msg("member left")
			return m, len(r.members), nil
		}
	}
	return domain.Member{}, len(r.members), domain.ErrNotAMember
}

func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() Snapshot {
	out := make([]domain.Member, len(r.members))
	copy(out, r.members)
	return Snapshot{Members: out, Count: len(out)}
}

// MarkExpired transitions an empty, stale room to closing. Taking the room
// lock here is what keeps a concurrent Join from landing in a room the
// reaper is about to delete from the store.
func (r *Room) MarkExpired(now time.Time, grace time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == stateClosing {
		return true
	}
	if len(r.members) > 0 {
		return false
	}
	if now.Sub(r.lastActivity) < grace {
		return false
	}
	r.state = stateClosing
	return true
}
