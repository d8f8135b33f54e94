package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/vibeluvcommerce/love-heat-up/internal/domain"
)

// maxCodeAttempts bounds collision retries on create. At 6 characters the
// code space is ~2 billion, so hitting this means the store is effectively
// full.
const maxCodeAttempts = 64

// Store is the single source of truth for room existence. Its mutex covers
// existence checks, insert and delete only; membership mutation runs under
// each Room's own lock so a slow room never blocks the others. Lock order
// is always Store before Room, never the reverse.
type Store struct {
	gen *Generator

	mu    sync.RWMutex
	rooms map[domain.RoomID]*Room
}

func NewStore(gen *Generator) *Store {
	if gen == nil {
		gen = NewGenerator(DefaultCodeAlphabet, DefaultCodeLength)
	}
	return &Store{
		gen:   gen,
		rooms: make(map[domain.RoomID]*Room),
	}
}

// Create atomically generates a code not currently present and inserts a
// new empty room under it. Two concurrent calls can never return the same
// code because the check and insert happen under one lock.
func (s *Store) Create() (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		id := domain.RoomID(s.gen.Generate())
		if _, taken := s.rooms[id]; taken {
			continue
		}
		room := NewRoom(id)
		s.rooms[id] = room
		log.Info().Str("module", "core.store").Str("room", string(id)).Msg("room created")
		return room, nil
	}
	log.Error().Str("module", "core.store").Int("attempts", maxCodeAttempts).Msg("could not mint a free room code")
	return nil, domain.ErrCapacityExhausted
}

func (s *Store) Get(id domain.RoomID) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	return room, ok
}

// Delete removes the room from the store; no-op if absent. The caller must
// have marked the room closing under its own lock first (see Reaper).
func (s *Store) Delete(id domain.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return
	}
	delete(s.rooms, id)
	log.Info().Str("module", "core.store").Str("room", string(id)).Msg("room deleted")
}

// Rooms returns a snapshot of live rooms for scans and listings.
func (s *Store) Rooms() []*Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		out = append(out, room)
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
