package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vibeluvcommerce/love-heat-up/internal/core"
)

// Reaper garbage-collects rooms that have sat empty past the grace period.
type Reaper struct {
	rooms    *core.Store
	interval time.Duration
	grace    time.Duration
}

func NewReaper(rooms *core.Store, interval, grace time.Duration) *Reaper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reaper{rooms: rooms, interval: interval, grace: grace}
}

func (r *Reaper) Run(ctx context.Context) {
	log.Info().Str("module", "app.reaper").Dur("interval", r.interval).Dur("grace", r.grace).Msg("reaper started")
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.reaper").Msg("reaper stopped")
			return
		case <-ticker.C:
			r.reap(time.Now())
		}
	}
}

// reap is the two-step delete: mark closing under the room's own lock, then
// remove from the store. A join that slips in between the emptiness check
// and the delete hits the closing state and is rejected, so it can retry
// against a fresh room instead of landing in a deleted one.
func (r *Reaper) reap(now time.Time) int {
	reaped := 0
	for _, room := range r.rooms.Rooms() {
		if !room.MarkExpired(now, r.grace) {
			continue
		}
		r.rooms.Delete(room.ID)
		reaped++
		log.Info().Str("module", "app.reaper").Str("room", string(room.ID)).Msg("reaped stale room")
	}
	return reaped
}
