package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vibeluvcommerce/love-heat-up/internal/domain"
)

func TestStoreCreateConcurrentDistinctIDs(t *testing.T) {
	store := NewStore(nil)

	const n = 100
	var wg sync.WaitGroup
	type result struct {
		id  domain.RoomID
		err error
	}
	results := make(chan result, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			room, err := store.Create()
			if err != nil {
				results <- result{err: err}
				return
			}
			results <- result{id: room.ID}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[domain.RoomID]bool)
	for res := range results {
		require.NoError(t, res.err)
		require.False(t, seen[res.id], "duplicate room id %s", res.id)
		seen[res.id] = true
	}
	require.Len(t, seen, n)
	require.Equal(t, n, store.Len())
}

func TestStoreCreateCapacityExhausted(t *testing.T) {
	// A one-letter alphabet of length one yields a single possible code.
	store := NewStore(NewGenerator("A", 1))

	room, err := store.Create()
	require.NoError(t, err)
	require.Equal(t, domain.RoomID("A"), room.ID)

	_, err = store.Create()
	require.ErrorIs(t, err, domain.ErrCapacityExhausted)
}

func TestStoreGetMissing(t *testing.T) {
	store := NewStore(nil)

	_, ok := store.Get("NOSUCH")
	require.False(t, ok)
}

func TestStoreDeleteAbsentIsNoop(t *testing.T) {
	store := NewStore(nil)

	store.Delete("NOSUCH")
	require.Equal(t, 0, store.Len())
}

func TestStoreDeleteRemovesRoom(t *testing.T) {
	store := NewStore(nil)
	room, err := store.Create()
	require.NoError(t, err)

	store.Delete(room.ID)

	_, ok := store.Get(room.ID)
	require.False(t, ok)
}

func TestStoreCodeReuseAfterDelete(t *testing.T) {
	store := NewStore(NewGenerator("A", 1))
	room, err := store.Create()
	require.NoError(t, err)
	store.Delete(room.ID)

	again, err := store.Create()
	require.NoError(t, err)
	require.Equal(t, room.ID, again.ID)
}
