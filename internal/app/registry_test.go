package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vibeluvcommerce/love-heat-up/internal/domain"
)

func TestRegistryAttachAndConn(t *testing.T) {
	reg := NewRegistry()
	conn := newFakeConn()

	reg.Attach("conn1", conn, nil)

	got, ok := reg.Conn("conn1")
	require.True(t, ok)
	require.Same(t, conn, got.(*fakeConn))
	require.Equal(t, 1, reg.Len())
}

func TestRegistryBindRoomUnknownSession(t *testing.T) {
	reg := NewRegistry()

	err := reg.BindRoom("ghost", "ABC123")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRegistryRoomOf(t *testing.T) {
	reg := NewRegistry()
	reg.Attach("conn1", newFakeConn(), nil)

	_, ok := reg.RoomOf("conn1")
	require.False(t, ok, "no room bound yet")

	require.NoError(t, reg.BindRoom("conn1", "ABC123"))

	roomID, ok := reg.RoomOf("conn1")
	require.True(t, ok)
	require.Equal(t, domain.RoomID("ABC123"), roomID)

	reg.UnbindRoom("conn1")
	_, ok = reg.RoomOf("conn1")
	require.False(t, ok)
}

func TestRegistryDetachIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	reg.Attach("conn1", newFakeConn(), nil)
	require.NoError(t, reg.BindRoom("conn1", "ABC123"))

	roomID, ok := reg.Detach("conn1")
	require.True(t, ok)
	require.Equal(t, domain.RoomID("ABC123"), roomID)

	// Duplicate disconnect notification: nothing left to clean up.
	_, ok = reg.Detach("conn1")
	require.False(t, ok)
	require.Equal(t, 0, reg.Len())
}

func TestRegistryDetachWithoutRoom(t *testing.T) {
	reg := NewRegistry()
	reg.Attach("conn1", newFakeConn(), nil)

	roomID, ok := reg.Detach("conn1")
	require.True(t, ok)
	require.Empty(t, roomID)
}

func TestRegistryDetachConnRequiresMatchingConnection(t *testing.T) {
	reg := NewRegistry()
	first := newFakeConn()
	reg.Attach("conn1", first, nil)
	require.NoError(t, reg.BindRoom("conn1", "ABC123"))

	// Entry replaced under the same session id.
	second := newFakeConn()
	reg.Attach("conn1", second, nil)

	// The replaced connection can no longer detach the session.
	_, ok := reg.DetachConn("conn1", first)
	require.False(t, ok)
	require.Equal(t, 1, reg.Len())

	roomID, ok := reg.DetachConn("conn1", second)
	require.True(t, ok)
	require.Empty(t, roomID, "replacement entry starts with no room bound")
	require.Equal(t, 0, reg.Len())
}

func TestRegistryCancelFiresSessionContext(t *testing.T) {
	reg := NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	reg.Attach("conn1", newFakeConn(), cancel)

	require.True(t, reg.Cancel("conn1"))
	select {
	case <-ctx.Done():
	default:
		t.Fatal("session context not canceled")
	}

	require.False(t, reg.Cancel("ghost"))
}
