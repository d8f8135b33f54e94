package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/vibeluvcommerce/love-heat-up/internal/app"
	"github.com/vibeluvcommerce/love-heat-up/internal/config"
	"github.com/vibeluvcommerce/love-heat-up/internal/core"
	"github.com/vibeluvcommerce/love-heat-up/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Mode:         "release",
		Port:         0,
		ReadLimit:    32768,
		PingPeriod:   54 * time.Second,
		SendBuffer:   32,
		Secret:       "test-secret",
		CodeLength:   6,
		CodeAlphabet: core.DefaultCodeAlphabet,
		JoinLimit:    10,
		JoinWindow:   time.Minute,
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *app.Orchestrator) {
	t.Helper()
	cfg := testConfig()
	orch := app.NewOrchestrator(core.NewStore(core.NewGenerator(cfg.CodeAlphabet, cfg.CodeLength)), app.NewRegistry())
	return SetupRouter(context.Background(), cfg, orch), orch
}

func TestInfoEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Love Heat Up", body["game"])
	require.Equal(t, "ok", body["status"])
}

func TestCreateRoomEndpoint(t *testing.T) {
	r, orch := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/create_room", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body["room_id"], 6)

	_, ok := orch.Rooms.Get(domain.RoomID(body["room_id"]))
	require.True(t, ok, "minted room must exist in the store")
}

func TestListRoomsEndpoint(t *testing.T) {
	r, orch := newTestRouter(t)

	roomID, err := orch.CreateRoom()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var infos []app.RoomInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	require.Len(t, infos, 1)
	require.Equal(t, roomID, infos[0].RoomID)
	require.Equal(t, 0, infos[0].PlayerCount)
}

func TestClientTokenCookieAssigned(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	var found bool
	for _, ck := range cookies {
		if ck.Name == "ct" && ck.Value != "" {
			found = true
		}
	}
	require.True(t, found, "ct cookie must be set on first visit")
}
