package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/vibeluvcommerce/love-heat-up/internal/app"
	"github.com/vibeluvcommerce/love-heat-up/internal/config"
	"github.com/vibeluvcommerce/love-heat-up/internal/core"
	"github.com/vibeluvcommerce/love-heat-up/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

const welcomeMessage = "Welcome to Love Heat Up!"

// Controller owns the websocket side of the API: one connection per player,
// identified by the client token cookie, dispatching room commands to the
// orchestrator.
type Controller struct {
	Orch    *app.Orchestrator
	Limiter *JoinRateLimiter
	cfg     *config.Config
}

func NewController(orch *app.Orchestrator, cfg *config.Config) *Controller {
	return &Controller{
		Orch:    orch,
		Limiter: NewJoinRateLimiter(cfg.JoinLimit, cfg.JoinWindow),
		cfg:     cfg,
	}
}

// WsSignalConn wraps a websocket connection with a buffered send channel.
// TrySend never blocks; a full buffer is a backpressure error the caller
// logs and moves past.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and attaches the session. The welcome
// event goes out first so the client knows the channel is live before any
// room traffic.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	sid := domain.SessionID(c.GetString("client_token"))
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.cfg.ReadLimit)

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, ctl.cfg.SendBuffer),
	}

	ctx, cancel := context.WithCancel(ctx)
	ctl.Orch.Connect(sid, conn, cancel)

	ctl.sendJSON(conn, struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}{
		Type:    "connected",
		Message: welcomeMessage,
	})

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, sid, conn)
}
