package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vibeluvcommerce/love-heat-up/internal/adapters/signal"
	"github.com/vibeluvcommerce/love-heat-up/internal/app"
	"github.com/vibeluvcommerce/love-heat-up/internal/config"
	"github.com/vibeluvcommerce/love-heat-up/internal/domain"
)

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware assigns each browser a stable token; the token is
// the session identity both HTTP and websocket handlers key on.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, orch *app.Orchestrator) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("LoveHeatUpSessions", store))
	r.Use(ClientTokenMiddleware())

	r.GET("/", handleInfo)

	log.Info().Str("module", "adapters.http").Msg("router setup")

	api := r.Group("/api")
	api.POST("/create_room", handleCreateRoom(orch))
	api.GET("/rooms", handleListRooms(orch))

	ctrl := signal.NewController(orch, cfg)
	api.GET("/ws", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("sid", c.GetString("client_token")).Msg("ws endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	return r
}

func handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"game":    "Love Heat Up",
		"version": "0.1.0",
		"status":  "ok",
	})
}

func handleCreateRoom(orch *app.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, err := orch.CreateRoom()
		if err != nil {
			if errors.Is(err, domain.ErrCapacityExhausted) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no room codes available"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"room_id": roomID})
	}
}

func handleListRooms(orch *app.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, orch.ListRooms())
	}
}
