package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tutorbridge/meetsignal/internal/adapters/signal"
	"github.com/tutorbridge/meetsignal/internal/app"
	"github.com/tutorbridge/meetsignal/internal/config"
	"github.com/tutorbridge/meetsignal/internal/domain"
)

// ClientTokenMiddleware gives every browser a stable token cookie. The
// token identifies the client across page loads; connection ids stay
// per-socket and are minted by the signal adapter.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, ctl *signal.Controller, coord *app.Coordinator) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("MeetSessions", store))
	r.Use(ClientTokenMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.GET("/ws/signal", func(c *gin.Context) {
		ctl.HandleSignal(ctx, c)
	})

	api.GET("/stats", func(c *gin.Context) {
		rooms, conns := coord.Stats()
		c.JSON(http.StatusOK, gin.H{"rooms": rooms, "connections": conns})
	})

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, coord.Rooms())
	})

	api.GET("/ice-servers", func(c *gin.Context) {
		c.JSON(http.StatusOK, ICEServers(cfg))
	})

	// Presence lookup for the layers that deliver chat and notifications:
	// is this user reachable right now, and at which connection.
	api.GET("/presence/:userId", func(c *gin.Context) {
		cid, ok := ctl.Reg.ResolveUser(domain.UserID(c.Param("userId")))
		if !ok {
			c.JSON(http.StatusOK, gin.H{"online": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"online": true, "socketId": cid})
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
