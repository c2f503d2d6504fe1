package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/tutorbridge/meetsignal/internal/app"
	"github.com/tutorbridge/meetsignal/internal/config"
	"github.com/tutorbridge/meetsignal/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

// Controller terminates websocket connections and translates inbound
// frames into coordinator and registry operations. It never touches
// membership state directly.
type Controller struct {
	Coord *app.Coordinator
	Reg   *app.Registry
	Cfg   *config.Config
}

func NewController(coord *app.Coordinator, reg *app.Registry, cfg *config.Config) *Controller {
	return &Controller{Coord: coord, Reg: reg, Cfg: cfg}
}

// wsSignalConn is the adapter-owned transport endpoint handed to the
// registry. Writes go through a buffered channel; a full buffer means the
// frame is dropped, never that a coordinator operation blocks.
type wsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsSignalConn) TrySend(f core.Frame) error {
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

func (c *wsSignalConn) Close() {
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
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request, assigns the connection its id and
// starts the pumps. The id is sent back immediately so the client knows
// how peers will address it.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	cid := core.ConnID(uuid.NewString())
	conn := &wsSignalConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}
	ctl.Reg.Register(cid, conn)
	log.Info().Str("module", "signal").Str("cid", string(cid)).Msg("new WS connection")

	ctl.sendJSON(conn, struct {
		Type     string      `json:"type"`
		SocketID core.ConnID `json:"socketId"`
	}{"welcome", cid})

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, cid, conn)
}
