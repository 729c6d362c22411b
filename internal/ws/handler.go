package ws

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rummy-service/internal/service/agent"
	"rummy-service/internal/service/match"
	"rummy-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	MessageEvent  = "event"
	MessageResult = "result"
	MessageError  = "error"
)

// OutgoingMessage frames everything sent to a spectator.
type OutgoingMessage struct {
	Type string      `json:"type"`
	Seq  int         `json:"seq"`
	Data interface{} `json:"data"`
}

type Handler struct {
	matchSvc *match.Service
}

func NewHandler(matchSvc *match.Service) *Handler {
	return &Handler{matchSvc: matchSvc}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// HandleRoundWS streams one simulated round to a spectator. The optional
// seed query parameter replays a specific deal.
func (h *Handler) HandleRoundWS(c *gin.Context) {
	var seed int64
	if raw := strings.TrimSpace(c.Query("seed")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seed"})
			return
		}
		seed = parsed
	}
	strategy := c.Query("strategy")
	if _, err := agent.ParseStrategy(strategy); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	logger.Log.Info("New spectator connection",
		zap.Int64("seed", seed),
		zap.String("remote", c.ClientIP()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	client := newClient(conn, cancel)
	go client.writePump()
	go func() {
		res, err := h.matchSvc.StreamRound(ctx, seed, strategy, client.sendEvent)
		client.finish(res, err)
	}()
	client.readPump()
}

type client struct {
	conn      *websocket.Conn
	cancel    context.CancelFunc
	outbound  chan OutgoingMessage
	done      chan struct{}
	seq       int
	pingEvery time.Duration
}

func newClient(conn *websocket.Conn, cancel context.CancelFunc) *client {
	conn.SetReadLimit(1 << 10)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	return &client{
		conn:      conn,
		cancel:    cancel,
		outbound:  make(chan OutgoingMessage, 64),
		done:      make(chan struct{}),
		pingEvery: 25 * time.Second,
	}
}

// sendEvent runs on the round goroutine and blocks while the spectator is
// slow, which paces the round to the connection.
func (c *client) sendEvent(ev match.Event) {
	c.push(MessageEvent, ev)
}

func (c *client) finish(res match.Result, err error) {
	if err != nil {
		c.push(MessageError, gin.H{"message": err.Error(), "result": res})
	} else {
		c.push(MessageResult, res)
	}
	close(c.outbound)
}

func (c *client) push(kind string, data interface{}) {
	c.seq++
	select {
	case c.outbound <- OutgoingMessage{Type: kind, Seq: c.seq, Data: data}:
	case <-c.done:
	}
}

// readPump only watches for the spectator leaving; incoming frames are
// ignored.
func (c *client) readPump() {
	defer func() {
		close(c.done)
		c.cancel()
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			logger.Log.Info("WS read error", zap.Error(err))
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.pingEvery)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.outbound:
			if !ok {
				c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "round over"),
					time.Now().Add(5*time.Second))
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				logger.Log.Info("WS write error", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
