// Package ws bridges gin WebSocket upgrades onto the dispatcher.
package ws

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"wardmap.xyz/ward-track-service/pkg/common"
	"wardmap.xyz/ward-track-service/pkg/dispatch"
)

const (
	writeWait    = 10 * time.Second
	maxFrameSize = 1024 * 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsSession adapts a gorilla connection to dispatch.Session. The write
// mutex is required: the dispatcher pushes from request goroutines
// while the supervisor probes from its own.
type wsSession struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSession) Send(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

func (s *wsSession) SendPing() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (s *wsSession) Close() error {
	return s.conn.Close()
}

type Handler struct {
	Dispatcher *dispatch.Dispatcher
}

// Serve upgrades the request and parks it in the dispatcher until the
// client goes away. Identity comes from query params: guardianId (or
// wardId for ward-side clients) plus deviceId, both required.
func (h *Handler) Serve(c *gin.Context) {
	logger := common.GetLoggerWith(
		common.LoggerNameDispatcher,
		zap.String(common.LoggerFieldGuardCategory, common.LoggerCategoryHeartbeat),
	)

	idParam := c.Query("guardianId")
	if idParam == "" {
		idParam = c.Query("wardId")
	}
	deviceID := c.Query("deviceId")

	guardianID, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guardianId (or wardId) and deviceId are required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	session := &wsSession{conn: conn}
	h.Dispatcher.Register(guardianID, deviceID, session)
	defer h.Dispatcher.Deregister(guardianID, deviceID, session)

	conn.SetReadLimit(maxFrameSize)
	conn.SetPongHandler(func(string) error {
		h.Dispatcher.Touch(guardianID, deviceID)
		return nil
	})

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		// text heartbeats serve clients that cannot emit pong frames
		if messageType == websocket.TextMessage && string(data) == dispatch.HeartbeatText {
			h.Dispatcher.Touch(guardianID, deviceID)
		}
	}
}
