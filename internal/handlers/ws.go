package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lifeblood-dev/lifeblood/internal/types"
)

var (
	feedClients   = make(map[*websocket.Conn]bool)
	feedClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastAlertCreated pushes a freshly created alert to every connected
// feed client. Failed connections are dropped.
func BroadcastAlertCreated(alert AlertResponse) {
	feedClientsMu.RLock()
	clientsCopy := make([]*websocket.Conn, 0, len(feedClients))
	for conn := range feedClients {
		clientsCopy = append(clientsCopy, conn)
	}
	feedClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			zap.L().Warn("Failed to set write deadline for broadcast", zap.Error(err))
			continue
		}

		err := conn.WriteJSON(gin.H{
			"type":  "alert_created",
			"alert": alert,
		})

		if err != nil {
			zap.L().Warn("Failed to broadcast alert to client", zap.Error(err))
			feedClientsMu.Lock()
			delete(feedClients, conn)
			feedClientsMu.Unlock()
			conn.Close()
		}
	}
}

// AlertFeed upgrades the connection and keeps it registered for alert
// broadcasts until the client goes away.
func AlertFeed(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		zap.L().Warn("Failed to set initial read deadline", zap.Error(err))
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	feedClientsMu.Lock()
	feedClients[conn] = true
	feedClientsMu.Unlock()

	defer func() {
		feedClientsMu.Lock()
		delete(feedClients, conn)
		feedClientsMu.Unlock()
		conn.Close()
	}()

	// Keepalive pings; the read loop below only exists to notice closure.
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()
	defer close(stop)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
