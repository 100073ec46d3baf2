package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"skillswap/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	// Inbound frames carry text plus optional media URLs, never the media
	// itself.
	maxMessageSize = 4096
)

// WebSocketClient implements the Client interface over gorilla/websocket.
type WebSocketClient struct {
	UserID string
	Conn   *websocket.Conn
	Hub    *ManagerService
	Send   chan models.ServerEvent

	// sessionID is written by the hub dispatcher and read by the read
	// pump.
	mu        sync.Mutex
	sessionID string

	closeOnce sync.Once
	done      chan struct{}
}

// NewWebSocketClient wires a connection to the hub. sendBuffer bounds how far
// the write pump may fall behind before the hub drops the client.
func NewWebSocketClient(userID string, conn *websocket.Conn, hub *ManagerService, sendBuffer int) *WebSocketClient {
	return &WebSocketClient{
		UserID: userID,
		Conn:   conn,
		Hub:    hub,
		Send:   make(chan models.ServerEvent, sendBuffer),
		done:   make(chan struct{}),
	}
}

func (c *WebSocketClient) GetUserID() string { return c.UserID }

func (c *WebSocketClient) GetSessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *WebSocketClient) SetSessionID(id string) {
	c.mu.Lock()
	c.sessionID = id
	c.mu.Unlock()
}

func (c *WebSocketClient) GetSendChannel() chan<- models.ServerEvent { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close stops the write pump. It is idempotent: the hub may close a slow
// client and the read pump's unregister will close it again on its way out.
// The Send channel itself is never closed, so late writers cannot panic.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// readPump reads frames off the socket and hands them to the hub. Frames
// from one connection are processed strictly in arrival order, which gives
// each sender in-order persistence and broadcast.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var ev models.ChatEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Printf("Error decoding JSON from client %s: %v", c.UserID, err)
			continue
		}
		// The sender is always the authenticated connection, whatever the
		// frame claims.
		ev.SenderID = c.UserID

		switch ev.Type {
		case models.EventJoinRoom:
			if err := c.Hub.Join(c, ev.SessionID); err != nil {
				c.trySend(models.ServerEvent{
					Type:      models.EventAck,
					SessionID: ev.SessionID,
					Error:     err.Error(),
				})
			}
		case models.EventSendMessage:
			c.trySend(c.Hub.HandleSend(c, ev))
		default:
			c.trySend(models.ServerEvent{
				Type:  models.EventAck,
				Error: "unknown event type",
			})
		}
	}
}

// trySend queues a frame for the write pump without ever blocking the read
// loop. Frames for a closed client are discarded.
func (c *WebSocketClient) trySend(ev models.ServerEvent) {
	select {
	case <-c.done:
	case c.Send <- ev:
	default:
		log.Printf("WARNING: send buffer full for client %s, dropping frame", c.UserID)
	}
}

// writePump drains the Send channel into the WebSocket and keeps the
// connection alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case ev := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))

			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("Error encoding JSON for client %s: %v", c.UserID, err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(data)

			// Flush whatever else is already queued.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				next := <-c.Send
				if extra, err := json.Marshal(next); err == nil {
					w.Write(extra)
				}
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
