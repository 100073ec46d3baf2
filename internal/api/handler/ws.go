package handler

import (
	"net/http"

	"skillswap/backend/internal/chathub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten for production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades an authenticated HTTP connection and registers the
// resulting client with the chat hub. Channel joins happen afterwards via
// join_room frames.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	userID := currentUser(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := chathub.NewWebSocketClient(userID, conn, h.Hub, 256)

	h.Hub.RegisterCh <- client
	client.Run()
}
