package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Aaryan-549/CivicPulse/internal/models"
	"github.com/Aaryan-549/CivicPulse/internal/notifyhub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and registers it with the notify
// hub. The client receives every complaint event published from then on;
// events before the connection are not replayed.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	claims, err := h.parseToken(bearerToken(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			apiResponse{Success: false, Message: "Invalid token or expired"})
		return
	}
	callerID, _ := claims["id"].(string)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			apiResponse{Success: false, Message: "Failed to upgrade connection"})
		return
	}

	// One caller may hold several tabs; the listener ID stays unique.
	listener := &notifyhub.WebSocketListener{
		ID:   callerID + ":" + uuid.New().String(),
		Conn: conn,
		Hub:  h.Hub,
		Send: make(chan models.Event, 256),
	}

	h.Hub.RegisterCh <- listener
	listener.Run()
}
