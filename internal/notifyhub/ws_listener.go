package notifyhub

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Aaryan-549/CivicPulse/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketListener implements Listener over a gorilla/websocket connection.
// The event stream is one-way; inbound frames are read only to service pings
// and detect disconnects.
type WebSocketListener struct {
	ID   string
	Conn *websocket.Conn
	Hub  *Hub
	Send chan models.Event
}

func (l *WebSocketListener) GetID() string { return l.ID }

func (l *WebSocketListener) GetSendChannel() chan<- models.Event { return l.Send }

// Run starts the read and write pumps.
func (l *WebSocketListener) Run() {
	go l.writePump()
	go l.readPump()
}

// Close closes the Send channel, which stops the write pump.
func (l *WebSocketListener) Close() {
	close(l.Send)
}

func (l *WebSocketListener) readPump() {
	defer func() {
		l.Hub.UnregisterCh <- l
		l.Conn.Close()
	}()

	l.Conn.SetReadLimit(maxMessageSize)
	l.Conn.SetReadDeadline(time.Now().Add(pongWait))
	l.Conn.SetPongHandler(func(string) error {
		l.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Clients have nothing to say on this stream; discard frames until
		// the connection drops.
		if _, _, err := l.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading from listener %s: %v", l.ID, err)
			}
			break
		}
	}
}

func (l *WebSocketListener) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		l.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-l.Send:
			l.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				l.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("Error encoding event for listener %s: %v", l.ID, err)
				continue
			}
			if err := l.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			l.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := l.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
