package web

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// client is one widget connection. The read pump owns the player; the
// write pump owns all writes to the socket.
type client struct {
	conn   *websocket.Conn
	player *Player
	send   chan []byte
	done   chan struct{} // closed when the write pump exits
	logger *log.Logger
	id     string
}

func newClient(conn *websocket.Conn, player *Player, logger *log.Logger, id string) *client {
	return &client{
		conn:   conn,
		player: player,
		send:   make(chan []byte, 16),
		done:   make(chan struct{}),
		logger: logger,
		id:     id,
	}
}

// enqueue hands a state to the write pump.
func (c *client) enqueue(st StateMessage) {
	data, err := json.Marshal(st)
	if err != nil {
		c.logger.Error("cannot encode state", "client", c.id, "error", err)
		return
	}
	select {
	case c.send <- data:
	case <-c.done:
	}
}

// readPump applies client messages until the connection drops, then
// closes the send queue and finishes the game. An abandoned game with a
// score goes to the result log like a restarted one.
func (c *client) readPump() {
	defer func() {
		close(c.send)
		c.player.Session().Restart()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck // a failed deadline surfaces on the next read
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c.enqueue(freshState(c.player.Session()))

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket closed", "client", c.id, "error", err)
			}
			return
		}

		var msg InboundMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.logger.Debug("ignoring malformed message", "client", c.id, "error", err)
			continue
		}

		if st, ok := c.player.Handle(msg); ok {
			c.enqueue(st)
		}
	}
}

// writePump sends queued states and keeps the connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // write below reports it
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck // closing anyway
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // write below reports it
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
