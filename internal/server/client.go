package server

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const maxMessageSize = 64 * 1024

// Client is one websocket connection. playerID and gameID are set once
// during the join handshake, before the client is bound to a game in the
// hub, and never written again.
type Client struct {
	gateway *Gateway
	conn    *websocket.Conn
	send    chan []byte

	playerID string
	gameID   string
	joined   bool
}

// readPump consumes frames until the connection drops. It runs on its own
// goroutine; all engine access happens through the gateway's per-game locks.
func (c *Client) readPump() {
	defer func() {
		c.gateway.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.gateway.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.gateway.opts.PongWait))
		return nil
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.gateway.logger.Debug("websocket read error",
					zap.String("player_id", c.playerID),
					zap.Error(err),
				)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.gateway.sendError(c, "", "malformed message")
			continue
		}
		c.gateway.handleMessage(c, msg)
	}
}

// writePump drains the send buffer and keeps the connection alive with
// pings. The hub closes the send channel to stop it.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.gateway.opts.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.gateway.opts.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.gateway.opts.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
