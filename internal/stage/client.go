package stage

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is one websocket connection to a stage hub
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	role string
	send chan []byte
	ctx  context.Context
}

func newClient(ctx context.Context, hub *Hub, conn *websocket.Conn, role string) *Client {
	return &Client{
		id:   uuid.New().String(),
		hub:  hub,
		conn: conn,
		role: role,
		send: make(chan []byte, SendBuffer),
		ctx:  context.WithoutCancel(ctx),
	}
}

// readPump forwards presenter actions to the hub until the connection closes.
func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug(LogMsgReadError, "client_id", c.id, "error", err)
			}
			return
		}

		var a Action
		if err := json.Unmarshal(data, &a); err != nil {
			a = Action{}
		}
		slog.Debug(LogMsgActionReceived, "client_id", c.id, "action", a.Action, "group", a.Group)
		c.hub.submit(c, a)
	}
}

// writePump drains the send queue and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
