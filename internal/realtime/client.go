package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/quizmize/backend/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one websocket connection bound to a group channel. All writes
// go through the send channel so only WritePump touches the connection.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	log      *logger.Logger
	send     chan []byte
	groupID  uuid.UUID
	userID   uuid.UUID
	userName string
	onChat   func(content string)
}

func NewClient(hub *Hub, conn *websocket.Conn, baseLog *logger.Logger, groupID, userID uuid.UUID, userName string, onChat func(content string)) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		log:      baseLog.With("service", "RealtimeClient", "group_id", groupID, "user_id", userID),
		send:     make(chan []byte, 32),
		groupID:  groupID,
		userID:   userID,
		userName: userName,
		onChat:   onChat,
	}
}

type inboundFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type inboundChat struct {
	Content string `json:"content"`
}

// ReadPump consumes inbound frames until the peer disconnects, then
// unregisters the client.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("websocket read failed", "error", err)
			}
			return
		}
		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.log.Debug("ignoring malformed frame", "error", err)
			continue
		}
		switch frame.Type {
		case EventChatMessage:
			if c.onChat == nil {
				continue
			}
			var chat inboundChat
			if err := json.Unmarshal(frame.Payload, &chat); err != nil {
				c.log.Debug("ignoring malformed chat payload", "error", err)
				continue
			}
			c.onChat(chat.Content)
		default:
			c.log.Debug("ignoring unknown frame", "type", frame.Type)
		}
	}
}

// WritePump drains the send channel to the connection and keeps the peer
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
