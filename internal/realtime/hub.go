package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/quizmize/backend/internal/logger"
)

// Hub tracks the websocket clients connected to each group channel on this
// instance and fans events out to them.
type Hub struct {
	log   *logger.Logger
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*Client]struct{}
}

func NewHub(baseLog *logger.Logger) *Hub {
	return &Hub{
		log:   baseLog.With("service", "RealtimeHub"),
		rooms: make(map[uuid.UUID]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	room, ok := h.rooms[c.groupID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[c.groupID] = room
	}
	room[c] = struct{}{}
	count := len(room)
	h.mu.Unlock()

	h.log.Debug("client registered", "group_id", c.groupID, "user_id", c.userID, "online", count)
	h.announcePresence(EventUserJoinedChat, c, count)
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	room, ok := h.rooms[c.groupID]
	if ok {
		if _, present := room[c]; present {
			delete(room, c)
			close(c.send)
		}
		if len(room) == 0 {
			delete(h.rooms, c.groupID)
		}
	}
	count := len(room)
	h.mu.Unlock()
	if !ok {
		return
	}

	h.log.Debug("client unregistered", "group_id", c.groupID, "user_id", c.userID, "online", count)
	h.announcePresence(EventUserLeftChat, c, count)
}

// Broadcast delivers an event to every client in the event's group. Slow
// clients get dropped rather than blocking the room.
func (h *Hub) Broadcast(ev Event) {
	frame, err := ev.Frame()
	if err != nil {
		h.log.Warn("failed to encode event", "type", ev.Type, "error", err)
		return
	}

	h.mu.RLock()
	room := h.rooms[ev.GroupID]
	stale := make([]*Client, 0)
	for c := range room {
		select {
		case c.send <- frame:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		h.log.Warn("dropping slow client", "group_id", ev.GroupID, "user_id", c.userID)
		h.Unregister(c)
	}
}

func (h *Hub) OnlineCount(groupID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[groupID])
}

func (h *Hub) announcePresence(eventType string, c *Client, count int) {
	presence, err := NewEvent(eventType, c.groupID, map[string]any{
		"userId":   c.userID,
		"userName": c.userName,
	})
	if err == nil {
		h.Broadcast(presence)
	}
	online, err := NewEvent(EventOnlineCount, c.groupID, map[string]any{
		"count": count,
	})
	if err == nil {
		h.Broadcast(online)
	}
}
