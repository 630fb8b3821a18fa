package realtime

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Event types pushed to group channels.
const (
	EventNewPost        = "new-post"
	EventNewComment     = "new-comment"
	EventVoteUpdate     = "vote-update"
	EventGroupXPUpdated = "group-xp-updated"
	EventGroupLevelUp   = "group-level-up"
	EventMemberJoined   = "member-joined"
	EventChatMessage    = "chat-message"
	EventUserJoinedChat = "user-joined-chat"
	EventUserLeftChat   = "user-left-chat"
	EventOnlineCount    = "online-count"
)

// Event is one realtime notification scoped to a group channel. Payload is
// kept raw so events survive a trip through the redis bus unchanged.
type Event struct {
	Type    string          `json:"type"`
	GroupID uuid.UUID       `json:"groupId"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewEvent(eventType string, groupID uuid.UUID, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: eventType, GroupID: groupID, Payload: raw}, nil
}

// Frame is the wire form written to websocket clients.
func (e Event) Frame() ([]byte, error) {
	return json.Marshal(struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload,omitempty"`
	}{Type: e.Type, Payload: e.Payload})
}
