package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/quizmize/backend/internal/logger"
)

func drain(c *Client) {
	for {
		select {
		case <-c.send:
		default:
			return
		}
	}
}

func recvFrame(t *testing.T, c *Client) inboundFrame {
	t.Helper()
	select {
	case raw := <-c.send:
		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			t.Fatalf("bad frame: %v", err)
		}
		return frame
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return inboundFrame{}
	}
}

func TestHubBroadcastScopedToGroup(t *testing.T) {
	log := logger.NewNop()
	hub := NewHub(log)
	groupA := uuid.New()
	groupB := uuid.New()

	a1 := NewClient(hub, nil, log, groupA, uuid.New(), "alice", nil)
	a2 := NewClient(hub, nil, log, groupA, uuid.New(), "bob", nil)
	b1 := NewClient(hub, nil, log, groupB, uuid.New(), "carol", nil)
	hub.Register(a1)
	hub.Register(a2)
	hub.Register(b1)
	drain(a1)
	drain(a2)
	drain(b1)

	ev, err := NewEvent(EventNewPost, groupA, map[string]string{"content": "hi"})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	hub.Broadcast(ev)

	for _, c := range []*Client{a1, a2} {
		frame := recvFrame(t, c)
		if frame.Type != EventNewPost {
			t.Fatalf("frame type = %q, want %q", frame.Type, EventNewPost)
		}
	}
	select {
	case raw := <-b1.send:
		t.Fatalf("unexpected frame for other group: %s", raw)
	default:
	}
}

func TestHubPresenceEvents(t *testing.T) {
	log := logger.NewNop()
	hub := NewHub(log)
	groupID := uuid.New()

	first := NewClient(hub, nil, log, groupID, uuid.New(), "alice", nil)
	hub.Register(first)
	drain(first)

	second := NewClient(hub, nil, log, groupID, uuid.New(), "bob", nil)
	hub.Register(second)

	joined := recvFrame(t, first)
	if joined.Type != EventUserJoinedChat {
		t.Fatalf("frame type = %q, want %q", joined.Type, EventUserJoinedChat)
	}
	online := recvFrame(t, first)
	if online.Type != EventOnlineCount {
		t.Fatalf("frame type = %q, want %q", online.Type, EventOnlineCount)
	}
	var payload struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(online.Payload, &payload); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if payload.Count != 2 {
		t.Fatalf("online count = %d, want 2", payload.Count)
	}
	if got := hub.OnlineCount(groupID); got != 2 {
		t.Fatalf("OnlineCount = %d, want 2", got)
	}

	hub.Unregister(second)
	left := recvFrame(t, first)
	if left.Type != EventUserLeftChat {
		t.Fatalf("frame type = %q, want %q", left.Type, EventUserLeftChat)
	}
	if got := hub.OnlineCount(groupID); got != 1 {
		t.Fatalf("OnlineCount = %d, want 1", got)
	}
}
