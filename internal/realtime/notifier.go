package realtime

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizmize/backend/internal/logger"
)

// Notifier is what the services publish through. With a bus attached every
// instance sees the event; without one events stay on the local hub.
type Notifier struct {
	log *logger.Logger
	hub *Hub
	bus Bus
}

func NewNotifier(baseLog *logger.Logger, hub *Hub, bus Bus) *Notifier {
	return &Notifier{
		log: baseLog.With("service", "RealtimeNotifier"),
		hub: hub,
		bus: bus,
	}
}

// Notify publishes an event to a group channel. Delivery is best effort;
// failures are logged and never surfaced to the caller.
func (n *Notifier) Notify(ctx context.Context, eventType string, groupID uuid.UUID, payload any) {
	ev, err := NewEvent(eventType, groupID, payload)
	if err != nil {
		n.log.Warn("failed to build event", "type", eventType, "error", err)
		return
	}
	if n.bus != nil {
		if err := n.bus.Publish(ctx, ev); err != nil {
			n.log.Warn("bus publish failed, delivering locally", "type", eventType, "error", err)
			n.hub.Broadcast(ev)
		}
		return
	}
	n.hub.Broadcast(ev)
}
