package events

import (
	"time"

	"github.com/google/uuid"
)

const EventTypeGroupCreated = "group.created"

// NewGroupCreatedEvent announces a freshly created group. Consumed by the
// notification handler that congratulates the creator; delivery is
// fire-and-forget and never blocks or rolls back group creation.
func NewGroupCreatedEvent(groupID, creatorID int64, title string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventTypeGroupCreated,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"group_id":   groupID,
			"creator_id": creatorID,
			"title":      title,
		},
	}
}
