package notification

import (
	"context"
	"fmt"
	"log/slog"

	notificationDatamodel "github.com/gatherhub/community/internal/core/datamodel/notification"
	"github.com/gatherhub/community/internal/core/events"
)

const (
	KindGroupCreated = "group_created"
	RefTypeGroup     = "group"
)

// Repository persists delivered notifications.
type Repository interface {
	Create(n *notificationDatamodel.Notification) error
	ListForUser(userID int64) ([]*notificationDatamodel.Notification, error)
	MarkRead(id, userID int64) error
}

// Notifier consumes domain events and records a notification per
// recipient. Delivery failures are logged and swallowed so they never
// reach the publisher.
type Notifier struct {
	repo   Repository
	logger *slog.Logger
}

func NewNotifier(repo Repository, logger *slog.Logger) *Notifier {
	return &Notifier{
		repo:   repo,
		logger: logger,
	}
}

// RegisterHandlers subscribes the notifier to the event types it handles.
func (n *Notifier) RegisterHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeGroupCreated, n.HandleGroupCreated)
}

// HandleGroupCreated congratulates the creator of a new group.
func (n *Notifier) HandleGroupCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload().(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected payload for event %s", event.EventID())
	}

	groupID, ok := payload["group_id"].(int64)
	if !ok {
		return fmt.Errorf("missing group_id in event %s", event.EventID())
	}
	creatorID, ok := payload["creator_id"].(int64)
	if !ok {
		return fmt.Errorf("missing creator_id in event %s", event.EventID())
	}
	title, _ := payload["title"].(string)

	record := &notificationDatamodel.Notification{
		UserID:  creatorID,
		Kind:    KindGroupCreated,
		Subject: fmt.Sprintf("Your group %q is live", title),
		Body:    "Share the join link so others can request membership.",
		RefType: RefTypeGroup,
		RefID:   groupID,
	}

	if err := n.repo.Create(record); err != nil {
		n.logger.Error("failed to record notification",
			"error", err,
			"event_id", event.EventID(),
			"user_id", creatorID)
		return err
	}

	n.logger.Info("notification recorded",
		"kind", KindGroupCreated,
		"user_id", creatorID,
		"group_id", groupID)

	return nil
}

// ListForUser returns a member's notifications, newest first.
func (n *Notifier) ListForUser(userID int64) ([]*notificationDatamodel.Notification, error) {
	return n.repo.ListForUser(userID)
}

// MarkRead flags one of userID's notifications as seen. A notification
// belonging to someone else is reported as not found, never touched.
func (n *Notifier) MarkRead(id, userID int64) error {
	return n.repo.MarkRead(id, userID)
}
