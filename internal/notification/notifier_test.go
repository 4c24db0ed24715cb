package notification_test

import (
	"context"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/gatherhub/community/internal"
	notificationDatamodel "github.com/gatherhub/community/internal/core/datamodel/notification"
	"github.com/gatherhub/community/internal/core/events"
	"github.com/gatherhub/community/internal/notification"
)

func TestNotification(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Suite")
}

type mockNotificationRepository struct {
	records []*notificationDatamodel.Notification
	nextID  int64
}

func (m *mockNotificationRepository) Create(n *notificationDatamodel.Notification) error {
	m.nextID++
	n.ID = m.nextID
	m.records = append(m.records, n)
	return nil
}

func (m *mockNotificationRepository) ListForUser(userID int64) ([]*notificationDatamodel.Notification, error) {
	var out []*notificationDatamodel.Notification
	for _, n := range m.records {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepository) MarkRead(id, userID int64) error {
	for _, n := range m.records {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return internal.ErrNotificationNotFound
}

var _ = Describe("Notifier", func() {
	var (
		repo     *mockNotificationRepository
		notifier *notification.Notifier
		bus      *events.EventBus
	)

	BeforeEach(func() {
		repo = &mockNotificationRepository{}
		notifier = notification.NewNotifier(repo, slog.Default())
		bus = events.NewEventBus(slog.Default())
		notifier.RegisterHandlers(bus)
	})

	It("records a congratulation for the group creator", func() {
		event := events.NewGroupCreatedEvent(7, 42, "Hiking Club")

		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		Expect(repo.records).To(HaveLen(1))
		record := repo.records[0]
		Expect(record.UserID).To(Equal(int64(42)))
		Expect(record.Kind).To(Equal(notification.KindGroupCreated))
		Expect(record.RefType).To(Equal(notification.RefTypeGroup))
		Expect(record.RefID).To(Equal(int64(7)))
		Expect(record.Subject).To(ContainSubstring("Hiking Club"))
	})

	It("rejects an event without the expected payload", func() {
		bad := events.BaseEvent{
			ID:   "x",
			Type: events.EventTypeGroupCreated,
			Data: map[string]interface{}{"title": "no ids"},
		}

		Expect(bus.PublishSync(context.Background(), bad)).NotTo(Succeed())
		Expect(repo.records).To(BeEmpty())
	})

	It("lists and marks a member's notifications", func() {
		event := events.NewGroupCreatedEvent(7, 42, "Hiking Club")
		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		mine, err := notifier.ListForUser(42)
		Expect(err).NotTo(HaveOccurred())
		Expect(mine).To(HaveLen(1))
		Expect(mine[0].IsRead).To(BeFalse())

		Expect(notifier.MarkRead(mine[0].ID, 42)).To(Succeed())
		Expect(repo.records[0].IsRead).To(BeTrue())
	})

	It("refuses to mark another member's notification", func() {
		event := events.NewGroupCreatedEvent(7, 42, "Hiking Club")
		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		err := notifier.MarkRead(repo.records[0].ID, 99)

		Expect(err).To(Equal(internal.ErrNotificationNotFound))
		Expect(repo.records[0].IsRead).To(BeFalse())
	})
})
