package membership_test

import (
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/gatherhub/community/internal"
	"github.com/gatherhub/community/internal/ability"
	groupDatamodel "github.com/gatherhub/community/internal/core/datamodel/group"
	membershipDatamodel "github.com/gatherhub/community/internal/core/datamodel/membership"
	"github.com/gatherhub/community/internal/group"
	"github.com/gatherhub/community/internal/membership"
)

func TestMembership(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Membership Suite")
}

type mockMembershipRepository struct {
	memberships map[int64]*membershipDatamodel.Membership
	nextID      int64
	clock       time.Time
}

func newMockMembershipRepository() *mockMembershipRepository {
	return &mockMembershipRepository{
		memberships: make(map[int64]*membershipDatamodel.Membership),
		nextID:      1,
		clock:       time.Now(),
	}
}

func (m *mockMembershipRepository) Create(dm *membershipDatamodel.Membership) error {
	for _, existing := range m.memberships {
		if existing.UserID == dm.UserID && existing.GroupID == dm.GroupID {
			return internal.ErrAlreadyJoined
		}
	}
	dm.ID = m.nextID
	dm.CreatedAt = m.clock
	m.clock = m.clock.Add(time.Second)
	m.nextID++
	m.memberships[dm.ID] = dm
	return nil
}

func (m *mockMembershipRepository) GetByUserAndGroup(userID, groupID int64) (*membershipDatamodel.Membership, error) {
	for _, dm := range m.memberships {
		if dm.UserID == userID && dm.GroupID == groupID {
			return dm, nil
		}
	}
	return nil, internal.ErrMembershipNotFound
}

func (m *mockMembershipRepository) MarkAccepted(id int64) error {
	dm, ok := m.memberships[id]
	if !ok {
		return internal.ErrMembershipNotFound
	}
	dm.Accepted = true
	return nil
}

func (m *mockMembershipRepository) ListForGroup(groupID int64) ([]*membershipDatamodel.Membership, error) {
	var out []*membershipDatamodel.Membership
	for id := int64(1); id < m.nextID; id++ {
		if dm, ok := m.memberships[id]; ok && dm.GroupID == groupID {
			out = append(out, dm)
		}
	}
	return out, nil
}

func (m *mockMembershipRepository) CountPending(groupID int64) (int64, error) {
	var count int64
	for _, dm := range m.memberships {
		if dm.GroupID == groupID && !dm.Accepted {
			count++
		}
	}
	return count, nil
}

func (m *mockMembershipRepository) FirstForGroup(groupID int64) (*membershipDatamodel.Membership, error) {
	for id := int64(1); id < m.nextID; id++ {
		if dm, ok := m.memberships[id]; ok && dm.GroupID == groupID {
			return dm, nil
		}
	}
	return nil, internal.ErrMembershipNotFound
}

type mockGroupReader struct {
	groups map[int64]*groupDatamodel.Group
}

func (m *mockGroupReader) GetByID(groupID int64) (*groupDatamodel.Group, error) {
	g, ok := m.groups[groupID]
	if !ok {
		return nil, internal.ErrGroupNotFound
	}
	return g, nil
}

var _ = Describe("Membership Service", func() {
	var (
		repo    *mockMembershipRepository
		groups  *mockGroupReader
		service *membership.Service

		alice ability.Subject
		bob   ability.Subject
	)

	const (
		publicGroupID  = int64(1)
		privateGroupID = int64(2)
	)

	BeforeEach(func() {
		repo = newMockMembershipRepository()
		groups = &mockGroupReader{groups: map[int64]*groupDatamodel.Group{
			publicGroupID:  {ID: publicGroupID, Title: "Open Mic", GroupType: group.TypePublic},
			privateGroupID: {ID: privateGroupID, Title: "Book Club", GroupType: group.TypePrivate},
		}}
		service = membership.NewService(repo, groups, slog.Default())

		alice = ability.Subject{ID: 1, Plan: ability.PlanBasic}
		bob = ability.Subject{ID: 2, Plan: ability.PlanNone}
	})

	Describe("RequestJoin", func() {
		Context("on a public group", func() {
			It("accepts immediately", func() {
				m, notice, err := service.RequestJoin(alice, publicGroupID)

				Expect(err).NotTo(HaveOccurred())
				Expect(m.Accepted).To(BeTrue())
				Expect(notice).To(Equal(membership.NoticeJoined))
				Expect(service.CheckRequestStatus(publicGroupID, alice.ID)).To(BeTrue())
			})
		})

		Context("on a private group", func() {
			It("leaves the request pending", func() {
				m, notice, err := service.RequestJoin(alice, privateGroupID)

				Expect(err).NotTo(HaveOccurred())
				Expect(m.Accepted).To(BeFalse())
				Expect(notice).To(Equal(membership.NoticeRequestSent))
				Expect(service.CheckRequestStatus(privateGroupID, alice.ID)).To(BeFalse())
			})
		})

		Context("when the user already has a membership", func() {
			It("reports already joined without a second record", func() {
				_, _, err := service.RequestJoin(alice, privateGroupID)
				Expect(err).NotTo(HaveOccurred())

				_, notice, err := service.RequestJoin(alice, privateGroupID)

				Expect(err).To(Equal(internal.ErrAlreadyJoined))
				Expect(notice).To(Equal(membership.NoticeAlreadyJoined))
				Expect(repo.memberships).To(HaveLen(1))
			})
		})

		Context("when the group does not exist", func() {
			It("returns not found", func() {
				_, _, err := service.RequestJoin(alice, 999)

				Expect(err).To(Equal(internal.ErrGroupNotFound))
			})
		})
	})

	Describe("AcceptRequest", func() {
		BeforeEach(func() {
			_, _, err := service.RequestJoin(bob, privateGroupID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("flips the pending membership to accepted", func() {
			m, err := service.AcceptRequest(privateGroupID, bob.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(m.Accepted).To(BeTrue())
			Expect(service.CheckRequestStatus(privateGroupID, bob.ID)).To(BeTrue())
		})

		It("is a no-op on an already accepted membership", func() {
			_, err := service.AcceptRequest(privateGroupID, bob.ID)
			Expect(err).NotTo(HaveOccurred())

			m, err := service.AcceptRequest(privateGroupID, bob.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(m.Accepted).To(BeTrue())
		})

		It("reports not found for a user with no request", func() {
			_, err := service.AcceptRequest(privateGroupID, 999)

			Expect(err).To(Equal(internal.ErrMembershipNotFound))
		})
	})

	Describe("PendingRequestCount", func() {
		It("counts only the pending requests", func() {
			_, _, err := service.RequestJoin(alice, privateGroupID)
			Expect(err).NotTo(HaveOccurred())
			_, _, err = service.RequestJoin(bob, privateGroupID)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.PendingRequestCount(privateGroupID)).To(Equal(int64(2)))

			_, err = service.AcceptRequest(privateGroupID, alice.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.PendingRequestCount(privateGroupID)).To(Equal(int64(1)))
		})
	})

	Describe("IsGroupAdmin", func() {
		It("treats the earliest membership as the owner", func() {
			_, _, err := service.RequestJoin(alice, privateGroupID)
			Expect(err).NotTo(HaveOccurred())
			_, _, err = service.RequestJoin(bob, privateGroupID)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.IsGroupAdmin(privateGroupID, alice.ID)).To(BeTrue())
			Expect(service.IsGroupAdmin(privateGroupID, bob.ID)).To(BeFalse())
		})
	})

	Describe("CheckRequestStatus", func() {
		It("returns false when no membership exists", func() {
			Expect(service.CheckRequestStatus(privateGroupID, alice.ID)).To(BeFalse())
		})
	})

	Describe("ListRequests", func() {
		It("returns pending and accepted memberships in join order", func() {
			_, _, err := service.RequestJoin(alice, privateGroupID)
			Expect(err).NotTo(HaveOccurred())
			_, _, err = service.RequestJoin(bob, privateGroupID)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.AcceptRequest(privateGroupID, alice.ID)
			Expect(err).NotTo(HaveOccurred())

			memberships, err := service.ListRequests(privateGroupID)

			Expect(err).NotTo(HaveOccurred())
			Expect(memberships).To(HaveLen(2))
			Expect(memberships[0].UserID).To(Equal(alice.ID))
			Expect(memberships[0].Accepted).To(BeTrue())
			Expect(memberships[1].Accepted).To(BeFalse())
		})
	})
})
