package group_test

import (
	"context"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/gatherhub/community/internal"
	"github.com/gatherhub/community/internal/ability"
	groupDatamodel "github.com/gatherhub/community/internal/core/datamodel/group"
	membershipDatamodel "github.com/gatherhub/community/internal/core/datamodel/membership"
	"github.com/gatherhub/community/internal/core/events"
	"github.com/gatherhub/community/internal/group"
)

func TestGroup(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Group Suite")
}

type mockGroupRepository struct {
	groups   map[int64]*groupDatamodel.Group
	owners   map[int64]*membershipDatamodel.Membership
	pictures map[int64][]*groupDatamodel.GroupPicture
	nextID   int64
}

func newMockGroupRepository() *mockGroupRepository {
	return &mockGroupRepository{
		groups:   make(map[int64]*groupDatamodel.Group),
		owners:   make(map[int64]*membershipDatamodel.Membership),
		pictures: make(map[int64][]*groupDatamodel.GroupPicture),
		nextID:   1,
	}
}

func (m *mockGroupRepository) CreateWithOwner(g *groupDatamodel.Group, owner *membershipDatamodel.Membership) error {
	g.ID = m.nextID
	m.nextID++
	owner.GroupID = g.ID
	m.groups[g.ID] = g
	m.owners[g.ID] = owner
	return nil
}

func (m *mockGroupRepository) GetByID(id int64) (*groupDatamodel.Group, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, internal.ErrGroupNotFound
	}
	return g, nil
}

func (m *mockGroupRepository) Update(g *groupDatamodel.Group) error {
	m.groups[g.ID] = g
	return nil
}

func (m *mockGroupRepository) List(limit, offset int) ([]*groupDatamodel.Group, error) {
	var out []*groupDatamodel.Group
	for id := int64(1); id < m.nextID; id++ {
		if g, ok := m.groups[id]; ok {
			out = append(out, g)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockGroupRepository) Count() (int64, error) {
	return int64(len(m.groups)), nil
}

func (m *mockGroupRepository) AddPictures(pics []*groupDatamodel.GroupPicture) error {
	for _, p := range pics {
		m.pictures[p.GroupID] = append(m.pictures[p.GroupID], p)
	}
	return nil
}

func (m *mockGroupRepository) ListPictures(groupID int64) ([]*groupDatamodel.GroupPicture, error) {
	return m.pictures[groupID], nil
}

type mockStatusChecker struct {
	accepted map[[2]int64]bool
}

func (m *mockStatusChecker) CheckRequestStatus(groupID, userID int64) bool {
	return m.accepted[[2]int64{groupID, userID}]
}

type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(_ context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("Group Service", func() {
	var (
		repo      *mockGroupRepository
		status    *mockStatusChecker
		publisher *mockPublisher
		service   *group.Service

		premiumUser ability.Subject
		basicUser   ability.Subject
		freeUser    ability.Subject
		adminUser   ability.Subject
	)

	BeforeEach(func() {
		repo = newMockGroupRepository()
		status = &mockStatusChecker{accepted: make(map[[2]int64]bool)}
		publisher = &mockPublisher{}
		service = group.NewService(repo, status, publisher, slog.Default())

		premiumUser = ability.Subject{ID: 1, Plan: ability.PlanPremium}
		basicUser = ability.Subject{ID: 2, Plan: ability.PlanBasic}
		freeUser = ability.Subject{ID: 3, Plan: ability.PlanNone}
		adminUser = ability.Subject{ID: 4, Admin: true}
	})

	validDTO := group.CreateGroupDTO{
		Title:     "Hiking Club",
		GroupType: group.TypePublic,
		ImageURL:  "https://img.example/hiking.png",
	}

	Describe("CreateGroup", func() {
		Context("when the user has a premium plan", func() {
			It("creates the group and enrolls the creator as accepted member", func() {
				g, notice, err := service.CreateGroup(premiumUser, validDTO)

				Expect(err).NotTo(HaveOccurred())
				Expect(notice).To(Equal(group.NoticeCreated))
				Expect(g.ID).NotTo(BeZero())
				Expect(g.CreatorID).To(Equal(premiumUser.ID))

				owner := repo.owners[g.ID]
				Expect(owner).NotTo(BeNil())
				Expect(owner.UserID).To(Equal(premiumUser.ID))
				Expect(owner.Accepted).To(BeTrue())
			})

			It("publishes a group created event", func() {
				g, _, err := service.CreateGroup(premiumUser, validDTO)

				Expect(err).NotTo(HaveOccurred())
				Expect(publisher.published).To(HaveLen(1))
				Expect(publisher.published[0].EventType()).To(Equal(events.EventTypeGroupCreated))
				payload := publisher.published[0].Payload().(map[string]interface{})
				Expect(payload["group_id"]).To(Equal(g.ID))
			})

			It("attaches gallery pictures when provided", func() {
				dto := validDTO
				dto.PictureURLs = []string{"https://img.example/a.png", "https://img.example/b.png"}

				g, _, err := service.CreateGroup(premiumUser, dto)

				Expect(err).NotTo(HaveOccurred())
				Expect(repo.pictures[g.ID]).To(HaveLen(2))
			})
		})

		Context("when the user is an admin", func() {
			It("creates the group regardless of plan", func() {
				_, notice, err := service.CreateGroup(adminUser, validDTO)

				Expect(err).NotTo(HaveOccurred())
				Expect(notice).To(Equal(group.NoticeCreated))
			})
		})

		Context("when the user has a basic plan", func() {
			It("rejects creation with the plan notice", func() {
				_, _, err := service.CreateGroup(basicUser, validDTO)

				Expect(err).To(Equal(internal.ErrPlanNotAllowed))
				Expect(err.(*internal.AppError).Notice()).To(Equal("User is not admin nor premium"))
				Expect(repo.groups).To(BeEmpty())
			})
		})

		Context("when the user has no plan", func() {
			It("rejects creation", func() {
				_, _, err := service.CreateGroup(freeUser, validDTO)

				Expect(err).To(Equal(internal.ErrPlanNotAllowed))
			})
		})

		Context("when the payload is invalid", func() {
			It("rejects a missing title", func() {
				dto := validDTO
				dto.Title = ""

				_, _, err := service.CreateGroup(premiumUser, dto)

				Expect(err).To(HaveOccurred())
			})

			It("rejects an unknown group type", func() {
				dto := validDTO
				dto.GroupType = "Secret"

				_, _, err := service.CreateGroup(premiumUser, dto)

				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("GetGroup", func() {
		var created *group.Group

		BeforeEach(func() {
			var err error
			created, _, err = service.CreateGroup(premiumUser, validDTO)
			Expect(err).NotTo(HaveOccurred())
		})

		Context("when the viewer is an accepted member", func() {
			It("returns the group", func() {
				status.accepted[[2]int64{created.ID, basicUser.ID}] = true

				g, err := service.GetGroup(basicUser, created.ID)

				Expect(err).NotTo(HaveOccurred())
				Expect(g.Title).To(Equal("Hiking Club"))
			})
		})

		Context("when the viewer is not a member", func() {
			It("returns the membership notice", func() {
				_, err := service.GetGroup(freeUser, created.ID)

				Expect(err).To(Equal(internal.ErrNotGroupMember))
				Expect(err.(*internal.AppError).Notice()).To(Equal("You are not member of this group"))
			})
		})

		Context("when the viewer is an admin without a membership", func() {
			It("still returns the membership notice", func() {
				_, err := service.GetGroup(adminUser, created.ID)

				Expect(err).To(Equal(internal.ErrNotGroupMember))
			})

			It("returns the group once the admin has joined", func() {
				status.accepted[[2]int64{created.ID, adminUser.ID}] = true

				g, err := service.GetGroup(adminUser, created.ID)

				Expect(err).NotTo(HaveOccurred())
				Expect(g.ID).To(Equal(created.ID))
			})
		})

		Context("when the group does not exist", func() {
			It("returns not found", func() {
				_, err := service.GetGroup(adminUser, 999)

				Expect(err).To(Equal(internal.ErrGroupNotFound))
			})
		})
	})

	Describe("UpdateGroup", func() {
		var created *group.Group

		BeforeEach(func() {
			var err error
			created, _, err = service.CreateGroup(premiumUser, validDTO)
			Expect(err).NotTo(HaveOccurred())
		})

		It("lets a basic plan user edit even though it cannot create", func() {
			dto := group.UpdateGroupDTO{
				Title:     "Hiking Club Renamed",
				GroupType: group.TypePrivate,
				ImageURL:  "https://img.example/new.png",
			}

			g, notice, err := service.UpdateGroup(basicUser, created.ID, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(notice).To(Equal(group.NoticeUpdated))
			Expect(g.Title).To(Equal("Hiking Club Renamed"))
			Expect(g.GroupType).To(Equal(group.TypePrivate))
		})

		It("rejects a user with no plan", func() {
			dto := group.UpdateGroupDTO{
				Title:     "Nope",
				GroupType: group.TypePublic,
				ImageURL:  "https://img.example/x.png",
			}

			_, _, err := service.UpdateGroup(freeUser, created.ID, dto)

			Expect(err).To(Equal(internal.ErrPlanNotAllowed))
		})
	})

	Describe("ListGroups", func() {
		BeforeEach(func() {
			for i := 0; i < 23; i++ {
				_, _, err := service.CreateGroup(adminUser, validDTO)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("returns ten groups per page ordered by id", func() {
			page, err := service.ListGroups(1)

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Groups).To(HaveLen(10))
			Expect(page.TotalCount).To(Equal(int64(23)))
			Expect(page.Groups[0].ID).To(BeNumerically("<", page.Groups[9].ID))
		})

		It("returns the remainder on the last page", func() {
			page, err := service.ListGroups(3)

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Groups).To(HaveLen(3))
		})

		It("treats a page below one as the first page", func() {
			page, err := service.ListGroups(0)

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Page).To(Equal(1))
			Expect(page.Groups).To(HaveLen(10))
		})
	})
})
