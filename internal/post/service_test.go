package post_test

import (
	"log/slog"
	"sort"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/gatherhub/community/internal"
	"github.com/gatherhub/community/internal/ability"
	postDatamodel "github.com/gatherhub/community/internal/core/datamodel/post"
	"github.com/gatherhub/community/internal/post"
)

func TestPost(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Post Suite")
}

type mockPostRepository struct {
	posts          map[int64]*postDatamodel.Post
	nextID         int64
	deletedCascade []int64
}

func newMockPostRepository() *mockPostRepository {
	return &mockPostRepository{
		posts:  make(map[int64]*postDatamodel.Post),
		nextID: 1,
	}
}

func (m *mockPostRepository) Create(p *postDatamodel.Post) error {
	p.ID = m.nextID
	m.nextID++
	m.posts[p.ID] = p
	return nil
}

func (m *mockPostRepository) GetByID(id int64) (*postDatamodel.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, internal.ErrPostNotFound
	}
	return p, nil
}

func (m *mockPostRepository) Update(p *postDatamodel.Post) error {
	m.posts[p.ID] = p
	return nil
}

func (m *mockPostRepository) DeleteWithComments(id int64) error {
	delete(m.posts, id)
	m.deletedCascade = append(m.deletedCascade, id)
	return nil
}

func (m *mockPostRepository) ListForGroup(groupID int64) ([]*postDatamodel.Post, error) {
	var out []*postDatamodel.Post
	for _, p := range m.posts {
		if p.GroupID == groupID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockPostRepository) ListRecent(limit int) ([]*postDatamodel.Post, error) {
	var out []*postDatamodel.Post
	for _, p := range m.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type mockMembershipChecker struct {
	accepted map[[2]int64]bool
}

func (m *mockMembershipChecker) CheckRequestStatus(groupID, userID int64) bool {
	return m.accepted[[2]int64{groupID, userID}]
}

var _ = Describe("Post Service", func() {
	var (
		repo       *mockPostRepository
		membership *mockMembershipChecker
		service    *post.Service

		author   ability.Subject
		stranger ability.Subject
		admin    ability.Subject
	)

	const groupID = int64(10)

	validDTO := post.CreatePostDTO{
		Title:       "Trail report",
		Description: "We hiked the ridge on Saturday.",
		PostType:    "article",
	}

	BeforeEach(func() {
		repo = newMockPostRepository()
		membership = &mockMembershipChecker{accepted: make(map[[2]int64]bool)}
		service = post.NewService(repo, membership, slog.Default())

		author = ability.Subject{ID: 1, Plan: ability.PlanNone}
		stranger = ability.Subject{ID: 2, Plan: ability.PlanBasic}
		admin = ability.Subject{ID: 3, Admin: true}

		membership.accepted[[2]int64{groupID, author.ID}] = true
		membership.accepted[[2]int64{groupID, stranger.ID}] = true
	})

	Describe("CreatePost", func() {
		It("lets a member without a plan publish an article", func() {
			p, notice, err := service.CreatePost(author, groupID, validDTO)

			Expect(err).NotTo(HaveOccurred())
			Expect(notice).To(Equal(post.NoticeCreated))
			Expect(p.UserID).To(Equal(author.ID))
			Expect(p.GroupID).To(Equal(groupID))
		})

		It("rejects a user who is not a member of the group", func() {
			outsider := ability.Subject{ID: 99, Plan: ability.PlanPremium}

			_, _, err := service.CreatePost(outsider, groupID, validDTO)

			Expect(err).To(Equal(internal.ErrNotGroupMember))
		})

		It("rejects a missing title", func() {
			dto := validDTO
			dto.Title = ""

			_, _, err := service.CreatePost(author, groupID, dto)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdatePost", func() {
		var created *post.Post

		BeforeEach(func() {
			var err error
			created, _, err = service.CreatePost(author, groupID, validDTO)
			Expect(err).NotTo(HaveOccurred())
		})

		It("lets the author edit their own article", func() {
			updated, err := service.UpdatePost(author, created.ID, post.UpdatePostDTO{
				Title:       "Trail report, revised",
				Description: "With photos this time.",
				PostType:    "article",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Title).To(Equal("Trail report, revised"))
		})

		It("denies another member regardless of plan", func() {
			_, err := service.UpdatePost(stranger, created.ID, post.UpdatePostDTO{
				Title:       "Hijacked",
				Description: "x",
			})

			Expect(err).To(Equal(internal.ErrNotResourceOwner))
		})

		It("lets an admin edit anyone's article", func() {
			updated, err := service.UpdatePost(admin, created.ID, post.UpdatePostDTO{
				Title:       "Moderated title",
				Description: "Cleaned up.",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Title).To(Equal("Moderated title"))
		})
	})

	Describe("DeletePost", func() {
		var created *post.Post

		BeforeEach(func() {
			var err error
			created, _, err = service.CreatePost(author, groupID, validDTO)
			Expect(err).NotTo(HaveOccurred())
		})

		It("cascades the delete through the comments", func() {
			err := service.DeletePost(author, created.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(repo.deletedCascade).To(ContainElement(created.ID))
			_, err = service.GetPost(author, created.ID)
			Expect(err).To(Equal(internal.ErrPostNotFound))
		})

		It("denies a non-author member", func() {
			err := service.DeletePost(stranger, created.ID)

			Expect(err).To(Equal(internal.ErrNotResourceOwner))
		})

		It("returns not found for an unknown post", func() {
			err := service.DeletePost(author, 404)

			Expect(err).To(Equal(internal.ErrPostNotFound))
		})
	})

	Describe("GetPost and listings", func() {
		BeforeEach(func() {
			for i := 0; i < 3; i++ {
				_, _, err := service.CreatePost(author, groupID, validDTO)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("gates the article behind group membership", func() {
			outsider := ability.Subject{ID: 42, Plan: ability.PlanPremium}

			_, err := service.GetPost(outsider, 1)

			Expect(err).To(Equal(internal.ErrNotGroupMember))
		})

		It("lets an admin read without membership", func() {
			p, err := service.GetPost(admin, 1)

			Expect(err).NotTo(HaveOccurred())
			Expect(p.ID).To(Equal(int64(1)))
		})

		It("lists the group's articles for members", func() {
			posts, err := service.ListPostsForGroup(stranger, groupID)

			Expect(err).NotTo(HaveOccurred())
			Expect(posts).To(HaveLen(3))
		})

		It("serves the recent feed without a membership gate", func() {
			posts, err := service.ListRecent()

			Expect(err).NotTo(HaveOccurred())
			Expect(posts).To(HaveLen(3))
		})
	})
})
